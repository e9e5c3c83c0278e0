// Package gitlog parses formatted git log output into commits and derives
// their code churn.
package gitlog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/baijiangliang/year2018/schema"
)

// minRecordLines is id, parents, author, email, timestamp, subject and the
// empty line ending the format.
const minRecordLines = 7

// SplitRecords splits raw log output into per-commit blocks.
func SplitRecords(out []byte) []string {
	parts := strings.Split(string(out), contract.LogSeparator)
	blocks := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			blocks = append(blocks, p)
		}
	}
	return blocks
}

// ParseRecord turns one block into a commit of repo. Commits authored by a
// tracked email are summarized in place when s is non-nil.
func ParseRecord(repo, block string, tracked schema.IdentitySet, s *Summarizer) (*schema.Commit, error) {
	lines := strings.Split(block, "\n")
	if len(lines) < minRecordLines {
		return nil, &contract.FormatError{Record: block, Reason: fmt.Sprintf("expected at least %d lines, got %d", minRecordLines, len(lines))}
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(lines[4]), 10, 64)
	if err != nil {
		return nil, &contract.FormatError{Record: block, Reason: "timestamp is not an integer"}
	}

	c := &schema.Commit{
		Repo:      repo,
		ID:        strings.TrimSpace(lines[0]),
		Parents:   strings.Fields(lines[1]),
		Author:    lines[2],
		Email:     strings.TrimSpace(lines[3]),
		Timestamp: ts,
		Subject:   lines[5],
	}
	for _, line := range lines[6:] {
		if line = strings.TrimSpace(line); line != "" {
			c.NumStat = append(c.NumStat, line)
		}
	}
	if c.ID == "" {
		return nil, &contract.FormatError{Record: block, Reason: "empty commit id"}
	}

	if s != nil && tracked.Has(c.Email) {
		s.Summarize(c)
	}
	return c, nil
}

// ParseLog parses every record of out in log order. The first malformed
// record aborts the whole log.
func ParseLog(repo string, out []byte, tracked schema.IdentitySet, s *Summarizer) ([]*schema.Commit, error) {
	blocks := SplitRecords(out)
	commits := make([]*schema.Commit, 0, len(blocks))
	for _, block := range blocks {
		c, err := ParseRecord(repo, block, tracked, s)
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}
	return commits, nil
}

// FormatRecords renders commits the way the log command prints them.
// It is the inverse of ParseLog and backs log fixtures.
func FormatRecords(commits []*schema.Commit) []byte {
	var b strings.Builder
	for _, c := range commits {
		b.WriteString(contract.LogSeparator)
		fmt.Fprintf(&b, "%s\n%s\n%s\n%s\n%d\n%s\n", c.ID, strings.Join(c.Parents, " "), c.Author, c.Email, c.Timestamp, c.Subject)
		if len(c.NumStat) > 0 {
			b.WriteString("\n")
			for _, line := range c.NumStat {
				b.WriteString(line)
				b.WriteString("\n")
			}
		}
	}
	return []byte(b.String())
}
