package gitlog

import (
	"strconv"
	"strings"

	"github.com/baijiangliang/year2018/schema"
)

// Detector classifies a numstat path into a language tag, or "" to ignore it.
type Detector interface {
	Classify(path string) string
}

// Summarizer derives the code churn of user commits.
type Summarizer struct {
	detector   Detector
	thresholds schema.Thresholds
}

// NewSummarizer creates a Summarizer.
func NewSummarizer(detector Detector, thresholds schema.Thresholds) *Summarizer {
	return &Summarizer{detector: detector, thresholds: thresholds}
}

// Summarize fills the derived fields of c from its numstat lines.
// Binary and malformed lines contribute nothing.
func (s *Summarizer) Summarize(c *schema.Commit) {
	c.CodeFiles, c.CodeIns, c.CodeDel = 0, 0, 0
	c.LangStat = map[string]schema.Churn{}

	totalFiles := len(c.NumStat)
	var totalIns, totalDel int
	for _, line := range c.NumStat {
		ins, del, path, ok := parseStatLine(line)
		if !ok {
			continue
		}
		totalIns += ins
		totalDel += del

		lang := s.detector.Classify(path)
		if lang == "" {
			continue
		}
		c.CodeFiles++
		c.CodeIns += ins
		c.CodeDel += del
		churn := c.LangStat[lang]
		churn.Insert += ins
		churn.Delete += del
		c.LangStat[lang] = churn
	}

	th := s.thresholds
	switch {
	case c.CodeFiles > th.MaxFiles || c.CodeIns > th.MaxInsertions || c.CodeDel > th.MaxDeletions:
		// Bulk change, most likely generated or vendored code.
		c.CodeFiles = smooth(c.CodeFiles, th.CommonFiles, th.AvgFiles)
		c.CodeIns = smooth(c.CodeIns, th.CommonInsertions, th.AvgInsertions)
		c.CodeDel = smooth(c.CodeDel, th.CommonDeletions, th.AvgDeletions)
		c.LangStat = map[string]schema.Churn{}
	case c.CodeFiles == 0 && totalFiles < th.CommonFiles && totalIns+totalDel < th.CommonInsertions:
		// Only non-code files changed; count them as activity. A small commit
		// with any classified line keeps its code-only counts, as in
		// "10 2 src/main.go" plus a vendored file giving 1/10/2.
		c.CodeFiles, c.CodeIns, c.CodeDel = totalFiles, totalIns, totalDel
	}
}

func smooth(v, common, avg int) int {
	if v < common {
		return v
	}
	return avg
}

// parseStatLine splits "ins<TAB>del<TAB>path". Lines separated by plain
// whitespace are accepted too. ok is false for binary and malformed lines.
func parseStatLine(line string) (ins, del int, path string, ok bool) {
	fields := strings.SplitN(line, "\t", 3)
	if len(fields) < 3 {
		fields = strings.Fields(line)
		if len(fields) < 3 {
			return 0, 0, "", false
		}
		fields = []string{fields[0], fields[1], strings.Join(fields[2:], " ")}
	}
	if fields[0] == "-" {
		return 0, 0, "", false
	}
	ins, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil || ins < 0 {
		return 0, 0, "", false
	}
	del, err = strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil || del < 0 {
		return 0, 0, "", false
	}
	return ins, del, strings.TrimSpace(fields[2]), true
}
