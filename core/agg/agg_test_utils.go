package agg

import (
	"fmt"
	"time"

	"github.com/baijiangliang/year2018/core/gitlog"
	"github.com/baijiangliang/year2018/core/history"
	"github.com/baijiangliang/year2018/core/linguist"
	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/baijiangliang/year2018/schema"
)

// commitScenario describes one commit of a generated repository.
type commitScenario struct {
	id      string
	parents []string
	author  string
	email   string
	at      time.Time
	files   []fileChange
}

// fileChange is one numstat line.
type fileChange struct {
	path      string
	additions int
	deletions int
}

// buildTestHistory renders scenarios as git log output and parses them back
// into a history, the same way ingestion does.
func buildTestHistory(name string, tracked schema.IdentitySet, client contract.GitClient, scenarios []commitScenario) *history.History {
	commits := make([]*schema.Commit, len(scenarios))
	for i, s := range scenarios {
		c := &schema.Commit{
			ID:        s.id,
			Parents:   s.parents,
			Author:    s.author,
			Email:     s.email,
			Timestamp: s.at.Unix(),
			Subject:   fmt.Sprintf("change %s", s.id),
		}
		for _, f := range s.files {
			c.NumStat = append(c.NumStat, fmt.Sprintf("%d\t%d\t%s", f.additions, f.deletions, f.path))
		}
		commits[i] = c
	}

	opts := history.Options{
		Tracked:    tracked,
		Summarizer: gitlog.NewSummarizer(linguist.Default(), schema.DefaultThresholds()),
	}
	parsed, err := gitlog.ParseLog(name, gitlog.FormatRecords(commits), tracked, opts.Summarizer)
	if err != nil {
		panic(err)
	}
	return history.FromSnapshot(client, history.Snapshot{Name: name, Path: "/repos/" + name, Commits: parsed}, opts)
}

// userCommits generates n single-file Go commits by email, one hour apart.
func userCommits(prefix, email string, start time.Time, n int) []commitScenario {
	out := make([]commitScenario, n)
	for i := range out {
		out[i] = commitScenario{
			id:     fmt.Sprintf("%s%d", prefix, i),
			author: "Alice",
			email:  email,
			at:     start.Add(time.Duration(i) * time.Hour),
			files:  []fileChange{{"main.go", 10, 1}},
		}
	}
	return out
}
