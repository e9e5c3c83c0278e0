// Package agg derives the tracked user's statistics across repositories.
package agg

import (
	"sort"
	"time"

	"github.com/baijiangliang/year2018/core/history"
	"github.com/baijiangliang/year2018/schema"
)

// dayStartHour is when a coding day begins. Commits before it belong to the
// previous night's session.
const dayStartHour = 6

// Aggregator computes statistics over the histories that contain at least
// one user commit.
type Aggregator struct {
	histories []*history.History
	tracked   schema.IdentitySet
	loc       *time.Location

	// NamePolicy picks the display name of a collaborator.
	NamePolicy NamePolicy
}

// New creates an Aggregator. A nil loc buckets hours and days in local time.
func New(histories []*history.History, tracked schema.IdentitySet, loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.Local
	}
	a := &Aggregator{tracked: tracked, loc: loc, NamePolicy: MostReadableName}
	for _, h := range histories {
		if h != nil && len(h.UserCommits) > 0 {
			a.histories = append(a.histories, h)
		}
	}
	return a
}

// Histories returns the histories taking part in the aggregate, in input order.
func (a *Aggregator) Histories() []*history.History {
	return a.histories
}

// Location returns the time zone used for bucketing.
func (a *Aggregator) Location() *time.Location {
	return a.loc
}

// UserCommits returns all user commits in history order.
func (a *Aggregator) UserCommits() []*schema.Commit {
	var commits []*schema.Commit
	for _, h := range a.histories {
		commits = append(commits, h.UserCommits...)
	}
	return commits
}

// CommitSummary sums the per-repository summaries and scores them.
func (a *Aggregator) CommitSummary() schema.CommitSummary {
	var s schema.CommitSummary
	for _, h := range a.histories {
		hs := h.CommitSummary()
		s.Commits += hs.Commits
		s.Merges += hs.Merges
		s.Insert += hs.Insert
		s.Delete += hs.Delete
	}
	s.Projects = len(a.histories)
	s.CodingPower = schema.CodingPower(s.Projects, s.Commits, s.Insert, s.Delete)
	return s
}

// MostCommonRepo returns the history with the most user commits. The first
// one wins a tie. It returns nil when there are no histories.
func (a *Aggregator) MostCommonRepo() *history.History {
	var best *history.History
	for _, h := range a.histories {
		if best == nil || len(h.UserCommits) > len(best.UserCommits) {
			best = h
		}
	}
	return best
}

// CommitTimesByHour counts user commits per hour of day.
func (a *Aggregator) CommitTimesByHour() map[int]int {
	hours := map[int]int{}
	for _, c := range a.UserCommits() {
		hours[c.Time(a.loc).Hour()]++
	}
	return hours
}

// CommitStatByDay returns user activity per calendar date.
func (a *Aggregator) CommitStatByDay() map[string]schema.DayStat {
	days := map[string]schema.DayStat{}
	for _, c := range a.UserCommits() {
		key := c.Time(a.loc).Format(schema.DayFormat)
		d := days[key]
		d.Date = key
		d.Commits++
		d.Insert += c.CodeIns
		d.Delete += c.CodeDel
		days[key] = d
	}
	for key, d := range days {
		d.Weight = schema.Weight(d.Commits, d.Insert, d.Delete)
		days[key] = d
	}
	return days
}

// CommitWeightByDay returns the daily weight keyed by day of year.
// Windows longer than a year fold onto the same keys.
func (a *Aggregator) CommitWeightByDay() map[int]int {
	weights := map[int]int{}
	for key, d := range a.CommitStatByDay() {
		t, err := time.ParseInLocation(schema.DayFormat, key, a.loc)
		if err != nil {
			continue
		}
		weights[t.YearDay()] += d.Weight
	}
	return weights
}

// SortedDays returns the daily stats ordered by date.
func (a *Aggregator) SortedDays() []schema.DayStat {
	days := a.CommitStatByDay()
	out := make([]schema.DayStat, 0, len(days))
	for _, d := range days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// BusiestDay returns the day with the highest weight. The earliest date
// wins a tie. ok is false when there is no activity.
func (a *Aggregator) BusiestDay() (day schema.DayStat, ok bool) {
	for _, d := range a.SortedDays() {
		if !ok || d.Weight > day.Weight {
			day, ok = d, true
		}
	}
	return day, ok
}

// LatestCommit returns the user commit closest to the end of a coding day.
// Days start at 06:00, so 01:00 is later than 22:00.
func (a *Aggregator) LatestCommit() *schema.Commit {
	var best *schema.Commit
	var bestTime time.Time
	for _, c := range a.UserCommits() {
		t := a.timeOfDay(c)
		if best == nil {
			best, bestTime = c, t
			continue
		}
		if bestTime.Hour() < dayStartHour {
			if t.Hour() < dayStartHour && t.After(bestTime) {
				best, bestTime = c, t
			}
		} else if t.Hour() < dayStartHour || t.After(bestTime) {
			best, bestTime = c, t
		}
	}
	return best
}

// timeOfDay moves the commit time onto a fixed reference date.
func (a *Aggregator) timeOfDay(c *schema.Commit) time.Time {
	t := c.Time(a.loc)
	return time.Date(2018, time.January, 1, t.Hour(), t.Minute(), t.Second(), 0, a.loc)
}

// LanguageStat merges the per-repository language stats.
func (a *Aggregator) LanguageStat() map[string]schema.LanguageStat {
	merged := map[string]schema.LanguageStat{}
	for _, h := range a.histories {
		for lang, st := range h.LanguageStat() {
			m := merged[lang]
			m.Commits += st.Commits
			m.Insert += st.Insert
			m.Delete += st.Delete
			merged[lang] = m
		}
	}
	for lang, m := range merged {
		m.Weight = schema.Weight(m.Commits, m.Insert, m.Delete)
		merged[lang] = m
	}
	return merged
}

// FavoriteLanguage returns the language with the highest weight, breaking
// ties by name.
func (a *Aggregator) FavoriteLanguage() (string, schema.LanguageStat, bool) {
	var (
		name string
		best schema.LanguageStat
		ok   bool
	)
	for lang, st := range a.LanguageStat() {
		if !ok || st.Weight > best.Weight || (st.Weight == best.Weight && lang < name) {
			name, best, ok = lang, st, true
		}
	}
	return name, best, ok
}
