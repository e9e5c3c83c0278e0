// Package schema has models and shared helpers for all parts of year2018.
package schema

import "time"

// Churn is a pair of inserted and deleted line counts.
type Churn struct {
	Insert int `json:"insert"`
	Delete int `json:"delete"`
}

// Commit represents one revision read from the git log.
//
// The Code* fields and LangStat are only populated for commits authored by a
// tracked email. They stay zero for everyone else.
type Commit struct {
	Repo      string   `json:"repo"`
	ID        string   `json:"id"`
	Parents   []string `json:"parents"`
	Author    string   `json:"author"`
	Email     string   `json:"email"`
	Timestamp int64    `json:"timestamp"`
	Subject   string   `json:"subject"`
	NumStat   []string `json:"num_stat"`

	CodeFiles int              `json:"code_files"`
	CodeIns   int              `json:"code_ins"`
	CodeDel   int              `json:"code_del"`
	LangStat  map[string]Churn `json:"lang_stat,omitempty"`
}

// IsMerge reports whether the commit has two or more parents.
func (c *Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// Time returns the commit time in the given location.
func (c *Commit) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(c.Timestamp, 0).In(loc)
}

// CommitSummary holds headline totals. Projects and CodingPower are only
// set when summarizing across repositories.
type CommitSummary struct {
	Projects    int `json:"projects"`
	Commits     int `json:"commits"`
	Merges      int `json:"merges"`
	Insert      int `json:"insert"`
	Delete      int `json:"delete"`
	CodingPower int `json:"coding_power"`
}

// LanguageStat is the per-language activity of the tracked user.
type LanguageStat struct {
	Commits int `json:"commits"`
	Insert  int `json:"insert"`
	Delete  int `json:"delete"`
	Weight  int `json:"weight"`
}

// DayStat is the activity of the tracked user on one calendar day.
type DayStat struct {
	Date    string `json:"date"`
	Commits int    `json:"commits"`
	Insert  int    `json:"insert"`
	Delete  int    `json:"delete"`
	Weight  int    `json:"weight"`
}

// MergeStat counts merges between the tracked user and one collaborator.
// Merge is how often the user merged the collaborator's work, MergedBy is
// how often the collaborator merged the user's work.
type MergeStat struct {
	Merge        int    `json:"merge"`
	MergedBy     int    `json:"merged_by"`
	ReadableName string `json:"readable_name"`
}

// ActivityProfile describes the shape of daily activity across the window.
type ActivityProfile struct {
	ActiveDays      int     `json:"active_days"`
	CommitsPerDay   float64 `json:"commits_per_day"`
	MedianDayWeight float64 `json:"median_day_weight"`
	P90DayWeight    float64 `json:"p90_day_weight"`
	PeakHour        int     `json:"peak_hour"`
}

// Weight combines a commit count and churn into a single ranking score.
func Weight(commits, insert, del int) int {
	return commits*CommitWeight + insert + del
}

// CodingPower is Weight plus a bonus per project.
func CodingPower(projects, commits, insert, del int) int {
	return projects*ProjectWeight + Weight(commits, insert, del)
}
