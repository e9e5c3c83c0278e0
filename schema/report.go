package schema

import "time"

// RepoShare is a repository's part of the user's commits.
type RepoShare struct {
	Name    string  `json:"name"`
	Commits int     `json:"commits"`
	Share   float64 `json:"share"` // percent of all user commits
}

// LanguageShare is one row of the language ranking.
type LanguageShare struct {
	Name string `json:"name"`
	LanguageStat
	Share float64 `json:"share"` // percent of the total weight
}

// CommitMoment identifies a single commit and when it happened.
type CommitMoment struct {
	Repo    string    `json:"repo"`
	ID      string    `json:"id"`
	Subject string    `json:"subject"`
	Time    time.Time `json:"time"`
}

// HourStat counts user commits started in one hour of the day.
type HourStat struct {
	Hour    int     `json:"hour"`
	Commits int     `json:"commits"`
	Share   float64 `json:"share"`
}

// CollaboratorStat is one row of the merge ranking.
type CollaboratorStat struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Merge    int    `json:"merge"`
	MergedBy int    `json:"merged_by"`
}

// SummaryReport is the headline view of a year of commits.
type SummaryReport struct {
	User  string    `json:"user"`
	Begin time.Time `json:"begin"`
	End   time.Time `json:"end"`

	Summary          CommitSummary   `json:"summary"`
	MostCommonRepo   *RepoShare      `json:"most_common_repo,omitempty"`
	BusiestDay       *DayStat        `json:"busiest_day,omitempty"`
	LatestCommit     *CommitMoment   `json:"latest_commit,omitempty"`
	FavoriteLanguage *LanguageShare  `json:"favorite_language,omitempty"`
	Profile          ActivityProfile `json:"profile"`
}
