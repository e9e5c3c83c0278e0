package schema

import "strings"

// Thresholds tune the bulk-commit smoothing applied to user commits.
//
// A commit whose code churn exceeds any Max* value is treated as generated.
// Each of its counts then falls back to the matching Avg* value unless it was
// already below the matching Common* value.
type Thresholds struct {
	MaxFiles      int `json:"max_files" koanf:"max_files"`
	MaxInsertions int `json:"max_insertions" koanf:"max_insertions"`
	MaxDeletions  int `json:"max_deletions" koanf:"max_deletions"`

	AvgFiles      int `json:"avg_files" koanf:"avg_files"`
	AvgInsertions int `json:"avg_insertions" koanf:"avg_insertions"`
	AvgDeletions  int `json:"avg_deletions" koanf:"avg_deletions"`

	CommonFiles      int `json:"common_files" koanf:"common_files"`
	CommonInsertions int `json:"common_insertions" koanf:"common_insertions"`
	CommonDeletions  int `json:"common_deletions" koanf:"common_deletions"`
}

// DefaultThresholds returns the stock smoothing thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxFiles:         32,
		MaxInsertions:    2048,
		MaxDeletions:     2048,
		AvgFiles:         2,
		AvgInsertions:    32,
		AvgDeletions:     32,
		CommonFiles:      8,
		CommonInsertions: 256,
		CommonDeletions:  256,
	}
}

// IdentitySet is the set of author emails attributed to the tracked person.
type IdentitySet map[string]struct{}

// NewIdentitySet builds a set from emails, dropping blanks.
func NewIdentitySet(emails ...string) IdentitySet {
	set := make(IdentitySet, len(emails))
	for _, e := range emails {
		if e = strings.TrimSpace(e); e != "" {
			set[e] = struct{}{}
		}
	}
	return set
}

// Has reports whether email is tracked.
func (s IdentitySet) Has(email string) bool {
	_, ok := s[email]
	return ok
}
