package agg

import (
	"context"
	"unicode/utf8"

	"github.com/baijiangliang/year2018/schema"
)

// NamePolicy picks one display name out of the author names seen for a
// collaborator.
type NamePolicy func(names []string) string

// MostReadableName prefers the longest name containing non-ASCII
// characters, then the longest name. Ties go to the lexically smaller name.
func MostReadableName(names []string) string {
	var best string
	for i, n := range names {
		if i == 0 || moreReadable(n, best) {
			best = n
		}
	}
	return best
}

func moreReadable(n, than string) bool {
	if na, ta := schema.IsASCII(n), schema.IsASCII(than); na != ta {
		return !na
	}
	if ln, lt := utf8.RuneCountInString(n), utf8.RuneCountInString(than); ln != lt {
		return ln > lt
	}
	return n < than
}

type mergeCount struct {
	merge    int
	mergedBy int
	names    map[string]struct{}
}

// MergeStat counts merges between the tracked user and other authors,
// grouped by the name part of their email.
//
// A merge commit authored by the user counts as a merge of the second
// parent's author. A merge of a user commit by someone else counts as
// merged_by for the merging author. Merges within either side are ignored.
func (a *Aggregator) MergeStat(ctx context.Context) (map[string]schema.MergeStat, error) {
	counts := map[string]*mergeCount{}
	add := func(email, author string) *mergeCount {
		mc, ok := counts[email]
		if !ok {
			mc = &mergeCount{names: map[string]struct{}{}}
			counts[email] = mc
		}
		mc.names[author] = struct{}{}
		return mc
	}

	for _, h := range a.histories {
		for _, c := range h.Commits {
			if !c.IsMerge() {
				continue
			}
			merged, err := h.CommitByID(ctx, c.Parents[1])
			if err != nil {
				return nil, err
			}
			if merged == nil {
				continue
			}
			mergerTracked := a.tracked.Has(c.Email)
			mergedTracked := a.tracked.Has(merged.Email)
			switch {
			case mergerTracked == mergedTracked:
				continue
			case mergerTracked:
				add(merged.Email, merged.Author).merge++
			default:
				add(c.Email, c.Author).mergedBy++
			}
		}
	}

	policy := a.NamePolicy
	if policy == nil {
		policy = MostReadableName
	}
	grouped := map[string]*mergeCount{}
	for email, mc := range counts {
		key := schema.NameFromEmail(email)
		g, ok := grouped[key]
		if !ok {
			g = &mergeCount{names: map[string]struct{}{}}
			grouped[key] = g
		}
		g.merge += mc.merge
		g.mergedBy += mc.mergedBy
		for n := range mc.names {
			g.names[n] = struct{}{}
		}
	}

	result := make(map[string]schema.MergeStat, len(grouped))
	for key, g := range grouped {
		names := make([]string, 0, len(g.names))
		for n := range g.names {
			names = append(names, n)
		}
		result[key] = schema.MergeStat{Merge: g.merge, MergedBy: g.mergedBy, ReadableName: policy(names)}
	}
	return result, nil
}
