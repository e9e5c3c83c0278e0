package core

import (
	"cmp"
	"slices"

	"github.com/baijiangliang/year2018/core/agg"
	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/baijiangliang/year2018/schema"
)

// UserName returns the configured name, or the most readable author name
// the tracked emails committed under, or the local part of the first email.
func UserName(cfg *contract.Config, a *agg.Aggregator) string {
	if cfg.UserName != "" {
		return cfg.UserName
	}
	seen := map[string]struct{}{}
	var names []string
	for _, c := range a.UserCommits() {
		if _, ok := seen[c.Author]; !ok && c.Author != "" {
			seen[c.Author] = struct{}{}
			names = append(names, c.Author)
		}
	}
	if len(names) > 0 {
		return agg.MostReadableName(names)
	}
	if len(cfg.Emails) > 0 {
		return schema.NameFromEmail(cfg.Emails[0])
	}
	return ""
}

// BuildSummary collects the headline figures of a run.
func BuildSummary(cfg *contract.Config, a *agg.Aggregator) schema.SummaryReport {
	report := schema.SummaryReport{
		User:    UserName(cfg, a),
		Begin:   cfg.Begin,
		End:     cfg.End,
		Summary: a.CommitSummary(),
		Profile: a.ActivityProfile(),
	}

	if h := a.MostCommonRepo(); h != nil {
		share := schema.Percents([]int{len(h.UserCommits), report.Summary.Commits - len(h.UserCommits)}, 2)
		report.MostCommonRepo = &schema.RepoShare{Name: h.Name, Commits: len(h.UserCommits), Share: share[0]}
	}
	if day, ok := a.BusiestDay(); ok {
		report.BusiestDay = &day
	}
	if c := a.LatestCommit(); c != nil {
		report.LatestCommit = &schema.CommitMoment{Repo: c.Repo, ID: c.ID, Subject: c.Subject, Time: c.Time(a.Location())}
	}
	if name, st, ok := a.FavoriteLanguage(); ok {
		total := 0
		for _, l := range a.LanguageStat() {
			total += l.Weight
		}
		share := schema.Percents([]int{st.Weight, total - st.Weight}, 2)
		report.FavoriteLanguage = &schema.LanguageShare{Name: name, LanguageStat: st, Share: share[0]}
	}
	return report
}

// LanguageShares ranks languages by weight, heaviest first. Equal weights
// are ordered by name, so the first entry is the favorite language.
func LanguageShares(a *agg.Aggregator) []schema.LanguageShare {
	stats := a.LanguageStat()
	out := make([]schema.LanguageShare, 0, len(stats))
	for name, st := range stats {
		out = append(out, schema.LanguageShare{Name: name, LanguageStat: st})
	}
	slices.SortFunc(out, func(x, y schema.LanguageShare) int {
		return cmp.Or(cmp.Compare(y.Weight, x.Weight), cmp.Compare(x.Name, y.Name))
	})

	weights := make([]int, len(out))
	for i, l := range out {
		weights[i] = l.Weight
	}
	for i, p := range schema.Percents(weights, 2) {
		out[i].Share = p
	}
	return out
}

// HourStats returns all 24 hours of the day in order.
func HourStats(a *agg.Aggregator) []schema.HourStat {
	hours := a.CommitTimesByHour()
	counts := make([]int, 24)
	for h := range counts {
		counts[h] = hours[h]
	}
	shares := schema.Percents(counts, 2)
	out := make([]schema.HourStat, 24)
	for h := range out {
		out[h] = schema.HourStat{Hour: h, Commits: counts[h], Share: shares[h]}
	}
	return out
}

// Collaborators ranks merge partners, most merges first.
func Collaborators(mg *agg.MergeGraph) []schema.CollaboratorStat {
	collabs := mg.Collaborators()
	out := make([]schema.CollaboratorStat, len(collabs))
	for i, c := range collabs {
		out[i] = schema.CollaboratorStat{Key: c.Key, Name: c.Name, Merge: c.Merge, MergedBy: c.MergedBy}
	}
	return out
}
