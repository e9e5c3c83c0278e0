package agg

import (
	"context"
	"testing"
	"time"

	"github.com/baijiangliang/year2018/core/history"
	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/baijiangliang/year2018/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alice = "a@x.com"

var (
	tracked = schema.NewIdentitySet(alice)
	day0    = time.Date(2018, time.March, 5, 9, 0, 0, 0, time.UTC)
)

func TestNewFiltersEmptyHistories(t *testing.T) {
	client := &contract.MockGitClient{}
	withUser := buildTestHistory("mine", tracked, client, userCommits("m", alice, day0, 1))
	without := buildTestHistory("theirs", tracked, client, userCommits("t", "z@x.com", day0, 3))

	a := New([]*history.History{without, nil, withUser}, tracked, nil)
	require.Len(t, a.Histories(), 1)
	assert.Equal(t, "mine", a.Histories()[0].Name)
	assert.Equal(t, time.Local, a.Location())

	empty := New(nil, tracked, time.UTC)
	assert.Nil(t, empty.MostCommonRepo())
	assert.Nil(t, empty.LatestCommit())
	_, ok := empty.BusiestDay()
	assert.False(t, ok)
	assert.Equal(t, schema.CommitSummary{}, empty.CommitSummary())
}

func TestMostCommonRepo(t *testing.T) {
	client := &contract.MockGitClient{}

	t.Run("highest user commit count wins", func(t *testing.T) {
		repo1 := buildTestHistory("repo1", tracked, client, userCommits("a", alice, day0, 5))
		repo2 := buildTestHistory("repo2", tracked, client, userCommits("b", alice, day0, 10))
		a := New([]*history.History{repo1, repo2}, tracked, time.UTC)
		assert.Equal(t, "repo2", a.MostCommonRepo().Name)
	})

	t.Run("first wins a tie", func(t *testing.T) {
		first := buildTestHistory("first", tracked, client, userCommits("a", alice, day0, 4))
		second := buildTestHistory("second", tracked, client, userCommits("b", alice, day0, 4))
		a := New([]*history.History{first, second}, tracked, time.UTC)
		assert.Equal(t, "first", a.MostCommonRepo().Name)
	})
}

func TestCommitSummary(t *testing.T) {
	client := &contract.MockGitClient{}
	repo1 := buildTestHistory("repo1", tracked, client, userCommits("a", alice, day0, 5))
	repo2 := buildTestHistory("repo2", tracked, client, append(userCommits("b", alice, day0, 2), commitScenario{
		id: "m", parents: []string{"b0", "b1"}, author: "Alice", email: alice, at: day0,
	}))
	a := New([]*history.History{repo1, repo2}, tracked, time.UTC)

	s := a.CommitSummary()
	assert.Equal(t, 2, s.Projects)
	assert.Equal(t, 8, s.Commits)
	assert.Equal(t, 1, s.Merges)
	assert.Equal(t, 70, s.Insert)
	assert.Equal(t, 7, s.Delete)
	assert.Equal(t, 2*64+8*16+70+7, s.CodingPower)
	assert.Len(t, a.UserCommits(), 8)
}

func TestHoursAndDays(t *testing.T) {
	client := &contract.MockGitClient{}
	scenarios := []commitScenario{
		{id: "1", author: "A", email: alice, at: time.Date(2018, 3, 5, 9, 0, 0, 0, time.UTC), files: []fileChange{{"a.go", 10, 0}}},
		{id: "2", author: "A", email: alice, at: time.Date(2018, 3, 5, 9, 30, 0, 0, time.UTC), files: []fileChange{{"a.go", 4, 2}}},
		{id: "3", author: "A", email: alice, at: time.Date(2018, 3, 6, 23, 0, 0, 0, time.UTC), files: []fileChange{{"b.go", 30, 0}}},
		{id: "4", author: "B", email: "b@x.com", at: time.Date(2018, 3, 7, 9, 0, 0, 0, time.UTC), files: []fileChange{{"c.go", 500, 0}}},
	}
	a := New([]*history.History{buildTestHistory("r", tracked, client, scenarios)}, tracked, time.UTC)

	assert.Equal(t, map[int]int{9: 2, 23: 1}, a.CommitTimesByHour())

	days := a.CommitStatByDay()
	assert.Equal(t, map[string]schema.DayStat{
		"2018-03-05": {Date: "2018-03-05", Commits: 2, Insert: 14, Delete: 2, Weight: 2*16 + 16},
		"2018-03-06": {Date: "2018-03-06", Commits: 1, Insert: 30, Delete: 0, Weight: 16 + 30},
	}, days)
	assert.Equal(t, map[int]int{64: 48, 65: 46}, a.CommitWeightByDay())

	busiest, ok := a.BusiestDay()
	require.True(t, ok)
	assert.Equal(t, "2018-03-05", busiest.Date)

	shanghai, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)
	local := New(a.Histories(), tracked, shanghai)
	assert.Equal(t, map[int]int{17: 2, 7: 1}, local.CommitTimesByHour())
	_, moved := local.CommitStatByDay()["2018-03-07"]
	assert.True(t, moved, "23:00 UTC is the next day in Shanghai")
}

func TestBusiestDayTie(t *testing.T) {
	client := &contract.MockGitClient{}
	scenarios := []commitScenario{
		{id: "late", author: "A", email: alice, at: time.Date(2018, 6, 2, 10, 0, 0, 0, time.UTC), files: []fileChange{{"a.go", 5, 5}}},
		{id: "early", author: "A", email: alice, at: time.Date(2018, 6, 1, 10, 0, 0, 0, time.UTC), files: []fileChange{{"a.go", 5, 5}}},
	}
	a := New([]*history.History{buildTestHistory("r", tracked, client, scenarios)}, tracked, time.UTC)
	for range 5 {
		d, ok := a.BusiestDay()
		require.True(t, ok)
		assert.Equal(t, "2018-06-01", d.Date)
	}
}

func TestLatestCommit(t *testing.T) {
	at := func(day, hour, minute int) time.Time {
		return time.Date(2018, 4, day, hour, minute, 0, 0, time.UTC)
	}
	tests := []struct {
		name  string
		times []time.Time
		want  string
	}{
		{"evening beats morning", []time.Time{at(1, 9, 0), at(2, 22, 0), at(3, 18, 0)}, "1"},
		{"after midnight beats evening", []time.Time{at(1, 23, 59), at(5, 1, 0)}, "1"},
		{"evening does not beat after midnight", []time.Time{at(1, 2, 0), at(2, 23, 0)}, "0"},
		{"latest small hour wins", []time.Time{at(1, 3, 30), at(2, 5, 59), at(3, 1, 0)}, "1"},
		{"06:00 starts a new day", []time.Time{at(1, 5, 0), at(2, 6, 0)}, "0"},
		{"first wins equal times", []time.Time{at(1, 20, 0), at(2, 20, 0)}, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenarios := make([]commitScenario, len(tt.times))
			for i, ts := range tt.times {
				scenarios[i] = commitScenario{id: string(rune('0' + i)), author: "A", email: alice, at: ts}
			}
			a := New([]*history.History{buildTestHistory("r", tracked, &contract.MockGitClient{}, scenarios)}, tracked, time.UTC)
			latest := a.LatestCommit()
			require.NotNil(t, latest)
			assert.Equal(t, tt.want, latest.ID)
		})
	}
}

func TestLanguageStat(t *testing.T) {
	client := &contract.MockGitClient{}
	repo1 := buildTestHistory("repo1", tracked, client, []commitScenario{
		{id: "a", author: "A", email: alice, at: day0, files: []fileChange{{"a.go", 10, 2}, {"web/x.ts", 1, 1}}},
	})
	repo2 := buildTestHistory("repo2", tracked, client, []commitScenario{
		{id: "b", author: "A", email: alice, at: day0, files: []fileChange{{"b.go", 20, 0}}},
		{id: "c", author: "A", email: alice, at: day0, files: []fileChange{{"c.py", 3, 3}}},
	})
	a := New([]*history.History{repo1, repo2}, tracked, time.UTC)

	langs := a.LanguageStat()
	assert.Equal(t, schema.LanguageStat{Commits: 2, Insert: 30, Delete: 2, Weight: 2*16 + 32}, langs["Go"])
	assert.Equal(t, schema.LanguageStat{Commits: 1, Insert: 1, Delete: 1, Weight: 18}, langs["TypeScript"])
	assert.Len(t, langs, 3)

	name, st, ok := a.FavoriteLanguage()
	require.True(t, ok)
	assert.Equal(t, "Go", name)
	assert.Equal(t, 64, st.Weight)
}

func TestFavoriteLanguageTie(t *testing.T) {
	client := &contract.MockGitClient{}
	h := buildTestHistory("r", tracked, client, []commitScenario{
		{id: "a", author: "A", email: alice, at: day0, files: []fileChange{{"a.rb", 5, 0}, {"b.go", 5, 0}}},
	})
	name, _, ok := New([]*history.History{h}, tracked, time.UTC).FavoriteLanguage()
	require.True(t, ok)
	assert.Equal(t, "Go", name)
}

func TestActivityProfile(t *testing.T) {
	client := &contract.MockGitClient{}
	var scenarios []commitScenario
	for d := 1; d <= 10; d++ {
		for c := 0; c < d; c++ {
			scenarios = append(scenarios, commitScenario{
				id: "d" + string(rune('a'+d)) + string(rune('a'+c)), author: "A", email: alice,
				at: time.Date(2018, 2, d, 14, c, 0, 0, time.UTC),
			})
		}
	}
	a := New([]*history.History{buildTestHistory("r", tracked, client, scenarios)}, tracked, time.UTC)

	p := a.ActivityProfile()
	assert.Equal(t, 10, p.ActiveDays)
	assert.Equal(t, 14, p.PeakHour)
	assert.InDelta(t, 5.5, p.CommitsPerDay, 0.001)
	assert.InDelta(t, 5.5*16, p.MedianDayWeight, 0.001)
	assert.GreaterOrEqual(t, p.P90DayWeight, p.MedianDayWeight)
	assert.LessOrEqual(t, p.P90DayWeight, 160.0)

	empty := New(nil, tracked, time.UTC).ActivityProfile()
	assert.Equal(t, schema.ActivityProfile{PeakHour: -1}, empty)
}

func TestMergeStatCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := &contract.MockGitClient{}
	client.On("ShowCommit", ctx, "/repos/r", "outside").Return(nil, context.Canceled)
	h := buildTestHistory("r", tracked, client, []commitScenario{
		{id: "m", parents: []string{"p", "outside"}, author: "A", email: alice, at: day0},
	})
	_, err := New([]*history.History{h}, tracked, time.UTC).MergeStat(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
