package agg

import (
	"github.com/montanaflynn/stats"

	"github.com/baijiangliang/year2018/schema"
)

// ActivityProfile summarizes how activity spreads over days and hours.
func (a *Aggregator) ActivityProfile() schema.ActivityProfile {
	days := a.SortedDays()
	p := schema.ActivityProfile{ActiveDays: len(days), PeakHour: peakHour(a.CommitTimesByHour())}
	if len(days) == 0 {
		return p
	}

	weights := make(stats.Float64Data, len(days))
	commits := make(stats.Float64Data, len(days))
	for i, d := range days {
		weights[i] = float64(d.Weight)
		commits[i] = float64(d.Commits)
	}
	p.CommitsPerDay = rounded(commits.Mean())
	p.MedianDayWeight = rounded(weights.Median())
	p.P90DayWeight = rounded(weights.Percentile(90))
	return p
}

func rounded(v float64, err error) float64 {
	if err != nil {
		return 0
	}
	r, err := stats.Round(v, 2)
	if err != nil {
		return 0
	}
	return r
}

// peakHour returns the busiest hour, the earliest on a tie, or -1 without commits.
func peakHour(hours map[int]int) int {
	peak, most := -1, 0
	for h := 0; h < 24; h++ {
		if hours[h] > most {
			peak, most = h, hours[h]
		}
	}
	return peak
}
