package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/baijiangliang/year2018/schema"
)

// PrintSummary outputs the headline report, dispatching based on the output format configured.
func PrintSummary(report schema.SummaryReport, cfg *contract.Config, duration time.Duration) error {
	report = maskSummary(report, masker(cfg.Encrypt))
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVSummary(w, report)
		}, "Wrote CSV")
	case schema.ParquetOut, schema.DOTOut:
		return errUnsupportedOutput("summary", cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeSummaryText(w, report); err != nil {
				return fmt.Errorf("error writing table output: %w", err)
			}
			writeFooter(w, cfg, duration)
			return nil
		}, "Wrote summary")
	}
}

func maskSummary(r schema.SummaryReport, m masker) schema.SummaryReport {
	r.User = m.name(r.User)
	if r.MostCommonRepo != nil {
		repo := *r.MostCommonRepo
		repo.Name = m.repo(repo.Name)
		r.MostCommonRepo = &repo
	}
	if r.LatestCommit != nil {
		latest := *r.LatestCommit
		latest.Repo = m.repo(latest.Repo)
		r.LatestCommit = &latest
	}
	return r
}

// summaryLines flattens the report into label/value pairs.
func summaryLines(r schema.SummaryReport) [][2]string {
	lines := [][2]string{
		{"Projects", itoa(r.Summary.Projects)},
		{"Commits", itoa(r.Summary.Commits)},
		{"Merges", itoa(r.Summary.Merges)},
		{"Lines added", itoa(r.Summary.Insert)},
		{"Lines deleted", itoa(r.Summary.Delete)},
		{"Coding power", itoa(r.Summary.CodingPower)},
	}
	if repo := r.MostCommonRepo; repo != nil {
		lines = append(lines, [2]string{"Most common repo", fmt.Sprintf("%s (%d commits, %s)", repo.Name, repo.Commits, percent(repo.Share))})
	}
	if day := r.BusiestDay; day != nil {
		lines = append(lines, [2]string{"Busiest day", fmt.Sprintf("%s (%d commits, +%d -%d)", day.Date, day.Commits, day.Insert, day.Delete)})
	}
	if c := r.LatestCommit; c != nil {
		lines = append(lines, [2]string{"Latest commit", fmt.Sprintf("%s on %s in %s: %s", c.Time.Format("15:04"), c.Time.Format(schema.DayFormat), c.Repo, c.Subject)})
	}
	if lang := r.FavoriteLanguage; lang != nil {
		lines = append(lines, [2]string{"Favorite language", fmt.Sprintf("%s (%d commits, %s of weight)", lang.Name, lang.Commits, percent(lang.Share))})
	}
	lines = append(lines,
		[2]string{"Active days", itoa(r.Profile.ActiveDays)},
		[2]string{"Commits per active day", fmt.Sprintf("%.2f", r.Profile.CommitsPerDay)},
		[2]string{"Median day weight", fmt.Sprintf("%.2f", r.Profile.MedianDayWeight)},
		[2]string{"P90 day weight", fmt.Sprintf("%.2f", r.Profile.P90DayWeight)},
	)
	if r.Profile.PeakHour >= 0 {
		lines = append(lines, [2]string{"Peak hour", fmt.Sprintf("%02d:00", r.Profile.PeakHour)})
	}
	return lines
}

func writeSummaryText(w io.Writer, r schema.SummaryReport) error {
	_, _ = contract.HeadingColor.Fprintf(w, "%s's coding year\n", r.User)
	_, _ = contract.MutedColor.Fprintf(w, "%s\n", windowLabel(r.Begin, r.End))
	if r.Summary.Commits == 0 {
		_, _ = fmt.Fprintln(w, "No commits found for the tracked emails.")
		return nil
	}
	lines := summaryLines(r)
	rows := make([][]string, len(lines))
	for i, l := range lines {
		rows[i] = []string{l[0], contract.HighlightColor.Sprint(l[1])}
	}
	return renderTable(w, []string{"Metric", "Value"}, rows)
}

func writeCSVSummary(w io.Writer, r schema.SummaryReport) error {
	return writeCSVWithHeader(w, []string{"metric", "value"}, func(cw *csv.Writer) error {
		rows := [][2]string{
			{"user", r.User},
			{"begin", r.Begin.Format(time.RFC3339)},
			{"end", r.End.Format(time.RFC3339)},
		}
		rows = append(rows, summaryLines(r)...)
		for _, row := range rows {
			if err := cw.Write(row[:]); err != nil {
				return err
			}
		}
		return nil
	})
}
