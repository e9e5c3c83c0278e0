package outwriter

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/baijiangliang/year2018/internal/parquet"
	"github.com/baijiangliang/year2018/schema"
)

// barWidth is the longest bar of the hour histogram.
const barWidth = 30

// PrintDays outputs per-day activity. The text table lists the busiest
// cfg.Limit days; the other formats list every active day by date.
func PrintDays(days []schema.DayStat, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, days)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVDays(w, days)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if err := parquet.WriteDaysParquet(parquet.ConvertDays(days), cfg.OutputFile); err != nil {
			return err
		}
		contract.Logger().Infof("Wrote Parquet to %s", cfg.OutputFile)
		return nil
	case schema.DOTOut:
		return errUnsupportedOutput("days", cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeDaysTable(w, busiestDays(days, cfg.Limit)); err != nil {
				return fmt.Errorf("error writing table output: %w", err)
			}
			writeFooter(w, cfg, duration)
			return nil
		}, "Wrote days")
	}
}

// busiestDays orders by weight, earlier dates first on a tie.
func busiestDays(days []schema.DayStat, limit int) []schema.DayStat {
	sorted := slices.Clone(days)
	slices.SortStableFunc(sorted, func(x, y schema.DayStat) int {
		return cmp.Or(cmp.Compare(y.Weight, x.Weight), cmp.Compare(x.Date, y.Date))
	})
	return limitRows(sorted, limit)
}

func writeDaysTable(w io.Writer, days []schema.DayStat) error {
	rows := make([][]string, len(days))
	for i, d := range days {
		rows[i] = []string{itoa(i + 1), d.Date, itoa(d.Commits), itoa(d.Insert), itoa(d.Delete), itoa(d.Weight)}
	}
	return renderTable(w, []string{"Rank", "Date", "Commits", "Added", "Deleted", "Weight"}, rows)
}

func writeCSVDays(w io.Writer, days []schema.DayStat) error {
	header := []string{"date", "commits", "insert", "delete", "weight"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, d := range days {
			if err := cw.Write([]string{d.Date, itoa(d.Commits), itoa(d.Insert), itoa(d.Delete), itoa(d.Weight)}); err != nil {
				return err
			}
		}
		return nil
	})
}

// PrintHours outputs the hour-of-day histogram.
func PrintHours(hours []schema.HourStat, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, hours)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVHours(w, hours)
		}, "Wrote CSV")
	case schema.ParquetOut, schema.DOTOut:
		return errUnsupportedOutput("hours", cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeHoursTable(w, hours); err != nil {
				return fmt.Errorf("error writing table output: %w", err)
			}
			writeFooter(w, cfg, duration)
			return nil
		}, "Wrote hours")
	}
}

// hourBars scales commit counts to bar lengths. Empty hours get no bar.
func hourBars(hours []schema.HourStat) []string {
	counts := make([]float64, len(hours))
	for i, h := range hours {
		counts[i] = float64(h.Commits)
	}
	bars := make([]string, len(hours))
	for i, v := range schema.Rescale(counts, 0, barWidth) {
		if hours[i].Commits > 0 {
			bars[i] = strings.Repeat("█", max(1, int(math.Round(v))))
		}
	}
	return bars
}

func writeHoursTable(w io.Writer, hours []schema.HourStat) error {
	bars := hourBars(hours)
	rows := make([][]string, len(hours))
	for i, h := range hours {
		rows[i] = []string{fmt.Sprintf("%02d:00", h.Hour), itoa(h.Commits), percent(h.Share), contract.HighlightColor.Sprint(bars[i])}
	}
	return renderTable(w, []string{"Hour", "Commits", "Share", ""}, rows)
}

func writeCSVHours(w io.Writer, hours []schema.HourStat) error {
	return writeCSVWithHeader(w, []string{"hour", "commits", "share"}, func(cw *csv.Writer) error {
		for _, h := range hours {
			if err := cw.Write([]string{itoa(h.Hour), itoa(h.Commits), fmt.Sprintf("%.2f", h.Share)}); err != nil {
				return err
			}
		}
		return nil
	})
}
