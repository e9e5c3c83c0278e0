package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/baijiangliang/year2018/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(csvWriter); err != nil {
		return err
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// renderTable writes rows under headers, numbers aligned right.
func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// writeFooter prints the run details under a text report.
func writeFooter(w io.Writer, cfg *contract.Config, duration time.Duration) {
	_, _ = contract.MutedColor.Fprintf(w, "Analysis completed in %v with %d workers. Cache backend: %s\n",
		duration.Round(time.Millisecond), cfg.Workers, cfg.CacheBackend)
}

// windowLabel renders the inclusive date range of a run.
func windowLabel(begin, end time.Time) string {
	last := end.Add(-time.Second)
	return fmt.Sprintf("%s to %s", begin.Format(schema.DayFormat), last.Format(schema.DayFormat))
}

func itoa(n int) string { return strconv.Itoa(n) }

func percent(p float64) string { return strconv.FormatFloat(p, 'f', 2, 64) + "%" }

// limitRows keeps the first n rows.
func limitRows[T any](rows []T, n int) []T {
	if n > 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}

// masker obscures people and repositories when encryption is on.
type masker bool

func (m masker) name(s string) string {
	if m {
		return schema.MaskName(s)
	}
	return s
}

func (m masker) repo(s string) string {
	if m {
		return schema.MaskString(s)
	}
	return s
}

// errUnsupportedOutput is returned by reports without a layout for mode.
func errUnsupportedOutput(report string, mode schema.OutputMode) error {
	return fmt.Errorf("%s output is not supported for %s", mode, report)
}
