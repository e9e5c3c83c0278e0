package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/baijiangliang/year2018/core/agg"
	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/baijiangliang/year2018/schema"
)

// PrintMerges outputs the merge partners of userName. The DOT format
// carries the whole graph, the others the top cfg.Limit collaborators.
func PrintMerges(userName string, stats map[string]schema.MergeStat, cfg *contract.Config, duration time.Duration) error {
	mg := buildMergeGraph(userName, stats, masker(cfg.Encrypt))
	collabs := limitRows(mg.Collaborators(), cfg.Limit)

	switch cfg.Output {
	case schema.DOTOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			data, err := mg.DOT()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(data))
			return err
		}, "Wrote DOT")
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, collabs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVMerges(w, collabs)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errUnsupportedOutput("merges", cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeMergesTable(w, collabs); err != nil {
				return fmt.Errorf("error writing table output: %w", err)
			}
			writeFooter(w, cfg, duration)
			return nil
		}, "Wrote merges")
	}
}

// buildMergeGraph masks names before they become node labels.
func buildMergeGraph(userName string, stats map[string]schema.MergeStat, m masker) *agg.MergeGraph {
	if !m {
		return agg.NewMergeGraph(userName, stats)
	}
	masked := make(map[string]schema.MergeStat, len(stats))
	for key, st := range stats {
		if st.ReadableName == "" {
			st.ReadableName = key
		}
		st.ReadableName = m.name(st.ReadableName)
		masked[m.repo(key)] = st
	}
	return agg.NewMergeGraph(m.name(userName), masked)
}

func writeMergesTable(w io.Writer, collabs []agg.Collaborator) error {
	if len(collabs) == 0 {
		_, _ = fmt.Fprintln(w, "No merges with other people found.")
		return nil
	}
	rows := make([][]string, len(collabs))
	for i, c := range collabs {
		rows[i] = []string{itoa(i + 1), c.Name, itoa(c.Merge), itoa(c.MergedBy), itoa(c.Total())}
	}
	return renderTable(w, []string{"Rank", "Collaborator", "You Merged", "Merged You", "Total"}, rows)
}

func writeCSVMerges(w io.Writer, collabs []agg.Collaborator) error {
	header := []string{"rank", "key", "name", "merge", "merged_by", "total"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, c := range collabs {
			row := []string{itoa(i + 1), c.Key, c.Name, itoa(c.Merge), itoa(c.MergedBy), itoa(c.Total())}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
