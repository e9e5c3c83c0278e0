package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/baijiangliang/year2018/schema"
)

// PrintLanguages outputs the top cfg.Limit languages.
func PrintLanguages(langs []schema.LanguageShare, cfg *contract.Config, duration time.Duration) error {
	langs = limitRows(langs, cfg.Limit)
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, langs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVLanguages(w, langs)
		}, "Wrote CSV")
	case schema.ParquetOut, schema.DOTOut:
		return errUnsupportedOutput("languages", cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeLanguagesTable(w, langs); err != nil {
				return fmt.Errorf("error writing table output: %w", err)
			}
			writeFooter(w, cfg, duration)
			return nil
		}, "Wrote languages")
	}
}

func writeLanguagesTable(w io.Writer, langs []schema.LanguageShare) error {
	rows := make([][]string, len(langs))
	for i, l := range langs {
		rows[i] = []string{
			itoa(i + 1),
			l.Name,
			itoa(l.Commits),
			itoa(l.Insert),
			itoa(l.Delete),
			itoa(l.Weight),
			percent(l.Share),
		}
	}
	return renderTable(w, []string{"Rank", "Language", "Commits", "Added", "Deleted", "Weight", "Share"}, rows)
}

func writeCSVLanguages(w io.Writer, langs []schema.LanguageShare) error {
	header := []string{"rank", "language", "commits", "insert", "delete", "weight", "share"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, l := range langs {
			row := []string{
				itoa(i + 1),
				l.Name,
				itoa(l.Commits),
				itoa(l.Insert),
				itoa(l.Delete),
				itoa(l.Weight),
				fmt.Sprintf("%.2f", l.Share),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
