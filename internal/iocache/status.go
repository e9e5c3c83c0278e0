package iocache

import (
	"fmt"
	"io"

	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/baijiangliang/year2018/schema"
	"github.com/dustin/go-humanize"
)

// PrintCacheStatus writes cache status information to w.
func PrintCacheStatus(w io.Writer, status schema.CacheStatus) {
	_, _ = contract.HeadingColor.Fprintln(w, "History Cache")
	_, _ = fmt.Fprintf(w, "Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Schema Version: %d\n", status.SchemaVersion)
	_, _ = fmt.Fprintf(w, "Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		_, _ = fmt.Fprintf(w, "Last Entry: %s (%s)\n", status.LastEntryTime.Format("2006-01-02 15:04:05"), humanize.Time(status.LastEntryTime))
		_, _ = fmt.Fprintf(w, "Oldest Entry: %s (%s)\n", status.OldestEntryTime.Format("2006-01-02 15:04:05"), humanize.Time(status.OldestEntryTime))
	}
	_, _ = fmt.Fprintf(w, "Table Size: %s\n", humanize.Bytes(uint64(status.TableSizeBytes)))
}
