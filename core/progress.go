package core

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// tracker counts ingested repositories on stderr.
type tracker struct {
	bar *progressbar.ProgressBar
}

// newTracker returns a tracker that draws only when w is a terminal.
func newTracker(w io.Writer, total int) *tracker {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return &tracker{}
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("Reading repositories"),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
	)
	return &tracker{bar: bar}
}

// Tick marks one repository as done. Safe for concurrent use.
func (t *tracker) Tick() {
	if t.bar != nil {
		_ = t.bar.Add(1)
	}
}

// Finish clears the bar.
func (t *tracker) Finish() {
	if t.bar != nil {
		_ = t.bar.Finish()
		_ = t.bar.Clear()
	}
}
