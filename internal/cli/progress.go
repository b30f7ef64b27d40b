package cli

import (
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/mangashelf/mangashelf/internal/scanner"
)

// barReporter draws scan progress on a terminal and forwards every update
// to the persisted progress row.
type barReporter struct {
	out  io.Writer
	next scanner.ProgressReporter
	bar  *progressbar.ProgressBar
}

func newBarReporter(out io.Writer, next scanner.ProgressReporter) *barReporter {
	return &barReporter{out: out, next: next}
}

func (r *barReporter) StartSync(totalItems int) error {
	r.bar = progressbar.NewOptions(totalItems,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription("Scanning"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
	if r.next == nil {
		return nil
	}
	return r.next.StartSync(totalItems)
}

func (r *barReporter) UpdateProgress(processed, succeeded, failed, skipped int, currentItem string) error {
	if r.bar != nil {
		r.bar.Describe(currentItem)
		_ = r.bar.Set(processed)
	}
	if r.next == nil {
		return nil
	}
	return r.next.UpdateProgress(processed, succeeded, failed, skipped, currentItem)
}

func (r *barReporter) CompleteSync(succeeded bool, errorMsg string) error {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	if r.next == nil {
		return nil
	}
	return r.next.CompleteSync(succeeded, errorMsg)
}
