// Package progress implements the advisory side observers of a scan:
// a terminal progress bar and a log based fallback with an ETA
// estimate. Neither affects scan results or ordering.
package progress

import (
	"fmt"
	"time"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "progress")

// Bar renders scan progress as a terminal progress bar.
type Bar struct {
	bar *progressbar.ProgressBar
}

// NewBar builds a bar sized to the number of sampled blocks.
func NewBar(numBlocks int, msg string) *Bar {
	return &Bar{bar: progressbar.NewOptions(
		numBlocks,
		progressbar.OptionFullWidth(),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() { fmt.Println() }),
		progressbar.OptionSetDescription(msg),
	)}
}

// Progress implements audit.ProgressSink.
func (b *Bar) Progress(completed, _ int, _ time.Duration) {
	if err := b.bar.Set(completed); err != nil {
		log.WithError(err).Debug("Could not update progress bar")
	}
}

// Logger reports progress as log lines with an ETA derived from the
// average time per completed block, for runs without a terminal.
type Logger struct{}

// Progress implements audit.ProgressSink.
func (Logger) Progress(completed, total int, elapsed time.Duration) {
	if completed == 0 {
		return
	}
	avg := elapsed / time.Duration(completed)
	eta := time.Duration(total-completed) * avg
	log.WithFields(logrus.Fields{
		"completed": completed,
		"total":     total,
		"eta":       eta.Round(time.Second),
	}).Info("Sampling storage slots")
}
