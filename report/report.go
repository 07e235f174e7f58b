// Package report renders a completed audit as human readable text or
// as a machine readable JSON document, and records the run parameters
// alongside the verdict.
package report

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/chests-genuine/zk-slot-timeline-soundness/audit"
	"github.com/chests-genuine/zk-slot-timeline-soundness/io/logs"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "report")

// Run bundles everything a renderer needs about one completed audit.
type Run struct {
	Endpoint string
	ChainID  *big.Int
	Address  string
	Range    audit.BlockRange
	Slots    []audit.SlotSpec
	Result   *audit.ScanResult
	Report   *audit.ChangeReport
	Elapsed  time.Duration
}

// Banner logs the run parameters before scanning begins.
func Banner(endpoint, address string, chainID *big.Int, rng audit.BlockRange, slots []audit.SlotSpec) {
	labels := make([]string, len(slots))
	for i, slot := range slots {
		labels[i] = slot.Label
	}
	log.WithFields(logrus.Fields{
		"endpoint": logs.MaskCredentialsLogging(endpoint),
		"chainID":  chainID,
		"address":  address,
		"range":    fmt.Sprintf("%d-%d", rng.Start, rng.End),
		"stride":   rng.Stride,
		"slots":    strings.Join(labels, ","),
	}).Info("Auditing storage slot timeline")
}

// WriteText renders the per-label change points and the soundness
// verdict.
func WriteText(w io.Writer, run *Run) {
	fmt.Fprintln(w, "Change points:")
	for _, entry := range run.Report.Entries {
		if len(entry.Points) == 1 {
			fmt.Fprintf(w, "  %s: constant across samples (first @#%d)\n", entry.Label, entry.Points[0].Block)
			continue
		}
		fmt.Fprintf(w, "  %s: %d change(s)\n", entry.Label, len(entry.Points)-1)
		for _, point := range entry.Points {
			fmt.Fprintf(w, "    @#%d: %s\n", point.Block, point.Outcome)
		}
	}
	if run.Report.Sound {
		fmt.Fprintln(w, "SOUND: no storage slot changes detected")
	} else {
		fmt.Fprintf(w, "UNSOUND: %d storage slot change(s) observed\n", run.Report.TotalChanges)
	}
	fmt.Fprintf(w, "Completed in %s\n", run.Elapsed.Round(10*time.Millisecond))
}
