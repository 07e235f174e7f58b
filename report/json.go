package report

import (
	"encoding/json"
	"io"
	"math/big"

	"github.com/chests-genuine/zk-slot-timeline-soundness/audit"
)

type jsonObservation struct {
	Block uint64 `json:"block"`
	Value string `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

type jsonSlot struct {
	Label string `json:"label"`
	Index string `json:"index"`
}

type jsonReport struct {
	RPC          string                       `json:"rpc"`
	ChainID      *big.Int                     `json:"chain_id"`
	Address      string                       `json:"address"`
	Range        [3]uint64                    `json:"range"`
	Slots        []jsonSlot                   `json:"slots"`
	Timeline     map[string][]jsonObservation `json:"timeline"`
	ChangePoints map[string][]jsonObservation `json:"change_points"`
	TotalChanges int                          `json:"total_changes"`
	OK           bool                         `json:"ok"`
	Elapsed      float64                      `json:"elapsed_seconds"`
}

func toJSONObservations(observations []audit.Observation) []jsonObservation {
	out := make([]jsonObservation, len(observations))
	for i, obs := range observations {
		out[i] = jsonObservation{Block: obs.Block}
		if obs.Outcome.Failed() {
			out[i].Error = obs.Outcome.Err()
		} else {
			out[i].Value = obs.Outcome.Value()
		}
	}
	return out
}

// WriteJSON serializes the full run, including the raw timelines, to
// the writer. Map keys are emitted in sorted order by encoding/json;
// slot insertion order is preserved in the slots array.
func WriteJSON(w io.Writer, run *Run) error {
	out := jsonReport{
		RPC:          run.Endpoint,
		Address:      run.Address,
		Range:        [3]uint64{run.Range.Start, run.Range.End, run.Range.Stride},
		Slots:        make([]jsonSlot, 0, len(run.Slots)),
		Timeline:     make(map[string][]jsonObservation, len(run.Slots)),
		ChangePoints: make(map[string][]jsonObservation, len(run.Slots)),
		TotalChanges: run.Report.TotalChanges,
		OK:           run.Report.Sound,
		Elapsed:      run.Elapsed.Seconds(),
	}
	out.ChainID = run.ChainID
	for _, slot := range run.Slots {
		out.Slots = append(out.Slots, jsonSlot{Label: slot.Label, Index: slot.Index.Hex()})
	}
	for _, tl := range run.Result.Timelines {
		out.Timeline[tl.Label] = toJSONObservations(tl.Observations)
	}
	for _, entry := range run.Report.Entries {
		out.ChangePoints[entry.Label] = toJSONObservations(entry.Points)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
