// Package audit implements the storage slot sampling and change
// detection engine. Given a contract address, a set of labeled storage
// slots and a block range, it samples the raw slot values at a fixed
// stride, assembles per-slot timelines and collapses each timeline into
// the minimal sequence of blocks at which the value changed.
package audit

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// SlotSpec identifies one monitored storage slot by a human readable
// label and its 32-byte storage key. Labels are unique within a scan;
// uniqueness is enforced by the upstream resolver.
type SlotSpec struct {
	Label string
	Index common.Hash
}

// Outcome is the result of reading one slot at one block: either the
// raw stored value, canonicalized to its 0x-hex form, or the message of
// the failure that prevented the read. A failed read is a first-class
// value for comparison purposes. It never equals a successful value,
// and two failures are equal only when their messages are equal.
type Outcome struct {
	value  string
	errMsg string
	failed bool
}

// ValueOutcome wraps the raw bytes of a successful storage read.
func ValueOutcome(raw []byte) Outcome {
	return Outcome{value: hexutil.Encode(raw)}
}

// ErrorOutcome wraps the failure of a storage read.
func ErrorOutcome(err error) Outcome {
	return Outcome{errMsg: err.Error(), failed: true}
}

// Failed reports whether the read behind this outcome failed.
func (o Outcome) Failed() bool {
	return o.failed
}

// Value returns the 0x-hex form of the stored value, or the empty
// string for a failed read.
func (o Outcome) Value() string {
	return o.value
}

// Err returns the failure message, or the empty string for a
// successful read.
func (o Outcome) Err() string {
	return o.errMsg
}

// Equal reports whether two outcomes are the same for change detection
// purposes: hex equality for values, message equality for failures.
func (o Outcome) Equal(other Outcome) bool {
	return o.failed == other.failed && o.value == other.value && o.errMsg == other.errMsg
}

func (o Outcome) String() string {
	if o.failed {
		return "ERROR:" + o.errMsg
	}
	return o.value
}

// Observation records the outcome of reading one slot at one sampled
// block.
type Observation struct {
	Block   uint64
	Outcome Outcome
}

// Timeline is the ordered series of observations for one slot, one
// entry per sampled block in ascending block order. A timeline is
// built once by a scan and immutable afterward.
type Timeline struct {
	Label        string
	Observations []Observation
}

// ChangePoint is an observation retained because its outcome differs
// from its timeline predecessor. The first observation of a timeline
// is always retained.
type ChangePoint = Observation
