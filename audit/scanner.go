package audit

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// StorageReader reads the raw value stored at a slot of a contract as
// observed at a historical block. *ethclient.Client satisfies it, as
// does the chain package's timeout-bounded wrapper.
type StorageReader interface {
	StorageAt(ctx context.Context, account common.Address, key common.Hash, blockNumber *big.Int) ([]byte, error)
}

// ProgressSink observes scan progress. Progress is invoked after each
// sampled block has been resolved for every slot, with the number of
// completed blocks, the total block count and the time elapsed since
// the scan began.
type ProgressSink interface {
	Progress(completed, total int, elapsed time.Duration)
}

// ErrNoSlots is returned when a scan is requested without any slots.
var ErrNoSlots = errors.New("no storage slots to scan")

// Scanner samples storage slots over a block range and assembles one
// timeline per slot.
type Scanner struct {
	reader     StorageReader
	progress   ProgressSink
	concurrent bool
}

// NewScanner builds a scanner around the given storage reader.
func NewScanner(reader StorageReader, opts ...Option) (*Scanner, error) {
	if reader == nil {
		return nil, errors.New("nil storage reader")
	}
	s := &Scanner{reader: reader}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ScanResult holds the timelines of one completed scan, in the
// insertion order of the slots that produced them.
type ScanResult struct {
	Address   common.Address
	Range     BlockRange
	Timelines []Timeline
}

// Scan samples every slot at every block of the range and returns the
// assembled timelines. Invalid input is rejected before any storage
// read is issued. A failed read at one (slot, block) pair is recorded
// as an error outcome and never aborts the rest of the scan: the whole
// point of the tool is to surface degraded data over long historical
// ranges where transient RPC failures are expected.
func (s *Scanner) Scan(ctx context.Context, address common.Address, slots []SlotSpec, rng BlockRange) (*ScanResult, error) {
	if len(slots) == 0 {
		return nil, ErrNoSlots
	}
	sampler, err := NewBlockSampler(rng)
	if err != nil {
		return nil, err
	}

	total := int(sampler.Count())
	timelines := make([]Timeline, len(slots))
	for i, slot := range slots {
		timelines[i] = Timeline{
			Label:        slot.Label,
			Observations: make([]Observation, 0, total),
		}
	}

	started := time.Now()
	completed := 0
	for block, ok := sampler.Next(); ok; block, ok = sampler.Next() {
		outcomes := s.readBlock(ctx, address, slots, block)
		for i := range timelines {
			timelines[i].Observations = append(timelines[i].Observations, Observation{
				Block:   block,
				Outcome: outcomes[i],
			})
		}
		completed++
		if s.progress != nil {
			s.progress.Progress(completed, total, time.Since(started))
		}
	}

	log.WithFields(logrus.Fields{
		"address": address.Hex(),
		"blocks":  total,
		"slots":   len(slots),
		"elapsed": time.Since(started),
	}).Debug("Finished sampling storage slots")
	return &ScanResult{Address: address, Range: rng, Timelines: timelines}, nil
}

// readBlock resolves every slot at one sampled block. Outcomes land at
// the index of their slot, so recording order is independent of read
// completion order.
func (s *Scanner) readBlock(ctx context.Context, address common.Address, slots []SlotSpec, block uint64) []Outcome {
	outcomes := make([]Outcome, len(slots))
	number := new(big.Int).SetUint64(block)
	if !s.concurrent || len(slots) == 1 {
		for i, slot := range slots {
			outcomes[i] = s.readSlot(ctx, address, slot, number)
		}
		return outcomes
	}

	var g errgroup.Group
	for i, slot := range slots {
		i, slot := i, slot
		g.Go(func() error {
			outcomes[i] = s.readSlot(ctx, address, slot, number)
			return nil
		})
	}
	// Readers never return an error through the group; failures are
	// captured in-band as outcomes.
	_ = g.Wait()
	return outcomes
}

func (s *Scanner) readSlot(ctx context.Context, address common.Address, slot SlotSpec, number *big.Int) Outcome {
	raw, err := s.reader.StorageAt(ctx, address, slot.Index, number)
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"slot":  slot.Label,
			"block": number,
		}).Debug("Storage read failed")
		return ErrorOutcome(err)
	}
	return ValueOutcome(raw)
}
