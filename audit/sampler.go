package audit

import "github.com/pkg/errors"

var (
	// ErrZeroStride is returned when a block range carries a stride of zero.
	ErrZeroStride = errors.New("stride must be positive")
	// ErrInvertedRange is returned when a block range ends before it starts.
	ErrInvertedRange = errors.New("start block is after end block")
)

// BlockRange describes the inclusive block window to audit and the
// spacing between sampled blocks. The sampled sequence is
// Start, Start+Stride, Start+2*Stride, ... truncated at End; End itself
// is sampled only when the stride lands on it exactly.
type BlockRange struct {
	Start  uint64
	End    uint64
	Stride uint64
}

// Validate rejects malformed ranges. It is called once at the
// boundary; samplers and scanners assume a valid range afterward.
func (r BlockRange) Validate() error {
	if r.Stride == 0 {
		return ErrZeroStride
	}
	if r.Start > r.End {
		return ErrInvertedRange
	}
	return nil
}

// Count returns the number of blocks the range samples.
func (r BlockRange) Count() uint64 {
	return (r.End-r.Start)/r.Stride + 1
}

// BlockSampler lazily yields the sampled blocks of a range in strictly
// ascending order. It is restartable via Reset.
type BlockSampler struct {
	rng  BlockRange
	next uint64
	done bool
}

// NewBlockSampler validates the range and returns a sampler positioned
// at the first block.
func NewBlockSampler(rng BlockRange) (*BlockSampler, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	return &BlockSampler{rng: rng, next: rng.Start}, nil
}

// Next returns the next sampled block, or false once the sequence is
// exhausted.
func (s *BlockSampler) Next() (uint64, bool) {
	if s.done {
		return 0, false
	}
	block := s.next
	// Overflow-safe check for whether another stride stays within End.
	if s.rng.End-block < s.rng.Stride {
		s.done = true
	} else {
		s.next = block + s.rng.Stride
	}
	return block, true
}

// Reset rewinds the sampler to the first block of its range.
func (s *BlockSampler) Reset() {
	s.next = s.rng.Start
	s.done = false
}

// Count returns the total number of blocks the sampler will yield
// after a Reset.
func (s *BlockSampler) Count() uint64 {
	return s.rng.Count()
}
