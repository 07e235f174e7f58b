package audit

import (
	"testing"

	"github.com/chests-genuine/zk-slot-timeline-soundness/testing/assert"
	"github.com/chests-genuine/zk-slot-timeline-soundness/testing/require"
)

func collect(t *testing.T, s *BlockSampler) []uint64 {
	blocks := make([]uint64, 0, s.Count())
	for b, ok := s.Next(); ok; b, ok = s.Next() {
		blocks = append(blocks, b)
	}
	require.Equal(t, int(s.Count()), len(blocks))
	return blocks
}

func TestBlockRange_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rng     BlockRange
		wantErr error
	}{
		{name: "valid", rng: BlockRange{Start: 100, End: 200, Stride: 10}},
		{name: "single block", rng: BlockRange{Start: 100, End: 100, Stride: 500}},
		{name: "zero stride", rng: BlockRange{Start: 100, End: 200}, wantErr: ErrZeroStride},
		{name: "inverted", rng: BlockRange{Start: 200, End: 100, Stride: 10}, wantErr: ErrInvertedRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rng.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.Equal(t, tt.wantErr, err)
			}
		})
	}
}

func TestBlockSampler_Sequence(t *testing.T) {
	tests := []struct {
		name string
		rng  BlockRange
		want []uint64
	}{
		{
			name: "stride divides span",
			rng:  BlockRange{Start: 1000, End: 2000, Stride: 500},
			want: []uint64{1000, 1500, 2000},
		},
		{
			name: "stride overshoots end",
			rng:  BlockRange{Start: 1000, End: 1999, Stride: 500},
			want: []uint64{1000, 1500},
		},
		{
			name: "single block range",
			rng:  BlockRange{Start: 1000, End: 1000, Stride: 500},
			want: []uint64{1000},
		},
		{
			name: "stride larger than span",
			rng:  BlockRange{Start: 10, End: 12, Stride: 100},
			want: []uint64{10},
		},
		{
			name: "stride of one",
			rng:  BlockRange{Start: 0, End: 4, Stride: 1},
			want: []uint64{0, 1, 2, 3, 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewBlockSampler(tt.rng)
			require.NoError(t, err)
			require.DeepEqual(t, tt.want, collect(t, s))
		})
	}
}

func TestBlockSampler_Properties(t *testing.T) {
	ranges := []BlockRange{
		{Start: 0, End: 1, Stride: 1},
		{Start: 7, End: 7, Stride: 3},
		{Start: 100, End: 1000, Stride: 33},
		{Start: 12_000_000, End: 15_000_000, Stride: 7919},
	}
	for _, rng := range ranges {
		s, err := NewBlockSampler(rng)
		require.NoError(t, err)
		blocks := collect(t, s)
		require.Equal(t, rng.Start, blocks[0], "first sample must be the range start")
		for i, b := range blocks {
			assert.Equal(t, uint64(0), (b-rng.Start)%rng.Stride, "sample %d off-stride", i)
			if b > rng.End {
				t.Fatalf("sample %d past range end: %d > %d", i, b, rng.End)
			}
			if i > 0 && blocks[i-1] >= b {
				t.Fatalf("samples not strictly ascending at %d", i)
			}
		}
	}
}

func TestBlockSampler_Reset(t *testing.T) {
	s, err := NewBlockSampler(BlockRange{Start: 5, End: 25, Stride: 10})
	require.NoError(t, err)
	first := collect(t, s)
	_, ok := s.Next()
	require.Equal(t, false, ok, "exhausted sampler must stay exhausted")
	s.Reset()
	require.DeepEqual(t, first, collect(t, s))
}

func TestBlockSampler_RejectsInvalidRange(t *testing.T) {
	_, err := NewBlockSampler(BlockRange{Start: 10, End: 5, Stride: 1})
	require.ErrorContains(t, "start block is after end block", err)
	_, err = NewBlockSampler(BlockRange{Start: 5, End: 10, Stride: 0})
	require.ErrorContains(t, "stride must be positive", err)
}
