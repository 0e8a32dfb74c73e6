package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lessw2020/cuda-float-compress/errs"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		blockSize int
		want      []blockRange
	}{
		{
			name:      "empty input",
			n:         0,
			blockSize: 256,
			want:      nil,
		},
		{
			name:      "single partial block",
			n:         100,
			blockSize: 256,
			want:      []blockRange{{0, 100}},
		},
		{
			name:      "exact multiple",
			n:         512,
			blockSize: 256,
			want:      []blockRange{{0, 256}, {256, 512}},
		},
		{
			name:      "short final block",
			n:         600,
			blockSize: 256,
			want:      []blockRange{{0, 256}, {256, 512}, {512, 600}},
		},
		{
			name:      "block size one",
			n:         3,
			blockSize: 1,
			want:      []blockRange{{0, 1}, {1, 2}, {2, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := partition(tt.n, tt.blockSize)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)

			// Coverage check: ranges tile [0, n) exactly.
			covered := 0
			for i, r := range got {
				require.Equal(t, covered, r.Start)
				require.Positive(t, r.Len())
				if i < len(got)-1 {
					require.Equal(t, tt.blockSize, r.Len())
				}
				covered = r.End
			}
			require.Equal(t, tt.n, covered)
		})
	}
}

func TestPartition_InvalidBlockSize(t *testing.T) {
	_, err := partition(10, 0)
	require.ErrorIs(t, err, errs.ErrInvalidBlockSizeConfig)

	_, err = partition(10, -1)
	require.ErrorIs(t, err, errs.ErrInvalidBlockSizeConfig)
}

func TestNumBlocks(t *testing.T) {
	require.Equal(t, uint64(0), numBlocks(0, 256))
	require.Equal(t, uint64(1), numBlocks(1, 256))
	require.Equal(t, uint64(1), numBlocks(256, 256))
	require.Equal(t, uint64(2), numBlocks(257, 256))

	// Near the uint64 limit the naive (count+blockSize-1)/blockSize overflows.
	const maxU64 = ^uint64(0)
	require.Equal(t, maxU64/256+1, numBlocks(maxU64, 256))
}

func TestBlockLength(t *testing.T) {
	require.Equal(t, 256, blockLength(600, 256, 0))
	require.Equal(t, 256, blockLength(600, 256, 1))
	require.Equal(t, 88, blockLength(600, 256, 2))
	require.Equal(t, 1, blockLength(1, 256, 0))
}
