package codec

import "github.com/lessw2020/cuda-float-compress/errs"

// blockRange is one half-open element range [Start, End) of the input array.
type blockRange struct {
	Start int
	End   int
}

// Len returns the number of elements in the range.
func (r blockRange) Len() int {
	return r.End - r.Start
}

// partition splits [0, n) into ceil(n/blockSize) contiguous ranges in order.
// Every index is covered exactly once; the final range may be shorter than
// blockSize. Pure function of (n, blockSize).
func partition(n, blockSize int) ([]blockRange, error) {
	if blockSize <= 0 {
		return nil, errs.ErrInvalidBlockSizeConfig
	}
	if n == 0 {
		return nil, nil
	}

	count := (n + blockSize - 1) / blockSize
	ranges := make([]blockRange, count)
	for i := range ranges {
		start := i * blockSize
		end := min(start+blockSize, n)
		ranges[i] = blockRange{Start: start, End: end}
	}

	return ranges, nil
}

// blockLength returns the element count of block index b for a stream of
// count elements and the given block size. Operates in uint64 so headers
// with absurd counts cannot overflow intermediate math.
func blockLength(count, blockSize, b uint64) int {
	start := b * blockSize
	remaining := count - start
	if remaining > blockSize {
		remaining = blockSize
	}

	return int(remaining) //nolint:gosec
}

// numBlocks returns ceil(count/blockSize) without overflowing near the
// uint64 limit.
func numBlocks(count, blockSize uint64) uint64 {
	if count == 0 {
		return 0
	}

	return (count-1)/blockSize + 1
}
