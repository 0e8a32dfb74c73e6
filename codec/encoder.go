package codec

import (
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/lessw2020/cuda-float-compress/errs"
	"github.com/lessw2020/cuda-float-compress/internal/pool"
	"github.com/lessw2020/cuda-float-compress/section"
)

// MaxEncodedSize returns an upper bound on the stream size Compress can
// produce for n values at the given block size. Useful for pre-sizing
// destination buffers; the actual stream is usually far smaller.
func MaxEncodedSize(n, blockSize int) int {
	if n == 0 || blockSize <= 0 {
		return section.StreamHeaderSize
	}

	// Worst case per block: mode byte, full bitmap, 16-bit codes for every
	// element plus verbatim floats for every element. The real encoder never
	// stores both for one position, but the sum is a safe bound.
	blocks := (n + blockSize - 1) / blockSize

	return section.StreamHeaderSize + blocks*(1+(blockSize+7)/8) + 6*n
}

// Compress encodes values into a self-describing byte stream such that every
// value reconstructed by Decompress differs from the original by at most
// errorBound. Zero-length input is valid and produces a header-only stream.
//
// The call is atomic: it either returns a complete stream or an error, never
// partial output. Identical input and options produce byte-identical streams.
//
// Parameters:
//   - values: input array; read-only for the duration of the call
//   - errorBound: maximum absolute reconstruction error, must be positive
//     and finite
//   - opts: optional tuning (WithBlockSize, WithCodeBits,
//     WithVerbatimThreshold, WithWorkers)
//
// Returns:
//   - []byte: the compressed stream, owned by the caller
//   - error: errs.ErrInvalidBound if errorBound <= 0 or not finite, or an
//     option validation error
func Compress(values []float32, errorBound float64, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	if !(errorBound > 0) || math.IsInf(errorBound, 0) {
		return nil, errs.ErrInvalidBound
	}

	header := section.NewStreamHeader(uint64(len(values)), errorBound, uint32(cfg.blockSize)) //nolint:gosec
	out := make([]byte, 0, MaxEncodedSize(len(values), cfg.blockSize))
	out = append(out, header.Bytes()...)

	ranges, err := partition(len(values), cfg.blockSize)
	if err != nil {
		return nil, err
	}
	if len(ranges) == 0 {
		return out, nil
	}

	q := newQuantizer(errorBound, cfg.codeBits)
	widthCode, _ := widthCodeOf(cfg.codeBits)

	// Blocks are independent: encode them in parallel into per-block
	// buffers, then append in order so the stream stays deterministic.
	blockBufs := make([]*pool.ByteBuffer, len(ranges))
	workers := min(cfg.workers, len(ranges))
	if workers <= 1 {
		for i, r := range ranges {
			blockBufs[i] = encodeBlock(values[r.Start:r.End], q, widthCode, cfg.verbatimThreshold)
		}
	} else {
		g := new(errgroup.Group)
		g.SetLimit(workers)
		for i, r := range ranges {
			i, r := i, r
			g.Go(func() error {
				blockBufs[i] = encodeBlock(values[r.Start:r.End], q, widthCode, cfg.verbatimThreshold)
				return nil
			})
		}
		_ = g.Wait() // encodeBlock cannot fail
	}

	for _, buf := range blockBufs {
		out = append(out, buf.Bytes()...)
		pool.PutBlockBuffer(buf)
	}

	return out, nil
}
