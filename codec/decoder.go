package codec

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/lessw2020/cuda-float-compress/errs"
	"github.com/lessw2020/cuda-float-compress/section"
)

// Decompress reconstructs the float32 array encoded in stream.
//
// The stream must be a complete Compress output: decoding validates the
// magic number, version, header fields, every block record, and that the
// records consume the stream exactly. Any truncated, corrupt, or
// unsupported-version stream fails with an error wrapping errs.ErrFormat;
// partial output is never returned.
//
// Block reconstruction order matches the encode order exactly, so every
// reconstructed value is available as predictor context for subsequent
// positions within its block. Blocks themselves are independent and are
// decoded in parallel.
//
// Parameters:
//   - stream: a complete compressed stream
//   - opts: optional tuning; only WithWorkers applies to decoding
//
// Returns:
//   - []float32: array of exactly the length recorded in the header
//   - error: an errs.ErrFormat-family error on malformed input
func Decompress(stream []byte, opts ...Option) ([]float32, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	header, err := section.ParseStreamHeader(stream)
	if err != nil {
		return nil, err
	}
	if !(header.ErrorBound > 0) || math.IsInf(header.ErrorBound, 0) {
		return nil, fmt.Errorf("%w: non-positive error bound in header", errs.ErrFormat)
	}

	body := stream[section.StreamHeaderSize:]
	if header.Count == 0 {
		if len(body) != 0 {
			return nil, errs.ErrTrailingData
		}

		return []float32{}, nil
	}
	if header.Count > uint64(math.MaxInt) {
		return nil, errs.ErrTruncatedStream
	}

	spans, err := scanBlocks(body, header)
	if err != nil {
		return nil, err
	}

	out := make([]float32, header.Count)
	blockSize := int(header.BlockSize)

	workers := min(cfg.workers, len(spans))
	if workers <= 1 {
		for i, span := range spans {
			start := i * blockSize
			if err := decodeBlock(span, header.ErrorBound, out[start:start+span.length]); err != nil {
				return nil, err
			}
		}

		return out, nil
	}

	// Each block writes only its own disjoint slice of out.
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, span := range spans {
		i, span := i, span
		g.Go(func() error {
			start := i * blockSize
			return decodeBlock(span, header.ErrorBound, out[start:start+span.length])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// scanBlocks walks the block records sequentially, validating sizes and
// locating every record. After a successful scan, decoding cannot run out of
// bytes, which is what makes the parallel decode pass error-free in the
// common case.
func scanBlocks(body []byte, header section.StreamHeader) ([]blockSpan, error) {
	blocks := numBlocks(header.Count, uint64(header.BlockSize))

	// Every record is at least 2 bytes, so a genuine stream never has more
	// blocks than body bytes; this caps the allocation for hostile headers.
	capHint := blocks
	if capHint > uint64(len(body)) {
		capHint = uint64(len(body))
	}
	spans := make([]blockSpan, 0, capHint)

	offset := 0
	for b := uint64(0); b < blocks; b++ {
		length := blockLength(header.Count, uint64(header.BlockSize), b)
		span, size, err := scanBlock(body[offset:], length)
		if err != nil {
			return nil, err
		}
		spans = append(spans, span)
		offset += size
	}
	if offset != len(body) {
		return nil, errs.ErrTrailingData
	}

	return spans, nil
}
