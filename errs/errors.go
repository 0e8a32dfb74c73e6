// Package errs defines the sentinel errors shared across the module.
//
// Errors fall into two families:
//
//   - Input validation errors (ErrInvalidBound, ErrEmptyInput, ...) are
//     caller mistakes detected before any work is done.
//   - Format errors wrap ErrFormat and indicate a corrupt, truncated, or
//     unsupported stream. Callers can match the whole family with
//     errors.Is(err, errs.ErrFormat).
package errs

import (
	"errors"
	"fmt"
)

// Input validation errors.
var (
	// ErrInvalidBound indicates the error bound is zero, negative, or not finite.
	ErrInvalidBound = errors.New("error bound must be a positive finite value")

	// ErrEmptyInput indicates an operation that requires a non-empty input
	// received zero values.
	ErrEmptyInput = errors.New("input contains no values")

	// ErrInvalidBlockSizeConfig indicates a non-positive configured block size.
	ErrInvalidBlockSizeConfig = errors.New("block size must be positive")

	// ErrInvalidCodeBits indicates an unsupported quantization code width.
	ErrInvalidCodeBits = errors.New("code width must be 4, 8, 12 or 16 bits")

	// ErrInvalidThreshold indicates a verbatim threshold outside (0, 1].
	ErrInvalidThreshold = errors.New("verbatim threshold must be in (0, 1]")

	// ErrInvalidWorkers indicates a non-positive worker count.
	ErrInvalidWorkers = errors.New("worker count must be positive")

	// ErrDuplicateTensor indicates a tensor name was added twice to an archive.
	ErrDuplicateTensor = errors.New("duplicate tensor name")

	// ErrTensorNotFound indicates the requested tensor ID is not in the archive.
	ErrTensorNotFound = errors.New("tensor not found")
)

// ErrFormat is the root of the stream format error family. Every error
// returned while parsing a compressed stream or archive wraps it.
var ErrFormat = errors.New("malformed stream")

// Format errors. Each wraps ErrFormat so errors.Is(err, ErrFormat) holds.
var (
	ErrInvalidHeaderSize  = fmt.Errorf("%w: header too short", ErrFormat)
	ErrInvalidMagic       = fmt.Errorf("%w: bad magic number", ErrFormat)
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported format version", ErrFormat)
	ErrInvalidBlockSize   = fmt.Errorf("%w: invalid block size in header", ErrFormat)
	ErrInvalidBlockMode   = fmt.Errorf("%w: invalid block mode byte", ErrFormat)
	ErrTruncatedStream    = fmt.Errorf("%w: stream truncated", ErrFormat)
	ErrTrailingData       = fmt.Errorf("%w: unexpected trailing bytes", ErrFormat)
	ErrInvalidBitmap      = fmt.Errorf("%w: invalid outlier bitmap", ErrFormat)
	ErrInvalidIndexEntry  = fmt.Errorf("%w: invalid tensor index entry", ErrFormat)
	ErrInvalidOffsets     = fmt.Errorf("%w: section offsets out of range", ErrFormat)
	ErrChecksumMismatch   = fmt.Errorf("%w: payload checksum mismatch", ErrFormat)
)
