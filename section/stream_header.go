package section

import (
	"math"

	"github.com/lessw2020/cuda-float-compress/endian"
	"github.com/lessw2020/cuda-float-compress/errs"
)

// StreamHeader represents the fixed-size global header at the start of a
// lossy codec stream. It carries everything a decoder needs to reconstruct
// the array without side information.
type StreamHeader struct {
	// Count is the number of float32 elements in the original array.
	Count uint64 // byte offset 5-12
	// ErrorBound is the caller-supplied absolute error bound; every
	// reconstructed value is within ErrorBound of its original.
	ErrorBound float64 // byte offset 13-20
	// BlockSize is the number of elements per block; the final block may be
	// shorter. Always positive.
	BlockSize uint32 // byte offset 21-24
	// Version is the stream format version. byte offset 4. The magic number
	// occupies bytes 0-3 and is implied by a successful Parse.
	Version byte
}

// NewStreamHeader creates a header for the current stream version.
func NewStreamHeader(count uint64, errorBound float64, blockSize uint32) *StreamHeader {
	return &StreamHeader{
		Count:      count,
		ErrorBound: errorBound,
		BlockSize:  blockSize,
		Version:    StreamVersion,
	}
}

// Parse parses the header from the beginning of data.
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is shorter than StreamHeaderSize,
//     ErrInvalidMagic or ErrUnsupportedVersion on mismatch, or
//     ErrInvalidBlockSize if the block size is zero.
func (h *StreamHeader) Parse(data []byte) error {
	if len(data) < StreamHeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.GetLittleEndianEngine()

	if engine.Uint32(data[0:4]) != StreamMagic {
		return errs.ErrInvalidMagic
	}

	h.Version = data[4]
	if h.Version != StreamVersion {
		return errs.ErrUnsupportedVersion
	}

	h.Count = engine.Uint64(data[5:13])
	h.ErrorBound = math.Float64frombits(engine.Uint64(data[13:21]))
	h.BlockSize = engine.Uint32(data[21:25])

	if h.BlockSize == 0 {
		return errs.ErrInvalidBlockSize
	}

	return nil
}

// Bytes serializes the header into a fresh StreamHeaderSize byte slice.
func (h *StreamHeader) Bytes() []byte {
	b := make([]byte, StreamHeaderSize)

	engine := endian.GetLittleEndianEngine()

	engine.PutUint32(b[0:4], StreamMagic)
	b[4] = h.Version
	engine.PutUint64(b[5:13], h.Count)
	engine.PutUint64(b[13:21], math.Float64bits(h.ErrorBound))
	engine.PutUint32(b[21:25], h.BlockSize)

	return b
}

// ParseStreamHeader parses a StreamHeader from a byte slice.
func ParseStreamHeader(data []byte) (StreamHeader, error) {
	h := StreamHeader{}
	if err := h.Parse(data); err != nil {
		return StreamHeader{}, err
	}

	return h, nil
}
