package section

import (
	"math"

	"github.com/lessw2020/cuda-float-compress/endian"
	"github.com/lessw2020/cuda-float-compress/errs"
	"github.com/lessw2020/cuda-float-compress/format"
)

// TensorIndexEntry is one fixed-size index record per archived tensor.
//
// Min and Max record the tensor's original value range; the lossy path
// stores normalized values in [0,1] and the decoder rescales with
// v = Min + n*(Max-Min).
type TensorIndexEntry struct {
	// TensorID is the xxHash64 of the tensor name.
	TensorID uint64 // byte offset 0-7
	// Count is the number of float32 elements in the tensor.
	Count uint32 // byte offset 8-11
	// Offset is the tensor payload's byte offset relative to the start of
	// the payload section.
	Offset uint32 // byte offset 12-15
	// Length is the tensor payload's byte length.
	Length uint32 // byte offset 16-19
	// Min is the minimum original value, used for denormalization.
	Min float32 // byte offset 20-23
	// Max is the maximum original value, used for denormalization.
	Max float32 // byte offset 24-27
	// Encoding is the payload encoding type (Lossy or Raw).
	Encoding format.EncodingType // byte offset 28
	// Compression is the lossless compression applied to Raw payloads.
	// Always CompressionNone for Lossy payloads.
	Compression format.CompressionType // byte offset 29
}

// Parse parses an index entry from a byte slice of exactly IndexEntrySize bytes.
func (e *TensorIndexEntry) Parse(data []byte) error {
	if len(data) != IndexEntrySize {
		return errs.ErrInvalidIndexEntry
	}

	engine := endian.GetLittleEndianEngine()

	e.TensorID = engine.Uint64(data[0:8])
	e.Count = engine.Uint32(data[8:12])
	e.Offset = engine.Uint32(data[12:16])
	e.Length = engine.Uint32(data[16:20])
	e.Min = math.Float32frombits(engine.Uint32(data[20:24]))
	e.Max = math.Float32frombits(engine.Uint32(data[24:28]))
	e.Encoding = format.EncodingType(data[28])
	e.Compression = format.CompressionType(data[29])

	return e.Validate()
}

// Bytes serializes the entry into a fresh IndexEntrySize byte slice.
// Bytes 30-31 are reserved and zero.
func (e *TensorIndexEntry) Bytes() []byte {
	b := make([]byte, IndexEntrySize)

	engine := endian.GetLittleEndianEngine()

	engine.PutUint64(b[0:8], e.TensorID)
	engine.PutUint32(b[8:12], e.Count)
	engine.PutUint32(b[12:16], e.Offset)
	engine.PutUint32(b[16:20], e.Length)
	engine.PutUint32(b[20:24], math.Float32bits(e.Min))
	engine.PutUint32(b[24:28], math.Float32bits(e.Max))
	b[28] = byte(e.Encoding)
	b[29] = byte(e.Compression)

	return b
}

// Validate checks that the encoding and compression types are known and
// consistent with each other.
func (e *TensorIndexEntry) Validate() error {
	switch e.Encoding {
	case format.TypeLossy:
		if e.Compression != format.CompressionNone {
			return errs.ErrInvalidIndexEntry
		}
	case format.TypeRaw:
		switch e.Compression {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		default:
			return errs.ErrInvalidIndexEntry
		}
	default:
		return errs.ErrInvalidIndexEntry
	}

	return nil
}
