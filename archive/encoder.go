package archive

import (
	"errors"
	"fmt"
	"math"

	"github.com/lessw2020/cuda-float-compress/codec"
	"github.com/lessw2020/cuda-float-compress/compress"
	"github.com/lessw2020/cuda-float-compress/endian"
	"github.com/lessw2020/cuda-float-compress/errs"
	"github.com/lessw2020/cuda-float-compress/format"
	"github.com/lessw2020/cuda-float-compress/internal/hash"
	"github.com/lessw2020/cuda-float-compress/internal/options"
	"github.com/lessw2020/cuda-float-compress/internal/pool"
	"github.com/lessw2020/cuda-float-compress/section"
)

// DefaultErrorBound is the absolute error bound applied to normalized values
// on the lossy path when WithErrorBound is not given.
const DefaultErrorBound = 1e-4

// Encoder accumulates tensors and assembles them into an Archive.
//
// Tensors are appended with AddTensor (lossy) or AddRawTensor (bit-exact);
// Finish seals the archive. An Encoder is single-use and not safe for
// concurrent use.
type Encoder struct {
	payload        *pool.ByteBuffer
	seen           map[uint64]struct{}
	entries        []section.TensorIndexEntry
	codecOpts      []codec.Option
	errorBound     float64
	rawCompression format.CompressionType
	finished       bool
}

// EncoderOption represents a functional option for configuring an Encoder.
type EncoderOption = options.Option[*Encoder]

// WithErrorBound sets the absolute error bound used by the lossy path.
// The bound applies to the normalized [0,1] values; after denormalization
// the worst-case error scales by the tensor's value range.
func WithErrorBound(bound float64) EncoderOption {
	return options.New(func(e *Encoder) error {
		if !(bound > 0) || math.IsInf(bound, 0) {
			return errs.ErrInvalidBound
		}
		e.errorBound = bound

		return nil
	})
}

// WithRawCompression sets the lossless codec used by AddRawTensor.
// Defaults to Zstd.
func WithRawCompression(compression format.CompressionType) EncoderOption {
	return options.New(func(e *Encoder) error {
		switch compression {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			e.rawCompression = compression
			return nil
		default:
			return fmt.Errorf("invalid raw tensor compression: %s", compression)
		}
	})
}

// WithCodecOptions forwards options (block size, code width, workers, ...)
// to the lossy codec.
func WithCodecOptions(opts ...codec.Option) EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.codecOpts = append(e.codecOpts, opts...)
	})
}

// NewEncoder creates an archive encoder.
//
// Defaults: error bound DefaultErrorBound, Zstd compression for raw tensors,
// codec defaults for the lossy path.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	enc := &Encoder{
		payload:        pool.GetStreamBuffer(),
		seen:           make(map[uint64]struct{}),
		errorBound:     DefaultErrorBound,
		rawCompression: format.CompressionZstd,
	}
	if err := options.Apply(enc, opts...); err != nil {
		return nil, err
	}

	return enc, nil
}

// AddTensor normalizes values into [0,1] and appends them through the
// error-bounded lossy codec.
//
// Parameters:
//   - name: tensor name; its xxHash64 becomes the tensor ID
//   - values: tensor elements, must be non-empty
//
// Returns:
//   - error: errs.ErrEmptyInput for empty values, errs.ErrDuplicateTensor if
//     the name was already added, or a codec error
func (e *Encoder) AddTensor(name string, values []float32) error {
	entry, err := e.prepare(name, values)
	if err != nil {
		return err
	}

	normalized, minV, maxV := Normalize(values)
	stream, err := codec.Compress(normalized, e.errorBound, e.codecOpts...)
	if err != nil {
		return err
	}

	entry.Min = minV
	entry.Max = maxV
	entry.Encoding = format.TypeLossy
	entry.Compression = format.CompressionNone

	return e.append(entry, stream)
}

// AddRawTensor appends values bit-exactly, passing the raw float32 bytes
// through the configured lossless codec. Use this for tensors too sensitive
// for lossy storage.
//
// Tensors the codec cannot shrink are stored uncompressed; the index entry
// records the compression actually applied.
func (e *Encoder) AddRawTensor(name string, values []float32) error {
	entry, err := e.prepare(name, values)
	if err != nil {
		return err
	}

	engine := endian.GetLittleEndianEngine()
	raw := make([]byte, 0, 4*len(values))
	minV, maxV := values[0], values[0]
	for _, v := range values {
		raw = engine.AppendUint32(raw, math.Float32bits(v))
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	compression := e.rawCompression
	cmp, err := compress.GetCodec(compression)
	if err != nil {
		return err
	}
	payload, err := cmp.Compress(raw)
	switch {
	case errors.Is(err, compress.ErrIncompressible):
		payload, compression = raw, format.CompressionNone
	case err != nil:
		return err
	case len(payload) >= len(raw):
		payload, compression = raw, format.CompressionNone
	}

	entry.Min = minV
	entry.Max = maxV
	entry.Encoding = format.TypeRaw
	entry.Compression = compression

	return e.append(entry, payload)
}

// prepare validates the tensor and builds the common part of its index entry.
func (e *Encoder) prepare(name string, values []float32) (section.TensorIndexEntry, error) {
	if e.finished {
		return section.TensorIndexEntry{}, fmt.Errorf("archive encoder already finished")
	}
	if len(values) == 0 {
		return section.TensorIndexEntry{}, errs.ErrEmptyInput
	}
	if uint64(len(values)) > math.MaxUint32 {
		return section.TensorIndexEntry{}, fmt.Errorf("tensor %q exceeds element limit", name)
	}
	if len(e.entries) >= section.MaxTensorCount {
		return section.TensorIndexEntry{}, fmt.Errorf("archive exceeds %d tensors", section.MaxTensorCount)
	}

	id := hash.ID(name)
	if _, dup := e.seen[id]; dup {
		return section.TensorIndexEntry{}, fmt.Errorf("%w: %q", errs.ErrDuplicateTensor, name)
	}

	return section.TensorIndexEntry{
		TensorID: id,
		Count:    uint32(len(values)), //nolint:gosec
	}, nil
}

// append records the entry and payload bytes.
func (e *Encoder) append(entry section.TensorIndexEntry, payload []byte) error {
	if uint64(e.payload.Len())+uint64(len(payload)) > math.MaxUint32 {
		return fmt.Errorf("archive payload section exceeds 4GiB")
	}

	entry.Offset = uint32(e.payload.Len()) //nolint:gosec
	entry.Length = uint32(len(payload))    //nolint:gosec

	e.seen[entry.TensorID] = struct{}{}
	e.entries = append(e.entries, entry)
	e.payload.MustWrite(payload)

	return nil
}

// Finish assembles the header, index, and payload sections into an Archive
// and seals the encoder. The header checksum covers the payload section.
func (e *Encoder) Finish() (Archive, error) {
	if e.finished {
		return Archive{}, fmt.Errorf("archive encoder already finished")
	}
	e.finished = true

	header := section.NewArchiveHeader()
	header.TensorCount = uint32(len(e.entries)) //nolint:gosec
	header.PayloadOffset = section.ArchiveHeaderSize + header.TensorCount*section.IndexEntrySize
	header.PayloadChecksum = hash.Sum64(e.payload.Bytes())

	data := make([]byte, 0, int(header.PayloadOffset)+e.payload.Len())
	data = append(data, header.Bytes()...)
	for i := range e.entries {
		data = append(data, e.entries[i].Bytes()...)
	}
	data = append(data, e.payload.Bytes()...)

	pool.PutStreamBuffer(e.payload)
	e.payload = nil

	return Archive{data: data}, nil
}
