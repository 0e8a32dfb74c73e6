package archive

import (
	"math"

	"github.com/lessw2020/cuda-float-compress/codec"
	"github.com/lessw2020/cuda-float-compress/compress"
	"github.com/lessw2020/cuda-float-compress/endian"
	"github.com/lessw2020/cuda-float-compress/errs"
	"github.com/lessw2020/cuda-float-compress/format"
	"github.com/lessw2020/cuda-float-compress/internal/hash"
	"github.com/lessw2020/cuda-float-compress/section"
)

// Decoder reads tensors out of a serialized archive.
//
// The constructor validates the header, index, and payload checksum; Tensor
// and TensorByName then decode individual tensors on demand. A Decoder is
// safe for concurrent reads.
type Decoder struct {
	data    []byte
	entries map[uint64]section.TensorIndexEntry
	order   []uint64
	header  section.ArchiveHeader
}

// NewDecoder parses and validates the archive framing.
//
// Returns:
//   - *Decoder: ready for tensor access
//   - error: an errs.ErrFormat-family error for bad magic, version,
//     offsets, index entries, or payload checksum
func NewDecoder(data []byte) (*Decoder, error) {
	d := &Decoder{data: data}
	if err := d.header.Parse(data); err != nil {
		return nil, err
	}

	payload := data[d.header.PayloadOffset:]
	if hash.Sum64(payload) != d.header.PayloadChecksum {
		return nil, errs.ErrChecksumMismatch
	}

	count := int(d.header.TensorCount)
	d.entries = make(map[uint64]section.TensorIndexEntry, count)
	d.order = make([]uint64, 0, count)

	offset := int(d.header.IndexOffset)
	for i := 0; i < count; i++ {
		var entry section.TensorIndexEntry
		if err := entry.Parse(data[offset : offset+section.IndexEntrySize]); err != nil {
			return nil, err
		}
		if _, dup := d.entries[entry.TensorID]; dup {
			return nil, errs.ErrInvalidIndexEntry
		}
		if uint64(entry.Offset)+uint64(entry.Length) > uint64(len(payload)) {
			return nil, errs.ErrInvalidOffsets
		}
		d.entries[entry.TensorID] = entry
		d.order = append(d.order, entry.TensorID)
		offset += section.IndexEntrySize
	}

	return d, nil
}

// Count returns the number of tensors in the archive.
func (d *Decoder) Count() int {
	return len(d.order)
}

// TensorIDs returns the tensor IDs in archive order.
func (d *Decoder) TensorIDs() []uint64 {
	ids := make([]uint64, len(d.order))
	copy(ids, d.order)

	return ids
}

// Has reports whether the archive contains the given tensor ID.
func (d *Decoder) Has(id uint64) bool {
	_, ok := d.entries[id]

	return ok
}

// TensorByName decodes the tensor stored under the given name.
func (d *Decoder) TensorByName(name string) ([]float32, error) {
	return d.Tensor(hash.ID(name))
}

// Tensor decodes the tensor with the given ID into a new owned slice.
//
// Lossy tensors are decompressed and rescaled back to their original range;
// raw tensors are reconstructed bit-exactly.
//
// Returns:
//   - []float32: exactly the element count recorded in the index
//   - error: errs.ErrTensorNotFound, or an errs.ErrFormat-family error if
//     the payload does not decode to the indexed element count
func (d *Decoder) Tensor(id uint64) ([]float32, error) {
	entry, ok := d.entries[id]
	if !ok {
		return nil, errs.ErrTensorNotFound
	}

	payload := d.payloadOf(entry)

	switch entry.Encoding {
	case format.TypeLossy:
		normalized, err := codec.Decompress(payload)
		if err != nil {
			return nil, err
		}
		if uint32(len(normalized)) != entry.Count { //nolint:gosec
			return nil, errs.ErrInvalidIndexEntry
		}

		return Denormalize(normalized, entry.Min, entry.Max), nil

	case format.TypeRaw:
		cmp, err := compress.GetCodec(entry.Compression)
		if err != nil {
			return nil, errs.ErrInvalidIndexEntry
		}
		raw, err := cmp.Decompress(payload)
		if err != nil {
			return nil, err
		}
		if uint64(len(raw)) != 4*uint64(entry.Count) {
			return nil, errs.ErrInvalidIndexEntry
		}

		engine := endian.GetLittleEndianEngine()
		values := make([]float32, entry.Count)
		for i := range values {
			values[i] = math.Float32frombits(engine.Uint32(raw[4*i : 4*i+4]))
		}

		return values, nil
	}

	return nil, errs.ErrInvalidIndexEntry
}

// Stats returns size statistics for one stored tensor.
func (d *Decoder) Stats(id uint64) (compress.CompressionStats, error) {
	entry, ok := d.entries[id]
	if !ok {
		return compress.CompressionStats{}, errs.ErrTensorNotFound
	}

	return compress.CompressionStats{
		Algorithm:      entry.Compression,
		OriginalSize:   4 * int64(entry.Count),
		CompressedSize: int64(entry.Length),
	}, nil
}

func (d *Decoder) payloadOf(entry section.TensorIndexEntry) []byte {
	start := uint64(d.header.PayloadOffset) + uint64(entry.Offset)

	return d.data[start : start+uint64(entry.Length)]
}
