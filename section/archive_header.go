package section

import (
	"github.com/lessw2020/cuda-float-compress/endian"
	"github.com/lessw2020/cuda-float-compress/errs"
)

// ArchiveHeader represents the fixed-size header at the start of a tensor
// archive. Offsets are absolute byte positions within the archive.
type ArchiveHeader struct {
	// TensorCount is the number of tensors stored in the archive.
	TensorCount uint32 // byte offset 6-9
	// IndexOffset is the byte offset to the start of the tensor index section.
	IndexOffset uint32 // byte offset 10-13
	// PayloadOffset is the byte offset to the start of the payload section.
	// It records the offset after the index section.
	PayloadOffset uint32 // byte offset 14-17
	// PayloadChecksum is the xxHash64 of the payload section bytes.
	PayloadChecksum uint64 // byte offset 18-25
	// Version is the archive format version. byte offset 4.
	Version byte
	// Flag is reserved for future use and must be zero. byte offset 5.
	Flag byte
}

// NewArchiveHeader creates a header for the current archive version.
// Counts, offsets and the checksum are filled in by the encoder's Finish.
func NewArchiveHeader() *ArchiveHeader {
	return &ArchiveHeader{
		Version:     ArchiveVersion,
		IndexOffset: ArchiveHeaderSize,
	}
}

// Parse parses the header from the beginning of data and validates the
// magic number, version, and section offsets against the archive length.
func (h *ArchiveHeader) Parse(data []byte) error {
	if len(data) < ArchiveHeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.GetLittleEndianEngine()

	if engine.Uint32(data[0:4]) != ArchiveMagic {
		return errs.ErrInvalidMagic
	}

	h.Version = data[4]
	if h.Version != ArchiveVersion {
		return errs.ErrUnsupportedVersion
	}

	h.Flag = data[5]
	h.TensorCount = engine.Uint32(data[6:10])
	h.IndexOffset = engine.Uint32(data[10:14])
	h.PayloadOffset = engine.Uint32(data[14:18])
	h.PayloadChecksum = engine.Uint64(data[18:26])

	if h.TensorCount > MaxTensorCount {
		return errs.ErrInvalidIndexEntry
	}

	indexEnd := uint64(h.IndexOffset) + uint64(h.TensorCount)*IndexEntrySize
	if h.IndexOffset != ArchiveHeaderSize || indexEnd != uint64(h.PayloadOffset) {
		return errs.ErrInvalidOffsets
	}
	if uint64(h.PayloadOffset) > uint64(len(data)) {
		return errs.ErrInvalidOffsets
	}

	return nil
}

// Bytes serializes the header into a fresh ArchiveHeaderSize byte slice.
// Bytes 26-31 are reserved and zero.
func (h *ArchiveHeader) Bytes() []byte {
	b := make([]byte, ArchiveHeaderSize)

	engine := endian.GetLittleEndianEngine()

	engine.PutUint32(b[0:4], ArchiveMagic)
	b[4] = h.Version
	b[5] = h.Flag
	engine.PutUint32(b[6:10], h.TensorCount)
	engine.PutUint32(b[10:14], h.IndexOffset)
	engine.PutUint32(b[14:18], h.PayloadOffset)
	engine.PutUint64(b[18:26], h.PayloadChecksum)

	return b
}
