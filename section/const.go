package section

// Stream-level constants for the lossy codec format.
const (
	// StreamMagic identifies a lossy codec stream ("FCZB" in little-endian byte order).
	StreamMagic uint32 = 0x425A4346

	// StreamVersion is the current codec stream format version. Decoders
	// reject any other value rather than guess the layout.
	StreamVersion byte = 0x01

	// StreamHeaderSize is the fixed size of the codec stream header:
	// magic(4) + version(1) + count(8) + errorBound(8) + blockSize(4).
	StreamHeaderSize = 25
)

// Archive-level constants for the tensor archive container.
const (
	// ArchiveMagic identifies a tensor archive ("FCAR" in little-endian byte order).
	ArchiveMagic uint32 = 0x52414346

	// ArchiveVersion is the current archive format version.
	ArchiveVersion byte = 0x01

	// ArchiveHeaderSize is the fixed size of the archive header.
	ArchiveHeaderSize = 32

	// IndexEntrySize is the fixed size of one tensor index entry.
	IndexEntrySize = 32

	// MaxTensorCount bounds the number of tensors in a single archive.
	MaxTensorCount = 1 << 20
)
