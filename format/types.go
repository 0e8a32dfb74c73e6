package format

type (
	EncodingType    uint8
	CompressionType uint8
	BlockMode       uint8
)

const (
	TypeLossy EncodingType = 0x1 // TypeLossy represents error-bounded lossy codec encoding.
	TypeRaw   EncodingType = 0x2 // TypeRaw represents raw float bits, optionally losslessly compressed.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	ModeQuantized BlockMode = 0x0 // ModeQuantized: every value in the block fits a quantization code.
	ModeMixed     BlockMode = 0x1 // ModeMixed: bitmap-marked outliers stored verbatim among codes.
	ModeVerbatim  BlockMode = 0x2 // ModeVerbatim: the whole block stored as raw float bits.
)

func (e EncodingType) String() string {
	switch e {
	case TypeLossy:
		return "Lossy"
	case TypeRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (m BlockMode) String() string {
	switch m {
	case ModeQuantized:
		return "Quantized"
	case ModeMixed:
		return "Mixed"
	case ModeVerbatim:
		return "Verbatim"
	default:
		return "Unknown"
	}
}
