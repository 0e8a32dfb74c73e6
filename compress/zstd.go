package compress

// ZstdCompressor favors compression ratio over speed, making it the default
// for archived model parameters that are written once and read rarely.
//
// Two implementations back this type: valyala/gozstd (cgo builds) and
// klauspost/compress/zstd (pure Go builds). Both read each other's output,
// so archives are portable across build modes.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
