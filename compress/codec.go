package compress

import (
	"errors"
	"fmt"

	"github.com/lessw2020/cuda-float-compress/format"
)

// ErrIncompressible reports that a codec cannot represent the input smaller
// than (or safely equal to) its original size. Callers should store the
// payload uncompressed instead.
var ErrIncompressible = errors.New("data is not compressible")

// Compressor compresses raw tensor payloads.
//
// Payloads are typically the little-endian float32 bits of one parameter
// tensor, anywhere from a few KB to tens of MB.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores payloads produced by the matching Compressor.
//
// Implementations validate the compressed format and return an error for
// corrupted or incompatible data rather than returning partial output.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats summarizes one compression operation, for reporting and
// tuning. The archive decoder exposes these per tensor.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used.
	Algorithm format.CompressionType

	// OriginalSize is the size of input data before compression.
	OriginalSize int64

	// CompressedSize is the size of data after compression.
	CompressedSize int64
}

// CompressionRatio returns compressed size / original size.
//
// Values less than 1.0 indicate successful compression; values greater than
// 1.0 indicate overhead. Returns 0.0 when the original size is zero.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
// Higher values indicate better compression.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec is a factory function that creates a Codec for the specified
// compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
