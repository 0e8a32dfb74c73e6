// Package floatcompress provides error-bounded lossy compression for
// float32 arrays, aimed at neural-network parameter tensors.
//
// The codec quantizes prediction residuals against a caller-supplied
// absolute error bound: every value reconstructed by Decompress is within
// the bound of its original, and values the quantizer cannot bound are
// stored verbatim. Compression and decompression are block-parallel and
// deterministic, and the stream format is self-describing and portable
// (always little-endian).
//
// # Core Features
//
//   - Guaranteed absolute error bound per element
//   - Fixed-size blocks encoded and decoded independently in parallel
//   - Configurable block size and quantization code width
//   - Tensor archives: many named tensors in one checksummed container,
//     min-max normalized on the lossy path or stored bit-exactly with
//     lossless compression (Zstd, S2, LZ4)
//   - xxHash64-based tensor identification for O(1) lookups
//
// # Basic Usage
//
// Compressing and restoring one array:
//
//	stream, _ := floatcompress.Compress(values, 1e-4)
//	restored, _ := floatcompress.Decompress(stream)
//
// Packing model parameters into an archive:
//
//	enc, _ := floatcompress.NewArchiveEncoder(archive.WithErrorBound(1e-4))
//	_ = enc.AddTensor("conv1.weight", weights)
//	ar, _ := enc.Finish()
//
//	dec, _ := floatcompress.NewArchiveDecoder(ar.Bytes())
//	weights, _ := dec.TensorByName("conv1.weight")
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the codec and
// archive packages, simplifying the most common use cases. For fine-grained
// control, use those packages directly.
package floatcompress

import (
	"github.com/lessw2020/cuda-float-compress/archive"
	"github.com/lessw2020/cuda-float-compress/codec"
	"github.com/lessw2020/cuda-float-compress/internal/hash"
)

// Compress encodes values so that every element reconstructed by Decompress
// differs from its original by at most errorBound.
//
// Parameters:
//   - values: input array (zero length is valid)
//   - errorBound: positive finite absolute error bound
//   - opts: optional codec tuning, e.g. codec.WithBlockSize(512)
//
// Returns:
//   - []byte: self-describing compressed stream
//   - error: errs.ErrInvalidBound or an option validation error
func Compress(values []float32, errorBound float64, opts ...codec.Option) ([]byte, error) {
	return codec.Compress(values, errorBound, opts...)
}

// Decompress reconstructs the array encoded in stream.
//
// Returns:
//   - []float32: array of exactly the length recorded in the stream header
//   - error: an errs.ErrFormat-family error for corrupt, truncated, or
//     unsupported-version streams
func Decompress(stream []byte, opts ...codec.Option) ([]float32, error) {
	return codec.Decompress(stream, opts...)
}

// NewArchiveEncoder creates an encoder that packs named tensors into one
// checksummed container. See the archive package for options.
func NewArchiveEncoder(opts ...archive.EncoderOption) (*archive.Encoder, error) {
	return archive.NewEncoder(opts...)
}

// NewArchiveDecoder opens a serialized archive for tensor access.
func NewArchiveDecoder(data []byte) (*archive.Decoder, error) {
	return archive.NewDecoder(data)
}

// TensorID converts a tensor name to its 64-bit xxHash64 identifier.
//
// The hash is deterministic, so IDs can be precomputed for frequently
// accessed tensors and used across archives.
func TensorID(name string) uint64 {
	return hash.ID(name)
}
