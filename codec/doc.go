// Package codec implements an error-bounded lossy compressor for arrays of
// float32 values.
//
// Compress quantizes prediction residuals with a step of twice the caller's
// absolute error bound, guaranteeing that every value reconstructed by
// Decompress is within the bound of its original. Values whose residuals
// cannot be represented within the configured code width are stored verbatim
// (bit-exact) through the outlier path, so the bound is never silently
// violated.
//
// The input array is split into fixed-size blocks that are encoded and
// decoded independently, which lets both directions run block-parallel with
// no shared state. The compressed stream is self-describing: a 25-byte
// little-endian header (magic, version, element count, error bound, block
// size) followed by one record per block.
//
// # Basic Usage
//
//	data, err := codec.Compress(values, 1e-4)
//	if err != nil {
//	    return err
//	}
//	restored, err := codec.Decompress(data)
//
// Compress and Decompress are stateless pure functions; all tuning goes
// through per-call functional options (block size, code width, verbatim
// threshold, worker count).
package codec
