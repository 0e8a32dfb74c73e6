// Package archive packs named parameter tensors into a single self-describing
// binary container.
//
// Each tensor is identified by the xxHash64 of its name and stored through
// one of two paths:
//
//   - Lossy: values are min-max normalized into [0,1] and compressed with the
//     error-bounded codec. The index entry records the original min/max so
//     decoding rescales back to the original range.
//   - Raw: the exact float32 bits pass through a lossless codec
//     (Zstd/S2/LZ4/None) for bit-exact reconstruction.
//
// The container layout is header, fixed-size index, payload section. The
// header carries an xxHash64 checksum of the payload section, so corruption
// is detected before any tensor is decoded.
//
// # Basic Usage
//
//	enc, _ := archive.NewEncoder(archive.WithErrorBound(1e-4))
//	_ = enc.AddTensor("layer1.weight", weights)
//	_ = enc.AddRawTensor("layer1.bias", bias)
//	ar, _ := enc.Finish()
//
//	dec, _ := archive.NewDecoder(ar.Bytes())
//	weights, _ := dec.TensorByName("layer1.weight")
package archive
