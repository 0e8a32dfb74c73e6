// Package compress provides lossless byte compression for raw tensor
// payloads stored in archives.
//
// It is deliberately separate from the lossy codec: quantized codec streams
// are already dense and gain nothing from a second pass, so archives apply
// these codecs only to raw (bit-exact) tensor payloads and other arbitrary
// byte buffers.
//
// Four codecs are available: None, Zstd, S2, and LZ4. Zstd favors ratio,
// S2 and LZ4 favor speed. All implementations are safe for concurrent use.
package compress
