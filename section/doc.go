// Package section defines the fixed-layout binary sections shared by the
// codec stream format and the tensor archive container.
//
// Every section is little-endian regardless of platform and provides a
// Parse/Bytes pair so encoders and decoders share one layout definition:
//
//   - StreamHeader: the 25-byte global header of a lossy codec stream
//     (magic, version, element count, error bound, block size).
//   - ArchiveHeader: the 32-byte header of a tensor archive (magic, version,
//     tensor count, section offsets, payload checksum).
//   - TensorIndexEntry: one 32-byte index record per archived tensor
//     (xxHash64 ID, element count, payload location, normalization range,
//     encoding and compression types).
//
// Block records inside a codec stream are not fixed-layout (their payload
// size depends on the block mode) and live in the codec package instead.
package section
