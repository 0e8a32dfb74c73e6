// Package endian provides byte order utilities for binary encoding and decoding.
//
// Compressed streams and archives produced by this module are always
// little-endian regardless of platform, so streams are portable. This package
// combines the standard library's ByteOrder and AppendByteOrder interfaces
// into a single EndianEngine interface so section code can both read fixed
// offsets and append efficiently through one value.
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint64(buf, count)
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library, making it fully compatible with existing Go code.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine used by all stream
// and archive sections.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine. It exists for tests and
// interoperability experiments; no on-disk format in this module uses it.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
