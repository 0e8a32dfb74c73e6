package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	result := CheckEndianness()

	var probe uint16 = 0x0102
	first := (*[2]byte)(unsafe.Pointer(&probe))[0]

	switch first {
	case 0x01:
		require.Equal(t, binary.BigEndian, result)
	case 0x02:
		require.Equal(t, binary.LittleEndian, result)
	default:
		require.Failf(t, "unexpected probe byte", "got: %v", first)
	}

	// Native endianness cannot change between calls.
	for i := 0; i < 10; i++ {
		require.Equal(t, result, CheckEndianness())
	}
}

func TestIsNativeEndiannessInverse(t *testing.T) {
	require.NotEqual(t, IsNativeLittleEndian(), IsNativeBigEndian())
	require.Equal(t, IsNativeLittleEndian(), CheckEndianness() == binary.LittleEndian)
}

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()

	buf := engine.AppendUint32(nil, 0x11223344)
	require.Equal(t, []byte{0x44, 0x33, 0x22, 0x11}, buf)
	require.Equal(t, uint32(0x11223344), engine.Uint32(buf))

	buf = engine.AppendUint64(nil, 0x1122334455667788)
	require.Equal(t, uint64(0x1122334455667788), engine.Uint64(buf))
}

func TestGetBigEndianEngine(t *testing.T) {
	engine := GetBigEndianEngine()

	buf := engine.AppendUint32(nil, 0x11223344)
	require.Equal(t, []byte{0x11, 0x22, 0x33, 0x44}, buf)
	require.Equal(t, uint32(0x11223344), engine.Uint32(buf))
}

func TestEnginesAreStandardByteOrders(t *testing.T) {
	// Section code relies on the engines being the stdlib byte orders, so
	// fixed-offset reads and appends behave identically.
	var le EndianEngine = binary.LittleEndian
	var be EndianEngine = binary.BigEndian
	require.Equal(t, le, GetLittleEndianEngine())
	require.Equal(t, be, GetBigEndianEngine())
}
