package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Basics(t *testing.T) {
	bb := NewByteBuffer(64)
	require.Zero(t, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 64)

	bb.MustWrite([]byte("hello"))
	require.NoError(t, bb.WriteByte('!'))
	require.Equal(t, []byte("hello!"), bb.Bytes())
	require.Equal(t, 6, bb.Len())

	bb.Reset()
	require.Zero(t, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 64, "Reset must keep the allocation")
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte{1, 2, 3, 4})

	bb.Grow(1024)
	require.GreaterOrEqual(t, bb.Cap()-bb.Len(), 1024)
	require.Equal(t, []byte{1, 2, 3, 4}, bb.Bytes(), "Grow must preserve contents")

	capBefore := bb.Cap()
	bb.Grow(1)
	require.Equal(t, capBefore, bb.Cap(), "Grow with available capacity is a no-op")
}

func TestByteBuffer_ReadFrom(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 5000)

	bb := NewByteBuffer(16)
	n, err := bb.ReadFrom(bytes.NewReader(payload))
	require.NoError(t, err)
	require.Equal(t, int64(len(payload)), n)
	require.Equal(t, payload, bb.Bytes())
}

func TestBlockBufferPool(t *testing.T) {
	buf := GetBlockBuffer()
	require.NotNil(t, buf)
	require.Zero(t, buf.Len(), "pooled buffers are handed out reset")

	buf.MustWrite([]byte("block payload"))
	PutBlockBuffer(buf)

	again := GetBlockBuffer()
	require.Zero(t, again.Len())
	PutBlockBuffer(again)

	// Oversized and nil buffers are dropped without panicking.
	PutBlockBuffer(nil)
	PutBlockBuffer(NewByteBuffer(BlockBufferMaxThreshold + 1))
}

func TestStreamBufferPool(t *testing.T) {
	buf := GetStreamBuffer()
	require.NotNil(t, buf)
	require.Zero(t, buf.Len())

	buf.MustWrite(make([]byte, 1024))
	PutStreamBuffer(buf)

	PutStreamBuffer(nil)
	PutStreamBuffer(NewByteBuffer(StreamBufferMaxThreshold + 1))
}
