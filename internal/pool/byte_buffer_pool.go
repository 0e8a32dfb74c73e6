package pool

import (
	"io"
	"sync"
)

// Default sizes for pooled stream buffers. Encoded blocks are small (a few
// hundred bytes for a 256-element block), while assembled streams for large
// tensors can reach megabytes.
const (
	BlockBufferDefaultSize   = 1024             // 1KiB, one encoded block
	BlockBufferMaxThreshold  = 1024 * 16        // 16KiB
	StreamBufferDefaultSize  = 1024 * 64        // 64KiB
	StreamBufferMaxThreshold = 1024 * 1024 * 16 // 16MiB
)

// ByteBuffer is a reusable byte buffer backed by a plain slice.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite writes data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// WriteByte appends a single byte to the buffer.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes
// without reallocating. If the buffer has sufficient capacity, Grow does
// nothing.
//
// Small buffers grow by BlockBufferDefaultSize to minimize reallocations;
// larger buffers grow by 25% of current capacity to balance memory usage
// and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := BlockBufferDefaultSize
	if cap(bb.B) > 4*BlockBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ReadFrom reads data from r until EOF and appends it to the buffer.
func (bb *ByteBuffer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for {
		bb.Grow(BlockBufferDefaultSize)
		start := len(bb.B)
		bb.B = bb.B[:cap(bb.B)]
		n, err := r.Read(bb.B[start:])
		bb.B = bb.B[:start+n]
		total += int64(n)
		if err != nil {
			if err == io.EOF {
				return total, nil
			}

			return total, err
		}
	}
}

var blockBufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(BlockBufferDefaultSize)
	},
}

var streamBufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(StreamBufferDefaultSize)
	},
}

// GetBlockBuffer returns a reset ByteBuffer sized for a single encoded block.
func GetBlockBuffer() *ByteBuffer {
	buf, _ := blockBufferPool.Get().(*ByteBuffer)
	buf.Reset()

	return buf
}

// PutBlockBuffer returns a block buffer to the pool. Buffers that grew past
// BlockBufferMaxThreshold are dropped to avoid pinning large allocations.
func PutBlockBuffer(buf *ByteBuffer) {
	if buf == nil || buf.Cap() > BlockBufferMaxThreshold {
		return
	}
	blockBufferPool.Put(buf)
}

// GetStreamBuffer returns a reset ByteBuffer sized for an assembled stream.
func GetStreamBuffer() *ByteBuffer {
	buf, _ := streamBufferPool.Get().(*ByteBuffer)
	buf.Reset()

	return buf
}

// PutStreamBuffer returns a stream buffer to the pool. Buffers that grew past
// StreamBufferMaxThreshold are dropped to avoid pinning large allocations.
func PutStreamBuffer(buf *ByteBuffer) {
	if buf == nil || buf.Cap() > StreamBufferMaxThreshold {
		return
	}
	streamBufferPool.Put(buf)
}
