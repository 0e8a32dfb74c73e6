package codec

import (
	"github.com/lessw2020/cuda-float-compress/errs"
	"github.com/lessw2020/cuda-float-compress/internal/pool"
)

// packedSize returns the number of bytes needed to pack count values of
// width bits each.
func packedSize(count, width int) int {
	return (count*width + 7) / 8
}

// bitWriter packs fixed-width unsigned values into a ByteBuffer, LSB first.
// Bytes are emitted in little-endian bit order: the first value occupies the
// low bits of the first byte.
type bitWriter struct {
	buf   *pool.ByteBuffer
	acc   uint64
	nbits uint
}

func newBitWriter(buf *pool.ByteBuffer) *bitWriter {
	return &bitWriter{buf: buf}
}

// writeBits appends the low `width` bits of v. width must be <= 32.
func (w *bitWriter) writeBits(v uint32, width uint) {
	w.acc |= uint64(v&((1<<width)-1)) << w.nbits
	w.nbits += width

	for w.nbits >= 8 {
		w.buf.B = append(w.buf.B, byte(w.acc))
		w.acc >>= 8
		w.nbits -= 8
	}
}

// flush pads the accumulator to a byte boundary with zero bits.
func (w *bitWriter) flush() {
	if w.nbits > 0 {
		w.buf.B = append(w.buf.B, byte(w.acc))
		w.acc = 0
		w.nbits = 0
	}
}

// bitReader is the symmetric counterpart of bitWriter over a byte slice.
type bitReader struct {
	data  []byte
	pos   int
	acc   uint64
	nbits uint
}

func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data}
}

// readBits extracts the next `width` bits. width must be <= 32.
func (r *bitReader) readBits(width uint) (uint32, error) {
	for r.nbits < width {
		if r.pos >= len(r.data) {
			return 0, errs.ErrTruncatedStream
		}
		r.acc |= uint64(r.data[r.pos]) << r.nbits
		r.pos++
		r.nbits += 8
	}

	v := uint32(r.acc & ((1 << width) - 1))
	r.acc >>= width
	r.nbits -= width

	return v, nil
}
