package codec

import (
	"math"
	"math/bits"

	"github.com/lessw2020/cuda-float-compress/endian"
	"github.com/lessw2020/cuda-float-compress/errs"
	"github.com/lessw2020/cuda-float-compress/format"
	"github.com/lessw2020/cuda-float-compress/internal/pool"
)

// Block record layout: [mode:1][mode-specific payload].
//
// The mode byte packs the block mode in bits 0-1 and the code width selector
// in bits 2-3 (00=4, 01=8, 10=12, 11=16 bits). Bits 4-7 are reserved and
// must be zero. Payloads:
//
//	Quantized: bit-packed biased codes for every element.
//	Mixed:     outlier bitmap (ceil(L/8) bytes, padding bits zero), then
//	           bit-packed codes for non-outliers, then raw little-endian
//	           float32 bits for outliers in position order.
//	Verbatim:  raw little-endian float32 bits for every element.
const (
	modeMask  = 0x03
	widthMask = 0x0C
)

func makeModeByte(mode format.BlockMode, widthCode uint8) byte {
	return byte(mode) | widthCode<<2
}

func parseModeByte(b byte) (format.BlockMode, uint8, error) {
	if b&^(byte(modeMask)|byte(widthMask)) != 0 {
		return 0, 0, errs.ErrInvalidBlockMode
	}

	mode := format.BlockMode(b & modeMask)
	widthCode := (b & widthMask) >> 2

	switch mode {
	case format.ModeQuantized, format.ModeMixed:
	case format.ModeVerbatim:
		if widthCode != 0 {
			return 0, 0, errs.ErrInvalidBlockMode
		}
	default:
		return 0, 0, errs.ErrInvalidBlockMode
	}

	return mode, widthCode, nil
}

// encodeBlock runs the causal predict/quantize pass over one block and
// serializes the block record into a pooled buffer. It never fails: values
// the quantizer cannot bound take the outlier path, and blocks with outlier
// density above the threshold degrade to verbatim storage.
func encodeBlock(values []float32, q quantizer, widthCode uint8, threshold float64) *pool.ByteBuffer {
	length := len(values)
	codes, release := pool.GetInt32Slice(length)
	defer release()

	outliers := make([]bool, length)

	var p predictor
	outlierCount := 0
	for i, v := range values {
		code, recon, ok := q.tryQuantize(v, p.predict())
		if !ok {
			outliers[i] = true
			outlierCount++
			p.reset()

			continue
		}
		codes[i] = code
		p.push(float64(recon))
	}

	mode := format.ModeQuantized
	switch {
	case outlierCount == 0:
		mode = format.ModeQuantized
	case float64(outlierCount) > threshold*float64(length):
		mode = format.ModeVerbatim
	default:
		mode = format.ModeMixed
	}

	engine := endian.GetLittleEndianEngine()
	buf := pool.GetBlockBuffer()

	switch mode {
	case format.ModeQuantized:
		buf.B = append(buf.B, makeModeByte(mode, widthCode))
		w := newBitWriter(buf)
		for _, code := range codes {
			w.writeBits(q.packCode(code), q.width)
		}
		w.flush()

	case format.ModeMixed:
		buf.B = append(buf.B, makeModeByte(mode, widthCode))

		bitmap := make([]byte, (length+7)/8)
		for i, out := range outliers {
			if out {
				bitmap[i/8] |= 1 << (i % 8)
			}
		}
		buf.MustWrite(bitmap)

		w := newBitWriter(buf)
		for i, code := range codes {
			if !outliers[i] {
				w.writeBits(q.packCode(code), q.width)
			}
		}
		w.flush()

		for i, v := range values {
			if outliers[i] {
				buf.B = engine.AppendUint32(buf.B, math.Float32bits(v))
			}
		}

	case format.ModeVerbatim:
		// Width bits are meaningless without codes; keep them zero.
		buf.B = append(buf.B, makeModeByte(mode, 0))
		for _, v := range values {
			buf.B = engine.AppendUint32(buf.B, math.Float32bits(v))
		}
	}

	return buf
}

// blockSpan locates one block record inside a validated stream.
type blockSpan struct {
	payload   []byte // record payload, mode byte excluded
	mode      format.BlockMode
	widthCode uint8
	length    int // element count
	outliers  int // MIXED only
}

// scanBlock parses and validates the record starting at data and returns its
// span plus the total record size in bytes. It confirms the payload is fully
// present, so decodeBlock cannot run out of bytes afterwards.
func scanBlock(data []byte, length int) (blockSpan, int, error) {
	if len(data) < 1 {
		return blockSpan{}, 0, errs.ErrTruncatedStream
	}

	mode, widthCode, err := parseModeByte(data[0])
	if err != nil {
		return blockSpan{}, 0, err
	}

	width := widthBits[widthCode]
	var payloadLen, outliers int

	switch mode {
	case format.ModeQuantized:
		payloadLen = packedSize(length, width)

	case format.ModeVerbatim:
		payloadLen = 4 * length

	case format.ModeMixed:
		bitmapLen := (length + 7) / 8
		if len(data) < 1+bitmapLen {
			return blockSpan{}, 0, errs.ErrTruncatedStream
		}
		bitmap := data[1 : 1+bitmapLen]
		for _, b := range bitmap {
			outliers += bits.OnesCount8(b)
		}
		// Padding bits beyond the block length must be zero.
		if padding := bitmapLen*8 - length; padding > 0 {
			if bitmap[bitmapLen-1]>>(8-padding) != 0 {
				return blockSpan{}, 0, errs.ErrInvalidBitmap
			}
		}
		payloadLen = bitmapLen + packedSize(length-outliers, width) + 4*outliers
	}

	if len(data) < 1+payloadLen {
		return blockSpan{}, 0, errs.ErrTruncatedStream
	}

	span := blockSpan{
		payload:   data[1 : 1+payloadLen],
		mode:      mode,
		widthCode: widthCode,
		length:    length,
		outliers:  outliers,
	}

	return span, 1 + payloadLen, nil
}

// decodeBlock reconstructs one block into out, which must have the block's
// exact length. The span has been size-validated by scanBlock, so the only
// possible errors are internal inconsistencies.
func decodeBlock(span blockSpan, errorBound float64, out []float32) error {
	engine := endian.GetLittleEndianEngine()

	switch span.mode {
	case format.ModeVerbatim:
		for i := range out {
			out[i] = math.Float32frombits(engine.Uint32(span.payload[4*i : 4*i+4]))
		}

		return nil

	case format.ModeQuantized:
		q := newQuantizer(errorBound, widthBits[span.widthCode])
		r := newBitReader(span.payload)

		var p predictor
		for i := range out {
			raw, err := r.readBits(q.width)
			if err != nil {
				return err
			}
			recon := q.reconstruct(q.unpackCode(raw), p.predict())
			out[i] = recon
			p.push(float64(recon))
		}

		return nil

	case format.ModeMixed:
		q := newQuantizer(errorBound, widthBits[span.widthCode])
		bitmapLen := (span.length + 7) / 8
		bitmap := span.payload[:bitmapLen]
		codeBytes := packedSize(span.length-span.outliers, int(q.width))
		r := newBitReader(span.payload[bitmapLen : bitmapLen+codeBytes])
		raws := span.payload[bitmapLen+codeBytes:]

		var p predictor
		rawIdx := 0
		for i := range out {
			if bitmap[i/8]&(1<<(i%8)) != 0 {
				out[i] = math.Float32frombits(engine.Uint32(raws[4*rawIdx : 4*rawIdx+4]))
				rawIdx++
				p.reset()

				continue
			}
			raw, err := r.readBits(q.width)
			if err != nil {
				return err
			}
			recon := q.reconstruct(q.unpackCode(raw), p.predict())
			out[i] = recon
			p.push(float64(recon))
		}

		return nil
	}

	return errs.ErrInvalidBlockMode
}
