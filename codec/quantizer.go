package codec

import "math"

// quantizer maps prediction residuals to signed integer codes with a step of
// twice the error bound. Rounding to the nearest step (half to even) keeps
// the reconstruction within one bound of the residual by construction:
// |code*step - residual| <= step/2 = bound.
type quantizer struct {
	step    float64
	bound   float64
	maxCode int32
	minCode int32
	bias    int32
	width   uint
}

func newQuantizer(errorBound float64, codeBits int) quantizer {
	return quantizer{
		step:    2 * errorBound,
		bound:   errorBound,
		maxCode: int32(1)<<(codeBits-1) - 1,
		minCode: -(int32(1) << (codeBits - 1)),
		bias:    int32(1) << (codeBits - 1),
		width:   uint(codeBits), //nolint:gosec
	}
}

// tryQuantize attempts to represent value as a quantization code against the
// given prediction. It returns the code, the reconstructed float32 the
// decoder will produce for that code, and whether the code path is usable.
//
// The value falls through to the outlier path when:
//   - it is NaN or infinite (no finite residual exists),
//   - the rounded code overflows the configured signed width, or
//   - rounding the reconstruction to float32 would break the error bound.
func (q quantizer) tryQuantize(value float32, pred float64) (int32, float32, bool) {
	v := float64(value)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, 0, false
	}

	qf := math.RoundToEven((v - pred) / q.step)

	// Range check in float64: converting an out-of-range float to int32 is
	// not defined, so the comparison must happen first. A NaN qf fails both
	// comparisons and lands here as well.
	if !(qf >= float64(q.minCode) && qf <= float64(q.maxCode)) {
		return 0, 0, false
	}

	code := int32(qf)
	recon := q.reconstruct(code, pred)
	if !(math.Abs(float64(recon)-v) <= q.bound) {
		return 0, 0, false
	}

	return code, recon, true
}

// reconstruct inverts a code back to the float32 the stream represents.
// Compress and decompress both call this, so the reconstructed values are
// bit-identical on both sides.
func (q quantizer) reconstruct(code int32, pred float64) float32 {
	return float32(pred + float64(code)*q.step)
}

// packCode maps a signed code to its biased on-wire representation.
func (q quantizer) packCode(code int32) uint32 {
	return uint32(code + q.bias) //nolint:gosec
}

// unpackCode inverts packCode.
func (q quantizer) unpackCode(raw uint32) int32 {
	return int32(raw) - q.bias //nolint:gosec
}
