package archive

// Normalize min-max rescales values into [0,1] and returns the original
// range alongside. Constant inputs (max == min) normalize to all zeros, so
// no division by zero can occur; Denormalize restores the constant exactly
// from the recorded minimum.
//
// Non-finite values pass through arithmetic unchanged in kind (NaN stays
// NaN); the lossy codec stores them verbatim.
func Normalize(values []float32) (normalized []float32, minV, maxV float32) {
	if len(values) == 0 {
		return nil, 0, 0
	}

	minV, maxV = values[0], values[0]
	for _, v := range values[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	normalized = make([]float32, len(values))
	span := float64(maxV) - float64(minV)
	if span == 0 {
		return normalized, minV, maxV
	}

	for i, v := range values {
		normalized[i] = float32((float64(v) - float64(minV)) / span)
	}

	return normalized, minV, maxV
}

// Denormalize inverts Normalize: v = min + n*(max-min).
func Denormalize(normalized []float32, minV, maxV float32) []float32 {
	values := make([]float32, len(normalized))
	span := float64(maxV) - float64(minV)
	for i, n := range normalized {
		values[i] = float32(float64(minV) + float64(n)*span)
	}

	return values
}
