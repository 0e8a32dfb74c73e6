package floatcompress

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MeanSquaredError returns the MSE between an original array and its
// reconstruction, the standard quality figure for lossy parameter
// compression.
func MeanSquaredError(original, reconstructed []float32) (float64, error) {
	if len(original) != len(reconstructed) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(original), len(reconstructed))
	}
	if len(original) == 0 {
		return 0, nil
	}

	sq := make([]float64, len(original))
	for i := range original {
		d := float64(original[i]) - float64(reconstructed[i])
		sq[i] = d * d
	}

	return stat.Mean(sq, nil), nil
}

// MaxAbsError returns the largest absolute per-element deviation between an
// original array and its reconstruction. For a stream produced with error
// bound eps, this never exceeds eps.
func MaxAbsError(original, reconstructed []float32) (float64, error) {
	if len(original) != len(reconstructed) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(original), len(reconstructed))
	}
	if len(original) == 0 {
		return 0, nil
	}

	diffs := make([]float64, len(original))
	for i := range original {
		diffs[i] = math.Abs(float64(original[i]) - float64(reconstructed[i]))
	}

	return floats.Max(diffs), nil
}

// CompressionRatio returns original bytes / compressed bytes for a float32
// array of elementCount elements. Values above 1.0 indicate compression.
func CompressionRatio(elementCount, compressedBytes int) float64 {
	if compressedBytes == 0 {
		return 0
	}

	return float64(4*elementCount) / float64(compressedBytes)
}
