package floatcompress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMeanSquaredError(t *testing.T) {
	identical := []float32{1, 2, 3, 4}
	mse, err := MeanSquaredError(identical, identical)
	require.NoError(t, err)
	require.Zero(t, mse)

	mse, err = MeanSquaredError([]float32{0, 0}, []float32{1, 3})
	require.NoError(t, err)
	require.InDelta(t, 5.0, mse, 1e-12) // (1 + 9) / 2

	mse, err = MeanSquaredError(nil, nil)
	require.NoError(t, err)
	require.Zero(t, mse)

	_, err = MeanSquaredError([]float32{1}, []float32{1, 2})
	require.Error(t, err)
}

func TestMaxAbsError(t *testing.T) {
	maxErr, err := MaxAbsError([]float32{1, 2, 3}, []float32{1.5, 2, 2.25})
	require.NoError(t, err)
	require.InDelta(t, 0.75, maxErr, 1e-12)

	maxErr, err = MaxAbsError(nil, nil)
	require.NoError(t, err)
	require.Zero(t, maxErr)

	_, err = MaxAbsError([]float32{1, 2}, []float32{1})
	require.Error(t, err)
}

func TestCompressionRatio(t *testing.T) {
	require.InDelta(t, 4.0, CompressionRatio(1000, 1000), 1e-12)
	require.InDelta(t, 1.0, CompressionRatio(250, 1000), 1e-12)
	require.Zero(t, CompressionRatio(100, 0))
}
