package archive

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lessw2020/cuda-float-compress/codec"
	"github.com/lessw2020/cuda-float-compress/errs"
	"github.com/lessw2020/cuda-float-compress/format"
	"github.com/lessw2020/cuda-float-compress/internal/hash"
)

func rampTensor(n int, scale float64) []float32 {
	values := make([]float32, n)
	for i := range values {
		values[i] = float32(scale * math.Sin(float64(i)*0.05))
	}

	return values
}

func TestArchive_LossyRoundTrip(t *testing.T) {
	const bound = 1e-4
	tensors := map[string][]float32{
		"conv1.weight": rampTensor(4096, 1.0),
		"conv1.bias":   rampTensor(64, 0.1),
		"fc.weight":    rampTensor(10_000, 2.5),
	}

	enc, err := NewEncoder(WithErrorBound(bound))
	require.NoError(t, err)
	for name, values := range tensors {
		require.NoError(t, enc.AddTensor(name, values))
	}

	ar, err := enc.Finish()
	require.NoError(t, err)
	require.Equal(t, len(ar.Bytes()), ar.Size())

	dec, err := NewDecoder(ar.Bytes())
	require.NoError(t, err)
	require.Equal(t, len(tensors), dec.Count())

	for name, values := range tensors {
		require.True(t, dec.Has(hash.ID(name)))

		restored, err := dec.TensorByName(name)
		require.NoError(t, err)
		require.Len(t, restored, len(values))

		// The bound applies to normalized values; denormalization scales the
		// worst case by the tensor's range, plus a little float32 rounding.
		_, minV, maxV := Normalize(values)
		tolerance := bound*(float64(maxV)-float64(minV)) + 1e-6
		for i := range values {
			require.InDelta(t, float64(values[i]), float64(restored[i]), tolerance,
				"%s[%d]", name, i)
		}
	}
}

func TestArchive_LossyConstantTensor(t *testing.T) {
	values := []float32{3.5, 3.5, 3.5, 3.5}

	enc, err := NewEncoder()
	require.NoError(t, err)
	require.NoError(t, enc.AddTensor("bias", values))

	ar, err := enc.Finish()
	require.NoError(t, err)

	dec, err := NewDecoder(ar.Bytes())
	require.NoError(t, err)

	restored, err := dec.TensorByName("bias")
	require.NoError(t, err)
	require.Equal(t, values, restored)
}

func TestArchive_RawRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	noisy := make([]float32, 2048)
	for i := range noisy {
		noisy[i] = float32(rng.NormFloat64())
	}
	smooth := rampTensor(2048, 1.0)

	for _, compression := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(compression.String(), func(t *testing.T) {
			enc, err := NewEncoder(WithRawCompression(compression))
			require.NoError(t, err)
			require.NoError(t, enc.AddRawTensor("noisy", noisy))
			require.NoError(t, enc.AddRawTensor("smooth", smooth))

			ar, err := enc.Finish()
			require.NoError(t, err)

			dec, err := NewDecoder(ar.Bytes())
			require.NoError(t, err)

			// Raw tensors are bit-exact regardless of codec, including the
			// uncompressed fallback for incompressible payloads.
			restored, err := dec.TensorByName("noisy")
			require.NoError(t, err)
			require.Equal(t, noisy, restored)

			restored, err = dec.TensorByName("smooth")
			require.NoError(t, err)
			require.Equal(t, smooth, restored)
		})
	}
}

func TestArchive_MixedEncodings(t *testing.T) {
	lossy := rampTensor(1024, 1.0)
	raw := rampTensor(512, 0.5)

	enc, err := NewEncoder(
		WithErrorBound(1e-3),
		WithRawCompression(format.CompressionS2),
		WithCodecOptions(codec.WithBlockSize(128)),
	)
	require.NoError(t, err)
	require.NoError(t, enc.AddTensor("lossy", lossy))
	require.NoError(t, enc.AddRawTensor("raw", raw))

	ar, err := enc.Finish()
	require.NoError(t, err)

	dec, err := NewDecoder(ar.Bytes())
	require.NoError(t, err)

	ids := dec.TensorIDs()
	require.Equal(t, []uint64{hash.ID("lossy"), hash.ID("raw")}, ids)

	restored, err := dec.TensorByName("raw")
	require.NoError(t, err)
	require.Equal(t, raw, restored)
}

func TestArchive_EmptyArchive(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	ar, err := enc.Finish()
	require.NoError(t, err)

	dec, err := NewDecoder(ar.Bytes())
	require.NoError(t, err)
	require.Zero(t, dec.Count())
	require.Empty(t, dec.TensorIDs())
}

func TestEncoder_InputValidation(t *testing.T) {
	t.Run("invalid error bound", func(t *testing.T) {
		_, err := NewEncoder(WithErrorBound(0))
		require.ErrorIs(t, err, errs.ErrInvalidBound)

		_, err = NewEncoder(WithErrorBound(math.Inf(1)))
		require.ErrorIs(t, err, errs.ErrInvalidBound)
	})

	t.Run("invalid raw compression", func(t *testing.T) {
		_, err := NewEncoder(WithRawCompression(format.CompressionType(0x7F)))
		require.Error(t, err)
	})

	t.Run("empty tensor", func(t *testing.T) {
		enc, err := NewEncoder()
		require.NoError(t, err)
		require.ErrorIs(t, enc.AddTensor("empty", nil), errs.ErrEmptyInput)
		require.ErrorIs(t, enc.AddRawTensor("empty", []float32{}), errs.ErrEmptyInput)
	})

	t.Run("duplicate name", func(t *testing.T) {
		enc, err := NewEncoder()
		require.NoError(t, err)
		require.NoError(t, enc.AddTensor("w", []float32{1, 2}))
		require.ErrorIs(t, enc.AddTensor("w", []float32{3, 4}), errs.ErrDuplicateTensor)
		require.ErrorIs(t, enc.AddRawTensor("w", []float32{3, 4}), errs.ErrDuplicateTensor)
	})

	t.Run("use after finish", func(t *testing.T) {
		enc, err := NewEncoder()
		require.NoError(t, err)
		_, err = enc.Finish()
		require.NoError(t, err)

		require.Error(t, enc.AddTensor("late", []float32{1}))
		_, err = enc.Finish()
		require.Error(t, err)
	})
}

func TestDecoder_TensorNotFound(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	require.NoError(t, enc.AddTensor("present", []float32{1, 2, 3}))

	ar, err := enc.Finish()
	require.NoError(t, err)

	dec, err := NewDecoder(ar.Bytes())
	require.NoError(t, err)

	_, err = dec.TensorByName("absent")
	require.ErrorIs(t, err, errs.ErrTensorNotFound)
	require.False(t, dec.Has(hash.ID("absent")))

	_, err = dec.Stats(hash.ID("absent"))
	require.ErrorIs(t, err, errs.ErrTensorNotFound)
}

func TestDecoder_RejectsCorruption(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	require.NoError(t, enc.AddTensor("w", rampTensor(1024, 1.0)))

	ar, err := enc.Finish()
	require.NoError(t, err)
	data := ar.Bytes()

	t.Run("payload bit flip", func(t *testing.T) {
		corrupt := append([]byte(nil), data...)
		corrupt[len(corrupt)-1] ^= 0x01
		_, err := NewDecoder(corrupt)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("bad magic", func(t *testing.T) {
		corrupt := append([]byte(nil), data...)
		corrupt[0] ^= 0xFF
		_, err := NewDecoder(corrupt)
		require.ErrorIs(t, err, errs.ErrInvalidMagic)
	})

	t.Run("truncated", func(t *testing.T) {
		for _, keep := range []int{0, 10, 31, 40, len(data) / 2, len(data) - 1} {
			_, err := NewDecoder(data[:keep])
			require.ErrorIs(t, err, errs.ErrFormat, "keep=%d", keep)
		}
	})
}

func TestDecoder_Stats(t *testing.T) {
	values := rampTensor(1000, 1.0)

	enc, err := NewEncoder(WithRawCompression(format.CompressionZstd))
	require.NoError(t, err)
	require.NoError(t, enc.AddRawTensor("w", values))

	ar, err := enc.Finish()
	require.NoError(t, err)

	dec, err := NewDecoder(ar.Bytes())
	require.NoError(t, err)

	stats, err := dec.Stats(hash.ID("w"))
	require.NoError(t, err)
	require.Equal(t, int64(4000), stats.OriginalSize)
	require.Positive(t, stats.CompressedSize)
	require.Positive(t, stats.CompressionRatio())
}
