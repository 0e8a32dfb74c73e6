package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lessw2020/cuda-float-compress/errs"
	"github.com/lessw2020/cuda-float-compress/format"
)

func TestTensorIndexEntry_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		entry TensorIndexEntry
	}{
		{
			name: "lossy tensor",
			entry: TensorIndexEntry{
				TensorID:    0x1122334455667788,
				Count:       4096,
				Offset:      128,
				Length:      1024,
				Min:         -1.5,
				Max:         2.25,
				Encoding:    format.TypeLossy,
				Compression: format.CompressionNone,
			},
		},
		{
			name: "raw zstd tensor",
			entry: TensorIndexEntry{
				TensorID:    1,
				Count:       1,
				Length:      4,
				Min:         0.5,
				Max:         0.5,
				Encoding:    format.TypeRaw,
				Compression: format.CompressionZstd,
			},
		},
		{
			name: "raw uncompressed tensor",
			entry: TensorIndexEntry{
				TensorID:    42,
				Count:       16,
				Offset:      64,
				Length:      64,
				Encoding:    format.TypeRaw,
				Compression: format.CompressionNone,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.entry.Bytes()
			require.Len(t, data, IndexEntrySize)

			var parsed TensorIndexEntry
			require.NoError(t, parsed.Parse(data))
			require.Equal(t, tt.entry, parsed)
		})
	}
}

func TestTensorIndexEntry_ParseRejectsWrongSize(t *testing.T) {
	var e TensorIndexEntry
	require.ErrorIs(t, e.Parse(make([]byte, IndexEntrySize-1)), errs.ErrInvalidIndexEntry)
	require.ErrorIs(t, e.Parse(make([]byte, IndexEntrySize+1)), errs.ErrInvalidIndexEntry)
}

func TestTensorIndexEntry_Validate(t *testing.T) {
	tests := []struct {
		name        string
		encoding    format.EncodingType
		compression format.CompressionType
		wantErr     bool
	}{
		{name: "lossy none", encoding: format.TypeLossy, compression: format.CompressionNone},
		{name: "raw none", encoding: format.TypeRaw, compression: format.CompressionNone},
		{name: "raw zstd", encoding: format.TypeRaw, compression: format.CompressionZstd},
		{name: "raw s2", encoding: format.TypeRaw, compression: format.CompressionS2},
		{name: "raw lz4", encoding: format.TypeRaw, compression: format.CompressionLZ4},
		{name: "lossy with compression", encoding: format.TypeLossy, compression: format.CompressionZstd, wantErr: true},
		{name: "unknown encoding", encoding: format.EncodingType(0x7F), compression: format.CompressionNone, wantErr: true},
		{name: "raw unknown compression", encoding: format.TypeRaw, compression: format.CompressionType(0x7F), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := TensorIndexEntry{Encoding: tt.encoding, Compression: tt.compression}
			err := e.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrInvalidIndexEntry)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
