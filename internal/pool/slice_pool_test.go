package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetFloat32Slice(t *testing.T) {
	s, release := GetFloat32Slice(100)
	require.Len(t, s, 100)

	for i := range s {
		s[i] = float32(i)
	}
	release()

	// A fresh request may reuse the same backing array; only the length is
	// guaranteed.
	s2, release2 := GetFloat32Slice(50)
	defer release2()
	require.Len(t, s2, 50)
}

func TestGetInt32Slice(t *testing.T) {
	s, release := GetInt32Slice(256)
	require.Len(t, s, 256)
	release()

	s2, release2 := GetInt32Slice(1024)
	defer release2()
	require.Len(t, s2, 1024)
}

func TestGetSlices_ZeroSize(t *testing.T) {
	f, releaseF := GetFloat32Slice(0)
	defer releaseF()
	require.Empty(t, f)

	i, releaseI := GetInt32Slice(0)
	defer releaseI()
	require.Empty(t, i)
}
