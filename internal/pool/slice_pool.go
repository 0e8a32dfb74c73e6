package pool

import "sync"

// Slice pools for efficient reuse of typed scratch slices.
// The encoder uses these for per-block quantization codes and outlier values.
var (
	float32SlicePool = sync.Pool{
		New: func() any { return &[]float32{} },
	}
	int32SlicePool = sync.Pool{
		New: func() any { return &[]int32{} },
	}
)

// GetFloat32Slice retrieves and resizes a float32 slice from the pool.
//
// The returned slice has length size; contents are unspecified. The caller
// must call the returned cleanup function (typically with defer) to return
// the slice to the pool.
func GetFloat32Slice(size int) ([]float32, func()) {
	ptr, _ := float32SlicePool.Get().(*[]float32)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]float32, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { float32SlicePool.Put(ptr) }
}

// GetInt32Slice retrieves and resizes an int32 slice from the pool.
//
// The returned slice has length size; contents are unspecified. The caller
// must call the returned cleanup function (typically with defer) to return
// the slice to the pool.
func GetInt32Slice(size int) ([]int32, func()) {
	ptr, _ := int32SlicePool.Get().(*[]int32)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]int32, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { int32SlicePool.Put(ptr) }
}
