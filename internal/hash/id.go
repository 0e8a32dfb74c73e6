package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given tensor name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Sum64 computes the xxHash64 of a byte payload. Archive headers store this
// over the payload section for integrity checking.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}
