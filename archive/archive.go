package archive

// Archive is a finished tensor container, ready to persist or transmit.
type Archive struct {
	data []byte
}

// Bytes returns the serialized archive.
func (a Archive) Bytes() []byte {
	return a.data
}

// Size returns the archive size in bytes.
func (a Archive) Size() int {
	return len(a.data)
}
