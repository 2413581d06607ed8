package util

// -----------------------------------------------------------------------------

// SafeZeroMem zeros the given buffer. Key material should go through here once it is no longer needed.
func SafeZeroMem(v []byte) {
	clear(v)
}

// SafeZeroMemArray zeros every buffer in the given array.
func SafeZeroMemArray(v [][]byte) {
	for idx := range v {
		SafeZeroMem(v[idx])
	}
}
