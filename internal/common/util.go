package common

// WipeByteArray zeroes the buffer in place. Callers use it to scrub
// passwords and keys once they are no longer needed. Safe to call with nil.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
