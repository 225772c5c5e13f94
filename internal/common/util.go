package common

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Used to drop password material from memory as soon as it has been hashed
// or sent. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
