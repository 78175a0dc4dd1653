package session

// NoEncryption is a pass-through transcoder for transports that are already
// protected externally, or for local testing.
type NoEncryption struct{}

// Encrypt returns the message unchanged.
func (NoEncryption) Encrypt(data []byte) []byte {
	return data
}

// Decrypt returns the message unchanged.
func (NoEncryption) Decrypt(data []byte) ([]byte, error) {
	return data, nil
}
