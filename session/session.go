// Package session provides the duplex transport layer consumed by protocol
// stacks built on top of deterministic bitcoin commitments. The commitment
// engine itself never touches this package: it only defines the byte-stream
// service contract (framed duplex transport plus a transcoder that encrypts
// outgoing and decrypts incoming messages) and a generic session composition
// of the two.
package session

// Encryptor encrypts an outgoing message.
type Encryptor interface {
	Encrypt(data []byte) []byte
}

// Decryptor decrypts an incoming message. Decryption may fail on tampered or
// truncated ciphertext.
type Decryptor interface {
	Decrypt(data []byte) ([]byte, error)
}

// Transcoder transforms messages between their session-internal and wire
// representations.
type Transcoder interface {
	Encryptor
	Decryptor
}

// Sender writes a single message frame to the underlying transport,
// returning the number of payload bytes written.
type Sender interface {
	SendFrame(frame []byte) (int, error)
}

// Receiver reads a single message frame from the underlying transport.
type Receiver interface {
	RecvFrame() ([]byte, error)
}

// Duplex is a bidirectional framed transport.
type Duplex interface {
	Sender
	Receiver

	// Close tears the transport down. Further sends and receives fail.
	Close() error
}

// Session composes a transcoder with a duplex framed transport into a
// bidirectional message pipe.
type Session struct {
	transcoder Transcoder
	stream     Duplex
}

// New creates a session from a transcoder and a duplex transport.
func New(transcoder Transcoder, stream Duplex) *Session {
	return &Session{
		transcoder: transcoder,
		stream:     stream,
	}
}

// Split separates the session into its independent inbound and outbound
// halves, so reading and writing can be driven from different goroutines.
func (s *Session) Split() (*Inbound, *Outbound) {
	return &Inbound{decryptor: s.transcoder, input: s.stream},
		&Outbound{encryptor: s.transcoder, output: s.stream}
}

// RecvRawMessage receives and decrypts a single message.
func (s *Session) RecvRawMessage() ([]byte, error) {
	frame, err := s.stream.RecvFrame()
	if err != nil {
		return nil, err
	}

	return s.transcoder.Decrypt(frame)
}

// SendRawMessage encrypts and sends a single message, returning the number
// of bytes written to the transport.
func (s *Session) SendRawMessage(raw []byte) (int, error) {
	return s.stream.SendFrame(s.transcoder.Encrypt(raw))
}

// Close tears down the underlying transport.
func (s *Session) Close() error {
	return s.stream.Close()
}

// Inbound is the receiving half of a session.
type Inbound struct {
	decryptor Decryptor
	input     Receiver
}

// RecvRawMessage receives and decrypts a single message.
func (i *Inbound) RecvRawMessage() ([]byte, error) {
	frame, err := i.input.RecvFrame()
	if err != nil {
		return nil, err
	}

	return i.decryptor.Decrypt(frame)
}

// Outbound is the sending half of a session.
type Outbound struct {
	encryptor Encryptor
	output    Sender
}

// SendRawMessage encrypts and sends a single message.
func (o *Outbound) SendRawMessage(raw []byte) (int, error) {
	return o.output.SendFrame(o.encryptor.Encrypt(raw))
}
