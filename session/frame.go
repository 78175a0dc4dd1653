package session

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// MaxFrameSize is the largest payload a single frame can carry, bounded by
// the 16-bit length prefix.
const MaxFrameSize = 65535

var (
	// ErrFrameTooLarge is returned when a payload exceeds MaxFrameSize.
	ErrFrameTooLarge = errors.New("frame exceeds maximum size")
)

// FrameDuplex is a Duplex over any stream connection, framing messages with
// a big-endian 16-bit length prefix.
type FrameDuplex struct {
	conn io.ReadWriteCloser
}

// NewFrameDuplex wraps a stream connection into a framed duplex transport.
func NewFrameDuplex(conn io.ReadWriteCloser) *FrameDuplex {
	return &FrameDuplex{conn: conn}
}

// SendFrame writes a single length-prefixed frame.
func (d *FrameDuplex) SendFrame(frame []byte) (int, error) {
	if len(frame) > MaxFrameSize {
		return 0, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge,
			len(frame))
	}

	// Prefix and payload go out in a single write, so frames are never
	// interleaved on a shared connection.
	wire := make([]byte, 2+len(frame))
	binary.BigEndian.PutUint16(wire[:2], uint16(len(frame)))
	copy(wire[2:], frame)

	if _, err := d.conn.Write(wire); err != nil {
		return 0, err
	}

	log.Tracef("Sent frame of %d bytes", len(frame))

	return len(frame), nil
}

// RecvFrame reads a single length-prefixed frame.
func (d *FrameDuplex) RecvFrame() ([]byte, error) {
	var prefix [2]byte
	if _, err := io.ReadFull(d.conn, prefix[:]); err != nil {
		return nil, err
	}

	frame := make([]byte, binary.BigEndian.Uint16(prefix[:]))
	if _, err := io.ReadFull(d.conn, frame); err != nil {
		return nil, err
	}

	log.Tracef("Received frame of %d bytes", len(frame))

	return frame, nil
}

// Close closes the underlying connection.
func (d *FrameDuplex) Close() error {
	return d.conn.Close()
}
