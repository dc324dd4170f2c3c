package core

import "errors"

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

// Frame is one serialized message, shared as-is by every recipient.
type Frame []byte

// SignalConnection abstracts for a system messaging transport
// Owned by the adapter; the adapter must Close() it.
// TrySend never blocks: a full buffer is ErrBackpressure.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
