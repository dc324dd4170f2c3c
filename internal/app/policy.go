package app

import "fmt"

type BackpressureAction int

const (
	DropFrame BackpressureAction = iota
	KickConn
)

// Policy decides what happens to a connection whose send buffer is full.
type Policy interface {
	OnBackPressure(c *Conn) BackpressureAction
}

// DropPolicy loses the frame for that recipient and keeps the connection.
type DropPolicy struct{}

func (DropPolicy) OnBackPressure(*Conn) BackpressureAction { return DropFrame }

// KickPolicy closes slow connections; the read loop then deregisters them.
type KickPolicy struct{}

func (KickPolicy) OnBackPressure(*Conn) BackpressureAction { return KickConn }

func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "drop":
		return DropPolicy{}, nil
	case "kick":
		return KickPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown backpressure policy %q", name)
	}
}
