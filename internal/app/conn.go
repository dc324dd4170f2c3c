package app

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dkeye/chathub/internal/core"
	"github.com/dkeye/chathub/internal/domain"
)

// Conn is one live client connection. Its identity is fixed at construction
// and there is no way to change it afterwards.
type Conn struct {
	id   domain.ConnID
	user domain.UserID
	sig  core.SignalConnection
	open atomic.Bool
}

func NewConn(sig core.SignalConnection, user domain.UserID) *Conn {
	c := &Conn{
		id:   domain.ConnID(uuid.NewString()),
		user: user,
		sig:  sig,
	}
	c.open.Store(true)
	return c
}

func (c *Conn) ID() domain.ConnID { return c.id }
func (c *Conn) User() domain.UserID { return c.user }
func (c *Conn) Open() bool { return c.open.Load() }
func (c *Conn) Anonymous() bool { return c.user.IsAnonymous() }

func (c *Conn) Send(f core.Frame) error {
	if !c.open.Load() {
		return core.ErrConnClosed
	}
	return c.sig.TrySend(f)
}

// Close marks the connection closed and releases the transport once.
func (c *Conn) Close() {
	if c.open.CompareAndSwap(true, false) {
		c.sig.Close()
	}
}
