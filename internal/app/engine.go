package app

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/chathub/internal/core"
	"github.com/dkeye/chathub/internal/domain"
)

// Engine is the delivery primitive. Every send is a non-blocking enqueue,
// and a failed recipient never stops the rest of the fan-out.
type Engine struct {
	Registry *Registry
	Policy   Policy
}

func NewEngine(reg *Registry, policy Policy) *Engine {
	return &Engine{Registry: reg, Policy: policy}
}

// Broadcast sends f to every open connection.
func (e *Engine) Broadcast(f core.Frame) core.PublishResult {
	return e.deliver(f, func(*Conn) bool { return true })
}

// Relay sends f to open connections whose identity is in allowed, skipping
// exclude. Anonymous connections never match.
func (e *Engine) Relay(f core.Frame, allowed MemberSet, exclude domain.ConnID) core.PublishResult {
	return e.deliver(f, func(c *Conn) bool {
		return c.ID() != exclude && allowed.Has(c.User())
	})
}

func (e *Engine) deliver(f core.Frame, match func(*Conn) bool) core.PublishResult {
	var res core.PublishResult
	e.Registry.ForEach(func(c *Conn) {
		if !c.Open() || !match(c) {
			return
		}
		err := c.Send(f)
		switch {
		case err == nil:
			res.SendTo++
		case errors.Is(err, core.ErrBackpressure):
			res.Dropped = append(res.Dropped, c.ID())
		default:
			log.Debug().Err(err).Str("module", "app.engine").Str("conn", string(c.ID())).Msg("send skipped")
		}
	})
	e.applyPolicy(res.Dropped)
	return res
}

func (e *Engine) applyPolicy(dropped []domain.ConnID) {
	if e.Policy == nil {
		return
	}
	for _, id := range dropped {
		c, ok := e.Registry.Get(id)
		if !ok {
			continue
		}
		switch e.Policy.OnBackPressure(c) {
		case KickConn:
			log.Warn().Str("module", "app.engine").Str("conn", string(id)).Str("user", string(c.User())).Msg("slow consumer kicked")
			c.Close()
		case DropFrame:
			log.Warn().Str("module", "app.engine").Str("conn", string(id)).Msg("frame dropped on backpressure")
		}
	}
}
