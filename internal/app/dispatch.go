package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/chathub/internal/core"
	"github.com/dkeye/chathub/internal/protocol"
)

// Dispatcher classifies one inbound frame and routes it. Frames are handled
// to completion independently; nothing is ever sent back to explain a drop.
type Dispatcher struct {
	Engine  *Engine
	Members *Membership
	Limiter *SignalRateLimiter
}

func (d *Dispatcher) Dispatch(ctx context.Context, from *Conn, data []byte) {
	in, err := protocol.Decode(data)
	if err != nil {
		var sig protocol.Signal
		if errors.Is(err, protocol.ErrInvalidFrame) && in != nil {
			sig, _ = in.(protocol.Signal)
		}
		log.Warn().Err(err).
			Str("module", "app.dispatch").
			Str("conn", string(from.ID())).
			Str("user", string(from.User())).
			Str("type", string(sig.Kind())).
			Msg("frame dropped")
		return
	}

	switch f := in.(type) {
	case protocol.Subscribe:
		log.Debug().Str("module", "app.dispatch").Str("conn", string(from.ID())).Str("user", string(from.User())).Msg("subscribe ignored")
	case protocol.AuxUpdate:
		d.handleAuxUpdate(from, f)
	case protocol.Signal:
		d.handleSignal(ctx, from, f)
	case protocol.Unknown:
		log.Debug().Str("module", "app.dispatch").Str("conn", string(from.ID())).Str("type", f.Type).Msg("unknown type ignored")
	}
}

func (d *Dispatcher) handleAuxUpdate(from *Conn, f protocol.AuxUpdate) {
	var data any
	if len(f.Payload) > 0 {
		data = f.Payload
	}
	frame, err := protocol.Encode(protocol.EventAuxStatusUpdate, data)
	if err != nil {
		log.Error().Err(err).Str("module", "app.dispatch").Str("conn", string(from.ID())).Msg("aux update encode")
		return
	}
	res := d.Engine.Broadcast(frame)
	log.Debug().Str("module", "app.dispatch").Str("conn", string(from.ID())).Int("sent", res.SendTo).Msg("aux update broadcast")
}

func (d *Dispatcher) handleSignal(ctx context.Context, from *Conn, f protocol.Signal) {
	reject := func(reason string) {
		log.Warn().
			Str("module", "app.dispatch").
			Str("conn", string(from.ID())).
			Str("user", string(from.User())).
			Str("room", string(f.RoomID)).
			Str("type", string(f.Kind())).
			Msg("signal rejected: " + reason)
	}

	if from.Anonymous() {
		reject("anonymous sender")
		return
	}
	if !d.Limiter.Allow(from.User()) {
		reject("rate limited")
		return
	}

	members, err := d.Members.MembersOf(ctx, f.RoomID)
	if err != nil {
		log.Error().Err(err).
			Str("module", "app.dispatch").
			Str("conn", string(from.ID())).
			Str("room", string(f.RoomID)).
			Str("type", string(f.Kind())).
			Msg("membership lookup failed, frame dropped")
		return
	}
	if !members.Has(from.User()) {
		reject("sender not a room member")
		return
	}

	res := d.Engine.Relay(core.Frame(f.Raw), members, from.ID())
	log.Debug().
		Str("module", "app.dispatch").
		Str("conn", string(from.ID())).
		Str("room", string(f.RoomID)).
		Str("type", string(f.Kind())).
		Int("sent", res.SendTo).
		Int("dropped", len(res.Dropped)).
		Msg("signal relayed")
}
