package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/chathub/internal/core"
	"github.com/dkeye/chathub/internal/domain"
)

type Options struct {
	Policy           Policy
	PresenceInterval time.Duration
	SignalRateLimit  int
	SignalRateWindow time.Duration
}

// Orchestrator wires the hub together: transports call Connect, Dispatch
// and Disconnect; the CRUD layer uses Emitter.
type Orchestrator struct {
	Registry   *Registry
	Engine     *Engine
	Members    *Membership
	Dispatcher *Dispatcher
	Emitter    *Emitter
	Presence   *PresenceTicker
	Limiter    *SignalRateLimiter
}

func NewOrchestrator(store core.Storage, opts Options) *Orchestrator {
	if opts.Policy == nil {
		opts.Policy = DropPolicy{}
	}
	reg := NewRegistry()
	engine := NewEngine(reg, opts.Policy)
	members := NewMembership(store)
	limiter := NewSignalRateLimiter(opts.SignalRateLimit, opts.SignalRateWindow)

	return &Orchestrator{
		Registry: reg,
		Engine:   engine,
		Members:  members,
		Limiter:  limiter,
		Dispatcher: &Dispatcher{
			Engine:  engine,
			Members: members,
			Limiter: limiter,
		},
		Emitter: &Emitter{
			Engine:  engine,
			Members: members,
		},
		Presence: &PresenceTicker{
			Store:    store,
			Engine:   engine,
			Interval: opts.PresenceInterval,
		},
	}
}

// Connect registers a transport under the identity resolved at handshake.
func (o *Orchestrator) Connect(sig core.SignalConnection, user domain.UserID) *Conn {
	c := NewConn(sig, user)
	o.Registry.Add(c)
	return c
}

func (o *Orchestrator) OnFrame(ctx context.Context, c *Conn, data []byte) {
	o.Dispatcher.Dispatch(ctx, c, data)
}

// Disconnect is safe to call any number of times for the same connection.
func (o *Orchestrator) Disconnect(c *Conn) {
	c.Close()
	if !o.Registry.Remove(c.ID()) {
		return
	}
	if !c.Anonymous() && !o.Registry.HasUser(c.User()) {
		o.Limiter.Forget(c.User())
	}
	log.Info().Str("module", "app.orchestrator").Str("conn", string(c.ID())).Str("user", string(c.User())).Int("live", o.Registry.Len()).Msg("disconnected")
}

// Run blocks on the presence ticker until ctx is done.
func (o *Orchestrator) Run(ctx context.Context) error {
	return o.Presence.Run(ctx)
}
