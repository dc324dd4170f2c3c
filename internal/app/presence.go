package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/panics"

	"github.com/dkeye/chathub/internal/core"
	"github.com/dkeye/chathub/internal/domain"
	"github.com/dkeye/chathub/internal/protocol"
)

const DefaultPresenceInterval = 5 * time.Second

// PresenceTicker periodically pushes the full list of active aux sessions
// to every connection. A failed or panicking tick is logged and skipped.
type PresenceTicker struct {
	Store    core.Storage
	Engine   *Engine
	Interval time.Duration
}

func (p *PresenceTicker) Run(ctx context.Context) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPresenceInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	log.Info().Str("module", "app.presence").Dur("interval", interval).Msg("presence ticker started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "app.presence").Msg("presence ticker stopped")
			return nil
		case <-t.C:
			p.safeTick(ctx, interval)
		}
	}
}

func (p *PresenceTicker) safeTick(ctx context.Context, budget time.Duration) {
	tickCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	var pc panics.Catcher
	pc.Try(func() {
		if _, err := p.Tick(tickCtx); err != nil {
			log.Warn().Err(err).Str("module", "app.presence").Msg("tick skipped")
		}
	})
	if r := pc.Recovered(); r != nil {
		log.Error().Err(r.AsError()).Str("module", "app.presence").Msg("tick panicked")
	}
}

// Tick performs one fetch-and-broadcast.
func (p *PresenceTicker) Tick(ctx context.Context) (core.PublishResult, error) {
	sessions, err := p.Store.GetAllActiveAuxSessions(ctx)
	if err != nil {
		return core.PublishResult{}, fmt.Errorf("active aux sessions: %w", err)
	}
	if sessions == nil {
		sessions = []domain.AuxSession{}
	}
	frame, err := protocol.Encode(protocol.EventEmployeeStatusUpdate, sessions)
	if err != nil {
		return core.PublishResult{}, err
	}
	return p.Engine.Broadcast(frame), nil
}
