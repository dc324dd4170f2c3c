package signal

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/chathub/internal/app"
)

func (ctl *SignalWSController) writePump(ctx context.Context, conn *app.Conn, c *WsSignalConn) {
	var ping <-chan time.Time
	if ctl.Opts.PingPeriod > 0 {
		t := time.NewTicker(ctl.Opts.PingPeriod)
		defer t.Stop()
		ping = t.C
	}

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Str("conn", string(conn.ID())).Msg("writePump ctx done")
			ctl.Orch.Disconnect(conn)
			return
		case data, ok := <-c.send:
			if !ok {
				log.Debug().Str("module", "signal").Str("conn", string(conn.ID())).Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.Opts.WriteWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Str("conn", string(conn.ID())).Msg("writePump set deadline")
				ctl.Orch.Disconnect(conn)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Warn().Err(err).Str("module", "signal").Str("conn", string(conn.ID())).Msg("writePump write error")
				ctl.Orch.Disconnect(conn)
				return
			}
		case <-ping:
			deadline := time.Now().Add(ctl.Opts.WriteWait)
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				log.Warn().Err(err).Str("module", "signal").Str("conn", string(conn.ID())).Msg("writePump ping")
				ctl.Orch.Disconnect(conn)
				return
			}
		}
	}
}

// readPump owns the connection lifetime: whatever ends it, the registry
// entry goes away exactly once.
func (ctl *SignalWSController) readPump(ctx context.Context, conn *app.Conn, c *WsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("conn", string(conn.ID())).Str("user", string(conn.User())).Msg("readPump closing")
		ctl.Orch.Disconnect(conn)
	}()

	if ctl.Opts.PongWait > 0 {
		_ = c.conn.SetReadDeadline(time.Now().Add(ctl.Opts.PongWait))
		c.conn.SetPongHandler(func(string) error {
			return c.conn.SetReadDeadline(time.Now().Add(ctl.Opts.PongWait))
		})
	}

	for {
		if ctx.Err() != nil {
			return
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				log.Warn().Err(err).Str("module", "signal").Str("conn", string(conn.ID())).Msg("readPump read error")
			}
			return
		}
		ctl.Orch.OnFrame(ctx, conn, data)
	}
}
