package signal

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/chathub/internal/app"
	"github.com/dkeye/chathub/internal/core"
)

type Options struct {
	ReadLimit  int64
	PingPeriod time.Duration
	PongWait   time.Duration
	WriteWait  time.Duration
	SendBuffer int
}

type SignalWSController struct {
	Orch     *app.Orchestrator
	Identity SessionResolver
	Opts     Options
}

func NewSignalWSController(orch *app.Orchestrator, identity SessionResolver, opts Options) *SignalWSController {
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 32
	}
	if opts.WriteWait <= 0 {
		opts.WriteWait = 5 * time.Second
	}
	return &SignalWSController{
		Orch:     orch,
		Identity: identity,
		Opts:     opts,
	}
}

// WsSignalConn is the core.SignalConnection over a gorilla websocket.
// writePump is the only writer to conn.
type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return core.ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return core.ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal binds identity from the session, upgrades, registers the
// connection and starts its pumps. Cleanup happens when the read side ends.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	user := ctl.Identity.Resolve(c)

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	if ctl.Opts.ReadLimit > 0 {
		ws.SetReadLimit(ctl.Opts.ReadLimit)
	}

	sig := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, ctl.Opts.SendBuffer),
	}
	conn := ctl.Orch.Connect(sig, user)
	log.Info().Str("module", "signal").Str("conn", string(conn.ID())).Str("user", string(user)).Bool("anonymous", conn.Anonymous()).Msg("new WS connection")

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn, sig)
	go func() {
		defer cancel()
		ctl.readPump(ctx, conn, sig)
	}()
}
