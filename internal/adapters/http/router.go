package http

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/chathub/internal/adapters/rtc"
	"github.com/dkeye/chathub/internal/adapters/signal"
	"github.com/dkeye/chathub/internal/app"
	"github.com/dkeye/chathub/internal/config"
)

// SessionStore is shared with the auth layer, which writes the user id
// into the same cookie session this router reads.
func SessionStore(cfg *config.Config) sessions.Store {
	return cookie.NewStore([]byte(cfg.Secret))
}

func SetupRouter(ctx context.Context, cfg *config.Config, orch *app.Orchestrator) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(sessions.Sessions(cfg.SessionName, SessionStore(cfg)))

	ctrl := signal.NewSignalWSController(orch, signal.SessionResolver{Key: cfg.SessionUserKey}, signal.Options{
		ReadLimit:  cfg.ReadLimit,
		PingPeriod: cfg.PingPeriod,
		PongWait:   cfg.PongWait,
		WriteWait:  cfg.WriteWait,
		SendBuffer: cfg.SendBuffer,
	})
	r.GET(cfg.WSPath, func(c *gin.Context) {
		ctrl.HandleSignal(ctx, c)
	})

	iceCfg := rtc.ClientConfigFor(cfg.ICEServers)

	api := r.Group("/api")
	api.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, orch.Registry.Stats())
	})
	api.GET("/rtc/config", func(c *gin.Context) {
		c.JSON(http.StatusOK, iceCfg)
	})

	log.Info().Str("module", "adapters.http").Str("ws_path", cfg.WSPath).Msg("router setup")
	return r
}
