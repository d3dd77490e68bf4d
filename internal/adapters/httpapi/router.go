package httpapi

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/parishnet/videowall/internal/config"
	"github.com/parishnet/videowall/internal/core"
)

// API bundles the handler dependencies: the session store and the
// credential issuer for the media provider.
type API struct {
	cfg    *config.Config
	store  core.Store
	issuer core.CredentialIssuer
}

func NewAPI(cfg *config.Config, store core.Store, issuer core.CredentialIssuer) *API {
	return &API{cfg: cfg, store: store, issuer: issuer}
}

func SetupRouter(cfg *config.Config, store core.Store, issuer core.CredentialIssuer) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	cookies := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("WallSessions", cookies))

	a := NewAPI(cfg, store, issuer)

	apiRL := NewSlidingWindowLimiter(cfg.Limits.APIPerWindow, cfg.Limits.APIWindow)
	sessionRL := NewSlidingWindowLimiter(cfg.Limits.SessionPerWindow, cfg.Limits.SessionWindow)
	authRL := NewSlidingWindowLimiter(cfg.Limits.AuthPerWindow, cfg.Limits.AuthWindow)

	log.Info().Str("module", "adapters.httpapi").Int("port", cfg.Port).Msg("router setup")

	api := r.Group("/api")
	api.Use(RateLimit(apiRL))

	session := api.Group("/session")
	session.Use(RateLimit(sessionRL))
	session.POST("/join", a.handleJoin)
	session.POST("/leave", a.handleLeave)

	api.GET("/service/:code", a.handleServiceInfo)
	api.POST("/credential", a.handleCredential)

	admin := api.Group("/admin")
	admin.POST("/login", RateLimit(authRL), a.handleAdminLogin)
	admin.POST("/logout", a.handleAdminLogout)

	protected := admin.Group("")
	protected.Use(a.requireAdmin())
	protected.GET("/dashboard", a.handleDashboard)
	protected.GET("/services", a.handleListServices)
	protected.POST("/services", a.handleCreateService)
	protected.PATCH("/services/:id/active", a.handleSetServiceActive)
	protected.GET("/churches", a.handleListChurches)

	return r
}
