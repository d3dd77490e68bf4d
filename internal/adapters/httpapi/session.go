package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/parishnet/videowall/internal/core"
	"github.com/parishnet/videowall/internal/domain"
	"github.com/parishnet/videowall/internal/wall"
)

type joinRequest struct {
	Code       string `json:"code" binding:"required"`
	ChurchName string `json:"churchName" binding:"required"`
}

type JoinResponse struct {
	SessionID   domain.SessionID `json:"sessionId"`
	Service     *domain.Service  `json:"service"`
	Church      *domain.Church   `json:"church"`
	Room        string           `json:"room"`
	Credential  string           `json:"credential"`
	ProviderURL string           `json:"providerUrl"`
}

// handleJoin admits a church into a service. Admission is best-effort:
// the count and the join record are not one transaction, so a burst at
// the capacity boundary can briefly overshoot by a seat or two.
func (a *API) handleJoin(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code and churchName are required"})
		return
	}

	code, err := domain.ParseSessionCode(req.Code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session code"})
		return
	}

	ctx := c.Request.Context()
	svc, err := a.store.ServiceByCode(ctx, code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}
	if !svc.Active {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Service is not active"})
		return
	}

	church, err := a.store.FindOrCreateChurch(ctx, req.ChurchName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A church rejoining its own live session keeps its seat; only a new
	// seat goes through the capacity guard.
	sess, err := a.store.ActiveSession(ctx, church.ID, svc.ID)
	if errors.Is(err, core.ErrSessionNotFound) {
		active, cerr := a.store.CountActiveSessions(ctx, svc.ID)
		if cerr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count sessions"})
			return
		}
		if aerr := wall.TryAdmit(active, svc.MaxChurches); aerr != nil {
			log.Warn().Str("module", "adapters.httpapi").
				Str("service", string(svc.ID)).Int("active", active).Int("max", svc.MaxChurches).
				Msg("admission rejected")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Service has reached maximum capacity"})
			return
		}
		sess, err = a.store.RecordJoin(ctx, church.ID, svc.ID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record join"})
		return
	}

	cred, err := a.issuer.Issue(string(svc.ID), core.ParticipantID(church.ID), church.Name, true, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue credential"})
		return
	}

	log.Info().Str("module", "adapters.httpapi").
		Str("service", string(svc.ID)).Str("church", string(church.ID)).Str("session", string(sess.ID)).
		Msg("church joined")

	c.JSON(http.StatusOK, JoinResponse{
		SessionID:   sess.ID,
		Service:     svc,
		Church:      church,
		Room:        string(svc.ID),
		Credential:  cred,
		ProviderURL: a.cfg.ProviderURL,
	})
}

type leaveRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

func (a *API) handleLeave(c *gin.Context) {
	var req leaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId is required"})
		return
	}

	err := a.store.RecordLeave(c.Request.Context(), domain.SessionID(req.SessionID))
	if errors.Is(err, core.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record leave"})
		return
	}

	log.Info().Str("module", "adapters.httpapi").Str("session", req.SessionID).Msg("church left")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type ServiceInfoResponse struct {
	Service     *domain.Service `json:"service"`
	ActiveCount int             `json:"activeCount"`
}

func (a *API) handleServiceInfo(c *gin.Context) {
	code, err := domain.ParseSessionCode(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session code"})
		return
	}

	ctx := c.Request.Context()
	svc, err := a.store.ServiceByCode(ctx, code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	active, err := a.store.CountActiveSessions(ctx, svc.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count sessions"})
		return
	}

	c.JSON(http.StatusOK, ServiceInfoResponse{Service: svc, ActiveCount: active})
}
