package httpapi

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/parishnet/videowall/internal/domain"
)

const adminSessionKey = "admin"

type adminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

func (a *API) handleAdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	if a.cfg.AdminPassword == "" ||
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(a.cfg.AdminPassword)) != 1 {
		log.Warn().Str("module", "adapters.httpapi").Str("ip", c.ClientIP()).Msg("admin login rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	s := sessions.Default(c)
	s.Set(adminSessionKey, true)
	if err := s.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *API) handleAdminLogout(c *gin.Context) {
	s := sessions.Default(c)
	s.Delete(adminSessionKey)
	_ = s.Save()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *API) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Default(c)
		if ok, _ := s.Get(adminSessionKey).(bool); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

func (a *API) handleDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	svcs, err := a.store.ListServices(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list services"})
		return
	}
	churches, err := a.store.ListChurches(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list churches"})
		return
	}

	activeServices := 0
	liveSessions := 0
	for _, svc := range svcs {
		if !svc.Active {
			continue
		}
		activeServices++
		n, err := a.store.CountActiveSessions(ctx, svc.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count sessions"})
			return
		}
		liveSessions += n
	}

	c.JSON(http.StatusOK, gin.H{
		"services":       len(svcs),
		"activeServices": activeServices,
		"churches":       len(churches),
		"liveSessions":   liveSessions,
	})
}

func (a *API) handleListServices(c *gin.Context) {
	svcs, err := a.store.ListServices(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list services"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": svcs})
}

type createServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	MaxChurches int    `json:"maxChurches"`
}

func (a *API) handleCreateService(c *gin.Context) {
	var req createServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	svc, err := a.store.CreateService(c.Request.Context(), req.Name, req.MaxChurches)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Info().Str("module", "adapters.httpapi").
		Str("service", string(svc.ID)).Str("code", string(svc.SessionCode)).
		Msg("service created")
	c.JSON(http.StatusCreated, gin.H{"service": svc})
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (a *API) handleSetServiceActive(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "active is required"})
		return
	}

	id := domain.ServiceID(c.Param("id"))
	if err := a.store.SetServiceActive(c.Request.Context(), id, *req.Active); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *API) handleListChurches(c *gin.Context) {
	churches, err := a.store.ListChurches(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list churches"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"churches": churches})
}
