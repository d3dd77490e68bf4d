package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/parishnet/videowall/internal/core"
	"github.com/parishnet/videowall/internal/domain"
)

type credentialRequest struct {
	Code string `json:"code" binding:"required"`
	// Role is "wall" for a hidden grid viewer or "church" for a publisher.
	Role     string `json:"role" binding:"required"`
	ChurchID string `json:"churchId"`
	Name     string `json:"name"`
}

type CredentialResponse struct {
	Identity    core.ParticipantID `json:"identity"`
	Room        string             `json:"room"`
	Credential  string             `json:"credential"`
	ProviderURL string             `json:"providerUrl"`
}

// handleCredential issues a join credential for an already-admitted
// participant. Wall viewers get a receive-only grant under a synthetic
// identity so publishers never render them as tiles.
func (a *API) handleCredential(c *gin.Context) {
	var req credentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code and role are required"})
		return
	}

	code, err := domain.ParseSessionCode(req.Code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session code"})
		return
	}

	svc, err := a.store.ServiceByCode(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}
	if !svc.Active {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Service is not active"})
		return
	}

	var (
		identity   core.ParticipantID
		name       string
		canPublish bool
	)
	switch req.Role {
	case "wall":
		identity = core.ParticipantID(core.ViewerIdentityPrefix + uuid.NewString())
		name = "Video Wall"
		canPublish = false
	case "church":
		if req.ChurchID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "churchId is required for role church"})
			return
		}
		identity = core.ParticipantID(req.ChurchID)
		name = req.Name
		canPublish = true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be wall or church"})
		return
	}

	cred, err := a.issuer.Issue(string(svc.ID), identity, name, canPublish, !canPublish)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue credential"})
		return
	}

	c.JSON(http.StatusOK, CredentialResponse{
		Identity:    identity,
		Room:        string(svc.ID),
		Credential:  cred,
		ProviderURL: a.cfg.ProviderURL,
	})
}
