package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/parishnet/videowall/internal/adapters/store"
	"github.com/parishnet/videowall/internal/adapters/token"
	"github.com/parishnet/videowall/internal/config"
	"github.com/parishnet/videowall/internal/domain"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Memory, *token.Issuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Mode:          "release",
		Secret:        "test-secret",
		AdminPassword: "hunter2",
		ProviderURL:   "ws://provider.test/signal",
		Limits: config.LimitsConfig{
			AuthPerWindow:    100,
			AuthWindow:       time.Minute,
			SessionPerWindow: 100,
			SessionWindow:    time.Minute,
			APIPerWindow:     1000,
			APIWindow:        time.Minute,
		},
	}
	db := store.NewMemory()
	issuer := token.NewIssuer(cfg.Secret, time.Hour)
	return SetupRouter(cfg, db, issuer), db, issuer
}

func doJSON(r *gin.Engine, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJoinAdmitsUpToCapacityAndReusesSeats(t *testing.T) {
	r, db, issuer := newTestRouter(t)
	svc, err := db.CreateService(t.Context(), "Sunday Evening", 1)
	require.NoError(t, err)

	w := doJSON(r, http.MethodPost, "/api/session/join", gin.H{
		"code": string(svc.SessionCode), "churchName": "Agape",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var join JoinResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &join))
	require.NotEmpty(t, join.SessionID)
	require.Equal(t, string(svc.ID), join.Room)
	require.Equal(t, "ws://provider.test/signal", join.ProviderURL)

	claims, err := issuer.Verify(join.Credential)
	require.NoError(t, err)
	require.Equal(t, string(join.Church.ID), claims.Identity)
	require.True(t, claims.CanPublish)
	require.False(t, claims.CanSubscribe)

	// Capacity 1 is exhausted for a second church.
	w = doJSON(r, http.MethodPost, "/api/session/join", gin.H{
		"code": string(svc.SessionCode), "churchName": "Bethel",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Service has reached maximum capacity")

	// The already-seated church rejoins its own session freely.
	w = doJSON(r, http.MethodPost, "/api/session/join", gin.H{
		"code": string(svc.SessionCode), "churchName": "Agape",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var rejoin JoinResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rejoin))
	require.Equal(t, join.SessionID, rejoin.SessionID)
}

func TestJoinValidation(t *testing.T) {
	r, db, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/session/join", gin.H{"code": "O0!", "churchName": "Agape"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/session/join", gin.H{"code": "ABCDEF", "churchName": "Agape"})
	require.Equal(t, http.StatusNotFound, w.Code)

	svc, err := db.CreateService(t.Context(), "Sunday Evening", 5)
	require.NoError(t, err)
	require.NoError(t, db.SetServiceActive(t.Context(), svc.ID, false))
	w = doJSON(r, http.MethodPost, "/api/session/join", gin.H{
		"code": string(svc.SessionCode), "churchName": "Agape",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "not active")
}

func TestLeaveClosesSession(t *testing.T) {
	r, db, _ := newTestRouter(t)
	svc, err := db.CreateService(t.Context(), "Sunday Evening", 5)
	require.NoError(t, err)

	w := doJSON(r, http.MethodPost, "/api/session/join", gin.H{
		"code": string(svc.SessionCode), "churchName": "Agape",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var join JoinResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &join))

	w = doJSON(r, http.MethodPost, "/api/session/leave", gin.H{"sessionId": string(join.SessionID)})
	require.Equal(t, http.StatusOK, w.Code)

	count, err := db.CountActiveSessions(t.Context(), svc.ID)
	require.NoError(t, err)
	require.Equal(t, 0, count)

	w = doJSON(r, http.MethodPost, "/api/session/leave", gin.H{"sessionId": "missing"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestServiceInfoReportsActiveCount(t *testing.T) {
	r, db, _ := newTestRouter(t)
	svc, err := db.CreateService(t.Context(), "Sunday Evening", 5)
	require.NoError(t, err)

	church, err := db.FindOrCreateChurch(t.Context(), "Agape")
	require.NoError(t, err)
	_, err = db.RecordJoin(t.Context(), church.ID, svc.ID)
	require.NoError(t, err)

	w := doJSON(r, http.MethodGet, "/api/service/"+string(svc.SessionCode), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var info ServiceInfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	require.Equal(t, svc.ID, info.Service.ID)
	require.Equal(t, 1, info.ActiveCount)
}

func TestWallCredentialIsReceiveOnlyViewer(t *testing.T) {
	r, db, issuer := newTestRouter(t)
	svc, err := db.CreateService(t.Context(), "Sunday Evening", 5)
	require.NoError(t, err)

	w := doJSON(r, http.MethodPost, "/api/credential", gin.H{
		"code": string(svc.SessionCode), "role": "wall",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var cred CredentialResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cred))
	require.True(t, cred.Identity.IsViewer())
	require.Equal(t, string(svc.ID), cred.Room)

	claims, err := issuer.Verify(cred.Credential)
	require.NoError(t, err)
	require.False(t, claims.CanPublish)
	require.True(t, claims.CanSubscribe)
}

func TestCredentialRejectsUnknownRole(t *testing.T) {
	r, db, _ := newTestRouter(t)
	svc, err := db.CreateService(t.Context(), "Sunday Evening", 5)
	require.NoError(t, err)

	w := doJSON(r, http.MethodPost, "/api/credential", gin.H{
		"code": string(svc.SessionCode), "role": "spectator",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminEndpointsRequireLogin(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/admin/services", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/admin/login", gin.H{"password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminServiceManagement(t *testing.T) {
	r, db, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/admin/login", gin.H{"password": "hunter2"})
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = doJSON(r, http.MethodPost, "/api/admin/services", gin.H{
		"name": "Sunday Evening", "maxChurches": 12,
	}, cookies...)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Service domain.Service `json:"service"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, 12, created.Service.MaxChurches)
	require.Len(t, string(created.Service.SessionCode), domain.SessionCodeLength)

	path := fmt.Sprintf("/api/admin/services/%s/active", created.Service.ID)
	w = doJSON(r, http.MethodPatch, path, gin.H{"active": false}, cookies...)
	require.Equal(t, http.StatusOK, w.Code)

	svc, err := db.ServiceByCode(t.Context(), created.Service.SessionCode)
	require.NoError(t, err)
	require.False(t, svc.Active)

	w = doJSON(r, http.MethodGet, "/api/admin/dashboard", nil, cookies...)
	require.Equal(t, http.StatusOK, w.Code)
	var dash struct {
		Services       int `json:"services"`
		ActiveServices int `json:"activeServices"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dash))
	require.Equal(t, 1, dash.Services)
	require.Equal(t, 0, dash.ActiveServices)
}
