// Package store provides the in-memory implementation of core.Store.
// Durable persistence stays behind the interface; the wall product runs
// sessions that live for one service, so process memory is the default
// backing.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/parishnet/videowall/internal/core"
	"github.com/parishnet/videowall/internal/domain"
)

// Memory is a threadsafe in-memory store. Its mutex incidentally makes
// the count-then-record admission sequence strict, but callers must not
// rely on that: the contract stays best-effort.
type Memory struct {
	mu        sync.RWMutex
	services  map[domain.ServiceID]*domain.Service
	byCode    map[domain.SessionCode]domain.ServiceID
	churches  map[domain.ChurchID]*domain.Church
	sessions  map[domain.SessionID]*domain.Session
	churchSeq int
}

func NewMemory() *Memory {
	return &Memory{
		services: make(map[domain.ServiceID]*domain.Service),
		byCode:   make(map[domain.SessionCode]domain.ServiceID),
		churches: make(map[domain.ChurchID]*domain.Church),
		sessions: make(map[domain.SessionID]*domain.Session),
	}
}

var _ core.Store = (*Memory)(nil)

func (m *Memory) ServiceByCode(_ context.Context, code domain.SessionCode) (*domain.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byCode[code]
	if !ok {
		return nil, core.ErrServiceNotFound
	}
	svc := *m.services[id]
	return &svc, nil
}

// FindOrCreateChurch matches case-insensitively; churches type their own
// names and "St. Mary's" must not fork into three records.
func (m *Memory) FindOrCreateChurch(_ context.Context, name string) (*domain.Church, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.churches {
		if strings.EqualFold(ch.Name, name) {
			c := *ch
			return &c, nil
		}
	}
	m.churchSeq++
	ch, err := domain.NewChurch(name, m.churchSeq)
	if err != nil {
		return nil, err
	}
	m.churches[ch.ID] = ch
	log.Info().Str("module", "store").Str("church", ch.Name).Str("code", ch.Code).Msg("church created")
	c := *ch
	return &c, nil
}

func (m *Memory) CountActiveSessions(_ context.Context, serviceID domain.ServiceID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, s := range m.sessions {
		if s.ServiceID == serviceID && s.Active {
			n++
		}
	}
	return n, nil
}

func (m *Memory) ActiveSession(_ context.Context, churchID domain.ChurchID, serviceID domain.ServiceID) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sessions {
		if s.ChurchID == churchID && s.ServiceID == serviceID && s.Active {
			sess := *s
			return &sess, nil
		}
	}
	return nil, core.ErrSessionNotFound
}

func (m *Memory) RecordJoin(_ context.Context, churchID domain.ChurchID, serviceID domain.ServiceID) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := domain.NewSession(churchID, serviceID)
	m.sessions[s.ID] = s
	log.Info().Str("module", "store").Str("session", string(s.ID)).Str("church", string(churchID)).Msg("join recorded")
	sess := *s
	return &sess, nil
}

func (m *Memory) RecordLeave(_ context.Context, sessionID domain.SessionID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return core.ErrSessionNotFound
	}
	s.Close()
	log.Info().Str("module", "store").Str("session", string(sessionID)).Msg("leave recorded")
	return nil
}

func (m *Memory) CreateService(_ context.Context, name string, maxChurches int) (*domain.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	svc, err := domain.NewService(name, maxChurches)
	if err != nil {
		return nil, err
	}
	// Session codes are random; regenerate on the rare collision.
	for {
		if _, taken := m.byCode[svc.SessionCode]; !taken {
			break
		}
		svc.SessionCode = domain.NewSessionCode()
	}
	m.services[svc.ID] = svc
	m.byCode[svc.SessionCode] = svc.ID
	log.Info().Str("module", "store").Str("service", svc.Name).Str("code", string(svc.SessionCode)).Msg("service created")
	s := *svc
	return &s, nil
}

func (m *Memory) ListServices(_ context.Context) ([]*domain.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Service, 0, len(m.services))
	for _, svc := range m.services {
		s := *svc
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) SetServiceActive(_ context.Context, id domain.ServiceID, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	svc, ok := m.services[id]
	if !ok {
		return core.ErrServiceNotFound
	}
	svc.Active = active
	return nil
}

func (m *Memory) ListChurches(_ context.Context) ([]*domain.Church, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Church, 0, len(m.churches))
	for _, ch := range m.churches {
		c := *ch
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
