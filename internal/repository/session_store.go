package repository

import (
	"context"
	"sync"
	"time"

	"stylebot/internal/domain"
	"stylebot/internal/service"
)

// InMemorySessionStore guarda las sesiones activas en memoria. Las
// sesiones son estado del proceso: no sobreviven un reinicio. Un barrido
// opcional expira las sesiones viejas para acotar la memoria.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	maxAge   time.Duration
}

type sessionEntry struct {
	session  *domain.ChatSession
	lastSeen time.Time
}

func NewInMemorySessionStore(maxAge time.Duration) *InMemorySessionStore {
	return &InMemorySessionStore{
		sessions: make(map[string]*sessionEntry),
		maxAge:   maxAge,
	}
}

func (s *InMemorySessionStore) Create(ctx context.Context, session *domain.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = &sessionEntry{session: session, lastSeen: time.Now().UTC()}
	return nil
}

func (s *InMemorySessionStore) Get(ctx context.Context, id string) (*domain.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok {
		return nil, service.ErrSessionNotFound
	}
	entry.lastSeen = time.Now().UTC()
	return entry.session, nil
}

// Sweep elimina las sesiones sin actividad por mas de maxAge y devuelve
// cuantas se eliminaron. Con maxAge cero no expira nada.
func (s *InMemorySessionStore) Sweep() int {
	if s.maxAge <= 0 {
		return 0
	}
	cutoff := time.Now().UTC().Add(-s.maxAge)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, entry := range s.sessions {
		if entry.lastSeen.Before(cutoff) && !entry.session.Busy() {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper corre Sweep periodicamente hasta que el contexto termine.
func (s *InMemorySessionStore) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

// Len devuelve la cantidad de sesiones activas.
func (s *InMemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
