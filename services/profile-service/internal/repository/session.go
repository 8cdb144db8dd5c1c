package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/model"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository defines the interface for session storage. Expired sessions are
// never returned; GetSession reports them as ErrSessionNotFound.
type SessionRepository interface {
	// CreateSession assigns an id to the session and stores it until its ExpiresAt.
	CreateSession(ctx context.Context, session *model.Session) (*model.Session, error)

	// GetSession retrieves a live session by id.
	GetSession(ctx context.Context, id string) (*model.Session, error)

	// DeleteSession removes a session. Deleting an unknown session is not an error.
	DeleteSession(ctx context.Context, id string) error
}

type InMemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
	now      func() time.Time
}

func NewInMemorySessionRepository() *InMemorySessionRepository {
	return &InMemorySessionRepository{
		sessions: make(map[string]model.Session),
		now:      time.Now,
	}
}

func (r *InMemorySessionRepository) CreateSession(_ context.Context, session *model.Session) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session.ID = uuid.NewString()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = r.now().UTC()
	}
	r.sessions[session.ID] = *session

	return session, nil
}

func (r *InMemorySessionRepository) GetSession(_ context.Context, id string) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok || session.Expired(r.now()) {
		return nil, ErrSessionNotFound
	}

	return &session, nil
}

func (r *InMemorySessionRepository) DeleteSession(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

// DeleteExpiredSessions removes expired sessions and returns how many were removed.
func (r *InMemorySessionRepository) DeleteExpiredSessions(_ context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, session := range r.sessions {
		if session.Expired(now) {
			delete(r.sessions, id)
			removed++
		}
	}

	return removed
}

// RunJanitor purges expired sessions every interval until ctx is cancelled.
func (r *InMemorySessionRepository) RunJanitor(ctx context.Context, logger *zerolog.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := r.DeleteExpiredSessions(ctx); removed > 0 {
				logger.Debug().Int("removed", removed).Msg("purged expired sessions")
			}
		}
	}
}
