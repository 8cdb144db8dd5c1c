package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/model"
)

const sessionKeyPrefix = "session:"

type sessionRedisRepository struct {
	client *redis.Client
}

// NewSessionRedisRepository stores sessions as JSON values whose Redis TTL matches
// the session expiry, so expired sessions disappear without a janitor.
func NewSessionRedisRepository(client *redis.Client) SessionRepository {
	return &sessionRedisRepository{client: client}
}

func (r *sessionRedisRepository) CreateSession(ctx context.Context, session *model.Session) (*model.Session, error) {
	session.ID = uuid.NewString()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil, errors.New("session already expired")
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}

	if err := r.client.Set(ctx, sessionKeyPrefix+session.ID, payload, ttl).Err(); err != nil {
		return nil, err
	}

	return session, nil
}

func (r *sessionRedisRepository) GetSession(ctx context.Context, id string) (*model.Session, error) {
	payload, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}

	if session.Expired(time.Now()) {
		return nil, ErrSessionNotFound
	}

	return &session, nil
}

func (r *sessionRedisRepository) DeleteSession(ctx context.Context, id string) error {
	return r.client.Del(ctx, sessionKeyPrefix+id).Err()
}
