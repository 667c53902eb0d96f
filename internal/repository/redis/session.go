package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/database"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

const keyPrefix = "session:"

// SessionRepository implements repository.SessionRepository using Redis.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository creates a Redis-backed session repository.
// A zero ttl stores sessions without expiry.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves a session by ID from Redis.
func (r *SessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	ctx, end := database.TraceCommand(ctx, "session.get", "GET")
	data, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			end(nil)
			return nil, apperrors.NotFound("session", id)
		}
		end(err)
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	end(nil)

	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return &s, nil
}

// Save persists a session to Redis with the configured TTL.
func (r *SessionRepository) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ctx, end := database.TraceCommand(ctx, "session.save", "SET")
	err = r.client.Set(ctx, keyPrefix+session.ID, data, r.ttl).Err()
	end(err)
	if err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}

	return nil
}

// Delete removes a session from Redis.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	ctx, end := database.TraceCommand(ctx, "session.delete", "DEL")
	err := r.client.Del(ctx, keyPrefix+id).Err()
	end(err)
	if err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}

// Ping checks Redis connectivity.
func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
