package repository

import (
	"context"

	"github.com/utafrali/storefront/internal/domain"
)

// SessionRepository defines the interface for session persistence operations.
type SessionRepository interface {
	// Get retrieves a session by ID. Returns an apperrors not-found error when absent.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// Save persists a session, overwriting any existing record with the same ID.
	Save(ctx context.Context, session *domain.Session) error

	// Delete removes a session by ID. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
}
