package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// eventTimeout bounds a single background event publish.
const eventTimeout = 5 * time.Second

// LoginInput holds the login form values. Username and Password are accepted
// but never checked.
type LoginInput struct {
	Username string
	Password string
	Role     domain.Role
}

// SessionService implements the session lifecycle: resolve, login and logout.
type SessionService struct {
	repo    repository.SessionRepository
	events  *event.Producer
	logger  *slog.Logger
	nowFunc func() time.Time
	newID   func() string

	pending sync.WaitGroup
}

// NewSessionService creates a new SessionService.
func NewSessionService(repo repository.SessionRepository, events *event.Producer, logger *slog.Logger) *SessionService {
	return &SessionService{
		repo:    repo,
		events:  events,
		logger:  logger,
		nowFunc: func() time.Time { return time.Now().UTC() },
		newID:   func() string { return uuid.New().String() },
	}
}

// Resolve returns the session stored under id. Unknown ids, malformed records and
// store failures all resolve to an anonymous session.
func (s *SessionService) Resolve(ctx context.Context, id string) domain.Session {
	sess, _ := s.Lookup(ctx, id)
	return sess
}

// Lookup is Resolve for callers that must tell a missing session from an
// unreachable store. The error is non-nil only when the store failed; the
// returned session is then anonymous for this request but may still exist.
func (s *SessionService) Lookup(ctx context.Context, id string) (domain.Session, error) {
	if id == "" {
		return domain.Session{}, nil
	}

	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.Session{}, nil
		}
		s.logger.WarnContext(ctx, "session lookup failed, treating visitor as anonymous",
			slog.String("session_id", id),
			slog.String("error", err.Error()),
		)
		return domain.Session{}, err
	}
	return *sess, nil
}

// Login stores the selected role in a fresh session and returns it. The previous
// session named by currentID, if any, is discarded.
func (s *SessionService) Login(ctx context.Context, currentID string, input LoginInput) (*domain.Session, error) {
	if !input.Role.IsSet() {
		return nil, apperrors.InvalidInput("role must be one of Admin, Vendor, Customer")
	}

	previous := s.Resolve(ctx, currentID)

	now := s.nowFunc()
	sess := &domain.Session{
		ID:        s.newID(),
		Role:      input.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, apperrors.Wrap(err, "save session")
	}

	if previous.Exists() {
		if err := s.repo.Delete(ctx, previous.ID); err != nil {
			s.logger.WarnContext(ctx, "failed to delete replaced session",
				slog.String("session_id", previous.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "session started",
		slog.String("session_id", sess.ID),
		slog.String("role", sess.Role.String()),
	)

	started := *sess
	s.background(ctx, "session.started", func(ctx context.Context) error {
		return s.events.PublishSessionStarted(ctx, &started, previous.Role)
	})

	return sess, nil
}

// Logout removes the session named by id. Logging out without a session is a no-op.
func (s *SessionService) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	sess := s.Resolve(ctx, id)
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Wrap(err, "delete session")
	}
	if !sess.Exists() {
		return nil
	}

	s.logger.InfoContext(ctx, "session ended",
		slog.String("session_id", sess.ID),
		slog.String("role", sess.Role.String()),
	)

	s.background(ctx, "session.ended", func(ctx context.Context) error {
		return s.events.PublishSessionEnded(ctx, &sess)
	})
	return nil
}

// Ping reports whether the session store is reachable.
func (s *SessionService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// Wait blocks until all background event publishes have finished.
func (s *SessionService) Wait() {
	s.pending.Wait()
}

// background runs fn detached from the request so event delivery never delays
// the response. Errors are logged and dropped.
func (s *SessionService) background(ctx context.Context, name string, fn func(context.Context) error) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), eventTimeout)
		defer cancel()

		if err := fn(pubCtx); err != nil {
			s.logger.WarnContext(pubCtx, "failed to publish session event",
				slog.String("event", name),
				slog.String("error", err.Error()),
			)
		}
	}()
}
