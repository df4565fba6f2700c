package sessions

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/nameswipe/nameswipe/internal/app"
	"github.com/nameswipe/nameswipe/internal/db"
	svcErr "github.com/nameswipe/nameswipe/internal/errors"
	"github.com/nameswipe/nameswipe/internal/realtime"
	"github.com/nameswipe/nameswipe/internal/repository"
)

// Service manages pairing sessions and memberships.
type Service struct {
	appCtx   *app.AppContext
	sessions *repository.SessionRepository
	users    *repository.UserRepository
	hub      *realtime.Hub
	ttl      time.Duration
}

// NewService creates the session service with dependencies from AppContext.
// hub may be nil in poll mode; it is only used to evict connections of
// swept sessions.
func NewService(appCtx *app.AppContext, hub *realtime.Hub, ttl time.Duration) *Service {
	return &Service{
		appCtx:   appCtx,
		sessions: repository.NewSessionRepository(appCtx.DB),
		users:    repository.NewUserRepository(appCtx.DB),
		hub:      hub,
		ttl:      ttl,
	}
}

// Create starts a new session expiring TTL from now. When ownerID is given
// that user is auto-joined with the owner role.
func (s *Service) Create(ctx context.Context, ownerID string) (db.Session, []db.SessionMember, error) {
	if ownerID != "" {
		known, err := s.users.Exists(ctx, ownerID)
		if err != nil {
			return db.Session{}, nil, svcErr.Map(err)
		}
		if !known {
			return db.Session{}, nil, svcErr.NotFound("user not found")
		}
	}

	session, err := s.sessions.Create(ctx, s.ttl)
	if err != nil {
		s.appCtx.Logger.Error("session create failed", "err", err)
		return db.Session{}, nil, svcErr.Map(err)
	}

	var members []db.SessionMember
	if ownerID != "" {
		member, err := s.sessions.Join(ctx, session.ID, ownerID, db.RoleOwner)
		if err != nil {
			return db.Session{}, nil, svcErr.Map(err)
		}
		members = append(members, member)
	}

	s.appCtx.Logger.Info("session created", "session_id", session.ID, "share_code", session.ShareCode)
	return session, members, nil
}

// Get returns a live session with its members. Expired sessions read as
// gone, unknown ones as not found.
func (s *Service) Get(ctx context.Context, id string) (db.Session, []db.SessionMember, error) {
	return s.fetchLive(ctx, func() (db.Session, error) {
		return s.sessions.Get(ctx, id)
	})
}

// GetByShareCode is Get keyed by the invite code.
func (s *Service) GetByShareCode(ctx context.Context, code string) (db.Session, []db.SessionMember, error) {
	return s.fetchLive(ctx, func() (db.Session, error) {
		return s.sessions.GetByShareCode(ctx, code)
	})
}

// RequireLive returns the session if it exists and has not expired.
// Other components (the swipe path, the events stream) gate on this.
func (s *Service) RequireLive(ctx context.Context, id string) (db.Session, error) {
	session, err := s.sessions.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Session{}, svcErr.NotFound("session not found")
	}
	if err != nil {
		return db.Session{}, svcErr.Map(err)
	}
	if session.Expired(time.Now().UTC()) {
		return db.Session{}, svcErr.Expired("session expired")
	}
	return session, nil
}

// Join adds a user to a live session with the partner role. Idempotent:
// re-joining returns the existing membership unchanged.
func (s *Service) Join(ctx context.Context, sessionID, userID string) (db.SessionMember, error) {
	if userID == "" {
		return db.SessionMember{}, svcErr.Validation("userId is required")
	}
	if _, err := s.RequireLive(ctx, sessionID); err != nil {
		return db.SessionMember{}, err
	}
	known, err := s.users.Exists(ctx, userID)
	if err != nil {
		return db.SessionMember{}, svcErr.Map(err)
	}
	if !known {
		return db.SessionMember{}, svcErr.NotFound("user not found")
	}

	member, err := s.sessions.Join(ctx, sessionID, userID, db.RolePartner)
	if err != nil {
		s.appCtx.Logger.Error("session join failed", "session_id", sessionID, "user_id", userID, "err", err)
		return db.SessionMember{}, svcErr.Map(err)
	}
	return member, nil
}

// ListMembers returns memberships of a live session.
func (s *Service) ListMembers(ctx context.Context, sessionID string) ([]db.SessionMember, error) {
	members, err := s.sessions.ListMembers(ctx, sessionID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return members, nil
}

// DeleteExpired sweeps sessions past their expiry and drops derived state:
// cached match sets and any still-registered hub connections.
func (s *Service) DeleteExpired(ctx context.Context) error {
	swept, err := s.sessions.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return svcErr.Map(err)
	}
	for _, sessionID := range swept {
		if s.hub != nil {
			s.hub.DropSession(sessionID)
		}
		if err := s.appCtx.RedisCache.DropSessionMatches(ctx, sessionID); err != nil {
			s.appCtx.Logger.Warn("failed to drop cached match set", "session_id", sessionID, "err", err)
		}
	}
	if len(swept) > 0 {
		s.appCtx.Logger.Info("swept expired sessions", "count", len(swept))
	}
	return nil
}

// StartSweeper runs DeleteExpired on the given interval until ctx is done.
// Sweep failures are logged, never fatal.
func (s *Service) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.DeleteExpired(ctx); err != nil {
					s.appCtx.Logger.Error("expired session sweep failed", "err", err)
				}
			}
		}
	}()
}

func (s *Service) fetchLive(ctx context.Context, fetch func() (db.Session, error)) (db.Session, []db.SessionMember, error) {
	session, err := fetch()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Session{}, nil, svcErr.NotFound("session not found")
	}
	if err != nil {
		return db.Session{}, nil, svcErr.Map(err)
	}
	if session.Expired(time.Now().UTC()) {
		return db.Session{}, nil, svcErr.Expired("session expired")
	}

	members, err := s.sessions.ListMembers(ctx, session.ID)
	if err != nil {
		return db.Session{}, nil, svcErr.Map(err)
	}
	return session, members, nil
}
