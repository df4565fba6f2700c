package users

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nameswipe/nameswipe/internal/app"
	"github.com/nameswipe/nameswipe/internal/db"
	svcErr "github.com/nameswipe/nameswipe/internal/errors"
	"github.com/nameswipe/nameswipe/internal/repository"
)

// Service manages user records.
type Service struct {
	appCtx *app.AppContext
	users  *repository.UserRepository
}

// NewService creates the user service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx: appCtx,
		users:  repository.NewUserRepository(appCtx.DB),
	}
}

// Create issues a new user with an optional preferences blob.
func (s *Service) Create(ctx context.Context, preferences db.JSONB) (db.User, error) {
	user, err := s.users.Create(ctx, preferences)
	if err != nil {
		s.appCtx.Logger.Error("user create failed", "err", err)
		return db.User{}, svcErr.Map(err)
	}
	return user, nil
}

// Get fetches a user and touches last_active_at, since every fetch counts as
// activity since possession of the id is the only ownership proof.
func (s *Service) Get(ctx context.Context, id string) (db.User, error) {
	user, err := s.users.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.User{}, svcErr.NotFound("user not found")
	}
	if err != nil {
		return db.User{}, svcErr.Map(err)
	}

	if err := s.users.TouchLastActive(ctx, id); err != nil {
		s.appCtx.Logger.Warn("failed to touch last_active_at", "user_id", id, "err", err)
	}
	return user, nil
}
