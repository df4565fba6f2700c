package names

import (
	"context"

	"github.com/nameswipe/nameswipe/internal/app"
	"github.com/nameswipe/nameswipe/internal/db"
	svcErr "github.com/nameswipe/nameswipe/internal/errors"
	"github.com/nameswipe/nameswipe/internal/repository"
	"github.com/nameswipe/nameswipe/internal/utils/pagination"
)

// Service serves the read-only name catalog.
type Service struct {
	appCtx *app.AppContext
	names  *repository.NameRepository
}

// NewService creates the catalog service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx: appCtx,
		names:  repository.NewNameRepository(appCtx.DB),
	}
}

// List returns catalog records for a gender filter, optionally paged.
//
// Filter semantics: "all" returns everything; "boy"/"girl" include unisex
// records. Any other filter is a validation error. Zero limit disables
// paging and returns the full list.
func (s *Service) List(ctx context.Context, gender string, paginationToken *string, limit int) ([]db.BabyName, *string, error) {
	switch gender {
	case "", "all":
		gender = "all"
	case db.GenderBoy, db.GenderGirl:
	default:
		return nil, nil, svcErr.Validationf("invalid gender filter %q", gender)
	}

	// a token the client mangled is their error, not ours
	if paginationToken != nil && *paginationToken != "" {
		if _, err := pagination.Decode(*paginationToken); err != nil {
			return nil, nil, svcErr.Validation("invalid pagination token")
		}
	}

	names, nextToken, err := s.names.ByGender(ctx, gender, paginationToken, limit)
	if err != nil {
		s.appCtx.Logger.Error("catalog list failed", "gender", gender, "err", err)
		return nil, nil, svcErr.Map(err)
	}
	return names, nextToken, nil
}

// Get fetches one catalog record.
func (s *Service) Get(ctx context.Context, id string) (db.BabyName, error) {
	name, err := s.names.ByID(ctx, id)
	if err != nil {
		return db.BabyName{}, svcErr.Map(err)
	}
	return name, nil
}
