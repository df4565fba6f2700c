package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nameswipe/nameswipe/internal/db"
	"github.com/nameswipe/nameswipe/internal/utils/pagination"
)

// NameRepository reads the seeded catalog. The catalog is immutable at
// runtime, so every method is a plain query.
type NameRepository struct {
	db *gorm.DB
}

// NewNameRepository creates a repository bound to the given DB connection.
func NewNameRepository(database *gorm.DB) *NameRepository {
	return &NameRepository{db: database}
}

// ByGender lists catalog records for a gender filter. Unisex records are
// folded into both the boy and girl filters; "all" returns everything.
// A zero limit returns the full result; otherwise cursor paging applies.
func (r *NameRepository) ByGender(
	ctx context.Context,
	gender string,
	paginationToken *string,
	limit int,
) ([]db.BabyName, *string, error) {
	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).Model(&db.BabyName{}).Order("id ASC")
	if gender != "all" {
		query = query.Where("gender = ? OR gender = ?", gender, db.GenderUnisex)
	}
	if cursor.NameID != "" {
		query = query.Where("id > ?", cursor.NameID)
	}
	if limit > 0 {
		query = query.Limit(limit + 1)
	}

	var names []db.BabyName
	if err := query.Find(&names).Error; err != nil {
		return nil, nil, err
	}

	var nextToken *string
	if limit > 0 && len(names) > limit {
		names = names[:limit]
		token, _ := pagination.Encode(pagination.Cursor{NameID: names[limit-1].ID})
		nextToken = &token
	}

	return names, nextToken, nil
}

// ByID fetches a single catalog record.
func (r *NameRepository) ByID(ctx context.Context, id string) (db.BabyName, error) {
	var name db.BabyName
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&name).Error
	return name, err
}

// ByIDs fetches several catalog records keyed by id, for match enrichment.
func (r *NameRepository) ByIDs(ctx context.Context, ids []string) (map[string]db.BabyName, error) {
	if len(ids) == 0 {
		return map[string]db.BabyName{}, nil
	}
	var names []db.BabyName
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&names).Error; err != nil {
		return nil, err
	}
	out := make(map[string]db.BabyName, len(names))
	for _, n := range names {
		out[n.ID] = n
	}
	return out, nil
}

// Exists reports whether a catalog id is known.
func (r *NameRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db.BabyName{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
