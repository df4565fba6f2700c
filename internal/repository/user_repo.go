package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nameswipe/nameswipe/internal/db"
)

// UserRepository manages user rows. There is no credential handling:
// users are opaque ids owned by whoever holds them.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a repository bound to the given DB connection.
func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

// Create inserts a user with a fresh id and an optional preferences blob.
func (r *UserRepository) Create(ctx context.Context, preferences db.JSONB) (db.User, error) {
	user := db.User{
		ID:           uuid.NewString(),
		LastActiveAt: time.Now().UTC(),
		Preferences:  preferences,
	}
	err := r.db.WithContext(ctx).Create(&user).Error
	return user, err
}

// Get fetches a user by id.
func (r *UserRepository) Get(ctx context.Context, id string) (db.User, error) {
	var user db.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	return user, err
}

// Exists reports whether a user id is known.
func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// TouchLastActive stamps last_active_at; called on every authenticated
// action per the activity-tracking contract.
func (r *UserRepository) TouchLastActive(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("id = ?", id).
		Update("last_active_at", time.Now().UTC()).Error
}
