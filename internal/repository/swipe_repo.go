package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nameswipe/nameswipe/internal/db"
)

// SwipeRepository is the swipe ledger: the single source of truth for
// current like/dislike facts. Rows are keyed by the
// (user, name, session, is_global) tuple, so every read returns current
// state by construction; there is no history to collapse.
type SwipeRepository struct {
	db *gorm.DB
}

// NewSwipeRepository creates a repository bound to the given DB connection.
func NewSwipeRepository(database *gorm.DB) *SwipeRepository {
	return &SwipeRepository{db: database}
}

// Upsert records the current action for a tuple.
//
// Behavior:
//   - If the tuple exists, action and created_at are overwritten in one
//     statement (last write wins, no partial update).
//   - Otherwise a new row with a fresh id is inserted.
//   - The returned row is re-read so callers always see the durable id and
//     timestamp, making repeated identical calls indistinguishable from one.
//
// sessionID is "" for global swipes.
func (r *SwipeRepository) Upsert(
	ctx context.Context,
	userID, nameID, sessionID, action string,
	isGlobal bool,
) (db.SwipeAction, error) {
	row := db.SwipeAction{
		ID:        uuid.NewString(),
		UserID:    userID,
		NameID:    nameID,
		SessionID: sessionID,
		Action:    action,
		IsGlobal:  isGlobal,
		CreatedAt: time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "name_id"}, {Name: "session_id"}, {Name: "is_global"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"action", "created_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return db.SwipeAction{}, err
	}

	var current db.SwipeAction
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND name_id = ? AND session_id = ? AND is_global = ?",
			userID, nameID, sessionID, isGlobal).
		First(&current).Error
	return current, err
}

// GetByUser returns every current row of a user (global and session-scoped).
func (r *SwipeRepository) GetByUser(ctx context.Context, userID string) ([]db.SwipeAction, error) {
	var actions []db.SwipeAction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&actions).Error
	return actions, err
}

// GetBySession returns every current session-scoped row of a session.
func (r *SwipeRepository) GetBySession(ctx context.Context, sessionID string) ([]db.SwipeAction, error) {
	var actions []db.SwipeAction
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&actions).Error
	return actions, err
}

// GetBySessionAndUser returns one user's current rows within a session.
func (r *SwipeRepository) GetBySessionAndUser(ctx context.Context, sessionID, userID string) ([]db.SwipeAction, error) {
	var actions []db.SwipeAction
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		Order("created_at ASC, id ASC").
		Find(&actions).Error
	return actions, err
}

// SessionIDsLikedBy returns the distinct sessions in which the user has a
// current like. Used by user-match computation.
func (r *SwipeRepository) SessionIDsLikedBy(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&db.SwipeAction{}).
		Distinct("session_id").
		Where("user_id = ? AND action = ? AND session_id <> ''", userID, db.ActionLike).
		Order("session_id ASC").
		Pluck("session_id", &ids).Error
	return ids, err
}
