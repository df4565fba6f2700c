package repository

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nameswipe/nameswipe/internal/db"
)

// shareCodeAlphabet excludes visually ambiguous characters (0/O, 1/I).
const (
	shareCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	shareCodeLength   = 6
	shareCodeRetries  = 5
)

// SessionRepository manages session records and memberships.
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a repository bound to the given DB connection.
func NewSessionRepository(database *gorm.DB) *SessionRepository {
	return &SessionRepository{db: database}
}

// GenerateShareCode returns a human-typable invite code.
func GenerateShareCode() string {
	code := make([]byte, shareCodeLength)
	for i := range code {
		code[i] = shareCodeAlphabet[rand.Intn(len(shareCodeAlphabet))]
	}
	return string(code)
}

// Create inserts a session expiring ttl from now, retrying share-code
// generation on the rare unique-index collision.
func (r *SessionRepository) Create(ctx context.Context, ttl time.Duration) (db.Session, error) {
	now := time.Now().UTC()
	var lastErr error
	for attempt := 0; attempt < shareCodeRetries; attempt++ {
		session := db.Session{
			ID:        uuid.NewString(),
			ShareCode: GenerateShareCode(),
			ExpiresAt: now.Add(ttl),
		}
		if err := r.db.WithContext(ctx).Create(&session).Error; err != nil {
			lastErr = err
			continue
		}
		return session, nil
	}
	return db.Session{}, fmt.Errorf("failed to create session after %d attempts: %w", shareCodeRetries, lastErr)
}

// Get fetches a session by primary id. Expiry is the caller's concern so
// that the distinct expired condition can be surfaced above this layer.
func (r *SessionRepository) Get(ctx context.Context, id string) (db.Session, error) {
	var session db.Session
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	return session, err
}

// GetByShareCode fetches a session by its invite code.
func (r *SessionRepository) GetByShareCode(ctx context.Context, code string) (db.Session, error) {
	var session db.Session
	err := r.db.WithContext(ctx).Where("share_code = ?", code).First(&session).Error
	return session, err
}

// Join adds a user to a session. Idempotent: re-joining an existing member
// leaves the original row (including role and joined_at) untouched and
// returns it.
func (r *SessionRepository) Join(ctx context.Context, sessionID, userID, role string) (db.SessionMember, error) {
	member := db.SessionMember{
		UserID:    userID,
		SessionID: sessionID,
		Role:      role,
		JoinedAt:  time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "session_id"}},
			DoNothing: true,
		}).
		Create(&member).Error
	if err != nil {
		return db.SessionMember{}, err
	}

	var current db.SessionMember
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		First(&current).Error
	return current, err
}

// ListMembers returns a session's memberships in join order.
func (r *SessionRepository) ListMembers(ctx context.Context, sessionID string) ([]db.SessionMember, error) {
	var members []db.SessionMember
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("joined_at ASC, user_id ASC").
		Find(&members).Error
	return members, err
}

// DeleteExpired removes sessions past their expiry along with their
// memberships and session-scoped swipes. Returns the swept session ids so
// callers can drop derived state (cached match sets).
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&db.Session{}).
		Where("expires_at <= ?", now).
		Pluck("id", &ids).Error
	if err != nil || len(ids) == 0 {
		return nil, err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id IN ?", ids).Delete(&db.SwipeAction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id IN ?", ids).Delete(&db.SessionMember{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&db.Session{}).Error
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
