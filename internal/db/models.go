package db

import (
	"encoding/json"
	"time"
)

// Swipe actions.
const (
	ActionLike    = "like"
	ActionDislike = "dislike"
)

// Name genders.
const (
	GenderBoy    = "boy"
	GenderGirl   = "girl"
	GenderUnisex = "unisex"
)

// Membership roles.
const (
	RoleOwner   = "owner"
	RolePartner = "partner"
)

// User owns swipes. The id is opaque; there are no credentials, possession
// of the id is the only form of ownership.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	LastActiveAt time.Time `gorm:"not null" json:"lastActiveAt"`
	Preferences  JSONB     `gorm:"type:json" json:"preferences"`
}

// Session is a time-boxed pairing context. Usable only while now < ExpiresAt;
// expired sessions read as gone and are eligible for sweeping.
type Session struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ShareCode string    `gorm:"uniqueIndex;size:8;not null" json:"shareCode"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionMember links a user to a session.
//
// Composite PK (UserID, SessionID) makes join idempotent: re-joining hits
// the existing row instead of duplicating.
type SessionMember struct {
	UserID    string    `gorm:"primaryKey;size:36" json:"userId"`
	SessionID string    `gorm:"primaryKey;size:36;index" json:"sessionId"`
	Role      string    `gorm:"size:16;not null" json:"role"`
	JoinedAt  time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}

// SwipeAction is one current like/dislike fact.
//
// Unique index idx_swipe_tuple(user_id, name_id, session_id, is_global)
// enforces the one-current-action invariant: a later swipe on the same
// tuple overwrites action and created_at instead of accumulating history.
//
// SessionID uses "" for global swipes rather than NULL so the unique index
// and ON CONFLICT behave identically on every dialect (postgres treats
// NULLs as distinct in unique indexes). The JSON form still emits null.
type SwipeAction struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_swipe_tuple,priority:1"`
	NameID    string    `gorm:"size:64;not null;uniqueIndex:idx_swipe_tuple,priority:2"`
	SessionID string    `gorm:"size:36;not null;default:'';uniqueIndex:idx_swipe_tuple,priority:3;index"`
	Action    string    `gorm:"size:8;not null"`
	IsGlobal  bool      `gorm:"not null;uniqueIndex:idx_swipe_tuple,priority:4"`
	CreatedAt time.Time `gorm:"not null"`
}

// MarshalJSON emits sessionId as null for global rows.
func (s SwipeAction) MarshalJSON() ([]byte, error) {
	var sessionID *string
	if s.SessionID != "" {
		sessionID = &s.SessionID
	}
	return json.Marshal(struct {
		ID        string    `json:"id"`
		UserID    string    `json:"userId"`
		NameID    string    `json:"nameId"`
		SessionID *string   `json:"sessionId"`
		Action    string    `json:"action"`
		IsGlobal  bool      `json:"isGlobal"`
		CreatedAt time.Time `json:"createdAt"`
	}{s.ID, s.UserID, s.NameID, sessionID, s.Action, s.IsGlobal, s.CreatedAt})
}

// BabyName is one catalog record. Seeded once, never mutated afterwards.
type BabyName struct {
	ID       string `gorm:"primaryKey;size:64" json:"id"`
	Name     string `gorm:"size:64;not null" json:"name"`
	Gender   string `gorm:"size:8;not null;index" json:"gender"`
	Origin   string `gorm:"size:64;not null" json:"origin"`
	Meaning  string `gorm:"type:text;not null" json:"meaning"`
	Rank     *int   `json:"rank"`
	Category string `gorm:"size:32;not null" json:"category"`
}
