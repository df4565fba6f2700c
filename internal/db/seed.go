package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedBabyNames loads the embedded catalog. Idempotent: if any record
// exists the call is a no-op, so re-running seeding never duplicates rows.
func SeedBabyNames(database *gorm.DB) (int, error) {
	var count int64
	if err := database.Model(&BabyName{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count baby names: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	names := DefaultCatalog()
	if err := database.CreateInBatches(names, 100).Error; err != nil {
		return 0, fmt.Errorf("failed to seed baby names: %w", err)
	}
	return len(names), nil
}

// SeedDemoData wipes user-generated data and inserts a small deterministic
// dataset: two paired users in one live session with a mutual like on
// "emma" plus a one-sided like on "liam". Catalog rows are left alone.
func SeedDemoData(database *gorm.DB) error {
	for _, table := range []string{"swipe_actions", "session_members", "sessions", "users"} {
		if err := database.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	now := time.Now().UTC()
	alice := User{ID: uuid.NewString(), LastActiveAt: now}
	bob := User{ID: uuid.NewString(), LastActiveAt: now}
	if err := database.Create(&[]User{alice, bob}).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	session := Session{
		ID:        uuid.NewString(),
		ShareCode: "ABCDEF",
		ExpiresAt: now.Add(24 * time.Hour),
	}
	if err := database.Create(&session).Error; err != nil {
		return fmt.Errorf("failed to seed session: %w", err)
	}

	members := []SessionMember{
		{UserID: alice.ID, SessionID: session.ID, Role: RoleOwner},
		{UserID: bob.ID, SessionID: session.ID, Role: RolePartner},
	}
	if err := database.Create(&members).Error; err != nil {
		return fmt.Errorf("failed to seed members: %w", err)
	}

	swipes := []SwipeAction{
		// mutual like on emma: global + session row per user
		{ID: uuid.NewString(), UserID: alice.ID, NameID: "emma", Action: ActionLike, IsGlobal: true, CreatedAt: now},
		{ID: uuid.NewString(), UserID: alice.ID, NameID: "emma", SessionID: session.ID, Action: ActionLike, CreatedAt: now},
		{ID: uuid.NewString(), UserID: bob.ID, NameID: "emma", Action: ActionLike, IsGlobal: true, CreatedAt: now},
		{ID: uuid.NewString(), UserID: bob.ID, NameID: "emma", SessionID: session.ID, Action: ActionLike, CreatedAt: now},
		// one-sided like on liam
		{ID: uuid.NewString(), UserID: alice.ID, NameID: "liam", Action: ActionLike, IsGlobal: true, CreatedAt: now},
		{ID: uuid.NewString(), UserID: alice.ID, NameID: "liam", SessionID: session.ID, Action: ActionLike, CreatedAt: now},
	}
	for _, s := range swipes {
		if err := database.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "name_id"}, {Name: "session_id"}, {Name: "is_global"}},
			DoUpdates: clause.AssignmentColumns([]string{"action", "created_at"}),
		}).Create(&s).Error; err != nil {
			return fmt.Errorf("failed to seed swipe: %w", err)
		}
	}

	return nil
}
