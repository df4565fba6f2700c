package swipes

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/nameswipe/nameswipe/internal/app"
	"github.com/nameswipe/nameswipe/internal/db"
	svcErr "github.com/nameswipe/nameswipe/internal/errors"
	"github.com/nameswipe/nameswipe/internal/matching"
	"github.com/nameswipe/nameswipe/internal/realtime"
	"github.com/nameswipe/nameswipe/internal/repository"
)

// presenceTTL bounds how long a swipe counts as "recent activity" for the
// poll-mode liveness proxy.
const presenceTTL = 30 * time.Second

// SessionMatchView is a session match enriched with the catalog record.
type SessionMatchView struct {
	NameID string       `json:"nameId"`
	Users  []string     `json:"users"`
	Name   *db.BabyName `json:"name"`
}

// UserMatchView is a user match enriched with the catalog record.
type UserMatchView struct {
	NameID    string       `json:"nameId"`
	MatchType string       `json:"matchType"`
	SessionID *string      `json:"sessionId,omitempty"`
	Name      *db.BabyName `json:"name"`
}

// Service owns the swipe write path and the match read paths.
type Service struct {
	appCtx   *app.AppContext
	swipes   *repository.SwipeRepository
	sessions *repository.SessionRepository
	users    *repository.UserRepository
	names    *repository.NameRepository
	engine   *matching.Engine
	notifier realtime.Notifier
}

// NewService creates the swipe service with dependencies from AppContext.
func NewService(appCtx *app.AppContext, notifier realtime.Notifier) *Service {
	swipeRepo := repository.NewSwipeRepository(appCtx.DB)
	return &Service{
		appCtx:   appCtx,
		swipes:   swipeRepo,
		sessions: repository.NewSessionRepository(appCtx.DB),
		users:    repository.NewUserRepository(appCtx.DB),
		names:    repository.NewNameRepository(appCtx.DB),
		engine:   matching.NewEngine(swipeRepo),
		notifier: notifier,
	}
}

// Engine exposes the match engine for read-path callers.
func (s *Service) Engine() *matching.Engine { return s.engine }

// RecordSwipe applies one swipe.
//
// Behavior:
//   - action must be like/dislike and nameId must reference a catalog
//     record, otherwise validation fails.
//   - userId must exist; a session, when given, must exist and be live.
//   - Without a session one global row is upserted. With a session two
//     rows are upserted with the same action: the global row carrying the
//     standing personal preference and the session-scoped vote.
//   - The acting user's last_active_at and session liveness key are
//     touched, the session's match set is reconciled, and the notifier is
//     told about the swipe plus any names that just became matches.
//
// Returns the current rows (one or two) after the write.
func (s *Service) RecordSwipe(ctx context.Context, userID, nameID, action, sessionID string) ([]db.SwipeAction, error) {
	if action != db.ActionLike && action != db.ActionDislike {
		return nil, svcErr.Validationf("action must be %q or %q", db.ActionLike, db.ActionDislike)
	}
	if userID == "" || nameID == "" {
		return nil, svcErr.Validation("userId and nameId are required")
	}

	known, err := s.names.Exists(ctx, nameID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if !known {
		return nil, svcErr.Validationf("unknown name %q", nameID)
	}

	userKnown, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if !userKnown {
		return nil, svcErr.NotFound("user not found")
	}

	if sessionID != "" {
		if _, err := s.requireLiveSession(ctx, sessionID); err != nil {
			return nil, err
		}
	}

	// both rows commit or neither: a failure between the global and the
	// session-scoped write must not leave the pair with divergent actions
	var rows []db.SwipeAction
	err = s.appCtx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ledger := repository.NewSwipeRepository(tx)
		global, err := ledger.Upsert(ctx, userID, nameID, "", action, true)
		if err != nil {
			return err
		}
		rows = append(rows, global)

		if sessionID != "" {
			scoped, err := ledger.Upsert(ctx, userID, nameID, sessionID, action, false)
			if err != nil {
				return err
			}
			rows = append(rows, scoped)
		}
		return nil
	})
	if err != nil {
		s.appCtx.Logger.Error("swipe upsert failed",
			"user_id", userID, "name_id", nameID, "session_id", sessionID, "err", err)
		return nil, svcErr.Map(err)
	}

	if err := s.users.TouchLastActive(ctx, userID); err != nil {
		s.appCtx.Logger.Warn("failed to touch last_active_at", "user_id", userID, "err", err)
	}

	if sessionID != "" {
		s.afterSessionSwipe(ctx, sessionID, userID, nameID, action)
	}

	return rows, nil
}

// afterSessionSwipe reconciles the match set and notifies. Failures here
// are logged, not returned: the ledger write already succeeded and polling
// clients converge on the next read.
func (s *Service) afterSessionSwipe(ctx context.Context, sessionID, userID, nameID, action string) {
	if err := s.appCtx.RedisCache.MarkActive(ctx, sessionID, userID, presenceTTL); err != nil {
		s.appCtx.Logger.Warn("failed to mark presence", "session_id", sessionID, "err", err)
	}

	matches, err := s.engine.ComputeSessionMatches(ctx, sessionID)
	if err != nil {
		s.appCtx.Logger.Error("match recomputation failed", "session_id", sessionID, "err", err)
		return
	}
	current := make([]string, len(matches))
	for i, m := range matches {
		current[i] = m.NameID
	}

	newMatches, err := s.appCtx.RedisCache.SyncSessionMatches(ctx, sessionID, current)
	if err != nil {
		s.appCtx.Logger.Error("match set sync failed", "session_id", sessionID, "err", err)
		newMatches = nil
	}

	s.notifier.SwipeRecorded(sessionID, userID, nameID, action, newMatches)
}

// ListForSessionAndUser returns a user's current rows within a live session.
func (s *Service) ListForSessionAndUser(ctx context.Context, sessionID, userID string) ([]db.SwipeAction, error) {
	if _, err := s.requireLiveSession(ctx, sessionID); err != nil {
		return nil, err
	}
	actions, err := s.swipes.GetBySessionAndUser(ctx, sessionID, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return actions, nil
}

// SessionMatches computes a live session's matches, enriched with catalog
// records.
func (s *Service) SessionMatches(ctx context.Context, sessionID string) ([]SessionMatchView, error) {
	if _, err := s.requireLiveSession(ctx, sessionID); err != nil {
		return nil, err
	}

	matches, err := s.engine.ComputeSessionMatches(ctx, sessionID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	records, err := s.nameRecords(ctx, func(yield func(string)) {
		for _, m := range matches {
			yield(m.NameID)
		}
	})
	if err != nil {
		return nil, err
	}

	views := make([]SessionMatchView, len(matches))
	for i, m := range matches {
		views[i] = SessionMatchView{NameID: m.NameID, Users: m.Users, Name: records[m.NameID]}
	}
	return views, nil
}

// UserMatches computes a user's personal and session matches, enriched
// with catalog records.
func (s *Service) UserMatches(ctx context.Context, userID string) ([]UserMatchView, error) {
	known, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if !known {
		return nil, svcErr.NotFound("user not found")
	}

	matches, err := s.engine.ComputeUserMatches(ctx, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	records, err := s.nameRecords(ctx, func(yield func(string)) {
		for _, m := range matches {
			yield(m.NameID)
		}
	})
	if err != nil {
		return nil, err
	}

	views := make([]UserMatchView, len(matches))
	for i, m := range matches {
		var sessionID *string
		if m.SessionID != "" {
			sid := m.SessionID
			sessionID = &sid
		}
		views[i] = UserMatchView{
			NameID:    m.NameID,
			MatchType: m.MatchType,
			SessionID: sessionID,
			Name:      records[m.NameID],
		}
	}
	return views, nil
}

func (s *Service) requireLiveSession(ctx context.Context, sessionID string) (db.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
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

func (s *Service) nameRecords(ctx context.Context, each func(yield func(string))) (map[string]*db.BabyName, error) {
	var ids []string
	seen := map[string]bool{}
	each(func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	})

	fetched, err := s.names.ByIDs(ctx, ids)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	records := make(map[string]*db.BabyName, len(fetched))
	for id := range fetched {
		record := fetched[id]
		records[id] = &record
	}
	return records, nil
}
