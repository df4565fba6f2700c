package matching

import (
	"context"
	"sort"

	"github.com/nameswipe/nameswipe/internal/db"
	"github.com/nameswipe/nameswipe/internal/repository"
)

// Match types for user-level results.
const (
	MatchTypePersonal = "personal"
	MatchTypeSession  = "session"
)

// SessionMatch is a name liked by two or more distinct session participants.
type SessionMatch struct {
	NameID string   `json:"nameId"`
	Users  []string `json:"users"`
}

// UserMatch is a single entry of a user's match list: either a standing
// personal like or a per-session mutual match.
type UserMatch struct {
	NameID    string `json:"nameId"`
	MatchType string `json:"matchType"`
	SessionID string `json:"sessionId,omitempty"`
}

// Engine computes matches from the swipe ledger. It holds no state of its
// own: every call recomputes from the current ledger snapshot, which keeps
// results trivially correct under overwrites (a dislike after a like drops
// the name on the next call).
type Engine struct {
	swipes *repository.SwipeRepository
}

// NewEngine creates an engine reading from the given ledger.
func NewEngine(swipes *repository.SwipeRepository) *Engine {
	return &Engine{swipes: swipes}
}

// ComputeSessionMatches returns every name with current likes from at least
// two distinct users in the session. Users are sorted ascending and entries
// sorted by name id, so equal ledgers always produce equal output.
func (e *Engine) ComputeSessionMatches(ctx context.Context, sessionID string) ([]SessionMatch, error) {
	actions, err := e.swipes.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sessionMatchesOf(actions), nil
}

// ComputeUserMatches returns the union of a user's personal likes (deduped
// by name) and the session matches they participate in, tagged with the
// originating session. The same name may appear once per session.
func (e *Engine) ComputeUserMatches(ctx context.Context, userID string) ([]UserMatch, error) {
	actions, err := e.swipes.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var matches []UserMatch

	seen := map[string]bool{}
	for _, a := range actions {
		if a.IsGlobal && a.Action == db.ActionLike && !seen[a.NameID] {
			seen[a.NameID] = true
			matches = append(matches, UserMatch{NameID: a.NameID, MatchType: MatchTypePersonal})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].NameID < matches[j].NameID })

	sessionIDs, err := e.swipes.SessionIDsLikedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, sessionID := range sessionIDs {
		sessionMatches, err := e.ComputeSessionMatches(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		for _, m := range sessionMatches {
			if containsUser(m.Users, userID) {
				matches = append(matches, UserMatch{
					NameID:    m.NameID,
					MatchType: MatchTypeSession,
					SessionID: sessionID,
				})
			}
		}
	}

	return matches, nil
}

// sessionMatchesOf groups current likes by name and keeps names with two or
// more distinct likers.
func sessionMatchesOf(actions []db.SwipeAction) []SessionMatch {
	likers := map[string]map[string]bool{}
	for _, a := range actions {
		if a.Action != db.ActionLike {
			continue
		}
		if likers[a.NameID] == nil {
			likers[a.NameID] = map[string]bool{}
		}
		likers[a.NameID][a.UserID] = true
	}

	var matches []SessionMatch
	for nameID, users := range likers {
		if len(users) < 2 {
			continue
		}
		sorted := make([]string, 0, len(users))
		for userID := range users {
			sorted = append(sorted, userID)
		}
		sort.Strings(sorted)
		matches = append(matches, SessionMatch{NameID: nameID, Users: sorted})
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].NameID < matches[j].NameID })
	return matches
}

func containsUser(users []string, userID string) bool {
	for _, u := range users {
		if u == userID {
			return true
		}
	}
	return false
}
