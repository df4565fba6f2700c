package realtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nameswipe/nameswipe/internal/realtime"
)

func TestPushNotifierRoutesEvents(t *testing.T) {
	hub := newTestHub()
	subA := hub.Join("session-1", "user-a")
	subB := hub.Join("session-1", "user-b")
	recvEvent(t, subA) // drain partner_connected

	notifier := realtime.NewPushNotifier(hub)
	notifier.SwipeRecorded("session-1", "user-a", "emma", "like", []string{"emma"})

	// the partner hears the raw swipe, then the match
	ev := recvEvent(t, subB)
	assert.Equal(t, realtime.EventSwipeAction, ev.Type)
	assert.Equal(t, map[string]string{"userId": "user-a", "nameId": "emma", "action": "like"}, ev.Data)
	ev = recvEvent(t, subB)
	assert.Equal(t, realtime.EventNewMatch, ev.Type)

	// the acting user only hears the match
	ev = recvEvent(t, subA)
	assert.Equal(t, realtime.EventNewMatch, ev.Type)
	assert.Equal(t, map[string]string{"nameId": "emma"}, ev.Data)
	assertNoEvent(t, subA)
}

func TestPushNotifierWithoutNewMatches(t *testing.T) {
	hub := newTestHub()
	subA := hub.Join("session-1", "user-a")
	subB := hub.Join("session-1", "user-b")
	recvEvent(t, subA)

	realtime.NewPushNotifier(hub).SwipeRecorded("session-1", "user-a", "emma", "dislike", nil)

	ev := recvEvent(t, subB)
	assert.Equal(t, realtime.EventSwipeAction, ev.Type)
	assertNoEvent(t, subB)
	assertNoEvent(t, subA)
}

func TestForMode(t *testing.T) {
	hub := newTestHub()
	assert.IsType(t, &realtime.PushNotifier{}, realtime.ForMode("push", hub))
	assert.IsType(t, &realtime.PollNotifier{}, realtime.ForMode("poll", nil))
}
