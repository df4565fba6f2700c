package realtime

// Notifier is the single contract behind which the push and poll
// notification strategies are interchangeable. The swipe write path calls
// it after the ledger write and match recomputation; newMatches carries
// only names that transitioned into the matched set on this write, so a
// new_match event fires exactly once per transition regardless of strategy.
type Notifier interface {
	SwipeRecorded(sessionID, userID, nameID, action string, newMatches []string)
}

// PushNotifier fans events out through the hub to connected subscribers.
type PushNotifier struct {
	hub *Hub
}

func NewPushNotifier(hub *Hub) *PushNotifier {
	return &PushNotifier{hub: hub}
}

func (n *PushNotifier) SwipeRecorded(sessionID, userID, nameID, action string, newMatches []string) {
	// raw swipe goes to the partner only; it is a UI signal, the acting
	// client already knows what it did
	n.hub.Broadcast(sessionID, userID, Event{
		Type:      EventSwipeAction,
		SessionID: sessionID,
		Data: map[string]string{
			"userId": userID,
			"nameId": nameID,
			"action": action,
		},
	})

	// matches go to everyone, the acting user included
	for _, name := range newMatches {
		n.hub.Broadcast(sessionID, "", Event{
			Type:      EventNewMatch,
			SessionID: sessionID,
			Data:      map[string]string{"nameId": name},
		})
	}
}

// PollNotifier is the poll-mode strategy: the server pushes nothing and
// clients re-fetch membership and match lists on an interval, diffing
// against their previous results. The match-set bookkeeping that feeds
// newMatches still runs on the write path, so a later switch to push mode
// starts from a consistent set.
type PollNotifier struct{}

func NewPollNotifier() *PollNotifier { return &PollNotifier{} }

func (*PollNotifier) SwipeRecorded(string, string, string, string, []string) {}

// ForMode selects the strategy for a configured realtime mode.
func ForMode(mode string, hub *Hub) Notifier {
	if mode == "poll" {
		return NewPollNotifier()
	}
	return NewPushNotifier(hub)
}
