package realtime

import (
	"log/slog"
	"sync"
	"time"
)

// Event kinds carried over the real-time channel.
type EventType string

const (
	EventJoinSession         EventType = "join_session"
	EventSwipeAction         EventType = "swipe_action"
	EventPartnerConnected    EventType = "partner_connected"
	EventPartnerDisconnected EventType = "partner_disconnected"
	EventNewMatch            EventType = "new_match"
)

// Event is one message on the real-time channel.
type Event struct {
	Type      EventType `json:"type"`
	SessionID string    `json:"sessionId,omitempty"`
	UserID    string    `json:"userId,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// Subscription is one live connection of a user to a session. Events
// arrive on C until Done is signalled; C itself is never closed so late
// broadcasts cannot panic a sender.
type Subscription struct {
	SessionID string
	UserID    string
	C         chan Event

	done     chan struct{}
	doneOnce sync.Once

	// events that found the buffer full wait here, in arrival order
	retryMu  sync.Mutex
	retrying bool
	pending  []Event
}

// Done is signalled when the subscription has been evicted or the hub shut
// down. Consumers should stop reading C at that point; no events are
// replayed on reconnect, clients re-fetch authoritative state instead.
func (s *Subscription) Done() <-chan struct{} { return s.done }

func (s *Subscription) finish() {
	s.doneOnce.Do(func() { close(s.done) })
}

const (
	subscriptionBuffer  = 16
	deliverMaxAttempts  = 4
	deliverInitialDelay = 25 * time.Millisecond
)

// Hub is the per-instance connection registry: session id -> user id ->
// subscription. It is constructed once per server and injected, never held
// as a package global, so tests can run several independent hubs.
//
// A dropped connection only mutates its own key; the remaining members of
// the session are notified and keep their subscriptions.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]map[string]*Subscription
	log      *slog.Logger
	closed   bool
}

// NewHub creates an empty registry.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]map[string]*Subscription),
		log:      log,
	}
}

// Join registers a user's connection under the session and tells the other
// registered members the partner connected. A reconnect replaces the old
// subscription.
func (h *Hub) Join(sessionID, userID string) *Subscription {
	sub := &Subscription{
		SessionID: sessionID,
		UserID:    userID,
		C:         make(chan Event, subscriptionBuffer),
		done:      make(chan struct{}),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		sub.finish()
		return sub
	}
	if h.sessions[sessionID] == nil {
		h.sessions[sessionID] = make(map[string]*Subscription)
	}
	if old := h.sessions[sessionID][userID]; old != nil {
		old.finish()
	}
	h.sessions[sessionID][userID] = sub
	h.mu.Unlock()

	h.Broadcast(sessionID, userID, Event{
		Type:      EventPartnerConnected,
		SessionID: sessionID,
		Data:      map[string]string{"userId": userID},
	})
	return sub
}

// Leave deregisters a subscription and tells remaining members the partner
// disconnected. Empty sessions are dropped from the registry.
func (h *Hub) Leave(sub *Subscription) {
	h.mu.Lock()
	users := h.sessions[sub.SessionID]
	if users == nil || users[sub.UserID] != sub {
		h.mu.Unlock()
		sub.finish()
		return
	}
	delete(users, sub.UserID)
	if len(users) == 0 {
		delete(h.sessions, sub.SessionID)
	}
	h.mu.Unlock()
	sub.finish()

	h.Broadcast(sub.SessionID, sub.UserID, Event{
		Type:      EventPartnerDisconnected,
		SessionID: sub.SessionID,
		Data:      map[string]string{"userId": sub.UserID},
	})
}

// Broadcast fans an event out to every member of the session except
// exceptUserID (pass "" to reach everyone).
func (h *Hub) Broadcast(sessionID, exceptUserID string, ev Event) {
	h.mu.Lock()
	var targets []*Subscription
	for userID, sub := range h.sessions[sessionID] {
		if userID != exceptUserID {
			targets = append(targets, sub)
		}
	}
	h.mu.Unlock()

	for _, sub := range targets {
		h.deliver(sub, ev)
	}
}

// ConnectedUsers returns the users currently registered under a session.
func (h *Hub) ConnectedUsers(sessionID string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	users := make([]string, 0, len(h.sessions[sessionID]))
	for userID := range h.sessions[sessionID] {
		users = append(users, userID)
	}
	return users
}

// DropSession evicts every subscription of a session, used when a session
// expires while connections are still registered.
func (h *Hub) DropSession(sessionID string) {
	h.mu.Lock()
	users := h.sessions[sessionID]
	delete(h.sessions, sessionID)
	h.mu.Unlock()
	for _, sub := range users {
		sub.finish()
	}
}

// Close tears the registry down and signals every subscription.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	old := h.sessions
	h.sessions = make(map[string]map[string]*Subscription)
	h.mu.Unlock()

	for _, users := range old {
		for _, sub := range users {
			sub.finish()
		}
	}
}

// deliver attempts a non-blocking send. A full buffer means the consumer
// stalled; the event joins the subscription's pending queue and a single
// drainer goroutine retries in arrival order, so late deliveries never
// overtake newer ones. While the queue is non-empty every new event is
// appended to it, keeping the stream ordered end to end.
func (h *Hub) deliver(sub *Subscription, ev Event) {
	sub.retryMu.Lock()
	if sub.retrying {
		sub.pending = append(sub.pending, ev)
		sub.retryMu.Unlock()
		return
	}
	sub.retryMu.Unlock()

	select {
	case sub.C <- ev:
		return
	case <-sub.done:
		return
	default:
	}

	sub.retryMu.Lock()
	if sub.retrying {
		sub.pending = append(sub.pending, ev)
		sub.retryMu.Unlock()
		return
	}
	sub.retrying = true
	sub.pending = append(sub.pending, ev)
	sub.retryMu.Unlock()

	go h.drainPending(sub)
}

// drainPending pushes queued events one at a time with exponential backoff.
// After the attempt cap on a single event the subscription is evicted so one
// slow client cannot wedge the session.
func (h *Hub) drainPending(sub *Subscription) {
	delay := deliverInitialDelay
	attempt := 1
	for {
		sub.retryMu.Lock()
		if len(sub.pending) == 0 {
			sub.retrying = false
			sub.retryMu.Unlock()
			return
		}
		next := sub.pending[0]
		sub.retryMu.Unlock()

		select {
		case sub.C <- next:
			sub.retryMu.Lock()
			sub.pending = sub.pending[1:]
			sub.retryMu.Unlock()
			delay = deliverInitialDelay
			attempt = 1
			continue
		case <-sub.done:
			return
		default:
		}

		if attempt >= deliverMaxAttempts {
			if h.log != nil {
				h.log.Warn("dropping slow realtime subscriber",
					"session_id", sub.SessionID, "user_id", sub.UserID)
			}
			h.Leave(sub)
			return
		}
		time.Sleep(delay)
		delay *= 2
		attempt++
	}
}
