package server

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	svcErr "github.com/nameswipe/nameswipe/internal/errors"
)

// keepaliveInterval keeps intermediaries from closing idle event streams.
const keepaliveInterval = 15 * time.Second

// streamEvents is the push-mode real-time channel: a server-sent event
// stream of partner_connected / partner_disconnected / swipe_action /
// new_match for one (session, user) pair. Registration happens on connect
// (the join_session step of the connection state machine) and is undone
// when the stream ends, however it ends. In poll mode the endpoint does
// not exist and clients diff the REST reads instead.
func (a *API) streamEvents(c *gin.Context) {
	if a.mode != "push" || a.hub == nil {
		svcErr.Respond(c, svcErr.NotFound("event stream disabled, poll instead"))
		return
	}

	sessionID := c.Param("id")
	userID := c.Query("userId")
	if userID == "" {
		svcErr.Respond(c, svcErr.Validation("userId is required"))
		return
	}
	if _, err := a.sessions.RequireLive(c.Request.Context(), sessionID); err != nil {
		svcErr.Respond(c, err)
		return
	}

	sub := a.hub.Join(sessionID, userID)
	defer a.hub.Leave(sub)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev := <-sub.C:
			c.SSEvent(string(ev.Type), ev)
			return true
		case <-keepalive.C:
			c.SSEvent("ping", gin.H{"ts": time.Now().Unix()})
			return true
		case <-sub.Done():
			return false
		case <-c.Request.Context().Done():
			return false
		}
	})
}
