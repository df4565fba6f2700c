package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nameswipe/nameswipe/internal/db"
	svcErr "github.com/nameswipe/nameswipe/internal/errors"
	"github.com/nameswipe/nameswipe/internal/service/swipes"
)

type createUserRequest struct {
	Preferences json.RawMessage `json:"preferences"`
}

func (a *API) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		svcErr.Respond(c, svcErr.Validation("invalid user data"))
		return
	}

	user, err := a.users.Create(c.Request.Context(), db.JSONB(req.Preferences))
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (a *API) getUser(c *gin.Context) {
	user, err := a.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *API) getUserMatches(c *gin.Context) {
	matches, err := a.swipes.UserMatches(c.Request.Context(), c.Param("id"))
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	if matches == nil {
		matches = []swipes.UserMatchView{}
	}
	c.JSON(http.StatusOK, matches)
}

type createSessionRequest struct {
	UserID string `json:"userId"`
}

// sessionView is the session read model: the row plus memberships and
// derived presence.
type sessionView struct {
	db.Session
	Members          []db.SessionMember `json:"members"`
	ConnectedUsers   []string           `json:"connectedUsers"`
	PartnerConnected bool               `json:"partnerConnected"`
}

func (a *API) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		svcErr.Respond(c, svcErr.Validation("invalid session data"))
		return
	}

	session, members, err := a.sessions.Create(c.Request.Context(), req.UserID)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, a.sessionResponse(c, session, members))
}

func (a *API) getSession(c *gin.Context) {
	session, members, err := a.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, a.sessionResponse(c, session, members))
}

func (a *API) getSessionByCode(c *gin.Context) {
	session, members, err := a.sessions.GetByShareCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, a.sessionResponse(c, session, members))
}

type joinSessionRequest struct {
	UserID string `json:"userId" binding:"required"`
}

func (a *API) joinSession(c *gin.Context) {
	var req joinSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		svcErr.Respond(c, svcErr.Validation("userId is required"))
		return
	}

	member, err := a.sessions.Join(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (a *API) getSessionMatches(c *gin.Context) {
	matches, err := a.swipes.SessionMatches(c.Request.Context(), c.Param("id"))
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	if matches == nil {
		matches = []swipes.SessionMatchView{}
	}
	c.JSON(http.StatusOK, matches)
}

func (a *API) getSessionUserSwipes(c *gin.Context) {
	actions, err := a.swipes.ListForSessionAndUser(c.Request.Context(), c.Param("id"), c.Param("userId"))
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, actions)
}

type swipeRequest struct {
	UserID    string `json:"userId" binding:"required"`
	NameID    string `json:"nameId" binding:"required"`
	Action    string `json:"action" binding:"required,swipeaction"`
	SessionID string `json:"sessionId"`
}

func (a *API) recordSwipe(c *gin.Context) {
	var req swipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		svcErr.Respond(c, svcErr.Validation("invalid swipe action data"))
		return
	}

	rows, err := a.swipes.RecordSwipe(c.Request.Context(), req.UserID, req.NameID, req.Action, req.SessionID)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, rows)
}

func (a *API) listBabyNames(c *gin.Context) {
	gender := c.DefaultQuery("gender", "all")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			svcErr.Respond(c, svcErr.Validation("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	var token *string
	if raw := c.Query("page_token"); raw != "" {
		token = &raw
	}

	names, nextToken, err := a.names.List(c.Request.Context(), gender, token, limit)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	if limit == 0 {
		c.JSON(http.StatusOK, names)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"names":         names,
		"nextPageToken": nextToken,
	})
}

// sessionResponse assembles the session view with presence from the hub
// (push mode) or from liveness keys (poll mode).
func (a *API) sessionResponse(c *gin.Context, session db.Session, members []db.SessionMember) sessionView {
	var connected []string
	if a.mode == "push" && a.hub != nil {
		connected = a.hub.ConnectedUsers(session.ID)
	} else {
		memberIDs := make([]string, len(members))
		for i, m := range members {
			memberIDs[i] = m.UserID
		}
		var err error
		connected, err = a.appCtx.RedisCache.ActiveUsers(c.Request.Context(), session.ID, memberIDs)
		if err != nil {
			a.appCtx.Logger.Warn("presence lookup failed", "session_id", session.ID, "err", err)
		}
	}
	if members == nil {
		members = []db.SessionMember{}
	}
	if connected == nil {
		connected = []string{}
	}
	return sessionView{
		Session:          session,
		Members:          members,
		ConnectedUsers:   connected,
		PartnerConnected: len(members) > 1,
	}
}
