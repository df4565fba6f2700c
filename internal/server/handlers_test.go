package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nameswipe/nameswipe/internal/app"
	"github.com/nameswipe/nameswipe/internal/cache"
	"github.com/nameswipe/nameswipe/internal/config"
	"github.com/nameswipe/nameswipe/internal/db"
	"github.com/nameswipe/nameswipe/internal/realtime"
	"github.com/nameswipe/nameswipe/internal/repository"
	"github.com/nameswipe/nameswipe/internal/server"
	"github.com/nameswipe/nameswipe/internal/service/names"
	"github.com/nameswipe/nameswipe/internal/service/sessions"
	"github.com/nameswipe/nameswipe/internal/service/swipes"
	"github.com/nameswipe/nameswipe/internal/service/users"
)

// setupRouter wires the full stack against in-memory SQLite and miniredis
// and returns the engine plus the app context for direct data setup.
func setupRouter(t *testing.T, mode string) (*gin.Engine, *app.AppContext) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	database, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(database))
	_, err = db.SeedBabyNames(database)
	require.NoError(t, err)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := &config.Config{Redis: config.RedisConfig{Addr: mr.Addr()}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	appCtx := app.New(database, cache.NewRedisCache(cfg), logger)

	hub := realtime.NewHub(logger)
	t.Cleanup(hub.Close)
	notifier := realtime.ForMode(mode, hub)

	api := server.NewAPI(
		appCtx,
		users.NewService(appCtx),
		sessions.NewService(appCtx, hub, time.Hour),
		names.NewService(appCtx),
		swipes.NewService(appCtx, notifier),
		hub,
		mode,
	)
	return api.Router("test"), appCtx
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	router, _ := setupRouter(t, "push")
	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateAndGetUser(t *testing.T) {
	router, _ := setupRouter(t, "push")

	w := doJSON(t, router, http.MethodPost, "/api/users", map[string]any{
		"preferences": map[string]any{"theme": "dark"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody[map[string]any](t, w)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	w = doJSON(t, router, http.MethodGet, "/api/users/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/users/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBabyNamesFilterAndValidation(t *testing.T) {
	router, _ := setupRouter(t, "push")

	w := doJSON(t, router, http.MethodGet, "/api/baby-names?gender=girl", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeBody[[]db.BabyName](t, w)
	assert.NotEmpty(t, list)
	for _, n := range list {
		assert.Contains(t, []string{db.GenderGirl, db.GenderUnisex}, n.Gender)
	}

	w = doJSON(t, router, http.MethodGet, "/api/baby-names?gender=robot", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/baby-names?limit=nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/baby-names?limit=5&page_token=%25%25not-base64", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBabyNamesPaging(t *testing.T) {
	router, _ := setupRouter(t, "push")

	w := doJSON(t, router, http.MethodGet, "/api/baby-names?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decodeBody[struct {
		Names         []db.BabyName `json:"names"`
		NextPageToken *string       `json:"nextPageToken"`
	}](t, w)
	assert.Len(t, page.Names, 5)
	assert.NotNil(t, page.NextPageToken)
}

func TestSessionPairingFlow(t *testing.T) {
	router, _ := setupRouter(t, "push")

	ownerID := createUserHTTP(t, router)
	partnerID := createUserHTTP(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/sessions", map[string]string{"userId": ownerID})
	require.Equal(t, http.StatusCreated, w.Code)
	session := decodeBody[map[string]any](t, w)
	sessionID, _ := session["id"].(string)
	shareCode, _ := session["shareCode"].(string)
	require.NotEmpty(t, sessionID)
	require.Len(t, shareCode, 6)

	// partner finds the session by invite code, then joins
	w = doJSON(t, router, http.MethodGet, "/api/sessions/by-code/"+shareCode, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/sessions/"+sessionID+"/join", map[string]string{"userId": partnerID})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/sessions/"+sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeBody[struct {
		Members          []db.SessionMember `json:"members"`
		PartnerConnected bool               `json:"partnerConnected"`
	}](t, w)
	assert.Len(t, view.Members, 2)
	assert.True(t, view.PartnerConnected)
}

func TestSwipeAndMatchFlow(t *testing.T) {
	router, _ := setupRouter(t, "push")

	ownerID := createUserHTTP(t, router)
	partnerID := createUserHTTP(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/sessions", map[string]string{"userId": ownerID})
	require.Equal(t, http.StatusCreated, w.Code)
	sessionID, _ := decodeBody[map[string]any](t, w)["id"].(string)

	w = doJSON(t, router, http.MethodPost, "/api/sessions/"+sessionID+"/join", map[string]string{"userId": partnerID})
	require.Equal(t, http.StatusOK, w.Code)

	for _, userID := range []string{ownerID, partnerID} {
		w = doJSON(t, router, http.MethodPost, "/api/swipe-actions", map[string]string{
			"userId":    userID,
			"nameId":    "emma",
			"action":    db.ActionLike,
			"sessionId": sessionID,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/sessions/"+sessionID+"/matches", nil)
	require.Equal(t, http.StatusOK, w.Code)
	matches := decodeBody[[]swipes.SessionMatchView](t, w)
	require.Len(t, matches, 1)
	assert.Equal(t, "emma", matches[0].NameID)

	w = doJSON(t, router, http.MethodGet, "/api/sessions/"+sessionID+"/users/"+ownerID+"/swipes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	actions := decodeBody[[]json.RawMessage](t, w)
	assert.Len(t, actions, 1)
}

func TestSwipeValidationErrors(t *testing.T) {
	router, _ := setupRouter(t, "push")
	userID := createUserHTTP(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/swipe-actions", map[string]string{"userId": userID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/swipe-actions", map[string]string{
		"userId": userID, "nameId": "emma", "action": "maybe",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExpiredSessionIsGone(t *testing.T) {
	router, appCtx := setupRouter(t, "push")

	expired, err := repository.NewSessionRepository(appCtx.DB).Create(context.Background(), -time.Hour)
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodGet, "/api/sessions/"+expired.ID, nil)
	assert.Equal(t, http.StatusGone, w.Code)
}

func TestEventsDisabledInPollMode(t *testing.T) {
	router, appCtx := setupRouter(t, "poll")

	session, err := repository.NewSessionRepository(appCtx.DB).Create(context.Background(), time.Hour)
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodGet, "/api/sessions/"+session.ID+"/events?userId=u1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func createUserHTTP(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/users", map[string]any{})
	require.Equal(t, http.StatusCreated, w.Code)
	id, _ := decodeBody[map[string]any](t, w)["id"].(string)
	require.NotEmpty(t, id)
	return id
}
