package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/nameswipe/nameswipe/internal/app"
	"github.com/nameswipe/nameswipe/internal/db"
	"github.com/nameswipe/nameswipe/internal/config"
	"github.com/nameswipe/nameswipe/internal/realtime"
	"github.com/nameswipe/nameswipe/internal/service/names"
	"github.com/nameswipe/nameswipe/internal/service/sessions"
	"github.com/nameswipe/nameswipe/internal/service/swipes"
	"github.com/nameswipe/nameswipe/internal/service/users"
)

// API bundles the handlers and their dependencies.
type API struct {
	appCtx   *app.AppContext
	users    *users.Service
	sessions *sessions.Service
	names    *names.Service
	swipes   *swipes.Service
	hub      *realtime.Hub
	mode     string
}

// NewAPI wires the handler set.
func NewAPI(
	appCtx *app.AppContext,
	userSvc *users.Service,
	sessionSvc *sessions.Service,
	nameSvc *names.Service,
	swipeSvc *swipes.Service,
	hub *realtime.Hub,
	mode string,
) *API {
	return &API{
		appCtx:   appCtx,
		users:    userSvc,
		sessions: sessionSvc,
		names:    nameSvc,
		swipes:   swipeSvc,
		hub:      hub,
		mode:     mode,
	}
}

// registerValidations hooks custom rules into gin's binding validator.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("swipeaction", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == db.ActionLike || s == db.ActionDislike
		})
	}
}

// Router builds the gin engine with the full route table.
func (a *API) Router(env string) *gin.Engine {
	if env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	registerValidations()
	router := gin.New()
	router.Use(gin.Recovery())

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", health)
	router.HEAD("/health", health)

	api := router.Group("/api")
	{
		api.POST("/users", a.createUser)
		api.GET("/users/:id", a.getUser)
		api.GET("/users/:id/matches", a.getUserMatches)

		api.POST("/sessions", a.createSession)
		api.GET("/sessions/:id", a.getSession)
		api.GET("/sessions/by-code/:code", a.getSessionByCode)
		api.POST("/sessions/:id/join", a.joinSession)
		api.GET("/sessions/:id/matches", a.getSessionMatches)
		api.GET("/sessions/:id/users/:userId/swipes", a.getSessionUserSwipes)
		api.GET("/sessions/:id/events", a.streamEvents)

		api.POST("/swipe-actions", a.recordSwipe)
		api.GET("/baby-names", a.listBabyNames)
	}

	return router
}

// NewHTTPServer builds the http.Server around the router.
func NewHTTPServer(cfg *config.Config, api *API) *http.Server {
	return &http.Server{
		Addr:        cfg.Server.Addr(),
		Handler:     api.Router(cfg.Server.Env),
		ReadTimeout: cfg.Server.ReadTimeout,
		// no write timeout: the events stream stays open indefinitely
		WriteTimeout: 0,
	}
}
