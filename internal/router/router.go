package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"artmuseum/internal/auth"
	"artmuseum/internal/config"
	"artmuseum/internal/document"
	"artmuseum/internal/handler"
	"artmuseum/internal/log"
	"artmuseum/internal/metrics"
	"artmuseum/internal/model"
)

// Handlers bundles everything Register mounts. Per-backend maps are keyed by
// backend name; a backend missing from a map gets no routes.
type Handlers struct {
	Auth        *handler.AuthHandler
	Collections map[string]*handler.CollectionHandler
	Users       map[string]*handler.UserHandler

	Artists     *handler.ArtistHandler
	Artworks    *handler.DocumentHandler[document.Artwork, *document.Artwork]
	Exhibitions *handler.DocumentHandler[document.Exhibition, *document.Exhibition]
	Locations   *handler.DocumentHandler[document.Location, *document.Location]
}

type documentRoutes interface {
	List(c echo.Context) error
	Get(c echo.Context) error
	Create(c echo.Context) error
	Replace(c echo.Context) error
	Delete(c echo.Context) error
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	h Handlers,
	logger log.Logger,
	m *metrics.Metrics,
) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())
	if m != nil {
		e.Use(m.Middleware())
		e.GET("/metrics", m.Handler())
	}

	e.Validator = &CustomValidator{validator: handler.NewValidator()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authenticated := auth.Middleware(jwtService)
	admin := []echo.MiddlewareFunc{authenticated, auth.RequireRole(model.RoleAdmin)}

	api := e.Group("/api")

	if h.Auth != nil {
		api.POST("/Auth/login", h.Auth.Login)
		api.GET("/Auth/me", h.Auth.Me, authenticated)
	}

	for _, backend := range cfg.EnabledBackends() {
		if ch, ok := h.Collections[backend]; ok {
			collections := api.Group("/" + backend + "/Collections")
			collections.GET("", ch.List)
			collections.GET("/:id", ch.Get)
			collections.POST("", ch.Create)
			collections.PUT("/:id/owner/:ownerId", ch.UpdateOwner)
			collections.DELETE("/:id", ch.Delete, admin...)
		}
		if uh, ok := h.Users[backend]; ok {
			userRoutes(api.Group("/"+backend+"/Users"), uh, admin)
		}
	}

	if uh, ok := h.Users[cfg.PrimaryUserBackend]; ok {
		userRoutes(api.Group("/Users"), uh, admin)
	}

	if cfg.Enabled(config.BackendMongo) {
		if h.Artists != nil {
			artists := api.Group("/mongo/Artists")
			artists.GET("/by-artistid/:artistId", h.Artists.ByArtistID)
			documentRoutesFor(artists, h.Artists, admin)
		}
		if h.Artworks != nil {
			documentRoutesFor(api.Group("/mongo/Artworks"), h.Artworks, admin)
		}
		if h.Exhibitions != nil {
			documentRoutesFor(api.Group("/mongo/Exhibitions"), h.Exhibitions, admin)
		}
		if h.Locations != nil {
			documentRoutesFor(api.Group("/mongo/Locations"), h.Locations, admin)
		}
	}
}

func userRoutes(g *echo.Group, uh *handler.UserHandler, admin []echo.MiddlewareFunc) {
	g.POST("/register", uh.Register)
	g.GET("", uh.ListUsers, admin...)
	g.GET("/:id", uh.GetUser, admin...)
	g.PUT("/:id/roles", uh.UpdateRoles, admin...)
	g.DELETE("/:id", uh.DeleteUser, admin...)
}

func documentRoutesFor(g *echo.Group, dh documentRoutes, admin []echo.MiddlewareFunc) {
	g.GET("", dh.List)
	g.GET("/:id", dh.Get)
	g.POST("", dh.Create)
	g.PUT("/:id", dh.Replace)
	g.DELETE("/:id", dh.Delete, admin...)
}

func requestLogger(logger log.Logger) echo.MiddlewareFunc {
	httpLog := logger.Component("http")
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			event := httpLog.Info()
			if v.Error != nil {
				event = httpLog.Warn().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
