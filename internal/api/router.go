package api

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/kraftflix/movie-api/internal/api/handler"
	"github.com/kraftflix/movie-api/internal/api/middleware"
	"github.com/kraftflix/movie-api/internal/core/ports"
	"github.com/kraftflix/movie-api/pkg/logger"
)

// Dependencies are the services and settings the router wires into handlers.
type Dependencies struct {
	Auth   ports.AuthService
	Users  ports.UserService
	Movies ports.MovieService
	// Health lists the dependencies checked by the readiness probe.
	Health         map[string]handler.Pinger
	AllowedOrigins []string
	Logger         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// Each router gets its own registry for the HTTP metrics so several
	// routers can coexist in one process.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.AllowedOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "movieapi",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || strings.HasPrefix(c.Path(), "/health")
		},
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	movieHandler := handler.NewMovieHandler(deps.Movies)
	healthHandler := handler.NewHealthHandler(deps.Health)

	authenticated := middleware.Authenticate(deps.Auth)
	owner := middleware.RequireOwner(deps.Auth, "username")

	// --- Public routes ---
	e.GET("/", handler.Welcome)
	e.POST("/users", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/movies", movieHandler.List)

	// --- Users (bearer token; owner only below the collection) ---
	users := e.Group("/users")
	users.GET("", userHandler.List, authenticated)
	users.GET("/:username", userHandler.Get, authenticated, owner)
	users.PUT("/:username", userHandler.Update, authenticated, owner)
	users.DELETE("/:username", userHandler.Delete, authenticated, owner)
	users.POST("/:username/movies/:movieID", userHandler.AddFavorite, authenticated, owner)
	users.DELETE("/:username/movies/:movieID", userHandler.RemoveFavorite, authenticated, owner)

	// --- Movie catalog (bearer token) ---
	movies := e.Group("/movies")
	movies.GET("/:title", movieHandler.GetByTitle, authenticated)
	movies.GET("/directors/:name", movieHandler.GetDirector, authenticated)
	movies.GET("/genre/:name", movieHandler.GetGenre, authenticated)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	}))

	return e
}

// requestLogger writes one access log entry per request and puts a logger
// tagged with the request id into the request context.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	access := echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		withContext := func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			reqLog := log.With().Str("request_id", id).Logger()
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithContext(req.Context(), reqLog)))
			return next(c)
		}
		return access(withContext)
	}
}
