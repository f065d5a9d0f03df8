package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ryan-kp-miller/the-drink-almanac-api/internal/auth"
	"github.com/ryan-kp-miller/the-drink-almanac-api/internal/service"
	apperrors "github.com/ryan-kp-miller/the-drink-almanac-api/pkg/errors"
	"github.com/ryan-kp-miller/the-drink-almanac-api/pkg/health"
	"github.com/ryan-kp-miller/the-drink-almanac-api/pkg/middleware"
)

// NewRouter creates a chi router with all routes registered.
func NewRouter(
	userService *service.UserService,
	favoriteService *service.FavoriteService,
	jwtManager *auth.JWTManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("drink-almanac"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	accessValidator := tokenValidator(jwtManager.ValidateAccessToken)
	refreshValidator := tokenValidator(jwtManager.ValidateRefreshToken)

	userHandler := NewUserHandler(userService, logger)
	favoriteHandler := NewFavoriteHandler(favoriteService, logger)

	r.Route("/user", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Public endpoints; Delete identifies the account by body credentials.
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Delete("/", userHandler.Delete)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(accessValidator))
			r.Get("/", userHandler.Profile)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(refreshValidator))
			r.Post("/refresh", userHandler.Refresh)
		})
	})

	r.Route("/favorite", func(r chi.Router) {
		r.Use(middleware.Auth(accessValidator))

		r.Post("/{drinkID}", favoriteHandler.Add)
		r.Get("/{drinkID}", favoriteHandler.Get)
		r.Delete("/{drinkID}", favoriteHandler.Remove)
	})

	return r
}

// tokenValidator bridges a JWT validation function to the auth middleware,
// mapping parse failures to the status codes the API reports: an expired
// token is a 401, any other invalid token is a 422.
func tokenValidator(validate func(string) (*auth.Claims, error)) middleware.TokenValidator {
	return func(token string) (*middleware.Claims, error) {
		claims, err := validate(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return nil, apperrors.Unauthorized("Token has expired")
			}
			return nil, apperrors.InvalidToken("token is invalid")
		}
		return &middleware.Claims{
			UserID: claims.UserID,
			Fresh:  claims.Fresh,
		}, nil
	}
}
