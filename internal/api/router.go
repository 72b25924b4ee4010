package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/travelink/booking-api/docs"
	"github.com/travelink/booking-api/internal/api/handler"
	"github.com/travelink/booking-api/internal/api/middleware"
	"github.com/travelink/booking-api/internal/core/domain"
	"github.com/travelink/booking-api/internal/core/ports"
	"github.com/travelink/booking-api/internal/core/service"
	"github.com/travelink/booking-api/internal/infrastructure/crypto"
	mongodb "github.com/travelink/booking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/travelink/booking-api/internal/infrastructure/db/redis"
	"github.com/travelink/booking-api/internal/infrastructure/partner"
	"github.com/travelink/booking-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The dispatcher and mailer are created (and started) by the caller so their
// lifecycle is owned by main.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	cfg *config.Config,
	dispatcher ports.NotificationDispatcher,
	mailer ports.EmailSender,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("booking"))

	// --- Dependencies ---
	hasher := crypto.NewBcryptHasher(0)
	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.TTL)

	userRepo := mongodb.NewUserRepository(db)
	resetRepo := mongodb.NewResetTokenRepository(db)
	reservationRepo := mongodb.NewReservationRepository(db)

	resets := service.NewResetTokenManager(resetRepo, hasher)
	limiter := redisdb.NewResetLimiter(rdb, cfg.Reset.Limit, cfg.Reset.Window)

	authService := service.NewAuthService(userRepo, resets, hasher, tokens, dispatcher, mailer, limiter, cfg.Reset.URL, log)
	partnerClient := partner.NewClient(cfg.Partner.URL, cfg.Partner.Secret)
	reservationService := service.NewReservationService(reservationRepo, partnerClient, log)

	authHandler := handler.NewAuthHandler(authService)
	reservationHandler := handler.NewReservationHandler(reservationService, authService)
	authMiddleware := middleware.Auth(tokens)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/forgot-password", authHandler.ForgotPassword)
	e.POST("/auth/reset-password", authHandler.ResetPassword)
	e.POST("/auth/change-password", authHandler.ChangePassword, authMiddleware)
	e.GET("/user", authHandler.Me, authMiddleware)

	// --- Reservation routes ---
	reservations := e.Group("/reservations", authMiddleware)
	reservations.POST("", reservationHandler.Create)
	reservations.GET("", reservationHandler.List)
	reservations.POST("/:id/cancel", reservationHandler.Cancel)
	reservations.POST("/partner", reservationHandler.RelayToPartner)

	admin := e.Group("/admin", authMiddleware, middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/reservations", reservationHandler.ListAll)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
