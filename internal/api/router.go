package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fusandy452/aistudent-backend/internal/api/handler"
	"github.com/fusandy452/aistudent-backend/internal/api/middleware"
	"github.com/fusandy452/aistudent-backend/internal/core/service"
	"github.com/fusandy452/aistudent-backend/internal/infrastructure/ai"
	"github.com/fusandy452/aistudent-backend/internal/infrastructure/config"
	mongodb "github.com/fusandy452/aistudent-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/fusandy452/aistudent-backend/internal/infrastructure/db/redis"
	"github.com/fusandy452/aistudent-backend/internal/infrastructure/oauth"
	"github.com/fusandy452/aistudent-backend/pkg/logger"
)

// NewRouter builds the Echo instance with all routes registered. The rate
// limiter is injected so tests can supply their own window settings.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, limiter *middleware.RateLimiter) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddleware("aistudent"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	chatRepo := mongodb.NewChatRepository(db)
	statRepo := mongodb.NewUsageStatRepository(db)
	adminRepo := mongodb.NewAdminRepository(db)
	sessionStore := redisdb.NewAdminSessionStore(rdb)

	// --- Services ---
	tokenService := service.NewTokenService(cfg.SessionSecret)
	if bypass := cfg.TestBypassToken(); bypass != "" {
		log.Warn().Msg("auth test bypass token enabled")
		tokenService.EnableTestBypass(bypass)
	}

	oauthService := service.NewOAuthLoginService(userRepo, tokenService, log)
	intakeService := service.NewProfileService(profileRepo, statRepo, log)
	adminService := service.NewOperatorService(adminRepo, sessionStore, log)

	gemini := ai.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model, log)
	chatService := service.NewAdvisorChatService(profileRepo, chatRepo, statRepo, gemini, log)

	google := oauth.NewGoogleProvider(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.APIBaseURL+"/auth/google/callback")
	line := oauth.NewLINEProvider(cfg.LINE.ClientID, cfg.LINE.ClientSecret, cfg.APIBaseURL+"/auth/line/callback")

	// --- Handlers ---
	healthHandler := handler.NewHealthHandler(userRepo, profileRepo, chatRepo, cfg)
	authHandler := handler.NewAuthHandler(line, cfg.Google.ClientID, cfg.LINE.ChannelID)
	oauthHandler := handler.NewOAuthHandler(google, line, oauthService, cfg.FrontendURL)
	profileHandler := handler.NewProfileHandler(intakeService)
	chatHandler := handler.NewChatHandler(chatService)
	adminHandler := handler.NewAdminHandler(adminService)

	userAuth := middleware.Auth(tokenService)
	adminAuth := middleware.AdminAuth(adminService)

	// --- Service banner, health, metrics ---
	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Health)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Browser-facing OAuth callbacks (no rate limit, no envelope) ---
	e.GET("/auth/google/callback", oauthHandler.GoogleCallback)
	e.GET("/auth/line/callback", oauthHandler.LINECallback)

	// --- Public API (rate limited) ---
	v1 := e.Group("/api/v1", limiter.Middleware())

	v1.GET("/health", healthHandler.Health)
	v1.GET("/auth/config", authHandler.Config)
	v1.GET("/auth/line/login", authHandler.LINELogin)
	v1.POST("/auth/logout", authHandler.Logout)
	v1.GET("/auth/status", authHandler.Status, userAuth)

	v1.POST("/intake", profileHandler.Intake, userAuth)
	v1.GET("/user/profile/:id", profileHandler.GetProfile, userAuth)
	v1.POST("/chat", chatHandler.Chat, userAuth)

	v1.POST("/admin/login", adminHandler.Login)
	v1.POST("/admin/logout", adminHandler.Logout, adminAuth)

	return e
}
