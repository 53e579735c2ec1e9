package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fusandy452/aistudent-backend/internal/core/ports"
	"github.com/fusandy452/aistudent-backend/internal/infrastructure/config"
	"github.com/fusandy452/aistudent-backend/pkg/logger"
)

const serviceVersion = "1.0.0"

// HealthHandler reports process liveness plus aggregate datastore counts.
// A datastore failure degrades the report instead of failing the request:
// monitoring needs the endpoint up even when Mongo is not.
type HealthHandler struct {
	users    ports.UserRepository
	profiles ports.ProfileRepository
	chats    ports.ChatRepository
	cfg      *config.Config
}

func NewHealthHandler(users ports.UserRepository, profiles ports.ProfileRepository, chats ports.ChatRepository, cfg *config.Config) *HealthHandler {
	return &HealthHandler{users: users, profiles: profiles, chats: chats, cfg: cfg}
}

type databaseHealth struct {
	Status        string `json:"status"`
	UsersCount    int64  `json:"users_count"`
	ProfilesCount int64  `json:"profiles_count"`
	MessagesCount int64  `json:"messages_count"`
}

type healthResponse struct {
	Status    string         `json:"status"`
	Timestamp string         `json:"timestamp"`
	Uptime    string         `json:"uptime"`
	Version   string         `json:"version"`
	Database  databaseHealth `json:"database"`
}

// Health serves GET /health and GET /api/v1/health. Always 200.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx := c.Request().Context()

	db := databaseHealth{Status: "healthy"}

	var firstErr error
	count := func(fn func(context.Context) (int64, error)) int64 {
		n, err := fn(ctx)
		if err != nil {
			db.Status = "degraded"
			if firstErr == nil {
				firstErr = err
			}
		}
		return n
	}
	db.UsersCount = count(h.users.Count)
	db.ProfilesCount = count(h.profiles.Count)
	db.MessagesCount = count(h.chats.Count)

	if firstErr != nil {
		log := logger.Get()
		log.Warn().Err(firstErr).Msg("health check: datastore counts unavailable")
	}

	return c.JSON(http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    "N/A",
		Version:   serviceVersion,
		Database:  db,
	})
}

// Root serves GET /: a service banner reporting which credentials are present
// (booleans only, never the values).
func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message":   "AI 留學顧問後端服務運行中",
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   serviceVersion,
		"environment": map[string]bool{
			"GEMINI_API_KEY":       h.cfg.Gemini.APIKey != "",
			"SESSION_SECRET":       h.cfg.SessionSecret != "",
			"GOOGLE_CLIENT_ID":     h.cfg.Google.ClientID != "",
			"GOOGLE_CLIENT_SECRET": h.cfg.Google.ClientSecret != "",
			"LINE_CHANNEL_ID":      h.cfg.LINE.ChannelID != "",
		},
	})
}
