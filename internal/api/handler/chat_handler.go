package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fusandy452/aistudent-backend/internal/api/metrics"
	"github.com/fusandy452/aistudent-backend/internal/api/middleware"
	"github.com/fusandy452/aistudent-backend/internal/core/domain"
	"github.com/fusandy452/aistudent-backend/internal/core/ports"
)

// ChatHandler serves the advisor chat endpoint. The service guarantees a
// reply for every request, so this route answers 200 whenever the token
// checked out.
type ChatHandler struct {
	chat ports.ChatService
}

func NewChatHandler(chat ports.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type chatRequest struct {
	Message   string `json:"message"`
	UserRole  string `json:"user_role"`
	ProfileID string `json:"profile_id"`
	Language  string `json:"language"`
}

// Chat handles POST /api/v1/chat.
func (h *ChatHandler) Chat(c echo.Context) error {
	claims, ok := middleware.UserClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	language := req.Language
	if language != domain.LanguageEN {
		language = domain.LanguageZH
	}
	metrics.ChatRequestsTotal.WithLabelValues(language).Inc()

	reply, err := h.chat.Chat(c.Request().Context(), ports.ChatInput{
		UserID:    claims.UserID,
		ProfileID: req.ProfileID,
		Message:   req.Message,
		UserRole:  req.UserRole,
		Language:  req.Language,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"ok":    true,
		"reply": reply,
	})
}
