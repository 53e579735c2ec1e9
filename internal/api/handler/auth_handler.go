package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fusandy452/aistudent-backend/internal/api/middleware"
	"github.com/fusandy452/aistudent-backend/internal/core/ports"
)

// AuthHandler serves the token-adjacent endpoints: provider discovery, the
// LINE login URL, token introspection, and the stateless logout.
type AuthHandler struct {
	line           ports.IdentityProvider
	googleClientID string
	lineChannelID  string
}

func NewAuthHandler(line ports.IdentityProvider, googleClientID, lineChannelID string) *AuthHandler {
	return &AuthHandler{line: line, googleClientID: googleClientID, lineChannelID: lineChannelID}
}

type providerConfig struct {
	Enabled   bool   `json:"enabled"`
	ClientID  string `json:"client_id,omitempty"`
	ChannelID string `json:"channel_id,omitempty"`
}

// Config reports which providers are enabled plus their public identifiers.
// Secrets never appear here.
func (h *AuthHandler) Config(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"ok": true,
		"google": providerConfig{
			Enabled:  h.googleClientID != "",
			ClientID: h.googleClientID,
		},
		"line": providerConfig{
			Enabled:   h.lineChannelID != "",
			ChannelID: h.lineChannelID,
		},
	})
}

// LINELogin builds the LINE authorization URL with a fresh state string.
func (h *AuthHandler) LINELogin(c echo.Context) error {
	if !h.line.Configured() {
		return echo.NewHTTPError(http.StatusInternalServerError, "LINE_CLIENT_ID not configured")
	}

	state := fmt.Sprintf("line_login_%d", time.Now().Unix())

	return c.JSON(http.StatusOK, map[string]any{
		"ok":        true,
		"login_url": h.line.AuthURL(state),
		"state":     state,
	})
}

// Status echoes the decoded claims of the presented bearer token.
func (h *AuthHandler) Status(c echo.Context) error {
	claims, ok := middleware.UserClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"ok":   true,
		"user": claims,
	})
}

// Logout acknowledges the client-side logout. User tokens are stateless, so
// there is nothing to revoke server-side.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"ok":      true,
		"message": "已登出",
	})
}
