package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fusandy452/aistudent-backend/internal/core/domain"
	"github.com/fusandy452/aistudent-backend/internal/core/ports"
)

const adminSessionContextKey = "admin_session"

// AdminAuth validates the opaque admin session id carried as a bearer
// credential and injects the session into context.
func AdminAuth(admins ports.AdminService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID, ok := bearerToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			session, err := admins.ValidateSession(c.Request().Context(), sessionID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Session expired")
			}

			c.Set(adminSessionContextKey, session)
			return next(c)
		}
	}
}

// AdminSession extracts the session injected by AdminAuth.
func AdminSession(c echo.Context) (*domain.AdminSession, bool) {
	session, ok := c.Get(adminSessionContextKey).(*domain.AdminSession)
	return session, ok
}
