package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fusandy452/aistudent-backend/internal/core/domain"
	"github.com/fusandy452/aistudent-backend/internal/core/ports"
)

const claimsContextKey = "user_claims"

// Auth validates the user bearer token and injects its claims into context.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// UserClaims extracts the claims injected by Auth. The boolean is false when
// the middleware did not run on this route.
func UserClaims(c echo.Context) (*domain.TokenClaims, bool) {
	claims, ok := c.Get(claimsContextKey).(*domain.TokenClaims)
	return claims, ok
}

// bearerToken pulls the credential out of the Authorization header.
func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
