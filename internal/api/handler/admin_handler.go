package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fusandy452/aistudent-backend/internal/api/middleware"
	"github.com/fusandy452/aistudent-backend/internal/core/domain"
	"github.com/fusandy452/aistudent-backend/internal/core/ports"
)

// AdminHandler serves the operator console authentication endpoints.
type AdminHandler struct {
	admins ports.AdminService
}

func NewAdminHandler(admins ports.AdminService) *AdminHandler {
	return &AdminHandler{admins: admins}
}

type adminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type adminSummary struct {
	AdminID     string `json:"admin_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Permissions string `json:"permissions"`
}

// Login verifies operator credentials and opens a 24h session.
func (h *AdminHandler) Login(c echo.Context) error {
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password required")
	}

	session, admin, err := h.admins.Login(c.Request().Context(), req.Username, req.Password, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"ok":         true,
		"session_id": session.SessionID,
		"admin":      summarize(admin),
	})
}

// Logout deletes the presented session. Runs behind AdminAuth, so the
// session is known to be valid here.
func (h *AdminHandler) Logout(c echo.Context) error {
	session, ok := middleware.AdminSession(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	if err := h.admins.Logout(c.Request().Context(), session.SessionID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"ok":      true,
		"message": "Logged out successfully",
	})
}

func summarize(admin *domain.AdminAccount) adminSummary {
	return adminSummary{
		AdminID:     admin.AdminID,
		Username:    admin.Username,
		Email:       admin.Email,
		Role:        admin.Role,
		Permissions: admin.Permissions,
	}
}
