package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fusandy452/aistudent-backend/internal/api/metrics"
	"github.com/fusandy452/aistudent-backend/internal/api/middleware"
	"github.com/fusandy452/aistudent-backend/internal/core/ports"
)

// ProfileHandler serves intake submission and profile retrieval.
type ProfileHandler struct {
	intake ports.IntakeService
}

func NewProfileHandler(intake ports.IntakeService) *ProfileHandler {
	return &ProfileHandler{intake: intake}
}

// Intake accepts an arbitrary field map from the intake form, stores it under
// a fresh profile id, and returns the id.
func (h *ProfileHandler) Intake(c echo.Context) error {
	claims, ok := middleware.UserClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	fields := map[string]any{}
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	profileID, err := h.intake.Submit(c.Request().Context(), ports.IntakeInput{
		UserID: claims.UserID,
		Fields: fields,
	})
	if err != nil {
		return err
	}

	role, _ := fields["user_role"].(string)
	if role == "" {
		role = "unknown"
	}
	metrics.ProfilesCreatedTotal.WithLabelValues(role).Inc()

	return c.JSON(http.StatusOK, map[string]any{
		"ok":   true,
		"data": map[string]string{"profile_id": profileID},
	})
}

// GetProfile returns a stored profile, flattened back to the shape it was
// submitted in. Only the owner may read it.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	claims, ok := middleware.UserClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	profile, err := h.intake.GetProfile(c.Request().Context(), c.Param("id"), claims.UserID)
	if err != nil {
		return err
	}

	data := make(map[string]any, len(profile.Fields)+3)
	for k, v := range profile.Fields {
		data[k] = v
	}
	data["profile_id"] = profile.ProfileID
	data["user_id"] = profile.UserID
	data["created_at"] = profile.CreatedAt

	return c.JSON(http.StatusOK, map[string]any{
		"ok":   true,
		"data": data,
	})
}
