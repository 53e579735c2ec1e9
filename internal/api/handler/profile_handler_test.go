package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fusandy452/aistudent-backend/internal/core/domain"
	"github.com/fusandy452/aistudent-backend/internal/core/ports"
)

type stubIntakeService struct {
	submitFn func(ctx context.Context, input ports.IntakeInput) (string, error)
	getFn    func(ctx context.Context, profileID, requestingUserID string) (*domain.Profile, error)
}

func (s *stubIntakeService) Submit(ctx context.Context, input ports.IntakeInput) (string, error) {
	return s.submitFn(ctx, input)
}

func (s *stubIntakeService) GetProfile(ctx context.Context, profileID, requestingUserID string) (*domain.Profile, error) {
	return s.getFn(ctx, profileID, requestingUserID)
}

func authedContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_claims", &domain.TokenClaims{UserID: "google-123", Provider: domain.ProviderGoogle})
	return c, rec
}

func TestIntake_Submits(t *testing.T) {
	var got ports.IntakeInput
	stub := &stubIntakeService{
		submitFn: func(ctx context.Context, input ports.IntakeInput) (string, error) {
			got = input
			return "profile_new", nil
		},
	}
	h := NewProfileHandler(stub)

	c, rec := authedContext(t, http.MethodPost, "/api/v1/intake", `{"user_role":"student","target_country":"US"}`)
	if err := h.Intake(c); err != nil {
		t.Fatalf("intake: %v", err)
	}

	if got.UserID != "google-123" {
		t.Fatalf("caller identity not forwarded: %+v", got)
	}
	if got.Fields["user_role"] != "student" || got.Fields["target_country"] != "US" {
		t.Fatalf("fields not forwarded: %+v", got.Fields)
	}

	var resp struct {
		OK   bool `json:"ok"`
		Data struct {
			ProfileID string `json:"profile_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.OK || resp.Data.ProfileID != "profile_new" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestIntake_MissingClaims(t *testing.T) {
	h := NewProfileHandler(&stubIntakeService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/intake", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Intake(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestGetProfile_FlattensFields(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	stub := &stubIntakeService{
		getFn: func(ctx context.Context, profileID, requestingUserID string) (*domain.Profile, error) {
			if profileID != "profile_abc" || requestingUserID != "google-123" {
				t.Fatalf("unexpected args: %s %s", profileID, requestingUserID)
			}
			return &domain.Profile{
				ProfileID: profileID,
				UserID:    requestingUserID,
				Fields:    map[string]any{"target_country": "US"},
				CreatedAt: createdAt,
			}, nil
		},
	}
	h := NewProfileHandler(stub)

	c, rec := authedContext(t, http.MethodGet, "/api/v1/user/profile/profile_abc", "")
	c.SetParamNames("id")
	c.SetParamValues("profile_abc")

	if err := h.GetProfile(c); err != nil {
		t.Fatalf("get: %v", err)
	}

	var resp struct {
		OK   bool           `json:"ok"`
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.OK {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Data["profile_id"] != "profile_abc" || resp.Data["target_country"] != "US" {
		t.Fatalf("profile not flattened: %+v", resp.Data)
	}
}

func TestGetProfile_ErrorsPropagate(t *testing.T) {
	cases := []error{domain.ErrAccessDenied, domain.ErrProfileNotFound}
	for _, want := range cases {
		stub := &stubIntakeService{
			getFn: func(ctx context.Context, profileID, requestingUserID string) (*domain.Profile, error) {
				return nil, want
			},
		}
		h := NewProfileHandler(stub)

		c, _ := authedContext(t, http.MethodGet, "/api/v1/user/profile/profile_abc", "")
		c.SetParamNames("id")
		c.SetParamValues("profile_abc")

		// The central error handler maps these to 403/404.
		if err := h.GetProfile(c); !errors.Is(err, want) {
			t.Errorf("expected %v to propagate, got %v", want, err)
		}
	}
}
