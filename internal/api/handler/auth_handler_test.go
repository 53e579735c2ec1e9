package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fusandy452/aistudent-backend/internal/core/domain"
)

func TestAuthConfig_ReportsProviders(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubProvider{name: domain.ProviderLINE}, "google-client-id", "line-channel-id")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/config", nil)
	rec := httptest.NewRecorder()
	if err := h.Config(e.NewContext(req, rec)); err != nil {
		t.Fatalf("config: %v", err)
	}

	var resp struct {
		OK     bool `json:"ok"`
		Google struct {
			Enabled  bool   `json:"enabled"`
			ClientID string `json:"client_id"`
		} `json:"google"`
		Line struct {
			Enabled   bool   `json:"enabled"`
			ChannelID string `json:"channel_id"`
		} `json:"line"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.OK || !resp.Google.Enabled || resp.Google.ClientID != "google-client-id" {
		t.Fatalf("unexpected google config: %+v", resp)
	}
	if !resp.Line.Enabled || resp.Line.ChannelID != "line-channel-id" {
		t.Fatalf("unexpected line config: %+v", resp)
	}
}

func TestAuthConfig_DisabledProviders(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubProvider{name: domain.ProviderLINE}, "", "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/config", nil)
	rec := httptest.NewRecorder()
	if err := h.Config(e.NewContext(req, rec)); err != nil {
		t.Fatalf("config: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	google := resp["google"].(map[string]any)
	if google["enabled"] != false {
		t.Fatalf("google must be disabled without a client id: %+v", google)
	}
}

func TestLINELogin_BuildsURL(t *testing.T) {
	e := echo.New()
	line := &stubProvider{
		name:       domain.ProviderLINE,
		configured: true,
		authURL:    "https://access.line.me/oauth2/v2.1/authorize?client_id=x",
	}
	h := NewAuthHandler(line, "", "line-channel-id")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/line/login", nil)
	rec := httptest.NewRecorder()
	if err := h.LINELogin(e.NewContext(req, rec)); err != nil {
		t.Fatalf("line login: %v", err)
	}

	var resp struct {
		OK       bool   `json:"ok"`
		LoginURL string `json:"login_url"`
		State    string `json:"state"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.OK || !strings.HasPrefix(resp.State, "line_login_") {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !strings.Contains(resp.LoginURL, resp.State) {
		t.Fatalf("login url does not carry the state: %+v", resp)
	}
}

func TestLINELogin_Unconfigured(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubProvider{name: domain.ProviderLINE, configured: false}, "", "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/line/login", nil)
	rec := httptest.NewRecorder()

	err := h.LINELogin(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %v", err)
	}
}

func TestAuthStatus_EchoesClaims(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubProvider{name: domain.ProviderLINE}, "", "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/status", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_claims", &domain.TokenClaims{UserID: "google-123", Email: "alice@example.com"})

	if err := h.Status(c); err != nil {
		t.Fatalf("status: %v", err)
	}

	var resp struct {
		OK   bool               `json:"ok"`
		User domain.TokenClaims `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.OK || resp.User.UserID != "google-123" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthLogout_Acknowledges(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubProvider{name: domain.ProviderLINE}, "", "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	if err := h.Logout(e.NewContext(req, rec)); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "已登出") {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}
