package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/fusandy452/aistudent-backend/internal/api/metrics"
	"github.com/fusandy452/aistudent-backend/internal/core/domain"
	"github.com/fusandy452/aistudent-backend/internal/infrastructure/oauth"
)

const testFrontend = "https://frontend.example.com"

type stubProvider struct {
	name       string
	configured bool
	authURL    string
	exchangeFn func(ctx context.Context, code string) (*domain.ExternalIdentity, error)
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Configured() bool { return s.configured }

func (s *stubProvider) AuthURL(state string) string { return s.authURL + "&state=" + state }

func (s *stubProvider) Exchange(ctx context.Context, code string) (*domain.ExternalIdentity, error) {
	return s.exchangeFn(ctx, code)
}

type stubOAuthService struct {
	completeFn func(ctx context.Context, identity *domain.ExternalIdentity) (string, *domain.User, error)
}

func (s *stubOAuthService) CompleteLogin(ctx context.Context, identity *domain.ExternalIdentity) (string, *domain.User, error) {
	return s.completeFn(ctx, identity)
}

func callbackContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func googleFixture(t *testing.T) (*OAuthHandler, *stubProvider) {
	t.Helper()
	google := &stubProvider{
		name:       domain.ProviderGoogle,
		configured: true,
		exchangeFn: func(ctx context.Context, code string) (*domain.ExternalIdentity, error) {
			t.Fatalf("exchange must not be called")
			return nil, nil
		},
	}
	line := &stubProvider{name: domain.ProviderLINE, configured: true}
	logins := &stubOAuthService{
		completeFn: func(ctx context.Context, identity *domain.ExternalIdentity) (string, *domain.User, error) {
			t.Fatalf("login must not be called")
			return "", nil, nil
		},
	}
	return NewOAuthHandler(google, line, logins, testFrontend), google
}

func TestGoogleCallback_ProviderErrorRedirects(t *testing.T) {
	h, _ := googleFixture(t)
	c, rec := callbackContext(t, "/auth/google/callback?error=access_denied")

	if err := h.GoogleCallback(c); err != nil {
		t.Fatalf("callback: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != testFrontend+"?error=access_denied" {
		t.Fatalf("unexpected redirect %q", got)
	}
}

func TestGoogleCallback_MissingCode(t *testing.T) {
	h, _ := googleFixture(t)
	c, rec := callbackContext(t, "/auth/google/callback")

	if err := h.GoogleCallback(c); err != nil {
		t.Fatalf("callback: %v", err)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != testFrontend+"?error=missing_code" {
		t.Fatalf("unexpected redirect %q", got)
	}
}

func TestGoogleCallback_ExchangeFailures(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{oauth.ErrTokenExchange, "token_exchange_failed"},
		{oauth.ErrProfileFetch, "user_info_failed"},
		{context.DeadlineExceeded, "callback_failed"},
	}
	for _, tc := range cases {
		h, google := googleFixture(t)
		google.exchangeFn = func(ctx context.Context, code string) (*domain.ExternalIdentity, error) {
			return nil, tc.err
		}
		c, rec := callbackContext(t, "/auth/google/callback?code=abc")

		if err := h.GoogleCallback(c); err != nil {
			t.Fatalf("callback: %v", err)
		}
		if got := rec.Header().Get(echo.HeaderLocation); got != testFrontend+"?error="+tc.code {
			t.Errorf("%v: unexpected redirect %q", tc.err, got)
		}
	}
}

func successfulGoogle(t *testing.T) *OAuthHandler {
	t.Helper()
	google := &stubProvider{
		name:       domain.ProviderGoogle,
		configured: true,
		exchangeFn: func(ctx context.Context, code string) (*domain.ExternalIdentity, error) {
			return &domain.ExternalIdentity{Provider: domain.ProviderGoogle, ExternalID: "google-123"}, nil
		},
	}
	logins := &stubOAuthService{
		completeFn: func(ctx context.Context, identity *domain.ExternalIdentity) (string, *domain.User, error) {
			return "jwt-token", &domain.User{
				Provider:   domain.ProviderGoogle,
				ExternalID: "google-123",
				Email:      "alice@example.com",
				Name:       "Alice </script>",
			}, nil
		},
	}
	return NewOAuthHandler(google, &stubProvider{name: domain.ProviderLINE}, logins, testFrontend)
}

func TestGoogleCallback_RedirectMode(t *testing.T) {
	h := successfulGoogle(t)
	c, rec := callbackContext(t, "/auth/google/callback?code=abc")

	logins := metrics.LoginsTotal.WithLabelValues(domain.ProviderGoogle, "success")
	before := testutil.ToFloat64(logins)

	if err := h.GoogleCallback(c); err != nil {
		t.Fatalf("callback: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != testFrontend+"?token=jwt-token" {
		t.Fatalf("unexpected redirect %q", got)
	}
	// The label comes from the provider, not a hardcoded constant.
	if got := testutil.ToFloat64(logins) - before; got != 1 {
		t.Fatalf("expected 1 google success login counted, got %v", got)
	}
}

func TestGoogleCallback_PopupMode(t *testing.T) {
	h := successfulGoogle(t)
	c, rec := callbackContext(t, "/auth/google/callback?code=abc&state=popup_login")

	if err := h.GoogleCallback(c); err != nil {
		t.Fatalf("callback: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, echo.MIMETextHTML) {
		t.Fatalf("expected html, got %q", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "GOOGLE_LOGIN_SUCCESS") {
		t.Fatalf("popup page missing postMessage type:\n%s", body)
	}
	if !strings.Contains(body, "jwt-token") {
		t.Fatalf("popup page missing token:\n%s", body)
	}
	// The user name carries markup; the template must not emit it raw.
	if strings.Contains(body, "Alice </script>") {
		t.Fatalf("unescaped user field in popup page:\n%s", body)
	}
}

func TestLINECallback_ErrorPaths(t *testing.T) {
	line := &stubProvider{
		name:       domain.ProviderLINE,
		configured: true,
		exchangeFn: func(ctx context.Context, code string) (*domain.ExternalIdentity, error) {
			return nil, oauth.ErrTokenExchange
		},
	}
	logins := &stubOAuthService{
		completeFn: func(ctx context.Context, identity *domain.ExternalIdentity) (string, *domain.User, error) {
			t.Fatalf("login must not be called")
			return "", nil, nil
		},
	}
	h := NewOAuthHandler(&stubProvider{name: domain.ProviderGoogle}, line, logins, testFrontend)

	cases := []struct {
		target string
		code   string
	}{
		{"/auth/line/callback?error=access_denied", "line_access_denied"},
		{"/auth/line/callback", "line_no_code"},
		{"/auth/line/callback?code=abc", "line_token_failed"},
	}
	for _, tc := range cases {
		c, rec := callbackContext(t, tc.target)
		if err := h.LINECallback(c); err != nil {
			t.Fatalf("callback: %v", err)
		}
		if got := rec.Header().Get(echo.HeaderLocation); got != testFrontend+"/?error="+tc.code {
			t.Errorf("%s: unexpected redirect %q", tc.target, got)
		}
	}
}

func TestLINECallback_Unconfigured(t *testing.T) {
	line := &stubProvider{name: domain.ProviderLINE, configured: false}
	h := NewOAuthHandler(&stubProvider{name: domain.ProviderGoogle}, line, &stubOAuthService{}, testFrontend)

	c, rec := callbackContext(t, "/auth/line/callback?code=abc")
	if err := h.LINECallback(c); err != nil {
		t.Fatalf("callback: %v", err)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != testFrontend+"/?error=line_config_error" {
		t.Fatalf("unexpected redirect %q", got)
	}
}

func TestLINECallback_Success(t *testing.T) {
	line := &stubProvider{
		name:       domain.ProviderLINE,
		configured: true,
		exchangeFn: func(ctx context.Context, code string) (*domain.ExternalIdentity, error) {
			return &domain.ExternalIdentity{Provider: domain.ProviderLINE, ExternalID: "line-9"}, nil
		},
	}
	logins := &stubOAuthService{
		completeFn: func(ctx context.Context, identity *domain.ExternalIdentity) (string, *domain.User, error) {
			return "line-jwt", &domain.User{Provider: domain.ProviderLINE, ExternalID: "line-9"}, nil
		},
	}
	h := NewOAuthHandler(&stubProvider{name: domain.ProviderGoogle}, line, logins, testFrontend)

	c, rec := callbackContext(t, "/auth/line/callback?code=abc&state=line_login_1")
	if err := h.LINECallback(c); err != nil {
		t.Fatalf("callback: %v", err)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != testFrontend+"/?token=line-jwt&provider=line" {
		t.Fatalf("unexpected redirect %q", got)
	}
}
