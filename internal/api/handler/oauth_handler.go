package handler

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/fusandy452/aistudent-backend/internal/api/metrics"
	"github.com/fusandy452/aistudent-backend/internal/core/domain"
	"github.com/fusandy452/aistudent-backend/internal/core/ports"
	"github.com/fusandy452/aistudent-backend/internal/infrastructure/oauth"
	"github.com/fusandy452/aistudent-backend/pkg/logger"
)

// statePopup marks a Google login started from a popup window. The callback
// then answers with a page that posts the token to the opener instead of
// redirecting the whole window.
const statePopup = "popup_login"

// popupPage posts the login result to the opening window. Rendered with
// html/template so the token and profile fields are escaped in the script
// context and cannot break out of it.
var popupPage = template.Must(template.New("popup").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>登入成功</title>
    <meta charset="UTF-8">
</head>
<body>
    <script>
        if (window.opener) {
            window.opener.postMessage({
                type: 'GOOGLE_LOGIN_SUCCESS',
                token: {{.Token}},
                user: {
                    userId: {{.User.ExternalID}},
                    email: {{.User.Email}},
                    name: {{.User.Name}},
                    avatar: {{.User.AvatarURL}}
                }
            }, {{.Origin}});
            window.close();
        } else {
            window.location.href = {{.Fallback}};
        }
    </script>
    <div style="text-align: center; padding: 50px; font-family: Arial, sans-serif;">
        <h2>登入成功！</h2>
        <p>正在關閉視窗...</p>
    </div>
</body>
</html>
`))

type popupData struct {
	Token    string
	User     *domain.User
	Origin   string
	Fallback string
}

// OAuthHandler terminates the browser-facing provider callbacks. Every
// failure path redirects back to the frontend with an error code; raw errors
// never reach the browser.
type OAuthHandler struct {
	google      ports.IdentityProvider
	line        ports.IdentityProvider
	logins      ports.OAuthService
	frontendURL string
}

func NewOAuthHandler(google, line ports.IdentityProvider, logins ports.OAuthService, frontendURL string) *OAuthHandler {
	return &OAuthHandler{google: google, line: line, logins: logins, frontendURL: frontendURL}
}

// GoogleCallback handles GET /auth/google/callback.
func (h *OAuthHandler) GoogleCallback(c echo.Context) error {
	if errParam := c.QueryParam("error"); errParam != "" {
		return h.failGoogle(c, errParam)
	}

	code := c.QueryParam("code")
	if code == "" {
		return h.failGoogle(c, "missing_code")
	}

	ctx := c.Request().Context()

	identity, err := h.google.Exchange(ctx, code)
	if err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("google callback: exchange failed")
		switch {
		case errors.Is(err, oauth.ErrTokenExchange):
			return h.failGoogle(c, "token_exchange_failed")
		case errors.Is(err, oauth.ErrProfileFetch):
			return h.failGoogle(c, "user_info_failed")
		default:
			return h.failGoogle(c, "callback_failed")
		}
	}

	token, user, err := h.logins.CompleteLogin(ctx, identity)
	if err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("google callback: login failed")
		return h.failGoogle(c, "callback_failed")
	}

	metrics.LoginsTotal.WithLabelValues(h.google.Name(), "success").Inc()

	fallback := h.frontendURL + "?token=" + url.QueryEscape(token)
	if c.QueryParam("state") == statePopup {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		c.Response().WriteHeader(http.StatusOK)
		return popupPage.Execute(c.Response(), popupData{
			Token:    token,
			User:     user,
			Origin:   h.frontendURL,
			Fallback: fallback,
		})
	}

	return c.Redirect(http.StatusFound, fallback)
}

// LINECallback handles GET /auth/line/callback.
func (h *OAuthHandler) LINECallback(c echo.Context) error {
	if errParam := c.QueryParam("error"); errParam != "" {
		return h.failLINE(c, "line_"+errParam)
	}

	code := c.QueryParam("code")
	if code == "" {
		return h.failLINE(c, "line_no_code")
	}

	if !h.line.Configured() {
		return h.failLINE(c, "line_config_error")
	}

	ctx := c.Request().Context()

	identity, err := h.line.Exchange(ctx, code)
	if err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("line callback: exchange failed")
		switch {
		case errors.Is(err, oauth.ErrTokenExchange):
			return h.failLINE(c, "line_token_failed")
		case errors.Is(err, oauth.ErrProfileFetch):
			return h.failLINE(c, "line_profile_failed")
		default:
			return h.failLINE(c, "line_callback_failed")
		}
	}

	token, _, err := h.logins.CompleteLogin(ctx, identity)
	if err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("line callback: login failed")
		return h.failLINE(c, "line_callback_failed")
	}

	metrics.LoginsTotal.WithLabelValues(h.line.Name(), "success").Inc()

	return c.Redirect(http.StatusFound, h.frontendURL+"/?token="+url.QueryEscape(token)+"&provider=line")
}

func (h *OAuthHandler) failGoogle(c echo.Context, code string) error {
	metrics.LoginsTotal.WithLabelValues(h.google.Name(), code).Inc()
	return c.Redirect(http.StatusFound, h.frontendURL+"?error="+url.QueryEscape(code))
}

func (h *OAuthHandler) failLINE(c echo.Context, code string) error {
	metrics.LoginsTotal.WithLabelValues(h.line.Name(), code).Inc()
	return c.Redirect(http.StatusFound, h.frontendURL+"/?error="+url.QueryEscape(code))
}
