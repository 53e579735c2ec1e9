package ports

import (
	"context"

	"github.com/fusandy452/aistudent-backend/internal/core/domain"
)

// IdentityProvider wraps one OAuth provider's authorization-code flow:
// build the authorize URL, then trade a callback code for the user's
// external identity (token exchange + profile fetch).
type IdentityProvider interface {
	Name() string
	Configured() bool
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*domain.ExternalIdentity, error)
}

// TokenService issues and validates user bearer tokens.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Validate(token string) (*domain.TokenClaims, error)
}

// OAuthService completes a federated login: upsert the local user for the
// provider identity and issue an application token.
type OAuthService interface {
	CompleteLogin(ctx context.Context, identity *domain.ExternalIdentity) (string, *domain.User, error)
}

// AdminService authenticates operators against stored credentials and
// manages their opaque sessions.
type AdminService interface {
	Login(ctx context.Context, username, password, clientIP, userAgent string) (*domain.AdminSession, *domain.AdminAccount, error)
	Logout(ctx context.Context, sessionID string) error
	ValidateSession(ctx context.Context, sessionID string) (*domain.AdminSession, error)
}
