package domain

import (
	"errors"
	"time"
)

const (
	ProviderGoogle = "google"
	ProviderLINE   = "line"
)

var ErrUserNotFound = errors.New("user not found")
var ErrInvalidToken = errors.New("invalid token")

// User models an end user identified by a third-party provider.
// Uniqueness is (Provider, ExternalID); rows are created on first OAuth
// login, updated on subsequent logins, never deleted.
type User struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	Provider   string    `json:"provider" bson:"provider"`
	ExternalID string    `json:"user_id" bson:"external_id"`
	Email      string    `json:"email" bson:"email"`
	Name       string    `json:"name" bson:"name"`
	AvatarURL  string    `json:"avatar" bson:"avatar_url"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// ExternalIdentity is what an OAuth provider reports about a user after a
// successful code exchange and profile fetch.
type ExternalIdentity struct {
	Provider   string
	ExternalID string
	Email      string
	Name       string
	AvatarURL  string
}

// TokenClaims is the decoded payload of a user bearer token.
type TokenClaims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}
