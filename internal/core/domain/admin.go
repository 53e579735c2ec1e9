package domain

import (
	"errors"
	"time"
)

const AdminRoleSuper = "super_admin"

var ErrAdminNotFound = errors.New("admin not found")
var ErrAdminExists = errors.New("admin already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountDisabled = errors.New("account disabled")
var ErrSessionNotFound = errors.New("session not found")

// AdminAccount is an operator identity authenticated with a password,
// separate from the OAuth end-user population.
type AdminAccount struct {
	AdminID      string     `json:"admin_id" bson:"admin_id"`
	Username     string     `json:"username" bson:"username"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	Email        string     `json:"email" bson:"email"`
	Role         string     `json:"role" bson:"role"`
	Permissions  string     `json:"permissions" bson:"permissions"`
	Active       bool       `json:"is_active" bson:"is_active"`
	CreatedBy    string     `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" bson:"last_login_at,omitempty"`
}

// AdminSession ties an opaque session id to an admin account. The session
// store enforces expiry; a session is valid only while present and unexpired.
type AdminSession struct {
	SessionID string    `json:"session_id"`
	AdminID   string    `json:"admin_id"`
	ExpiresAt time.Time `json:"expires_at"`
	ClientIP  string    `json:"client_ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
