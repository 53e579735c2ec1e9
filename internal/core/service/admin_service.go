package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fusandy452/aistudent-backend/internal/core/domain"
	"github.com/fusandy452/aistudent-backend/internal/core/ports"
)

const adminSessionTTL = 24 * time.Hour

// OperatorService authenticates admin accounts and manages their opaque
// server-side sessions.
type OperatorService struct {
	admins   ports.AdminRepository
	sessions ports.AdminSessionStore
	logger   zerolog.Logger
}

func NewOperatorService(admins ports.AdminRepository, sessions ports.AdminSessionStore, logger zerolog.Logger) *OperatorService {
	return &OperatorService{admins: admins, sessions: sessions, logger: logger}
}

// Login verifies username/password and the active flag, then creates a 24h
// session carrying the client metadata. Unknown usernames and wrong passwords
// are indistinguishable to the caller.
func (s *OperatorService) Login(ctx context.Context, username, password, clientIP, userAgent string) (*domain.AdminSession, *domain.AdminAccount, error) {
	admin, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !VerifyPassword(admin.PasswordHash, password) {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if !admin.Active {
		return nil, nil, domain.ErrAccountDisabled
	}

	now := time.Now().UTC()
	if err := s.admins.UpdateLastLogin(ctx, admin.AdminID, now); err != nil {
		s.logger.Warn().Err(err).Str("admin_id", admin.AdminID).Msg("failed to record last login")
	}

	sessionID, err := newSessionID()
	if err != nil {
		return nil, nil, err
	}
	session := &domain.AdminSession{
		SessionID: sessionID,
		AdminID:   admin.AdminID,
		ExpiresAt: now.Add(adminSessionTTL),
		ClientIP:  clientIP,
		UserAgent: userAgent,
		CreatedAt: now,
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, nil, err
	}

	s.logger.Info().Str("admin_id", admin.AdminID).Str("username", admin.Username).Msg("admin logged in")
	return session, admin, nil
}

// Logout removes the session row. Deleting an absent session is not an error,
// so two sessions for the same admin stay independent.
func (s *OperatorService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// ValidateSession returns the session when it is present and unexpired.
func (s *OperatorService) ValidateSession(ctx context.Context, sessionID string) (*domain.AdminSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// EnsureSuperAdmin creates the default super admin on first startup when no
// super_admin account exists yet.
func (s *OperatorService) EnsureSuperAdmin(ctx context.Context, username, password string) error {
	count, err := s.admins.CountByRole(ctx, domain.AdminRoleSuper)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	admin := &domain.AdminAccount{
		AdminID:      uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Email:        "admin@example.com",
		Role:         domain.AdminRoleSuper,
		Permissions:  "full_access",
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return err
	}
	s.logger.Warn().Str("username", username).Msg("created default super admin, change its password")
	return nil
}

func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
