package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fusandy452/aistudent-backend/internal/core/domain"
)

type stubAdminRepo struct {
	admins     map[string]*domain.AdminAccount
	superCount int64
	created    []*domain.AdminAccount
	lastLogin  map[string]time.Time
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{
		admins:    map[string]*domain.AdminAccount{},
		lastLogin: map[string]time.Time{},
	}
}

func (s *stubAdminRepo) FindByUsername(ctx context.Context, username string) (*domain.AdminAccount, error) {
	admin, ok := s.admins[username]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	return admin, nil
}

func (s *stubAdminRepo) Create(ctx context.Context, admin *domain.AdminAccount) error {
	s.created = append(s.created, admin)
	s.admins[admin.Username] = admin
	return nil
}

func (s *stubAdminRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	return s.superCount, nil
}

func (s *stubAdminRepo) UpdateLastLogin(ctx context.Context, adminID string, at time.Time) error {
	s.lastLogin[adminID] = at
	return nil
}

type stubSessionStore struct {
	sessions map[string]*domain.AdminSession
	putErr   error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: map[string]*domain.AdminSession{}}
}

func (s *stubSessionStore) Put(ctx context.Context, session *domain.AdminSession) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.sessions[session.SessionID] = session
	return nil
}

func (s *stubSessionStore) Get(ctx context.Context, sessionID string) (*domain.AdminSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *stubSessionStore) Delete(ctx context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func activeAdmin(t *testing.T, username, password string) *domain.AdminAccount {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &domain.AdminAccount{
		AdminID:      "admin-1",
		Username:     username,
		PasswordHash: hash,
		Email:        "admin@example.com",
		Role:         domain.AdminRoleSuper,
		Permissions:  "full_access",
		Active:       true,
	}
}

func TestAdminLogin_Success(t *testing.T) {
	repo := newStubAdminRepo()
	repo.admins["admin"] = activeAdmin(t, "admin", "admin123")
	store := newStubSessionStore()
	svc := NewOperatorService(repo, store, zerolog.Nop())

	session, admin, err := svc.Login(context.Background(), "admin", "admin123", "203.0.113.9", "curl/8.0")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if admin.Username != "admin" {
		t.Fatalf("unexpected admin %+v", admin)
	}
	if session.SessionID == "" || session.AdminID != "admin-1" {
		t.Fatalf("unexpected session %+v", session)
	}
	if session.ClientIP != "203.0.113.9" || session.UserAgent != "curl/8.0" {
		t.Fatalf("client metadata not recorded: %+v", session)
	}
	if ttl := time.Until(session.ExpiresAt); ttl < 23*time.Hour || ttl > 25*time.Hour {
		t.Fatalf("session ttl out of range: %v", ttl)
	}
	if _, ok := store.sessions[session.SessionID]; !ok {
		t.Fatalf("session not stored")
	}
	if _, ok := repo.lastLogin["admin-1"]; !ok {
		t.Fatalf("last login not recorded")
	}
}

func TestAdminLogin_InvalidCredentials(t *testing.T) {
	repo := newStubAdminRepo()
	repo.admins["admin"] = activeAdmin(t, "admin", "admin123")
	svc := NewOperatorService(repo, newStubSessionStore(), zerolog.Nop())

	// Unknown username and wrong password are indistinguishable.
	if _, _, err := svc.Login(context.Background(), "nobody", "admin123", "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown username: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "admin", "wrong", "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAdminLogin_DisabledAccount(t *testing.T) {
	repo := newStubAdminRepo()
	admin := activeAdmin(t, "admin", "admin123")
	admin.Active = false
	repo.admins["admin"] = admin
	svc := NewOperatorService(repo, newStubSessionStore(), zerolog.Nop())

	if _, _, err := svc.Login(context.Background(), "admin", "admin123", "", ""); !errors.Is(err, domain.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestAdminSessions_AreIndependent(t *testing.T) {
	repo := newStubAdminRepo()
	repo.admins["admin"] = activeAdmin(t, "admin", "admin123")
	store := newStubSessionStore()
	svc := NewOperatorService(repo, store, zerolog.Nop())

	first, _, err := svc.Login(context.Background(), "admin", "admin123", "", "")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, _, err := svc.Login(context.Background(), "admin", "admin123", "", "")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if first.SessionID == second.SessionID {
		t.Fatalf("two logins produced the same session id")
	}

	if err := svc.Logout(context.Background(), first.SessionID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.ValidateSession(context.Background(), first.SessionID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("logged-out session still valid: %v", err)
	}
	if _, err := svc.ValidateSession(context.Background(), second.SessionID); err != nil {
		t.Fatalf("unrelated session invalidated: %v", err)
	}
}

func TestValidateSession_Expired(t *testing.T) {
	store := newStubSessionStore()
	store.sessions["stale"] = &domain.AdminSession{
		SessionID: "stale",
		AdminID:   "admin-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	svc := NewOperatorService(newStubAdminRepo(), store, zerolog.Nop())

	if _, err := svc.ValidateSession(context.Background(), "stale"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for expired session, got %v", err)
	}
	if _, ok := store.sessions["stale"]; ok {
		t.Fatalf("expired session not purged")
	}
}

func TestEnsureSuperAdmin_BootstrapsOnce(t *testing.T) {
	repo := newStubAdminRepo()
	svc := NewOperatorService(repo, newStubSessionStore(), zerolog.Nop())

	if err := svc.EnsureSuperAdmin(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 created admin, got %d", len(repo.created))
	}
	created := repo.created[0]
	if created.Role != domain.AdminRoleSuper || created.Permissions != "full_access" || !created.Active {
		t.Fatalf("unexpected bootstrap account: %+v", created)
	}
	if !VerifyPassword(created.PasswordHash, "admin123") {
		t.Fatalf("bootstrap password not verifiable")
	}

	// A super admin exists now; a second call must not create another.
	repo.superCount = 1
	if err := svc.EnsureSuperAdmin(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("repeat bootstrap: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("bootstrap ran twice")
	}
}
