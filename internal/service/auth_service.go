package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/tyazhprofil/site/internal/security"
	"github.com/tyazhprofil/site/internal/store"
)

const minPasswordLength = 6

// credentialRepository is the subset of store.AdminStore that AuthService requires.
type credentialRepository interface {
	PasswordHash(ctx context.Context) (string, error)
	SetPasswordHash(ctx context.Context, hash string) error
	InitPasswordHash(ctx context.Context, hash string) (bool, error)
}

// AuthService checks the shared admin password and issues session tokens.
// Authentication depends only on the password: there is no lockout.
type AuthService struct {
	creds  credentialRepository
	secret string
	ttl    time.Duration
	logger *slog.Logger
}

func NewAuthService(creds credentialRepository, secret string, ttl time.Duration, logger *slog.Logger) *AuthService {
	return &AuthService{creds: creds, secret: secret, ttl: ttl, logger: logger}
}

// Bootstrap stores password as the admin credential if none exists yet.
// It fails when no credential exists and password is empty, since the
// console would then be unreachable.
func (s *AuthService) Bootstrap(ctx context.Context, password string) error {
	exists, err := s.PasswordExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if password == "" {
		return errors.New("no admin credential stored and ADMIN_PASSWORD is empty")
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	created, err := s.creds.InitPasswordHash(ctx, hash)
	if err != nil {
		return err
	}
	if created {
		s.logger.Info("admin credential initialized")
	}
	return nil
}

func (s *AuthService) PasswordExists(ctx context.Context) (bool, error) {
	_, err := s.creds.PasswordHash(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check admin credential: %w", err)
	}
	return true, nil
}

// Authenticate returns a signed session token when password matches.
func (s *AuthService) Authenticate(ctx context.Context, password string) (string, time.Time, error) {
	if err := s.verify(ctx, password); err != nil {
		return "", time.Time{}, err
	}

	token, expires, err := security.GenerateAdminToken(s.secret, s.ttl)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	s.logger.Info("admin authenticated", "expires_at", expires)
	return token, expires, nil
}

func (s *AuthService) ValidateToken(token string) error {
	if token == "" {
		return ErrUnauthorized
	}
	if _, err := security.ParseAdminToken(s.secret, token); err != nil {
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return nil
}

// ChangePassword replaces the credential after verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, current, next string) error {
	if err := s.verify(ctx, current); err != nil {
		return err
	}
	if utf8.RuneCountInString(next) < minPasswordLength {
		return invalid("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(next) > security.MaxPasswordBytes {
		return invalid("password", fmt.Sprintf("password must be at most %d bytes", security.MaxPasswordBytes))
	}

	hash, err := security.HashPassword(next)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	if err := s.creds.SetPasswordHash(ctx, hash); err != nil {
		return err
	}
	s.logger.Info("admin password changed")
	return nil
}

func (s *AuthService) verify(ctx context.Context, password string) error {
	hash, err := s.creds.PasswordHash(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUnauthorized
	}
	if err != nil {
		return fmt.Errorf("failed to read admin credential: %w", err)
	}
	if !security.CheckPassword(hash, password) {
		return ErrUnauthorized
	}
	return nil
}
