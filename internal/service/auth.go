package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/BorgesHen/MochilaOk/internal/auth"
	"github.com/BorgesHen/MochilaOk/internal/domain"
	"github.com/BorgesHen/MochilaOk/internal/repo"
)

// maxPasswordBytes is the most bcrypt will hash.
const maxPasswordBytes = 72

// errBadCredentials is shared by every login failure so that unknown emails
// and wrong passwords look the same.
var errBadCredentials = fmt.Errorf("%w: invalid email or password", domain.ErrUnauthenticated)

// TokenIssuer signs an access token for a user.
type TokenIssuer interface {
	Issue(u domain.User) (string, error)
}

// AuthService registers users and exchanges credentials for tokens.
type AuthService struct {
	users  repo.UserRepo
	tokens TokenIssuer
	log    *slog.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(users repo.UserRepo, tokens TokenIssuer, log *slog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

// Register creates an account and returns it with a fresh token.
// Returns domain.ErrConflict if the email is already registered.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (domain.User, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Register: %w: name is required", domain.ErrValidation)
	}
	email = domain.NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Register: %w: a valid email is required", domain.ErrValidation)
	}
	if len([]rune(password)) < auth.MinPasswordLength {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Register: %w: password must have at least %d characters",
			domain.ErrValidation, auth.MinPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Register: %w: password is too long", domain.ErrValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Register: %w", err)
	}

	u, err := s.users.Create(ctx, domain.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.User{}, "", fmt.Errorf("service.AuthService.Register: %w: email already registered", domain.ErrConflict)
		}
		return domain.User{}, "", fmt.Errorf("service.AuthService.Register: %w", err)
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Register: %w", err)
	}
	s.log.InfoContext(ctx, "user registered", "user_id", u.ID)
	return u, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
// Returns domain.ErrUnauthenticated for an unknown email or a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w: email and password are required", domain.ErrValidation)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", errBadCredentials)
		}
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}

	ok, err := auth.CheckPassword(u.PasswordHash, password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}
	if !ok {
		s.log.WarnContext(ctx, "login failed", "user_id", u.ID)
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", errBadCredentials)
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return u, token, nil
}

// Me returns the authenticated user's profile.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, fmt.Errorf("service.AuthService.Me: %w: user not found", domain.ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("service.AuthService.Me: %w", err)
	}
	return u, nil
}
