package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bintangginanjar/Personal-Portfolio-API/internal/models"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/repository"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/security"
)

// ErrInvalidCredentials covers unknown username and wrong password alike, so
// the login response never reveals which one failed.
var ErrInvalidCredentials = errors.New("wrong username or password")

// TokenCache drops cached user records for tokens that stop being valid.
type TokenCache interface {
	Invalidate(ctx context.Context, token string)
}

type AuthService struct {
	users   repository.Users
	keyring *security.Keyring
	cache   TokenCache
	log     zerolog.Logger
}

func NewAuthService(users repository.Users, keyring *security.Keyring, cache TokenCache, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:   users,
		keyring: keyring,
		cache:   cache,
		log:     log,
	}
}

type RegisterInput struct {
	Username string
	Password string
	Role     string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	input.Username = strings.TrimSpace(input.Username)

	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return models.User{}, repository.ErrDuplicateUsername
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return models.User{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Username:     input.Username,
		PasswordHash: passwordHash,
	}
	if err := s.users.Create(ctx, &user, input.Role); err != nil {
		return models.User{}, err
	}

	s.log.Info().Str("username", user.Username).Msg("user registered")
	return user, nil
}

type TokenResult struct {
	Username string
	Token    string
	Roles    []string
}

// Login verifies the password, mints a fresh token and overwrites the stored
// token and server-side expiry on the user row. Any previously issued token
// stops matching and is therefore dead. Concurrent logins race on the same
// row; last write wins.
func (s *AuthService) Login(ctx context.Context, username, password string) (TokenResult, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TokenResult{}, ErrInvalidCredentials
		}
		return TokenResult{}, err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return TokenResult{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.keyring.Issue(user.Username)
	if err != nil {
		return TokenResult{}, err
	}

	if s.cache != nil && user.Token != nil {
		s.cache.Invalidate(ctx, *user.Token)
	}

	if err := s.users.UpdateToken(ctx, user.ID, &token, &expiresAt); err != nil {
		return TokenResult{}, err
	}

	s.log.Info().Str("username", user.Username).Time("expires_at", expiresAt).Msg("login")

	return TokenResult{
		Username: user.Username,
		Token:    token,
		Roles:    user.Roles,
	}, nil
}

// Logout clears the stored token and expiry so the credential cannot be
// replayed before its natural expiry.
func (s *AuthService) Logout(ctx context.Context, user models.User) error {
	if s.cache != nil && user.Token != nil {
		s.cache.Invalidate(ctx, *user.Token)
	}
	if err := s.users.UpdateToken(ctx, user.ID, nil, nil); err != nil {
		return err
	}
	s.log.Info().Str("username", user.Username).Msg("logout")
	return nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, user models.User, password string) error {
	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, passwordHash)
}
