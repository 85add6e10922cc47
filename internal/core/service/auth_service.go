package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/alshadows/product-catalog/internal/core/domain"
	"github.com/alshadows/product-catalog/internal/core/ports"
)

// SeedUser describes a bootstrap account created on an empty credential store.
type SeedUser struct {
	Username string
	Password string
	Role     domain.Role
}

// DefaultSeedUsers are created at bootstrap when no user exists yet.
var DefaultSeedUsers = []SeedUser{
	{Username: "admin", Password: "admin123", Role: domain.RoleAdmin},
	{Username: "user", Password: "user123", Role: domain.RoleUser},
}

// AuthService verifies credentials and issues tokens.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, log: log}
}

// Authenticate checks username and password against the credential store.
// An unknown user and a wrong password both yield domain.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn the same bcrypt cost as a real comparison.
			_ = bcrypt.CompareHashAndPassword(placeholderHash(), []byte(password))
			s.log.Warn().Str("username", username).Msg("authentication failed")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Warn().Str("username", username).Msg("authentication failed")
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("authenticate: issue token: %w", err)
	}

	s.log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("user authenticated")

	return &ports.LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Username:  user.Username,
		Roles:     []domain.Role{user.Role},
	}, nil
}

// EnsureUsers creates the given accounts when the credential store is empty.
// It returns the number of users created.
func (s *AuthService) EnsureUsers(ctx context.Context, seeds []SeedUser) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed users: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	created := 0
	for _, seed := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			return created, fmt.Errorf("seed users: hash %s: %w", seed.Username, err)
		}
		_, err = s.repo.Create(ctx, &domain.User{
			Username:     seed.Username,
			PasswordHash: string(hash),
			Role:         seed.Role,
			CreatedAt:    time.Now().UTC(),
		})
		if err != nil {
			if errors.Is(err, domain.ErrUserExists) {
				continue
			}
			return created, fmt.Errorf("seed users: create %s: %w", seed.Username, err)
		}
		created++
		s.log.Info().Str("username", seed.Username).Str("role", string(seed.Role)).Msg("seed user created")
	}
	return created, nil
}

var (
	placeholderOnce sync.Once
	placeholder     []byte
)

func placeholderHash() []byte {
	placeholderOnce.Do(func() {
		placeholder, _ = bcrypt.GenerateFromPassword([]byte("placeholder-password"), bcrypt.DefaultCost)
	})
	return placeholder
}
