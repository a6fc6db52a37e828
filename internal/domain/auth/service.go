package auth

import (
	"context"

	"confeito/internal/core/apperror"
	"confeito/pkg/logger"
)

// Service authenticates users and issues tokens.
type Service struct {
	repo Repository
	cfg  JWTConfig
}

// NewService creates the auth service.
func NewService(repo Repository, cfg JWTConfig) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// Login verifies credentials and returns a signed access token.
// Wrong username and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return "", apperror.NewUnauthorized("invalid credentials")
		}
		return "", err
	}
	if !u.CheckPassword(password) {
		logger.Warn(ctx, "failed login attempt", "username", username)
		return "", apperror.NewUnauthorized("invalid credentials")
	}

	token, err := GenerateAccessToken(s.cfg, u)
	if err != nil {
		return "", err
	}
	logger.Info(ctx, "user logged in", "username", username)
	return token, nil
}

// Config exposes the JWT configuration (used by the auth middleware).
func (s *Service) Config() JWTConfig {
	return s.cfg
}
