package credentials

import (
	"context"
	"errors"
	"fmt"

	"pet-registry/internal/ports/auth"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ResolveKey mapea username/password a su key.
// Sin hashing ni rate limiting: comparación directa contra la tabla.
func (s *Service) ResolveKey(ctx context.Context, username, password string) (string, error) {
	c, err := s.repo.FindByLogin(ctx, username, password)
	if err != nil {
		return "", fmt.Errorf("resolve key: %w", ErrUnauthorized)
	}
	return c.Key, nil
}

// Authenticate tiene éxito sólo si la key existe en la tabla.
func (s *Service) Authenticate(ctx context.Context, key string) (Credential, error) {
	if key == "" {
		return Credential{}, ErrUnauthorized
	}
	c, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return Credential{}, fmt.Errorf("authenticate: %w", ErrUnauthorized)
	}
	return c, nil
}

// Verify implementa auth.AuthVerifier para middleware.AuthContext.
func (s *Service) Verify(ctx context.Context, key string) (auth.Claims, error) {
	c, err := s.Authenticate(ctx, key)
	if err != nil {
		return auth.Claims{}, err
	}
	return auth.Claims{Key: c.Key, Username: c.Username}, nil
}
