package auth

import "context"

// AuthVerifier verifica una key y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, key string) (Claims, error)
}
