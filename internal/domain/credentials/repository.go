package credentials

import "context"

type Repository interface {
	// FindByKey devuelve ErrUnauthorized si la key no existe.
	FindByKey(ctx context.Context, key string) (Credential, error)
	// FindByLogin compara username y password por igualdad exacta.
	FindByLogin(ctx context.Context, username, password string) (Credential, error)
}
