package memory

import (
	"context"

	"pet-registry/internal/domain/credentials"
)

// credentialRepo es la tabla estática: slice inmutable, búsquedas lineales
// en el orden de carga.
type credentialRepo struct {
	table []credentials.Credential
}

func NewCredentialRepo(table []credentials.Credential) credentials.Repository {
	cp := make([]credentials.Credential, len(table))
	copy(cp, table)
	return &credentialRepo{table: cp}
}

func (r *credentialRepo) FindByKey(ctx context.Context, key string) (credentials.Credential, error) {
	for _, c := range r.table {
		if c.Key == key {
			return c, nil
		}
	}
	return credentials.Credential{}, credentials.ErrUnauthorized
}

func (r *credentialRepo) FindByLogin(ctx context.Context, username, password string) (credentials.Credential, error) {
	for _, c := range r.table {
		if c.Username == username && c.Password == password {
			return c, nil
		}
	}
	return credentials.Credential{}, credentials.ErrUnauthorized
}
