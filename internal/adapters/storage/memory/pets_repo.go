package memory

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"pet-registry/internal/domain/pets"
)

// petRepo guarda las mascotas por id y mantiene el orden de inserción en order.
// Un único RWMutex protege ambas estructuras.
type petRepo struct {
	mu    sync.RWMutex
	byID  map[string]pets.Pet
	order []string
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID: make(map[string]pets.Pet),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet, guard func(owned []pets.Pet) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	if guard != nil {
		if err := guard(r.ownedLocked(p.UserID)); err != nil {
			return err
		}
	}

	r.byID[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *petRepo) ListByOwner(ctx context.Context, userID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.ownedLocked(userID), nil
}

func (r *petRepo) Update(ctx context.Context, id string, mutate func(p *pets.Pet) error) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	// mutate trabaja sobre una copia: si falla, el registro queda intacto.
	if err := mutate(&p); err != nil {
		return pets.Pet{}, err
	}
	p.ID = id
	r.byID[id] = p
	return p, nil
}

func (r *petRepo) Delete(ctx context.Context, id string, guard func(p pets.Pet) error) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	if guard != nil {
		if err := guard(p); err != nil {
			return pets.Pet{}, err
		}
	}

	delete(r.byID, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return p, nil
}

// ownedLocked requiere r.mu tomado.
func (r *petRepo) ownedLocked(userID string) []pets.Pet {
	out := make([]pets.Pet, 0)
	for _, id := range r.order {
		if p := r.byID[id]; p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}
