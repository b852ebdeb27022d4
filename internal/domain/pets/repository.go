package pets

import "context"

// Repository es el registro en memoria. Las variantes con guard/mutate ejecutan
// el chequeo y la mutación dentro de la misma sección crítica.
type Repository interface {
	// Create agrega al final. guard (opcional) recibe las mascotas actuales del
	// dueño y puede rechazar la inserción.
	Create(ctx context.Context, p Pet, guard func(owned []Pet) error) error
	GetByID(ctx context.Context, id string) (Pet, error)
	List(ctx context.Context) ([]Pet, error)
	ListByOwner(ctx context.Context, userID string) ([]Pet, error)
	// Update aplica mutate sobre una copia y la guarda si mutate no falla.
	Update(ctx context.Context, id string, mutate func(p *Pet) error) (Pet, error)
	// Delete quita el registro si guard (opcional) lo permite.
	Delete(ctx context.Context, id string, guard func(p Pet) error) (Pet, error)
}

// PhotoStore persiste bytes de fotos y devuelve el path resultante.
type PhotoStore interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
	Remove(ctx context.Context, path string) error
}
