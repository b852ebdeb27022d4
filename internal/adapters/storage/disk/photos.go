package disk

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pet-registry/internal/domain/pets"
)

// PhotoDir escribe fotos como archivos planos dentro de un directorio.
type PhotoDir struct {
	dir string
}

// NewPhotoDir crea el directorio si no existe (se llama al arrancar).
func NewPhotoDir(dir string) (*PhotoDir, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("upload dir required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &PhotoDir{dir: dir}, nil
}

var _ pets.PhotoStore = (*PhotoDir)(nil)

func (d *PhotoDir) Dir() string { return d.dir }

// Save escribe data en <dir>/<name> y devuelve ese path.
func (d *PhotoDir) Save(ctx context.Context, name string, data []byte) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid photo file name %q", name)
	}
	path := filepath.Join(d.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (d *PhotoDir) Remove(ctx context.Context, path string) error {
	if filepath.Dir(path) != filepath.Clean(d.dir) {
		return fmt.Errorf("path %q outside upload dir", path)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
