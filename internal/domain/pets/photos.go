package pets

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Upload es un archivo recibido por multipart, ya desacoplado de net/http.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// PhotoPolicy define qué se acepta en cada camino de ingesta.
// Los dos caminos (alta con foto y set_photo) tienen reglas distintas a propósito.
type PhotoPolicy struct {
	Extensions   []string
	ContentTypes []string
	MaxBytes     int64

	BadExtension   string
	BadContentType string
	TooLarge       string
}

// CreationPhotoPolicy: POST /api/pets.
var CreationPhotoPolicy = PhotoPolicy{
	Extensions:     []string{".jpg", ".jpeg", ".png", ".gif", ".bmp"},
	ContentTypes:   []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/bmp"},
	MaxBytes:       5 << 20,
	BadExtension:   "Invalid file extension. Allowed: .jpg, .jpeg, .png, .gif, .bmp",
	BadContentType: "Invalid file type. Only images are allowed",
	TooLarge:       "File too large. Maximum size is 5MB",
}

// ProfilePhotoPolicy: POST /api/pets/set_photo/{pet_id}.
var ProfilePhotoPolicy = PhotoPolicy{
	Extensions:     []string{".jpg", ".jpeg", ".png"},
	ContentTypes:   []string{"image/jpeg", "image/jpg", "image/png"},
	MaxBytes:       10 << 20,
	BadExtension:   "Invalid file type. Only JPG, JPEG or PNG formats are allowed",
	BadContentType: "Invalid file type. Only JPG, JPEG or PNG formats are allowed",
	TooLarge:       "File too large. Maximum size is 10MB",
}

// Check valida extensión y content type declarado. Devuelve la extensión en minúsculas.
func (p PhotoPolicy) Check(u Upload) (string, error) {
	ext := strings.ToLower(filepath.Ext(u.Filename))
	if !slices.Contains(p.Extensions, ext) {
		return "", invalid(p.BadExtension)
	}
	if !slices.Contains(p.ContentTypes, u.ContentType) {
		return "", invalid(p.BadContentType)
	}
	return ext, nil
}

// Read lee el payload completo; rechaza lo que supere MaxBytes.
func (p PhotoPolicy) Read(u Upload) ([]byte, error) {
	if u.Body == nil {
		return nil, nil
	}
	data, err := io.ReadAll(io.LimitReader(u.Body, p.MaxBytes+1))
	if err != nil {
		return nil, &StorageError{Cause: err}
	}
	if int64(len(data)) > p.MaxBytes {
		return nil, invalid(p.TooLarge)
	}
	return data, nil
}

// DataURL codifica data como data:<mime>;base64,... El mime sale de la extensión.
func DataURL(ext string, data []byte) string {
	mime := "image/png"
	if ext == ".jpg" || ext == ".jpeg" {
		mime = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}

// uniqueName genera <prefix><uuid hex><ext>.
func uniqueName(prefix, ext string) string {
	id := uuid.New()
	return prefix + hex.EncodeToString(id[:]) + ext
}
