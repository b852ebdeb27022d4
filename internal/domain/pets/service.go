package pets

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Service struct {
	repo     Repository
	photos   PhotoStore
	validate *validator.Validate
	now      func() time.Time
}

func NewService(repo Repository, photos PhotoStore) *Service {
	return &Service{
		repo:     repo,
		photos:   photos,
		validate: validator.New(),
		now:      time.Now,
	}
}

type CreateInput struct {
	AnimalType string
	Name       string
	Age        int
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name       *string
	Age        *int
	AnimalType *string
}

// CreateSimple valida campos y agrega la mascota sin foto.
// No aplica el chequeo de nombre duplicado ni el límite por dueño (ver CreateWithPhoto).
func (s *Service) CreateSimple(ctx context.Context, ownerKey string, in CreateInput) (Pet, error) {
	if in.AnimalType == "" || in.Name == "" {
		return Pet{}, invalid("Missing required fields: animal_type and name are required")
	}

	animalType := strings.ToLower(in.AnimalType)
	name := strings.TrimSpace(in.Name)
	if err := validateFields(s.validate, petFields{Age: in.Age, AnimalType: animalType, Name: name}); err != nil {
		return Pet{}, err
	}

	p := s.newPet(ownerKey, AnimalType(animalType), name, in.Age)
	if err := s.repo.Create(ctx, p, nil); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// CreateWithPhoto valida campos, nombre duplicado y límite por dueño, y si viene
// foto la escribe en disco guardando el path en la mascota.
func (s *Service) CreateWithPhoto(ctx context.Context, ownerKey string, in CreateInput, photo *Upload) (Pet, error) {
	animalType := strings.ToLower(strings.TrimSpace(in.AnimalType))
	name := strings.TrimSpace(in.Name)

	if animalType == "" {
		return Pet{}, invalid("Animal type is required")
	}
	if name == "" {
		return Pet{}, invalid("Name is required")
	}
	if err := validateFields(s.validate, petFields{Age: in.Age, AnimalType: animalType, Name: name}); err != nil {
		return Pet{}, err
	}

	// Chequeo temprano (sin lock) para no escribir archivos de más;
	// se repite dentro del Create.
	owned, err := s.repo.ListByOwner(ctx, ownerKey)
	if err != nil {
		return Pet{}, err
	}
	if err := ownerLimits(name)(owned); err != nil {
		return Pet{}, err
	}

	var photoPath string
	if photo != nil && photo.Filename != "" {
		ext, err := CreationPhotoPolicy.Check(*photo)
		if err != nil {
			return Pet{}, err
		}
		data, err := CreationPhotoPolicy.Read(*photo)
		if err != nil {
			return Pet{}, err
		}
		photoPath, err = s.photos.Save(ctx, uniqueName("", ext), data)
		if err != nil {
			return Pet{}, &StorageError{Cause: err}
		}
	}

	p := s.newPet(ownerKey, AnimalType(animalType), name, in.Age)
	p.Photo = photoPath

	if err := s.repo.Create(ctx, p, ownerLimits(name)); err != nil {
		if photoPath != "" {
			_ = s.photos.Remove(ctx, photoPath)
		}
		return Pet{}, err
	}
	return p, nil
}

func ownerLimits(name string) func(owned []Pet) error {
	return func(owned []Pet) error {
		for _, o := range owned {
			if strings.EqualFold(o.Name, name) {
				return invalid("You already have a pet with this name")
			}
		}
		if len(owned) >= MaxPetsPerOwner {
			return invalid("Maximum number of pets (10) reached")
		}
		return nil
	}
}

// List: FilterMyPets devuelve sólo las del dueño; cualquier otro valor, todas.
func (s *Service) List(ctx context.Context, ownerKey string, filter ListFilter) ([]Pet, error) {
	if filter == FilterMyPets {
		return s.repo.ListByOwner(ctx, ownerKey)
	}
	return s.repo.List(ctx)
}

// Update sobrescribe los campos enviados tal cual: no re-valida y no toca UpdatedAt.
func (s *Service) Update(ctx context.Context, ownerKey, petID string, in UpdateInput) (Pet, error) {
	return s.repo.Update(ctx, petID, func(p *Pet) error {
		if p.UserID != ownerKey {
			return ErrForbidden
		}
		if in.Name != nil {
			p.Name = *in.Name
		}
		if in.Age != nil {
			p.Age = *in.Age
		}
		if in.AnimalType != nil {
			p.AnimalType = AnimalType(*in.AnimalType)
		}
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, ownerKey, petID string) (Pet, error) {
	return s.repo.Delete(ctx, petID, func(p Pet) error {
		if p.UserID != ownerKey {
			return ErrForbidden
		}
		return nil
	})
}

// SetPhoto escribe la foto en disco (copia de auditoría, no se vuelve a referenciar)
// y guarda en la mascota el data URL del mismo contenido.
func (s *Service) SetPhoto(ctx context.Context, ownerKey, petID string, photo Upload) (Pet, error) {
	current, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if current.UserID != ownerKey {
		return Pet{}, ErrForbidden
	}

	ext, err := ProfilePhotoPolicy.Check(photo)
	if err != nil {
		return Pet{}, err
	}
	data, err := ProfilePhotoPolicy.Read(photo)
	if err != nil {
		return Pet{}, err
	}

	if _, err := s.photos.Save(ctx, uniqueName(petID+"_", ext), data); err != nil {
		return Pet{}, &StorageError{Cause: err}
	}

	dataURL := DataURL(ext, data)
	updated, err := s.repo.Update(ctx, petID, func(p *Pet) error {
		if p.UserID != ownerKey {
			return ErrForbidden
		}
		p.Photo = dataURL
		return nil
	})
	if err != nil {
		return Pet{}, err
	}
	return updated, nil
}

func (s *Service) newPet(ownerKey string, animalType AnimalType, name string, age int) Pet {
	now := s.now()
	return Pet{
		ID:         uuid.NewString(),
		UserID:     ownerKey,
		AnimalType: animalType,
		Name:       name,
		Age:        age,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
