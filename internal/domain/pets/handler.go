package pets

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"pet-registry/internal/middleware"
	"pet-registry/internal/platform/logger"
	"pet-registry/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

// multipartMemory: lo que excede se bufferiza en archivos temporales.
const multipartMemory = 8 << 20

type HandlerOptions struct {
	Log logger.Logger

	// MaxRequestBytes acota el body de los endpoints multipart.
	MaxRequestBytes int64
}

func RegisterRoutes(r chi.Router, svc *Service, opts HandlerOptions) {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	maxBody := opts.MaxRequestBytes
	if maxBody <= 0 {
		maxBody = 64 << 20
	}

	r.Post("/api/create_pet_simple", createPetSimpleHandler(svc, log))

	r.Route("/api/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc, log))
		pr.Post("/", createPetHandler(svc, log, maxBody))

		pr.Put("/{pet_id}", updatePetHandler(svc, log))
		pr.Delete("/{pet_id}", deletePetHandler(svc, log))

		pr.Post("/set_photo/{pet_id}", setPhotoHandler(svc, log, maxBody))
	})
}

type petResponse struct {
	PetID      string     `json:"pet_id"`
	UserID     string     `json:"user_id"`
	AnimalType AnimalType `json:"animal_type"`
	Name       string     `json:"name"`
	Age        int        `json:"age"`
	PetPhoto   *string    `json:"pet_photo"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// createdPetResponse es la respuesta de POST /api/pets: sin updated_at.
type createdPetResponse struct {
	PetID      string     `json:"pet_id"`
	UserID     string     `json:"user_id"`
	AnimalType AnimalType `json:"animal_type"`
	Name       string     `json:"name"`
	Age        int        `json:"age"`
	PetPhoto   *string    `json:"pet_photo"`
	CreatedAt  time.Time  `json:"created_at"`
}

// photoResponse es la respuesta de set_photo: el id viaja como "id".
type photoResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	AnimalType AnimalType `json:"animal_type"`
	Age        int        `json:"age"`
	PetPhoto   string     `json:"pet_photo"`
	UserID     string     `json:"user_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

type deleteResponse struct {
	Message    string      `json:"message"`
	DeletedPet petResponse `json:"deleted_pet"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Description Sin filter_type (o filter_type=my_pets) devuelve sólo las mascotas del dueño de la key, en orden de alta. Cualquier otro valor devuelve todas.
// @Tags pets
// @Produce json
// @Param auth-key header string true "Auth key"
// @Param filter_type query string false "my_pets (default) u otro valor para todas"
// @Success 200 {array} petResponse
// @Failure 401 {object} errorResponse "Invalid auth_key"
// @Router /api/pets [get]
func listPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Invalid auth_key")
			return
		}

		filter := FilterMyPets
		if q := r.URL.Query(); q.Has("filter_type") {
			filter = ListFilter(q.Get("filter_type"))
		}

		items, err := svc.List(r.Context(), claims.Key, filter)
		if err != nil {
			writeServiceError(w, log, "list", err, "")
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createPetSimpleHandler godoc
// @Summary Crear mascota (simple)
// @Description Alta sin foto con parámetros de query. No valida nombre duplicado ni límite de mascotas por dueño.
// @Tags pets
// @Produce json
// @Param auth-key header string true "Auth key"
// @Param animal_type query string true "dog, cat, bird, fish, rabbit, hamster, turtle, parrot, other"
// @Param name query string true "2 a 50 caracteres (se recortan espacios)"
// @Param age query int true "0 a 100"
// @Success 201 {object} petResponse
// @Failure 400 {object} errorResponse "validación"
// @Failure 401 {object} errorResponse "Invalid auth_key"
// @Failure 422 {object} errorResponse "parámetros faltantes o age no entero"
// @Router /api/create_pet_simple [post]
func createPetSimpleHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Invalid auth_key")
			return
		}

		q := r.URL.Query()
		for _, k := range []string{"animal_type", "name", "age"} {
			if !q.Has(k) {
				writeError(w, http.StatusUnprocessableEntity, k+" query parameter is required")
				return
			}
		}
		age, err := parseAge(q.Get("age"))
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "age must be an integer")
			return
		}

		p, err := svc.CreateSimple(r.Context(), claims.Key, CreateInput{
			AnimalType: q.Get("animal_type"),
			Name:       q.Get("name"),
			Age:        age,
		})
		if err != nil {
			writeServiceError(w, log, "create_simple", err, "")
			return
		}

		metrics.PetsCreatedTotal.WithLabelValues(metrics.PathSimple).Inc()
		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// createPetHandler godoc
// @Summary Crear mascota (con foto opcional)
// @Description Alta por multipart. Rechaza nombre repetido (sin distinguir mayúsculas) y más de 10 mascotas por dueño. La foto (jpg, jpeg, png, gif, bmp; máx 5MB) se guarda en disco y se devuelve su path.
// @Tags pets
// @Accept mpfd
// @Produce json
// @Param auth-key header string true "Auth key"
// @Param animal_type formData string true "Tipo de animal"
// @Param name formData string true "Nombre"
// @Param age formData int true "Edad"
// @Param pet_photo formData file false "Foto"
// @Success 201 {object} createdPetResponse
// @Failure 400 {object} errorResponse "validación / duplicado / límite / archivo inválido"
// @Failure 401 {object} errorResponse "Invalid auth_key"
// @Failure 422 {object} errorResponse "form incompleto"
// @Failure 500 {object} errorResponse "Error processing file"
// @Router /api/pets [post]
func createPetHandler(svc *Service, log logger.Logger, maxBody int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Invalid auth_key")
			return
		}

		if !parseMultipart(w, r, maxBody, CreationPhotoPolicy.TooLarge) {
			return
		}
		defer r.MultipartForm.RemoveAll()

		fields := make(map[string]string, 3)
		for _, k := range []string{"animal_type", "name", "age"} {
			v, present := formField(r, k)
			if !present {
				writeError(w, http.StatusUnprocessableEntity, k+" form field is required")
				return
			}
			fields[k] = v
		}
		age, err := parseAge(fields["age"])
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "age must be an integer")
			return
		}

		upload, size, closeFn, err := formUpload(r, "pet_photo")
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid pet_photo part")
			return
		}
		defer closeFn()

		p, err := svc.CreateWithPhoto(r.Context(), claims.Key, CreateInput{
			AnimalType: fields["animal_type"],
			Name:       fields["name"],
			Age:        age,
		}, upload)
		if err != nil {
			writeServiceError(w, log, "create_with_photo", err, "")
			return
		}

		metrics.PetsCreatedTotal.WithLabelValues(metrics.PathWithPhoto).Inc()
		if p.Photo != "" {
			metrics.PhotoBytesTotal.WithLabelValues(metrics.PathWithPhoto).Add(float64(size))
		}
		writeJSON(w, http.StatusCreated, createdPetResponse{
			PetID:      p.ID,
			UserID:     p.UserID,
			AnimalType: p.AnimalType,
			Name:       p.Name,
			Age:        p.Age,
			PetPhoto:   photoPtr(p.Photo),
			CreatedAt:  p.CreatedAt,
		})
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description Sólo el dueño. Los campos enviados se guardan tal cual, sin validación; updated_at no cambia.
// @Tags pets
// @Produce json
// @Param auth-key header string true "Auth key"
// @Param pet_id path string true "ID de la mascota"
// @Param name query string false "Nuevo nombre"
// @Param age query int false "Nueva edad"
// @Param animal_type query string false "Nuevo tipo"
// @Success 200 {object} petResponse
// @Failure 401 {object} errorResponse "Invalid auth_key"
// @Failure 403 {object} errorResponse "Permission denied"
// @Failure 404 {object} errorResponse "Pet not found"
// @Failure 422 {object} errorResponse "age no entero"
// @Router /api/pets/{pet_id} [put]
func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Invalid auth_key")
			return
		}

		q := r.URL.Query()
		var in UpdateInput
		if q.Has("name") {
			v := q.Get("name")
			in.Name = &v
		}
		if q.Has("age") {
			v, err := strconv.Atoi(q.Get("age"))
			if err != nil {
				writeError(w, http.StatusUnprocessableEntity, "age must be an integer")
				return
			}
			in.Age = &v
		}
		if q.Has("animal_type") {
			v := q.Get("animal_type")
			in.AnimalType = &v
		}

		p, err := svc.Update(r.Context(), claims.Key, chi.URLParam(r, "pet_id"), in)
		if err != nil {
			writeServiceError(w, log, "update", err, "Permission denied")
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// deletePetHandler godoc
// @Summary Borrar mascota
// @Description Sólo el dueño. Devuelve el registro borrado.
// @Tags pets
// @Produce json
// @Param auth-key header string true "Auth key"
// @Param pet_id path string true "ID de la mascota"
// @Success 200 {object} deleteResponse
// @Failure 401 {object} errorResponse "Invalid auth_key"
// @Failure 403 {object} errorResponse "You don't have permission to delete this pet"
// @Failure 404 {object} errorResponse "Pet not found"
// @Router /api/pets/{pet_id} [delete]
func deletePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Invalid auth_key")
			return
		}

		p, err := svc.Delete(r.Context(), claims.Key, chi.URLParam(r, "pet_id"))
		if err != nil {
			writeServiceError(w, log, "delete", err, "You don't have permission to delete this pet")
			return
		}

		metrics.PetsDeletedTotal.Inc()
		writeJSON(w, http.StatusOK, deleteResponse{
			Message:    "Pet deleted successfully",
			DeletedPet: toPetResponse(p),
		})
	}
}

// setPhotoHandler godoc
// @Summary Cambiar foto de la mascota
// @Description Sólo el dueño. Acepta jpg, jpeg o png hasta 10MB. Guarda una copia en disco y almacena la foto como data URL base64.
// @Tags pets
// @Accept mpfd
// @Produce json
// @Param auth-key header string true "Auth key"
// @Param pet_id path string true "ID de la mascota"
// @Param pet_photo formData file true "Foto"
// @Success 200 {object} photoResponse
// @Failure 400 {object} errorResponse "tipo o tamaño inválido"
// @Failure 401 {object} errorResponse "Invalid auth_key"
// @Failure 403 {object} errorResponse "Permission denied"
// @Failure 404 {object} errorResponse "Pet not found"
// @Failure 422 {object} errorResponse "falta pet_photo"
// @Failure 500 {object} errorResponse "Error processing file"
// @Router /api/pets/set_photo/{pet_id} [post]
func setPhotoHandler(svc *Service, log logger.Logger, maxBody int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Invalid auth_key")
			return
		}

		if !parseMultipart(w, r, maxBody, ProfilePhotoPolicy.TooLarge) {
			return
		}
		defer r.MultipartForm.RemoveAll()

		upload, size, closeFn, err := formUpload(r, "pet_photo")
		if err != nil || upload == nil {
			writeError(w, http.StatusUnprocessableEntity, "pet_photo file is required")
			return
		}
		defer closeFn()

		p, err := svc.SetPhoto(r.Context(), claims.Key, chi.URLParam(r, "pet_id"), *upload)
		if err != nil {
			writeServiceError(w, log, "set_photo", err, "Permission denied")
			return
		}

		metrics.PhotoBytesTotal.WithLabelValues(metrics.PathSetPhoto).Add(float64(size))
		writeJSON(w, http.StatusOK, photoResponse{
			ID:         p.ID,
			Name:       p.Name,
			AnimalType: p.AnimalType,
			Age:        p.Age,
			PetPhoto:   p.Photo,
			UserID:     p.UserID,
			CreatedAt:  p.CreatedAt,
		})
	}
}

// parseMultipart acota el body y parsea el form. Si el body supera el tope
// responde con el mensaje de tamaño del endpoint.
func parseMultipart(w http.ResponseWriter, r *http.Request, maxBody int64, tooLarge string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, http.StatusBadRequest, tooLarge)
			return false
		}
		writeError(w, http.StatusUnprocessableEntity, "invalid multipart form")
		return false
	}
	return true
}

// formField lee sólo del body multipart; los parámetros de query no cuentan.
func formField(r *http.Request, key string) (string, bool) {
	vs, ok := r.MultipartForm.Value[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// parseAge lleva un entero que no entra en int al borde del rango válido,
// así la validación de edad responde 400 con su mensaje.
func parseAge(s string) (int, error) {
	age, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) {
		if len(s) > 0 && s[0] == '-' {
			return AgeMin - 1, nil
		}
		return AgeMax + 1, nil
	}
	return age, err
}

// formUpload devuelve nil si el form no trae el archivo.
func formUpload(r *http.Request, field string) (*Upload, int64, func(), error) {
	noop := func() {}

	f, fh, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, 0, noop, nil
	}
	if err != nil {
		return nil, 0, noop, err
	}
	return uploadFrom(f, fh), fh.Size, func() { _ = f.Close() }, nil
}

func uploadFrom(f multipart.File, fh *multipart.FileHeader) *Upload {
	return &Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	}
}

// writeServiceError mapea errores del dominio a status + detail.
// forbidden es el mensaje de 403 propio de cada endpoint.
func writeServiceError(w http.ResponseWriter, log logger.Logger, operation string, err error, forbidden string) {
	var inErr *InputError
	var stErr *StorageError

	switch {
	case errors.As(err, &inErr):
		metrics.RejectionsTotal.WithLabelValues(operation, "validation").Inc()
		writeError(w, http.StatusBadRequest, inErr.Reason)
	case errors.Is(err, ErrNotFound):
		metrics.RejectionsTotal.WithLabelValues(operation, "not_found").Inc()
		writeError(w, http.StatusNotFound, "Pet not found")
	case errors.Is(err, ErrForbidden):
		metrics.RejectionsTotal.WithLabelValues(operation, "forbidden").Inc()
		writeError(w, http.StatusForbidden, forbidden)
	case errors.As(err, &stErr):
		metrics.RejectionsTotal.WithLabelValues(operation, "storage").Inc()
		log.Error("photo storage failed", map[string]any{"operation": operation, "error": err})
		writeError(w, http.StatusInternalServerError, stErr.Error())
	default:
		metrics.RejectionsTotal.WithLabelValues(operation, "internal").Inc()
		log.Error("registry operation failed", map[string]any{"operation": operation, "error": err})
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		PetID:      p.ID,
		UserID:     p.UserID,
		AnimalType: p.AnimalType,
		Name:       p.Name,
		Age:        p.Age,
		PetPhoto:   photoPtr(p.Photo),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func photoPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (pets/credentials)
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
