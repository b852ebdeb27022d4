package router

import (
	"fmt"
	"net/http"

	_ "pet-registry/docs"
	"pet-registry/internal/adapters/storage/disk"
	mem "pet-registry/internal/adapters/storage/memory"
	"pet-registry/internal/domain/credentials"
	"pet-registry/internal/domain/pets"
	"pet-registry/internal/middleware"
	"pet-registry/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger // nil => Nop

	// UploadDir es donde se escriben las fotos. Se crea si no existe.
	UploadDir string

	// Credentials: tabla estática de keys. Vacía => DefaultTable.
	Credentials []credentials.Credential

	// MaxRequestBytes acota los bodies multipart. 0 => default del handler.
	MaxRequestBytes int64
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	uploadDir := opts.UploadDir
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	table := opts.Credentials
	if len(table) == 0 {
		table = credentials.DefaultTable()
	}

	photos, err := disk.NewPhotoDir(uploadDir)
	if err != nil {
		return nil, fmt.Errorf("upload dir: %w", err)
	}

	// Services por módulo
	credsSvc := credentials.NewService(mem.NewCredentialRepo(table))
	petsSvc := pets.NewService(mem.NewPetRepo(), photos)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Observe(log)...)

	r.Use(middleware.AuthContext(credsSvc))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	credentials.RegisterRoutes(r, credsSvc)
	pets.RegisterRoutes(r, petsSvc, pets.HandlerOptions{
		Log:             log,
		MaxRequestBytes: opts.MaxRequestBytes,
	})

	log.Info("router ready", map[string]any{
		"upload_dir":  photos.Dir(),
		"credentials": len(table),
	})
	return r, nil
}
