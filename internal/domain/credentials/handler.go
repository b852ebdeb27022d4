package credentials

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/api/key", getKeyHandler(svc))
}

type keyResponse struct {
	Key string `json:"key"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// getKeyHandler godoc
// @Summary Obtener auth key
// @Description Devuelve la key asociada a username/password. Comparación exacta contra la tabla estática de credenciales.
// @Tags auth
// @Produce json
// @Param username query string true "Nombre de usuario"
// @Param password query string true "Contraseña"
// @Success 200 {object} keyResponse
// @Failure 401 {object} errorResponse "Invalid username or password"
// @Failure 422 {object} errorResponse "faltan parámetros"
// @Router /api/key [get]
func getKeyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if !q.Has("username") || !q.Has("password") {
			writeError(w, http.StatusUnprocessableEntity, "username and password query parameters are required")
			return
		}

		key, err := svc.ResolveKey(r.Context(), q.Get("username"), q.Get("password"))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}

		writeJSON(w, http.StatusOK, keyResponse{Key: key})
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// writeJSON está duplicado a propósito en cada módulo (igual que en pets).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
