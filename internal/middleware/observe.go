package middleware

import (
	"net/http"

	"pet-registry/internal/platform/logger"
)

// Observe arma log de request, métricas y recover en ese orden: Recover queda
// adentro, así un panic sale como 500 en el log y en las métricas.
func Observe(log logger.Logger) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		RequestLogger(log),
		Metrics,
		Recover(log),
	}
}
