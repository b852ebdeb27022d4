package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pet_registry_http_requests_total",
	Help: "Total number of HTTP requests by route and status code",
}, []string{"method", "route", "code"})

var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "pet_registry_http_request_duration_seconds",
	Help:    "Histogram of HTTP request durations in seconds",
	Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
}, []string{"method", "route"})

var PetsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pet_registry_pets_created_total",
	Help: "Total number of pets created, by creation path",
}, []string{"path"})

var PetsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "pet_registry_pets_deleted_total",
	Help: "Total number of pets deleted",
})

var PhotoBytesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pet_registry_photo_bytes_total",
	Help: "Total bytes of accepted photo uploads, by ingestion path",
}, []string{"path"})

var RejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pet_registry_rejections_total",
	Help: "Total number of rejected registry operations, by operation and reason",
}, []string{"operation", "reason"})

// Ingestion paths / creation paths.
const (
	PathSimple    = "simple"
	PathWithPhoto = "with_photo"
	PathSetPhoto  = "set_photo"
)
