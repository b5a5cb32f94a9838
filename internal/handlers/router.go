package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"drying-engine/pkg/logging"
	"drying-engine/pkg/metrics"
)

const openAPIPath = "/api/docs/openapi.json"

// NewRouter mounts the API, docs and metrics endpoints behind request-id and
// instrumentation middleware.
func NewRouter(h *AssessmentHandler, metricsHandler http.Handler, collector *metrics.Collector, logger *logging.StructuredLogger) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestID, Instrument(collector, logger))

	h.RegisterRoutes(router)

	router.HandleFunc(openAPIPath, OpenAPISpec).Methods(http.MethodGet)
	router.HandleFunc("/api/docs", SwaggerUI(openAPIPath)).Methods(http.MethodGet)
	router.Handle("/metrics", metricsHandler).Methods(http.MethodGet)

	return router
}
