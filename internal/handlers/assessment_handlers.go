package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"drying-engine/internal/drying"
	"drying-engine/internal/models"
	"drying-engine/internal/services"
	"drying-engine/internal/validation"
	"drying-engine/pkg/logging"
	"drying-engine/pkg/metrics"
)

// HealthChecker is implemented by dependencies /health should probe
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// AssessmentHandler handles drying assessment API endpoints
type AssessmentHandler struct {
	service      *services.AssessmentService
	validator    *validation.Validator
	health       HealthChecker
	logger       *logging.StructuredLogger
	metrics      *metrics.Collector
	maxBodyBytes int64
}

// NewAssessmentHandler creates a new assessment handler. health may be nil
// when the process has no external dependencies.
func NewAssessmentHandler(
	service *services.AssessmentService,
	validator *validation.Validator,
	health HealthChecker,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
	maxBodyBytes int64,
) *AssessmentHandler {
	return &AssessmentHandler{
		service:      service,
		validator:    validator,
		health:       health,
		logger:       logger,
		metrics:      metricsCollector,
		maxBodyBytes: maxBodyBytes,
	}
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string                  `json:"error"`
	Message string                  `json:"message"`
	Code    int                     `json:"code"`
	Kind    string                  `json:"kind,omitempty"`
	Details []validation.FieldError `json:"details,omitempty"`
}

// CreateAssessment handles POST /api/assessments
func (h *AssessmentHandler) CreateAssessment(w http.ResponseWriter, r *http.Request) {
	var in drying.AssessmentInput
	if !h.decode(w, r, &in) {
		return
	}

	assessment, err := h.service.Assess(r.Context(), in)
	if err != nil {
		h.sendDomainError(w, r, err)
		return
	}

	h.sendJSON(w, assessment, http.StatusCreated)
}

// ClassifyAmbient handles POST /api/psychrometrics
func (h *AssessmentHandler) ClassifyAmbient(w http.ResponseWriter, r *http.Request) {
	var ambient drying.Ambient
	if !h.decode(w, r, &ambient) {
		return
	}

	reading, err := h.service.Psychrometrics(r.Context(), ambient)
	if err != nil {
		h.sendDomainError(w, r, err)
		return
	}

	h.sendJSON(w, reading, http.StatusOK)
}

// ListEquipment handles GET /api/equipment
func (h *AssessmentHandler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, h.service.Catalog(), http.StatusOK)
}

// ReloadCatalog handles POST /api/catalog/reload
func (h *AssessmentHandler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.ReloadCatalog(r.Context())
	if err != nil {
		h.sendError(w, r, ErrorResponse{Message: err.Error(), Kind: models.ErrorKind(err)}, http.StatusServiceUnavailable)
		return
	}

	h.sendJSON(w, info, http.StatusOK)
}

// GetConfig handles GET /api/config
func (h *AssessmentHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, h.service.Config(), http.StatusOK)
}

// HealthCheck handles GET /health
func (h *AssessmentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]interface{}{
		"status":          "healthy",
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
		"equipment_count": len(h.service.Catalog().Equipment),
	}

	if h.health != nil {
		if err := h.health.HealthCheck(ctx); err != nil {
			h.logger.Warn(ctx, "[HEALTH_CHECK_FAILED] Dependency unhealthy", logging.Fields{
				"error": err.Error(),
			})
			status["status"] = "unhealthy"
			status["error"] = err.Error()
			h.sendJSON(w, status, http.StatusServiceUnavailable)
			return
		}
	}

	h.logger.Debug(ctx, "[HEALTH_CHECK] Health check requested", logging.Fields{})
	h.sendJSON(w, status, http.StatusOK)
}

// decode reads a JSON body into dst and validates it, answering 400 on failure
func (h *AssessmentHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	defer body.Close()

	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.sendError(w, r, ErrorResponse{Message: fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit)}, http.StatusRequestEntityTooLarge)
			return false
		}
		h.sendError(w, r, ErrorResponse{Message: "malformed JSON body: " + err.Error()}, http.StatusBadRequest)
		return false
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		h.sendError(w, r, ErrorResponse{Message: "request body must contain a single JSON object"}, http.StatusBadRequest)
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			h.sendError(w, r, ErrorResponse{Message: verr.Error(), Kind: "invalid_request", Details: verr.Fields}, http.StatusBadRequest)
			return false
		}
		h.sendError(w, r, ErrorResponse{Message: err.Error()}, http.StatusBadRequest)
		return false
	}

	return true
}

// sendDomainError maps engine errors to 422 and anything else to 500
func (h *AssessmentHandler) sendDomainError(w http.ResponseWriter, r *http.Request, err error) {
	if models.IsEngineError(err) {
		h.sendError(w, r, ErrorResponse{Message: err.Error(), Kind: models.ErrorKind(err)}, http.StatusUnprocessableEntity)
		return
	}

	h.logger.Error(r.Context(), "[API_INTERNAL_ERROR] Request failed", logging.Fields{
		"path": r.URL.Path,
	}, err)
	h.sendError(w, r, ErrorResponse{Message: "internal error"}, http.StatusInternalServerError)
}

// sendJSON sends a JSON response
func (h *AssessmentHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn(context.Background(), "[API_ENCODE_ERROR] Failed to write response", logging.Fields{
			"error": err.Error(),
		})
	}
}

// sendError fills in the status fields of response and sends it
func (h *AssessmentHandler) sendError(w http.ResponseWriter, r *http.Request, response ErrorResponse, statusCode int) {
	response.Error = http.StatusText(statusCode)
	response.Code = statusCode

	errorType := response.Kind
	if errorType == "" {
		errorType = http.StatusText(statusCode)
	}
	h.metrics.RecordAPIError(errorType, routeTemplate(r))

	h.sendJSON(w, response, statusCode)
}

// RegisterRoutes registers all assessment API routes
func (h *AssessmentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/assessments", h.CreateAssessment).Methods(http.MethodPost)
	router.HandleFunc("/api/psychrometrics", h.ClassifyAmbient).Methods(http.MethodPost)
	router.HandleFunc("/api/equipment", h.ListEquipment).Methods(http.MethodGet)
	router.HandleFunc("/api/catalog/reload", h.ReloadCatalog).Methods(http.MethodPost)
	router.HandleFunc("/api/config", h.GetConfig).Methods(http.MethodGet)
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
}
