package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vinrisk/vinrisk/internal/analyzer"
	"github.com/vinrisk/vinrisk/pkg/scoring"
	"github.com/vinrisk/vinrisk/pkg/vehicle"
)

type vinRequest struct {
	VIN string `json:"vin"`
}

type analyzeResponse struct {
	Summary   string               `json:"summary"`
	RiskScore int                  `json:"risk_score"`
	Reasoning string               `json:"reasoning"`
	Source    scoring.Source       `json:"source,omitempty"`
	Level     scoring.RiskLevel    `json:"risk_level,omitempty"`
	Factors   *scoring.RiskFactors `json:"factors,omitempty"`
}

type validateResponse struct {
	VIN     string `json:"vin"`
	Exists  bool   `json:"exists"`
	Message string `json:"message"`
}

type statsResponse struct {
	DatabaseStatistics analyzer.DatabaseStats `json:"database_statistics"`
	Message            string                 `json:"message"`
}

type healthResponse struct {
	Status        string                  `json:"status"`
	Message       string                  `json:"message"`
	DatabaseStats *analyzer.DatabaseStats `json:"database_stats,omitempty"`
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "VIN Risk Analyzer API",
		"version": Version,
		"health":  "/api/v1/health",
		"endpoints": map[string]string{
			"analyze":  "POST /api/v1/analyze",
			"validate": "POST /api/v1/validate",
			"vehicle":  "GET /api/v1/vehicles/{vin}",
			"stats":    "GET /api/v1/stats",
			"health":   "GET /api/v1/health",
		},
	})
}

// decodeVIN reads a {"vin": ...} body. Any problem is a 422.
func decodeVIN(r *http.Request) (string, error) {
	var req vinRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req); err != nil {
		return "", &vehicle.ValidationError{Field: "body", Reason: "request body must be a JSON object with a vin field"}
	}
	normalized, err := vehicle.ValidateVIN(req.VIN)
	if err != nil {
		return "", err
	}
	return normalized, nil
}

func (h *Handler) ready(w http.ResponseWriter) bool {
	if h.analyzer == nil {
		writeError(w, http.StatusServiceUnavailable, "Service not properly initialized")
		return false
	}
	return true
}

// writeLookupError maps the analyzer's error taxonomy onto status codes.
func (h *Handler) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *vehicle.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusUnprocessableEntity, ve.Error())
	case errors.Is(err, vehicle.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Printf("request %s failed: %v", RequestIDFrom(r.Context()), err)
		writeError(w, http.StatusInternalServerError, "Internal server error: "+err.Error())
	}
}

func verbose(r *http.Request) bool {
	switch strings.ToLower(r.URL.Query().Get("verbose")) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	vin, err := decodeVIN(r)
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}

	assessment, err := h.analyzer.Analyze(r.Context(), vin)
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}

	resp := analyzeResponse{
		Summary:   assessment.Summary,
		RiskScore: assessment.RiskScore,
		Reasoning: assessment.Reasoning,
	}
	if verbose(r) {
		_, factors, err := h.analyzer.Factors(vin)
		if err != nil {
			h.writeLookupError(w, r, err)
			return
		}
		resp.Source = assessment.Source
		resp.Level = scoring.LevelFromScore(assessment.RiskScore)
		resp.Factors = &factors
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	vin, err := decodeVIN(r)
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}

	exists := h.analyzer.Exists(vin)
	msg := "VIN not found in database"
	if exists {
		msg = "VIN found in database"
	}
	writeJSON(w, http.StatusOK, validateResponse{VIN: vin, Exists: exists, Message: msg})
}

func (h *Handler) handleGetVehicle(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	rec, err := h.analyzer.GetRecord(chi.URLParam(r, "vin"))
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		DatabaseStatistics: h.analyzer.Stats(),
		Message:            "Database statistics retrieved successfully",
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.analyzer == nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:  "unhealthy",
			Message: "Service not initialized",
		})
		return
	}
	stats := h.analyzer.Stats()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "healthy",
		Message:       "Service is operational",
		DatabaseStats: &stats,
	})
}
