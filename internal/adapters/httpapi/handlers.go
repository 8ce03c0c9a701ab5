package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alejandrodnm/smartmoney/internal/application/detector"
	"github.com/alejandrodnm/smartmoney/internal/domain"
)

const (
	maxBodyBytes = 1 << 20 // 1 MiB: texto pegado, no ficheros
	maxBatchSize = 100
)

// Analyzer es el subconjunto del Detector que usa la API.
type Analyzer interface {
	Analyze(ctx context.Context, in detector.Input) (domain.AnalysisReport, error)
	AnalyzeBatch(ctx context.Context, inputs []detector.Input) []detector.BatchResult
}

// AnalyzeRequest es el cuerpo de POST /api/v1/analyze.
// Bankroll y KellyFraction a 0 usan los valores por defecto del servidor.
type AnalyzeRequest struct {
	ReferenceText string  `json:"reference_text"`
	MarketText    string  `json:"market_text"`
	Bankroll      float64 `json:"bankroll,omitempty"`
	KellyFraction float64 `json:"kelly_fraction,omitempty"`
}

// BatchRequest es el cuerpo de POST /api/v1/analyze/batch.
type BatchRequest struct {
	Requests []AnalyzeRequest `json:"requests"`
}

// BatchItem es un resultado del lote: report o error, nunca ambos.
type BatchItem struct {
	Report *domain.AnalysisReport `json:"report,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

// Handler contiene las dependencias de los handlers HTTP.
type Handler struct {
	analyzer Analyzer
	defaults domain.EngineConfig
	metrics  *Metrics
}

// NewHandler crea un Handler. defaults se aplica a las peticiones que no traen configuración.
func NewHandler(analyzer Analyzer, defaults domain.EngineConfig, metrics *Metrics) *Handler {
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Handler{analyzer: analyzer, defaults: defaults, metrics: metrics}
}

// HealthCheck devuelve el estado del servicio.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "smartmoney",
	})
}

// Analyze ejecuta un análisis completo.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	start := time.Now()
	report, err := h.analyzer.Analyze(r.Context(), h.toInput(req))
	h.metrics.Observe(report, err, time.Since(start).Seconds())

	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			slog.Error("analysis failed", "err", err)
		}
		respondError(w, status, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// AnalyzeBatch ejecuta varios análisis independientes en paralelo.
// Los resultados mantienen el orden de la petición.
func (h *Handler) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if len(req.Requests) == 0 {
		respondError(w, http.StatusBadRequest, "requests must not be empty")
		return
	}
	if len(req.Requests) > maxBatchSize {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("batch size %d exceeds maximum %d", len(req.Requests), maxBatchSize))
		return
	}

	inputs := make([]detector.Input, len(req.Requests))
	for i, item := range req.Requests {
		inputs[i] = h.toInput(item)
	}

	start := time.Now()
	results := h.analyzer.AnalyzeBatch(r.Context(), inputs)
	perItem := time.Since(start).Seconds() / float64(len(results))

	items := make([]BatchItem, len(results))
	for i, res := range results {
		h.metrics.Observe(res.Report, res.Err, perItem)
		if res.Err != nil {
			items[i] = BatchItem{Error: res.Err.Error()}
			continue
		}
		report := res.Report
		items[i] = BatchItem{Report: &report}
	}
	respondJSON(w, http.StatusOK, map[string]any{"results": items})
}

func (h *Handler) toInput(req AnalyzeRequest) detector.Input {
	cfg := domain.EngineConfig{Bankroll: req.Bankroll, KellyFraction: req.KellyFraction}
	if cfg.Bankroll == 0 {
		cfg.Bankroll = h.defaults.Bankroll
	}
	if cfg.KellyFraction == 0 {
		cfg.KellyFraction = h.defaults.KellyFraction
	}
	return detector.Input{
		ReferenceText: req.ReferenceText,
		MarketText:    req.MarketText,
		Config:        cfg,
	}
}

// statusFor traduce errores del dominio a códigos HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, detector.ErrNoReferenceData):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, out any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

// respondJSON escribe una respuesta JSON.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("encode response", "err", err)
	}
}

// respondError escribe un error JSON.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
