package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/roi-forecast/internal/catalog"
	"github.com/iwvelando/roi-forecast/internal/config"
	"github.com/iwvelando/roi-forecast/internal/forecast"
	"github.com/iwvelando/roi-forecast/internal/report"
	"github.com/iwvelando/roi-forecast/internal/roi"
	"github.com/iwvelando/roi-forecast/pkg/constants"
	"github.com/iwvelando/roi-forecast/pkg/output"
	"github.com/iwvelando/roi-forecast/pkg/validation"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request identifier in responses.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

type handler struct {
	logger      *zap.Logger
	catalog     *catalog.Catalog
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the projection API.
func NewHandler(logger *zap.Logger, cat *catalog.Catalog, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cat == nil {
		cat = catalog.New()
	}
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, catalog: cat, maxBodySize: maxBodySize, version: trimmedVersion}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/profiles", h.handleProfiles)
	mux.HandleFunc("/api/projection", h.handleProjection)
	mux.HandleFunc("/api/projection/export", h.handleExport)
	mux.HandleFunc("/api/version", h.handleVersion)

	return withRequestID(mux)
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// requestLogger returns the handler logger annotated with the request ID.
func (h *handler) requestLogger(r *http.Request) *zap.Logger {
	if id, ok := r.Context().Value(requestIDKey{}).(string); ok {
		return h.logger.With(zap.String("requestId", id))
	}
	return h.logger
}

type projectionRequest struct {
	Profile    string                    `json:"profile"`
	Parameters config.ParameterOverrides `json:"parameters"`
}

type projectionResponse struct {
	Profile    string                  `json:"profile"`
	Name       string                  `json:"name"`
	Parameters roi.Parameters          `json:"parameters"`
	Ledger     []roi.YearRecord        `json:"ledger"`
	Metrics    roi.Metrics             `json:"metrics"`
	Cards      []report.MetricCard     `json:"cards"`
	CashFlow   []report.CashFlowPoint  `json:"cashFlow"`
	Impact     []report.CategorySeries `json:"impact"`
	Table      []report.TableRow       `json:"table"`
	CSV        string                  `json:"csv"`
	Warnings   []string                `json:"warnings,omitempty"`
	Duration   string                  `json:"duration"`
}

type profileSummary struct {
	Key         string               `json:"key"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Defaults    roi.Parameters       `json:"defaults"`
	Categories  []roi.ImpactCategory `json:"categories"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (h *handler) handleProfiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	entries := h.catalog.Entries()
	profiles := make([]profileSummary, 0, len(entries))
	for _, entry := range entries {
		profiles = append(profiles, profileSummary{
			Key:         entry.Key,
			Name:        entry.Profile.Name,
			Description: entry.Profile.Description,
			Defaults:    entry.Profile.DefaultParameters(),
			Categories:  entry.Profile.ImpactCategories,
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"profiles": profiles})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProjection"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	logger := h.requestLogger(r)

	conf, ok := h.decodeRequest(w, r, logger, op)
	if !ok {
		return
	}

	result, ok := h.compute(w, logger, conf, op)
	if !ok {
		return
	}

	elapsed := time.Since(start)
	response := projectionResponse{
		Profile:    result.Key,
		Name:       result.Profile.Name,
		Parameters: result.Parameters,
		Ledger:     result.Report.Ledger,
		Metrics:    result.Report.Metrics,
		Cards:      result.Report.Cards,
		CashFlow:   result.Report.CashFlow,
		Impact:     result.Report.Impact,
		Table:      result.Report.Table,
		CSV:        output.CsvString(result.Report.Ledger),
		Warnings:   conf.ValidateConfiguration(),
		Duration:   elapsed.String(),
	}

	logger.Info("projection computed",
		zap.String("op", op),
		zap.String("profile", result.Key),
		zap.Int("years", len(response.Ledger)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	logger := h.requestLogger(r)

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = constants.OutputFormatCSV
	}
	contentType, ok := exportContentTypes[format]
	if !ok {
		msg := fmt.Sprintf("unsupported export format %q", format)
		if err := validation.ValidateOutputFormat(format); err != nil {
			msg = err.Error()
		}
		h.respondErrorWithOp(w, logger, http.StatusBadRequest, errorResponse{Error: msg}, op)
		return
	}

	conf, ok := h.decodeRequest(w, r, logger, op)
	if !ok {
		return
	}

	result, ok := h.compute(w, logger, conf, op)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := output.Write(&buf, format, result.Report); err != nil {
		h.respondErrorWithOp(w, logger, http.StatusInternalServerError,
			errorResponse{Error: fmt.Sprintf("failed to render %s: %v", format, err)}, op)
		return
	}

	fileName := report.FileName(result.Profile, format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Error("failed to write export", zap.String("op", op), zap.Error(err))
		return
	}

	logger.Info("projection exported",
		zap.String("op", op),
		zap.String("profile", result.Key),
		zap.String("format", format),
		zap.Int("bytes", buf.Len()),
	)
}

var exportContentTypes = map[string]string{
	constants.OutputFormatCSV:  "text/csv; charset=utf-8",
	constants.OutputFormatJSON: "application/json",
	constants.OutputFormatPDF:  "application/pdf",
}

// decodeRequest parses the JSON projection request. An empty body selects the
// default profile with its default parameters.
func (h *handler) decodeRequest(w http.ResponseWriter, r *http.Request, logger *zap.Logger, op string) (config.Configuration, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var body bytes.Buffer
	if _, err := body.ReadFrom(r.Body); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, logger, http.StatusRequestEntityTooLarge,
				errorResponse{Error: fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize)}, op)
			return config.Configuration{}, false
		}
		h.respondErrorWithOp(w, logger, http.StatusBadRequest,
			errorResponse{Error: fmt.Sprintf("failed to read request: %v", err)}, op)
		return config.Configuration{}, false
	}

	var req projectionRequest
	if len(bytes.TrimSpace(body.Bytes())) > 0 {
		decoder := json.NewDecoder(&body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			h.respondErrorWithOp(w, logger, http.StatusBadRequest,
				errorResponse{Error: fmt.Sprintf("failed to decode request: %v", err)}, op)
			return config.Configuration{}, false
		}
	}

	return config.Configuration{Profile: req.Profile, Parameters: req.Parameters}, true
}

// compute runs the projection and maps domain errors to HTTP statuses.
func (h *handler) compute(w http.ResponseWriter, logger *zap.Logger, conf config.Configuration, op string) (*forecast.Forecast, bool) {
	result, err := forecast.GetForecast(logger, conf, h.catalog)
	if err == nil {
		return result, true
	}

	var paramErr *roi.ParameterError
	switch {
	case errors.Is(err, catalog.ErrUnknownProfile):
		h.respondErrorWithOp(w, logger, http.StatusNotFound, errorResponse{Error: err.Error()}, op)
	case errors.As(err, &paramErr):
		h.respondErrorWithOp(w, logger, http.StatusUnprocessableEntity,
			errorResponse{Error: err.Error(), Field: paramErr.Field}, op)
	default:
		h.respondErrorWithOp(w, logger, http.StatusInternalServerError,
			errorResponse{Error: fmt.Sprintf("failed to compute projection: %v", err)}, op)
	}
	return nil, false
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, logger *zap.Logger, status int, payload errorResponse, op string) {
	logger.Error("projection request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", payload.Error),
	)

	h.writeJSON(w, status, payload)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Int("status", status),
			zap.Error(err),
		)
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: fmt.Sprintf("failed to encode response: %v", err)})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response", zap.String("op", "server.writeJSON"), zap.Error(err))
	}
}
