package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/freud/split-text-smartly/internal/config"
	"github.com/freud/split-text-smartly/internal/core/domain"
	"github.com/freud/split-text-smartly/internal/core/ports"
	"github.com/freud/split-text-smartly/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	splitUC    ports.TextSplitService
	documentUC ports.DocumentSplitService
	catalog    ports.ProfileCatalog
	metrics    *metrics.HTTPServerMetrics

	maxBodyBytes     int64
	rateLimitRPS     float64
	rateLimitBurst   int
	maxInFlight      int
	backpressureWait time.Duration
}

func NewRouter(
	cfg config.Config,
	splitUC ports.TextSplitService,
	documentUC ports.DocumentSplitService,
	catalog ports.ProfileCatalog,
	httpMetrics *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		splitUC:          splitUC,
		documentUC:       documentUC,
		catalog:          catalog,
		metrics:          httpMetrics,
		maxBodyBytes:     cfg.APIMaxBodyBytes,
		rateLimitRPS:     cfg.APIRateLimitRPS,
		rateLimitBurst:   cfg.APIRateLimitBurst,
		maxInFlight:      cfg.APIMaxInFlight,
		backpressureWait: cfg.APIBackpressureWait(),
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/split", rt.splitText)
	mux.HandleFunc("/v1/split/document", rt.splitDocument)
	mux.HandleFunc("/v1/profiles", rt.listProfiles)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	validator, err := newRequestValidator()
	if err != nil {
		// The document is embedded; failing here means a broken build.
		panic(err)
	}

	var handler http.Handler = validator.Middleware(mux)
	handler = bodyLimitMiddleware(handler, rt.maxBodyBytes)
	handler = rt.trafficControl(handler)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) splitText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req domain.SplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	result, err := rt.splitUC.Split(r.Context(), req)
	if err != nil {
		rt.writeError(w, r, "split_text", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) splitDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if rt.documentUC == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "document splitting is not enabled"})
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	patch, err := optionsFromForm(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := rt.documentUC.SplitDocument(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
		patch,
		r.FormValue("profile"),
	)
	if err != nil {
		rt.writeError(w, r, "split_document", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) listProfiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	profiles := []domain.SplitProfile{}
	if rt.catalog != nil {
		profiles = rt.catalog.Profiles()
	}
	writeJSON(w, http.StatusOK, map[string]any{"profiles": profiles})
}

func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status := mapErrorToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request_failed",
			"request_id", requestIDFromContext(r.Context()),
			"operation", operation,
			"error", err,
		)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func optionsFromForm(r *http.Request) (domain.SplitOptionsPatch, error) {
	var patch domain.SplitOptionsPatch

	parseInt := func(field string) (*int, error) {
		raw := strings.TrimSpace(r.FormValue(field))
		if raw == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New(field + " must be an integer")
		}
		return &n, nil
	}
	parseBool := func(field string) (*bool, error) {
		raw := strings.TrimSpace(r.FormValue(field))
		if raw == "" {
			return nil, nil
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.New(field + " must be a boolean")
		}
		return &b, nil
	}

	var err error
	if patch.MaxRowLength, err = parseInt("max_row_length"); err != nil {
		return patch, err
	}
	if patch.MaxRows, err = parseInt("max_rows"); err != nil {
		return patch, err
	}
	if patch.TrimSentence, err = parseBool("trim_sentence"); err != nil {
		return patch, err
	}
	if patch.FulfillEmptyRows, err = parseBool("fulfill_empty_rows"); err != nil {
		return patch, err
	}
	return patch, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
