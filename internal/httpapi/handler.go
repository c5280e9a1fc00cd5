// Package httpapi serves classification over HTTP. Request bodies are never
// logged.
package httpapi

import (
	"io"
	"net/http"

	j "github.com/goccy/go-json"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	cardbrand "github.com/reoring/cardbrand"
	"github.com/reoring/cardbrand/internal/logging"
	"github.com/reoring/cardbrand/internal/metrics"
	"github.com/reoring/cardbrand/rulefile"
)

// maxBodyBytes bounds POST /v1/classify bodies.
const maxBodyBytes = 4 << 10

// ClassifyRequest is the POST /v1/classify body.
type ClassifyRequest struct {
	Number string `json:"number"`
}

// ClassifyResponse extends the Result with the rejection reasons, if any.
type ClassifyResponse struct {
	cardbrand.Result
	Reasons []string `json:"reasons,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler wires classification endpoints to a Classifier.
type Handler struct {
	classifier *cardbrand.Classifier
	metrics    *metrics.Metrics
}

// New constructs a Handler.
func New(c *cardbrand.Classifier, m *metrics.Metrics) *Handler {
	return &Handler{classifier: c, metrics: m}
}

// Router mounts every endpoint on a fresh chi router.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", h.HandleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/classify", h.HandleClassify)
		r.Get("/rules", h.HandleRules)
	})
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}
	return r
}

// HandleHealth handles GET /healthz.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

// HandleClassify handles POST /v1/classify. Every classification outcome is
// a 200; only unreadable bodies are rejected.
func (h *Handler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	dec := j.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	res, err := h.classifier.Check(req.Number)
	if h.metrics != nil {
		h.metrics.Observe(res, err)
	}
	resp := ClassifyResponse{Result: res}
	if iss, ok := cardbrand.AsIssues(err); ok {
		resp.Reasons = iss.Codes()
	}
	logging.Debugf("classify: issuer=%s outcome=%s", res.Issuer, metrics.Outcome(err))
	writeJSON(w, http.StatusOK, resp)
}

// HandleRules handles GET /v1/rules.
func (h *Handler) HandleRules(w http.ResponseWriter, _ *http.Request) {
	data, err := rulefile.Encode(h.classifier.Rules(), rulefile.FormatJSON)
	if err != nil {
		logging.Errorf("encode rules: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := j.NewEncoder(w).Encode(v); err != nil {
		logging.Warnf("write response: %v", err)
	}
}
