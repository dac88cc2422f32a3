// Package httpform exposes a form over a JSON HTTP API.
//
// The handler is a thin host around a formwork.Form: clients push value
// and touch mutations, trigger validation, and submit, while GET /state
// returns the live snapshot. A Prometheus metrics handler can be mounted
// under /metrics.
package httpform

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/formwork"
	"github.com/aretw0/formwork/pkg/domain"
)

// Server hosts a single form behind JSON endpoints.
type Server struct {
	form    *formwork.Form
	logger  *slog.Logger
	metrics http.Handler
}

// Option configures the HTTP host.
type Option func(*Server)

// WithLogger sets the structured logger for request handling.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts the given handler at GET /metrics,
// typically promhttp.HandlerFor over the form's registry.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewHandler creates the HTTP handler for a form.
func NewHandler(form *formwork.Form, opts ...Option) http.Handler {
	server := &Server{
		form:   form,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/health", server.getHealth)
	r.Get("/info", server.getInfo)
	r.Get("/state", server.getState)
	r.Get("/fields/{name}", server.getField)
	r.Post("/fields/{name}/value", server.postValue)
	r.Post("/fields/{name}/touch", server.postTouch)
	r.Post("/fields/{name}/validate", server.postValidateField)
	r.Post("/validate", server.postValidate)
	r.Post("/submit", server.postSubmit)
	r.Post("/reset", server.postReset)
	if server.metrics != nil {
		r.Get("/metrics", server.metrics.ServeHTTP)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type fieldStateResponse struct {
	Name       string `json:"name"`
	Value      any    `json:"value"`
	Touched    bool   `json:"touched"`
	Dirty      bool   `json:"dirty"`
	Error      string `json:"error,omitempty"`
	Validating bool   `json:"validating"`
}

type formStateResponse struct {
	Fields       []fieldStateResponse `json:"fields"`
	IsValid      bool                 `json:"is_valid"`
	IsTouched    bool                 `json:"is_touched"`
	IsDirty      bool                 `json:"is_dirty"`
	IsSubmitting bool                 `json:"is_submitting"`
	IsSubmitted  bool                 `json:"is_submitted"`
	Status       string               `json:"status"`
}

type validateResponse struct {
	Valid    bool              `json:"valid"`
	Failures map[string]string `json:"failures,omitempty"`
}

func mapFieldState(name string, st domain.FieldState) fieldStateResponse {
	return fieldStateResponse{
		Name:       name,
		Value:      st.Value,
		Touched:    st.Touched,
		Dirty:      st.Dirty,
		Error:      st.Error,
		Validating: st.Validating,
	}
}

func (s *Server) mapSnapshot(snap domain.FormSnapshot) formStateResponse {
	resp := formStateResponse{
		Fields:       make([]fieldStateResponse, 0, len(snap.Fields)),
		IsValid:      snap.IsValid,
		IsTouched:    snap.IsTouched,
		IsDirty:      snap.IsDirty,
		IsSubmitting: snap.IsSubmitting,
		IsSubmitted:  snap.IsSubmitted,
		Status:       string(snap.Status()),
	}
	for _, name := range s.form.FieldNames() {
		if st, ok := snap.Fields[name]; ok {
			resp.Fields = append(resp.Fields, mapFieldState(name, st))
		}
	}
	return resp
}

// getHealth handles the GET /health request.
func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// getInfo handles the GET /info request.
func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"app":     "formwork-http",
		"version": strings.TrimSpace(formwork.Version),
	})
}

// getState handles the GET /state request.
func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.mapSnapshot(s.form.Snapshot()))
}

// getField handles the GET /fields/{name} request.
func (s *Server) getField(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	st, ok := s.form.FieldState(name)
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown field: %s", name), http.StatusNotFound)
		return
	}
	writeJSON(w, mapFieldState(name, st))
}

// postValue handles the POST /fields/{name}/value request.
func (s *Server) postValue(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var body struct {
		Value any `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("SetValue: invalid request body", "err", err)
		return
	}

	if err := s.form.SetValue(name, body.Value); err != nil {
		s.writeFieldError(w, name, err)
		return
	}
	writeJSON(w, s.mapSnapshot(s.form.Snapshot()))
}

// postTouch handles the POST /fields/{name}/touch request.
func (s *Server) postTouch(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.form.SetTouched(name, true); err != nil {
		s.writeFieldError(w, name, err)
		return
	}
	writeJSON(w, s.mapSnapshot(s.form.Snapshot()))
}

// postValidateField handles the POST /fields/{name}/validate request.
func (s *Server) postValidateField(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	valid, err := s.form.ValidateField(r.Context(), name)
	if err != nil {
		s.writeFieldError(w, name, err)
		return
	}

	resp := validateResponse{Valid: valid}
	if !valid {
		if st, ok := s.form.FieldState(name); ok && st.Error != "" {
			resp.Failures = map[string]string{name: st.Error}
		}
	}
	writeJSON(w, resp)
}

// postValidate handles the POST /validate request.
func (s *Server) postValidate(w http.ResponseWriter, r *http.Request) {
	valid := s.form.ValidateForm(r.Context())

	resp := validateResponse{Valid: valid}
	if !valid {
		snap := s.form.Snapshot()
		resp.Failures = make(map[string]string)
		for name, st := range snap.Fields {
			if st.Error != "" {
				resp.Failures[name] = st.Error
			}
		}
	}
	writeJSON(w, resp)
}

// postSubmit handles the POST /submit request.
func (s *Server) postSubmit(w http.ResponseWriter, r *http.Request) {
	err := s.form.Submit(r.Context())
	switch {
	case err == nil:
		writeJSON(w, s.mapSnapshot(s.form.Snapshot()))
	case errors.Is(err, domain.ErrSubmitInProgress):
		http.Error(w, "Submission already in progress", http.StatusConflict)
	case errors.Is(err, domain.ErrValidationFailed):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		snap := s.form.Snapshot()
		failures := make(map[string]string)
		for name, st := range snap.Fields {
			if st.Error != "" {
				failures[name] = st.Error
			}
		}
		json.NewEncoder(w).Encode(validateResponse{Valid: false, Failures: failures})
	default:
		http.Error(w, fmt.Sprintf("Submit error: %v", err), http.StatusBadGateway)
		s.logger.Error("Submit failed", "err", err)
	}
}

// postReset handles the POST /reset request.
func (s *Server) postReset(w http.ResponseWriter, r *http.Request) {
	s.form.Reset()
	writeJSON(w, s.mapSnapshot(s.form.Snapshot()))
}

func (s *Server) writeFieldError(w http.ResponseWriter, name string, err error) {
	if errors.Is(err, domain.ErrFieldNotFound) {
		http.Error(w, fmt.Sprintf("Unknown field: %s", name), http.StatusNotFound)
		return
	}
	http.Error(w, fmt.Sprintf("Field error: %v", err), http.StatusInternalServerError)
	s.logger.Error("Field operation failed", "field", name, "err", err)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "err", err)
	}
}
