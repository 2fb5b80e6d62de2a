package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/pavelanni/codegrader/internal/eval"
	"github.com/pavelanni/codegrader/internal/model"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	reporter *eval.Reporter
	// passwordHash is a bcrypt hash protecting the API, or empty for no auth.
	passwordHash string
}

// New creates a new Handler. passwordHash may be empty to disable auth.
func New(reporter *eval.Reporter, passwordHash string) *Handler {
	return &Handler{reporter: reporter, passwordHash: passwordHash}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/healthz", h.handleHealth)
	r.Group(func(r chi.Router) {
		if h.passwordHash != "" {
			r.Use(h.basicAuth)
		}
		r.Post("/api/report", h.handleReport)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReport accepts a harness payload (array of submissions) and returns
// the final report. The pipeline itself never fails; only malformed input
// is rejected.
func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	var subs []model.Submission
	if err := json.NewDecoder(r.Body).Decode(&subs); err != nil {
		http.Error(w, "invalid submissions payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	report := h.reporter.Generate(r.Context(), subs)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		slog.Error("encode report", "error", err)
	}
}

// basicAuth requires HTTP basic auth with any username and the configured
// password.
func (h *Handler) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, pass, ok := r.BasicAuth()
		if !ok || bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(pass)) != nil {
			w.Header().Set("WWW-Authenticate", `Basic realm="codegrader"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
