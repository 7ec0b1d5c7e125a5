package notesvc

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"brain/internal/logging"
	"brain/internal/types"
)

const (
	identityHeader  = "X-User-ID"
	requestIDHeader = "X-Request-ID"
)

type NoteLister interface {
	List(ctx context.Context, userID string) ([]types.Note, error)
}

type API struct {
	Notes  NoteLister
	Logger logging.Logger
}

// Router exposes the read-only notes endpoint under /api.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(a.logRequests)
	r.Use(allowAnyOrigin)

	r.Get("/health", a.Health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/notes", a.ListNotes)
	})
	return r
}

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (a *API) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.Header.Get(identityHeader))
	if userID == "" {
		writeServiceError(w, invalidError("missing "+identityHeader+" header", nil))
		return
	}
	notes, err := a.Notes.List(r.Context(), userID)
	if err != nil {
		a.logger().Error("list_notes_failed", logging.F("user_id", userID), logging.Err(err))
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (a *API) logger() logging.Logger {
	if a.Logger == nil {
		return logging.Nop()
	}
	return a.Logger
}

func (a *API) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = logging.NewRequestID()
		}
		a.logger().Info("http_request",
			logging.F("request_id", requestID),
			logging.F("method", r.Method),
			logging.F("path", r.URL.Path),
			logging.F("status", ww.Status()),
			logging.F("duration", time.Since(started)),
		)
	})
}

func allowAnyOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
