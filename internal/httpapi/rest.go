package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jpl-au/shortkey/internal/handler"
	"github.com/jpl-au/shortkey/internal/search"
	"github.com/jpl-au/shortkey/internal/settings"
	"github.com/jpl-au/shortkey/internal/shortcut"
)

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	results := s.store.Search(q)
	if results == nil {
		results = []search.Result{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) find(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	found := s.store.Find(prefix)
	if found == nil {
		found = []shortcut.Candidate{}
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) getShortcut(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	rec, ok := s.store.Record(ref)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", settings.ErrNotFound, ref))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) listTags(w http.ResponseWriter, r *http.Request) {
	tags := s.store.Snapshot().Tags()
	if tags == nil {
		tags = []settings.Tag{}
	}
	writeJSON(w, http.StatusOK, tags)
}

func (s *Server) use(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "id")
	rec, ok := s.store.Record(ref)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", settings.ErrNotFound, ref))
		return
	}
	if err := s.store.IncrementUseCount(r.Context(), rec.ID); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) reload(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Reload(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) message(w http.ResponseWriter, r *http.Request) {
	var msg handler.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	resp, err := s.shared.Handle(r.Context(), msg)
	writeJSON(w, statusFor(err), resp)
}

// statusFor maps handler errors to HTTP status codes. Action failures are
// reported in the response body with 200, as the message was understood.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, handler.ErrUnknownMessage), errors.Is(err, handler.ErrBadValue):
		return http.StatusBadRequest
	}
	return http.StatusOK
}
