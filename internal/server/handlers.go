package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/VASemenov/depender/pkg/buildinfo"
	apperrors "github.com/VASemenov/depender/pkg/errors"
	"github.com/VASemenov/depender/pkg/pipeline"
	"github.com/VASemenov/depender/pkg/store"
)

// defaultListLimit caps unpaginated listing responses.
const defaultListLimit = 50

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleCreateAnalysis runs the pipeline on the posted options and persists
// the result.
func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	opts.Logger = s.logger

	// API clients submit raw paths, so traversal sequences are rejected here
	// before the pipeline resolves the path to an absolute one.
	if err := apperrors.ValidatePath(opts.Path); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.logger.Error("pipeline failed", "path", opts.Path, "err", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	analysis := store.New(result, opts)
	if err := s.store.Insert(r.Context(), analysis); err != nil {
		s.logger.Error("store insert failed", "id", analysis.ID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to persist analysis")
		return
	}

	writeJSON(w, http.StatusCreated, analysis)
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	summaries, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.logger.Error("store list failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list analyses")
		return
	}
	if summaries == nil {
		summaries = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	analysis, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, statusForError(err), "analysis not found")
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// handleGetArtifact serves one rendered artifact with its native content type.
func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	format := chi.URLParam(r, "format")

	analysis, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, statusForError(err), "analysis not found")
		return
	}
	data, ok := analysis.Artifacts[format]
	if !ok {
		writeError(w, http.StatusNotFound, "artifact not found")
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, statusForError(err), "analysis not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func contentTypeFor(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatHTML:
		return "text/html; charset=utf-8"
	case pipeline.FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
