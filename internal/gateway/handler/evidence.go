package handler

import (
	"errors"
	"net/http"
	"strings"

	"logsight/internal/gateway/repository/artifact"
)

// HandleListEvidence lists the evidence objects archived for one
// analysis.
func (s *Service) HandleListEvidence(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "evidence archive is not configured"})
		return
	}
	id := strings.TrimSpace(r.PathValue("id"))
	names, err := s.archive.List(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorBody{Error: "evidence archive lookup failed", Details: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"analysis_id": id, "objects": names})
}

// HandleGetEvidence streams one archived evidence object back.
func (s *Service) HandleGetEvidence(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "evidence archive is not configured"})
		return
	}
	id := strings.TrimSpace(r.PathValue("id"))
	name := strings.TrimSpace(r.PathValue("path"))
	data, err := s.archive.Get(r.Context(), id, name)
	if err != nil {
		if errors.Is(err, artifact.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody{Error: "no such evidence object"})
			return
		}
		writeJSON(w, http.StatusBadGateway, errorBody{Error: "evidence archive read failed", Details: err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
