package handler

import (
	"encoding/json"
	"net/http"

	"logsight/internal/analysis"
	"logsight/internal/gateway/repository/artifact"
	"logsight/internal/gateway/session"
)

// Service wires the HTTP surface to the analysis orchestrator. The
// archive is optional; nil disables evidence archiving.
type Service struct {
	orch            *analysis.Orchestrator
	sessions        *session.Store
	archive         *artifact.S3Store
	maxPayloadBytes int64
}

func NewService(orch *analysis.Orchestrator, sessions *session.Store, archive *artifact.S3Store, maxPayloadBytes int64) *Service {
	if maxPayloadBytes <= 0 {
		maxPayloadBytes = analysis.DefaultMaxEvidenceBytes
	}
	return &Service{
		orch:            orch,
		sessions:        sessions,
		archive:         archive,
		maxPayloadBytes: maxPayloadBytes,
	}
}

func (s *Service) HandleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
