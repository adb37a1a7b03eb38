package handler

import (
	"net/http"
	"strings"

	"logsight/internal/analysis"
)

type sessionView struct {
	SessionID         string                       `json:"session_id"`
	State             string                       `json:"state"`
	Turns             []analysis.ChatTurn          `json:"turns"`
	Result            *analysis.Result             `json:"result,omitempty"`
	CurrentBeliefs    []analysis.InvestigationStep `json:"current_beliefs,omitempty"`
	CurrentHypotheses []analysis.Hypothesis        `json:"current_hypotheses,omitempty"`
}

// HandleCreateSession allocates a fresh investigation session.
func (s *Service) HandleCreateSession(w http.ResponseWriter, _ *http.Request) {
	if s.sessions == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "session support is disabled"})
		return
	}
	sess := s.sessions.Create()
	writeJSON(w, http.StatusOK, map[string]string{"session_id": sess.ID})
}

// HandleGetSession renders a session snapshot, including the derived
// current-belief view of a marathon result's ledger.
func (s *Service) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	if s.sessions == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "session support is disabled"})
		return
	}
	id := strings.TrimSpace(r.PathValue("id"))
	sess, ok := s.sessions.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown session"})
		return
	}
	state, turns, result := sess.Snapshot()
	view := sessionView{
		SessionID: sess.ID,
		State:     string(state),
		Turns:     turns,
		Result:    result,
	}
	if result != nil && len(result.Ledger) > 0 {
		view.CurrentBeliefs = analysis.CurrentBeliefs(result.Ledger)
		view.CurrentHypotheses = analysis.CurrentHypotheses(result.Hypotheses)
	}
	writeJSON(w, http.StatusOK, view)
}
