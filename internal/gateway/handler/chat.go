package handler

import (
	"encoding/json"
	"net/http"

	"logsight/internal/analysis"
	"logsight/internal/gateway/session"
)

type chatRequest struct {
	Message   string              `json:"message"`
	History   []analysis.ChatTurn `json:"history"`
	SessionID string              `json:"session_id,omitempty"`
}

type chatResponse struct {
	Text string `json:"text"`
}

// HandleChat continues the diagnostic conversation. The request
// carries its own history; when a session ID is supplied, the
// session's turn sequence backs the history and records the exchange.
func (s *Service) HandleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxPayloadBytes)
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, analysis.Errf(analysis.KindInvalidInput, "invalid JSON body: %v", err))
		return
	}

	sess, err := s.claimSession(req.SessionID, (*session.Session).BeginChat)
	if err != nil {
		writeError(w, err)
		return
	}

	history := req.History
	if sess != nil && len(history) == 0 {
		history = sess.Turns()
	}

	reply, err := s.orch.Continue(r.Context(), history, req.Message)
	if err != nil {
		if sess != nil {
			sess.FailChat()
		}
		writeError(w, err)
		return
	}
	if sess != nil {
		sess.CompleteChat(req.Message, reply)
	}
	writeJSON(w, http.StatusOK, chatResponse{Text: reply})
}
