package handler

import (
	"errors"
	"net/http"

	"logsight/internal/analysis"
)

// errorBody is the wire shape of every failure: a human-readable
// message plus optional diagnostic detail. Raw stack traces never
// reach the caller.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func statusForKind(kind analysis.ErrorKind) int {
	switch kind {
	case analysis.KindInvalidInput:
		return http.StatusBadRequest
	case analysis.KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case analysis.KindConfig:
		return http.StatusInternalServerError
	case analysis.KindEmptyResponse, analysis.KindMalformedOutput, analysis.KindProvider, analysis.KindChat:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	var busy *sessionBusyError
	if errors.As(err, &busy) {
		writeJSON(w, http.StatusConflict, errorBody{Error: busy.Error()})
		return
	}
	var ae *analysis.Error
	if errors.As(err, &ae) {
		writeJSON(w, statusForKind(ae.Kind), errorBody{Error: ae.Message, Details: ae.Details})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "the investigation engine encountered a processing error", Details: err.Error()})
}
