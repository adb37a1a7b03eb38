package server

import (
	"net/http"

	"logsight/internal/gateway/handler"
	"logsight/internal/gateway/middleware"
)

func NewMux(svc *handler.Service) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /analyze", svc.HandleAnalyze)
	mux.HandleFunc("POST /chat", svc.HandleChat)
	mux.HandleFunc("POST /session", svc.HandleCreateSession)
	mux.HandleFunc("GET /session/{id}", svc.HandleGetSession)
	mux.HandleFunc("GET /evidence/{id}", svc.HandleListEvidence)
	mux.HandleFunc("GET /evidence/{id}/{path...}", svc.HandleGetEvidence)
	mux.HandleFunc("GET /healthz", svc.HandleHealthz)

	return middleware.CORS(mux)
}
