package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"logsight/internal/analysis"
	"logsight/internal/gateway/config"
	"logsight/internal/gateway/handler"
	"logsight/internal/gateway/repository/artifact"
	"logsight/internal/gateway/server"
	"logsight/internal/gateway/session"
	"logsight/internal/llmclient"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[LogSight] config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var reasoner llmclient.Reasoner
	switch {
	case cfg.FakeReasoner:
		reasoner = llmclient.NewOffline()
		log.Printf("[LogSight] using offline fake reasoner")
	case cfg.GeminiAPIKey != "":
		cli, err := llmclient.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("[LogSight] gemini client: %v", err)
		}
		reasoner = llmclient.Wrap(cli, llmclient.WithLogging(nil))
	default:
		// Boot anyway: every analysis/chat call fails with a typed
		// configuration error instead of taking the process down.
		log.Printf("[LogSight] GEMINI_API_KEY is not set; analysis and chat calls will fail until configured")
	}
	if reasoner != nil {
		defer func() { _ = reasoner.Close() }()
	}

	orch := analysis.NewOrchestrator(reasoner,
		analysis.WithJointInstruction(cfg.JointInstruction),
		analysis.WithMaxEvidenceBytes(cfg.MaxPayloadBytes),
	)

	sessions, err := session.NewStore(cfg.SessionCapacity)
	if err != nil {
		log.Fatalf("[LogSight] session store: %v", err)
	}

	var archive *artifact.S3Store
	if cfg.Artifact.Enabled {
		archive, err = artifact.NewS3Store(artifact.S3Config{
			Endpoint:  cfg.Artifact.Endpoint,
			Region:    cfg.Artifact.Region,
			AccessKey: cfg.Artifact.AccessKey,
			SecretKey: cfg.Artifact.SecretKey,
			Bucket:    cfg.Artifact.Bucket,
			UseSSL:    cfg.Artifact.UseSSL,
		})
		if err != nil {
			log.Printf("[LogSight] evidence archive disabled: %v", err)
			archive = nil
		}
	}

	svc := handler.NewService(orch, sessions, archive, cfg.MaxPayloadBytes)
	srv := server.New(cfg.Port, server.NewMux(svc))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[LogSight] shutdown: %v", err)
		}
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("[LogSight] server: %v", err)
	}
}
