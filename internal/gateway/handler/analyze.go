package handler

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"logsight/internal/analysis"
	"logsight/internal/gateway/session"
)

// multipartMemoryLimit is the in-memory threshold for multipart
// parsing; larger file parts spill to disk.
const multipartMemoryLimit = 32 << 20

// HandleAnalyze accepts multipart evidence (mode, logContent, images)
// and returns the structured analysis result.
func (s *Service) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxPayloadBytes)
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, analysis.Errf(analysis.KindPayloadTooLarge, "request body exceeds the %d byte limit", mbe.Limit))
			return
		}
		writeError(w, analysis.Errf(analysis.KindInvalidInput, "invalid multipart form: %v", err))
		return
	}

	mode := analysis.Mode(strings.TrimSpace(r.FormValue("mode")))
	logContent := r.FormValue("logContent")
	images, err := readImages(r)
	if err != nil {
		writeError(w, err)
		return
	}
	log.Printf("[LogSight] received /analyze request (mode=%s, images=%d)", mode, len(images))

	sess, err := s.claimSession(r.FormValue("session_id"), (*session.Session).BeginAnalysis)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.orch.Analyze(r.Context(), analysis.AnalyzeRequest{
		Mode:       mode,
		LogContent: logContent,
		Images:     images,
	})
	if err != nil {
		if sess != nil {
			sess.FailAnalysis()
		}
		writeError(w, err)
		return
	}
	if sess != nil {
		sess.CompleteAnalysis(res)
	}

	s.archiveEvidence(logContent, images)
	writeJSON(w, http.StatusOK, res)
}

// claimSession resolves an optional session ID and applies the given
// state transition. An empty ID means stateless operation.
func (s *Service) claimSession(id string, begin func(*session.Session) error) (*session.Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	if s.sessions == nil {
		return nil, analysis.Errf(analysis.KindInvalidInput, "session support is disabled")
	}
	sess, ok := s.sessions.Get(id)
	if !ok {
		return nil, analysis.Errf(analysis.KindInvalidInput, "unknown session %q", id)
	}
	if err := begin(sess); err != nil {
		if errors.Is(err, session.ErrBusy) {
			return nil, &sessionBusyError{id: id}
		}
		return nil, analysis.Errf(analysis.KindInvalidInput, "%v", err)
	}
	return sess, nil
}

// sessionBusyError maps to 409: only one operation may be outstanding
// per session.
type sessionBusyError struct{ id string }

func (e *sessionBusyError) Error() string {
	return "session " + e.id + " already has an operation in flight"
}

func readImages(r *http.Request) ([]analysis.EvidenceItem, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File["images"]
	images := make([]analysis.EvidenceItem, 0, len(headers))
	for _, hdr := range headers {
		f, err := hdr.Open()
		if err != nil {
			return nil, analysis.Errf(analysis.KindInvalidInput, "cannot open uploaded file %q: %v", hdr.Filename, err)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, analysis.Errf(analysis.KindInvalidInput, "cannot read uploaded file %q: %v", hdr.Filename, err)
		}
		images = append(images, analysis.ImageEvidence(hdr.Filename, hdr.Header.Get("Content-Type"), data))
	}
	return images, nil
}

// archiveEvidence stores the submitted evidence for post-incident
// review. Best effort: failures are logged and never fail the call.
func (s *Service) archiveEvidence(logContent string, images []analysis.EvidenceItem) {
	if s.archive == nil {
		return
	}
	analysisID := uuid.NewString()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if strings.TrimSpace(logContent) != "" {
		if err := s.archive.Put(ctx, analysisID, "logs.txt", []byte(logContent), "text/plain"); err != nil {
			log.Printf("[LogSight] evidence archive failed (logs): %v", err)
		}
	}
	for i, img := range images {
		name := strings.TrimSpace(img.Name)
		if name == "" {
			name = "image-" + uuid.NewString()
		}
		if err := s.archive.Put(ctx, analysisID, name, img.Data, img.MIMEType); err != nil {
			log.Printf("[LogSight] evidence archive failed (image %d): %v", i, err)
		}
	}
	log.Printf("[LogSight] archived evidence under %s", analysisID)
}
