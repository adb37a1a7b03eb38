package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"logsight/internal/analysis"
	"logsight/internal/gateway/session"
	"logsight/internal/llmclient"
)

const validReply = `{
	"summary": "Connection pool exhausted",
	"root_cause_hypotheses": [
		{
			"hypothesis": "DB connection pool exhausted after deploy",
			"confidence": 0.8,
			"supporting_evidence": ["ERROR: connection refused at 10:02"],
			"unknowns": []
		}
	],
	"next_actions": ["Check pool metrics"]
}`

func newTestService(t *testing.T, fake *llmclient.Fake) *Service {
	t.Helper()
	sessions, err := session.NewStore(16)
	require.NoError(t, err)
	return NewService(analysis.NewOrchestrator(fake), sessions, nil, 1<<20)
}

func analyzeBody(t *testing.T, mode, logContent string, images map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("mode", mode))
	require.NoError(t, mw.WriteField("logContent", logContent))
	for name, data := range images {
		part, err := mw.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHandleAnalyze_Success(t *testing.T) {
	fake := &llmclient.Fake{GenerateReply: validReply}
	svc := newTestService(t, fake)

	body, ctype := analyzeBody(t, "QUICK", "ERROR: connection refused at 10:02", nil)
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	svc.HandleAnalyze(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res analysis.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, "Connection pool exhausted", res.Summary)
	require.Equal(t, 1, fake.GenerateCalls)
}

func TestHandleAnalyze_NoEvidence(t *testing.T) {
	fake := &llmclient.Fake{GenerateReply: validReply}
	svc := newTestService(t, fake)

	body, ctype := analyzeBody(t, "QUICK", "", nil)
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	svc.HandleAnalyze(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var eb errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &eb))
	require.NotEmpty(t, eb.Error)
	require.Equal(t, 0, fake.GenerateCalls, "no external call for invalid input")
}

func TestHandleAnalyze_PayloadTooLarge(t *testing.T) {
	fake := &llmclient.Fake{GenerateReply: validReply}
	sessions, err := session.NewStore(4)
	require.NoError(t, err)
	svc := NewService(analysis.NewOrchestrator(fake), sessions, nil, 256)

	body, ctype := analyzeBody(t, "QUICK", strings.Repeat("x", 4096), nil)
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	svc.HandleAnalyze(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Equal(t, 0, fake.GenerateCalls)
}

func TestHandleAnalyze_EmptyReasonerReply(t *testing.T) {
	fake := &llmclient.Fake{GenerateReply: ""}
	svc := newTestService(t, fake)

	body, ctype := analyzeBody(t, "QUICK", "boom", nil)
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	svc.HandleAnalyze(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var eb errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &eb))
	require.Contains(t, eb.Error, "no usable text")
}

func TestHandleAnalyze_WithImages(t *testing.T) {
	fake := &llmclient.Fake{GenerateReply: validReply}
	svc := newTestService(t, fake)

	body, ctype := analyzeBody(t, "QUICK", "", map[string][]byte{"cpu.png": {1, 2, 3}})
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	svc.HandleAnalyze(rec, req)

	// multipart file parts default to application/octet-stream unless
	// the client sets a type, so the codec drops them and the request
	// fails as invalid input rather than silently proceeding.
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	require.Equal(t, 0, fake.GenerateCalls)
}

func TestHandleChat_Success(t *testing.T) {
	fake := &llmclient.Fake{ChatReply: "The 10:02 burst confirms it."}
	svc := newTestService(t, fake)

	payload, _ := json.Marshal(chatRequest{
		Message: "What logs confirm this?",
		History: []analysis.ChatTurn{{Role: analysis.RoleModel, Text: "Summary..."}},
	})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	svc.HandleChat(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Text)
	require.Len(t, fake.LastChat.History, 1)
}

func TestHandleChat_EmptyMessage(t *testing.T) {
	fake := &llmclient.Fake{ChatReply: "x"}
	svc := newTestService(t, fake)

	payload, _ := json.Marshal(chatRequest{Message: "  "})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	svc.HandleChat(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, 0, fake.ChatCalls)
}

func TestSessionFlow(t *testing.T) {
	fake := &llmclient.Fake{GenerateReply: validReply, ChatReply: "Confirmed by the burst."}
	svc := newTestService(t, fake)

	// Allocate a session.
	rec := httptest.NewRecorder()
	svc.HandleCreateSession(rec, httptest.NewRequest(http.MethodPost, "/session", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var created map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	sid := created["session_id"]
	require.NotEmpty(t, sid)

	// Analyze against the session.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("mode", "QUICK"))
	require.NoError(t, mw.WriteField("logContent", "ERROR at 10:02"))
	require.NoError(t, mw.WriteField("session_id", sid))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec = httptest.NewRecorder()
	svc.HandleAnalyze(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Chat against the session; history comes from the session's turns.
	payload, _ := json.Marshal(chatRequest{Message: "What confirms it?", SessionID: sid})
	req = httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(payload))
	rec = httptest.NewRecorder()
	svc.HandleChat(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, fake.LastChat.History, 1, "seeded summary turn should back the chat")

	// Session snapshot shows the recorded exchange.
	sess, ok := svc.sessions.Get(sid)
	require.True(t, ok)
	turns := sess.Turns()
	require.Len(t, turns, 3)
	require.Equal(t, "Connection pool exhausted", turns[0].Text)
}

func TestSessionFlow_UnknownSession(t *testing.T) {
	fake := &llmclient.Fake{GenerateReply: validReply}
	svc := newTestService(t, fake)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("mode", "QUICK"))
	require.NoError(t, mw.WriteField("logContent", "boom"))
	require.NoError(t, mw.WriteField("session_id", "no-such-session"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	svc.HandleAnalyze(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, 0, fake.GenerateCalls)
}

func TestSessionBusyConflict(t *testing.T) {
	fake := &llmclient.Fake{ChatReply: "x"}
	svc := newTestService(t, fake)

	sess := svc.sessions.Create()
	require.NoError(t, sess.BeginAnalysis()) // simulate an in-flight submission

	payload, _ := json.Marshal(chatRequest{Message: "hello", SessionID: sess.ID})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	svc.HandleChat(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, 0, fake.ChatCalls)
}

func TestHandleGetSession_DerivedViews(t *testing.T) {
	fake := &llmclient.Fake{}
	svc := newTestService(t, fake)

	sess := svc.sessions.Create()
	require.NoError(t, sess.BeginAnalysis())
	sess.CompleteAnalysis(&analysis.Result{
		Summary:     "s",
		Hypotheses:  []analysis.Hypothesis{{Statement: "h", Confidence: 0.5, SupportingEvidence: []string{}, Unknowns: []string{}}},
		NextActions: []string{},
		Ledger: []analysis.InvestigationStep{
			{Timestamp: "t", Level: analysis.LevelTriage, Rationale: "r", Finding: "f1", Status: analysis.StatusConfirmed},
			{Timestamp: "t", Level: analysis.LevelDeepDive, Rationale: "r", Finding: "f1", Status: analysis.StatusRefuted},
		},
		ActiveLeads: []string{"lead"},
	})

	req := httptest.NewRequest(http.MethodGet, "/session/"+sess.ID, nil)
	req.SetPathValue("id", sess.ID)
	rec := httptest.NewRecorder()
	svc.HandleGetSession(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var view sessionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Equal(t, string(session.StateResult), view.State)
	require.Empty(t, view.CurrentBeliefs, "refuted finding must not survive the fold")
	require.Len(t, view.CurrentHypotheses, 1)
}
