package llmclient

import (
	"context"
	"encoding/json"
	"sync"
)

// Fake is a scripted Reasoner for tests and offline runs. It records
// every call so tests can assert on call counts and request shape.
type Fake struct {
	mu sync.Mutex

	GenerateReply string
	GenerateErr   error
	ChatReply     string
	ChatErr       error

	GenerateCalls int
	ChatCalls     int
	LastRequest   Request
	LastChat      ChatRequest
}

var _ Reasoner = (*Fake)(nil)

func (f *Fake) Name() string { return "fake" }
func (f *Fake) Close() error { return nil }

func (f *Fake) GenerateStructured(_ context.Context, req Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GenerateCalls++
	f.LastRequest = req
	if f.GenerateErr != nil {
		return "", f.GenerateErr
	}
	return f.GenerateReply, nil
}

func (f *Fake) Chat(_ context.Context, req ChatRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ChatCalls++
	f.LastChat = req
	if f.ChatErr != nil {
		return "", f.ChatErr
	}
	return f.ChatReply, nil
}

// Offline returns deterministic, minimal payloads so the service can
// run end-to-end without provider credentials.
type Offline struct{}

var _ Reasoner = (*Offline)(nil)

func NewOffline() *Offline { return &Offline{} }

func (o *Offline) Name() string { return "offline" }
func (o *Offline) Close() error { return nil }

func (o *Offline) GenerateStructured(_ context.Context, req Request) (string, error) {
	out := map[string]any{
		"summary": "Offline mode: canned triage result. No reasoning provider was consulted.",
		"root_cause_hypotheses": []any{
			map[string]any{
				"hypothesis":          "Offline placeholder hypothesis",
				"confidence":          0.5,
				"supporting_evidence": []string{"offline mode"},
				"unknowns":            []string{"everything; this result is canned"},
			},
		},
		"next_actions": []string{"Configure GEMINI_API_KEY to run a real analysis."},
	}
	// Extended contract requested: include ledger and leads.
	if req.Schema != nil && req.Schema.Properties != nil {
		if _, ok := req.Schema.Properties["investigation_ledger"]; ok {
			out["investigation_ledger"] = []any{
				map[string]any{
					"timestamp":         "1970-01-01T00:00:00Z",
					"level":             "TRIAGE",
					"thought_signature": "offline mode, no reasoning performed",
					"finding":           "offline placeholder finding",
					"status":            "PROBING",
					"evidence_links":    []string{},
				},
			}
			out["active_leads"] = []string{"offline placeholder lead"}
		}
	}
	b, _ := json.Marshal(out)
	return string(b), nil
}

func (o *Offline) Chat(_ context.Context, _ ChatRequest) (string, error) {
	return "Offline mode: no reasoning provider is configured, so I can only echo canned replies.", nil
}
