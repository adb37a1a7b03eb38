package llmclient

import (
	"context"

	genai "google.golang.org/genai"
)

// Part is one provider-neutral content part. Text parts carry Text;
// binary parts carry MIMEType plus raw Data (the provider transport
// applies its own base64 framing).
type Part struct {
	Text     string
	MIMEType string
	Data     []byte
	Name     string
}

// Turn roles as the provider wire format spells them.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one prior conversation turn supplied as chat context.
type Turn struct {
	Role string
	Text string
}

// Request is a single structured-output generation call.
type Request struct {
	Model          string
	System         string
	Parts          []Part
	Temperature    *float32
	ThinkingBudget *int32
	Schema         *genai.Schema
}

// ChatRequest is a single conversational call: full prior history plus
// one new user message. No output schema is enforced on the reply.
type ChatRequest struct {
	Model   string
	System  string
	History []Turn
	Message string
}

// Reasoner is the capability boundary to the external model. The
// returned text is untrusted input: callers must validate it before
// relying on any field. An empty string with a nil error means the
// provider produced no usable text.
type Reasoner interface {
	Name() string
	GenerateStructured(ctx context.Context, req Request) (string, error)
	Chat(ctx context.Context, req ChatRequest) (string, error)
	Close() error
}
