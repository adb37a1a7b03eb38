package llmclient

import (
	"context"

	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client. It
// only focuses on the API call itself; cross-cutting concerns (logging,
// hooks) are applied via Middleware.
type GeminiClient struct {
	cli *genai.Client
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{cli: cli}, nil
}

func (g *GeminiClient) Name() string { return "gemini" }
func (g *GeminiClient) Close() error { return nil }

// GenerateStructured issues one generation call with JSON output and
// the caller's response schema. An empty return with a nil error means
// the provider produced no usable text (e.g. safety filtering).
func (g *GeminiClient) GenerateStructured(ctx context.Context, req Request) (string, error) {
	parts := make([]*genai.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		if len(p.Data) > 0 {
			parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: p.MIMEType, Data: p.Data}})
			continue
		}
		parts = append(parts, &genai.Part{Text: p.Text})
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
		Temperature:      req.Temperature,
	}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	if req.ThinkingBudget != nil {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: req.ThinkingBudget}
	}

	resp, err := g.cli.Models.GenerateContent(ctx, req.Model,
		[]*genai.Content{{Role: genai.RoleUser, Parts: parts}}, cfg)
	if err != nil {
		return "", err
	}
	return firstText(resp), nil
}

// Chat threads the full prior history into a provider chat session and
// sends the new message.
func (g *GeminiClient) Chat(ctx context.Context, req ChatRequest) (string, error) {
	history := make([]*genai.Content, 0, len(req.History))
	for _, t := range req.History {
		role := genai.RoleModel
		if t.Role == RoleUser {
			role = genai.RoleUser
		}
		history = append(history, &genai.Content{Role: role, Parts: []*genai.Part{{Text: t.Text}}})
	}

	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	chat, err := g.cli.Chats.Create(ctx, req.Model, cfg, history)
	if err != nil {
		return "", err
	}
	resp, err := chat.SendMessage(ctx, genai.Part{Text: req.Message})
	if err != nil {
		return "", err
	}
	return firstText(resp), nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return ""
	}
	return content.Parts[0].Text
}
