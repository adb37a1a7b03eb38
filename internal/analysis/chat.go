package analysis

import (
	"context"
	"strings"

	"logsight/internal/llmclient"
)

// Continue issues one follow-up turn against the lighter model tier,
// threading the full prior history so the session keeps its context.
// The original evidence is never re-submitted; the report summary
// seeded into the first assistant turn carries the investigation
// forward. The reply is returned verbatim; chat output is prose, not
// structured data.
//
// The history slice is read, never mutated: on failure the caller's
// turn sequence is exactly as it was.
func (o *Orchestrator) Continue(ctx context.Context, history []ChatTurn, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", Errf(KindInvalidInput, "chat message is empty")
	}
	if o.reasoner == nil {
		return "", Errf(KindConfig, "reasoning provider is not configured (set GEMINI_API_KEY)")
	}

	turns := make([]llmclient.Turn, 0, len(history))
	for _, t := range history {
		role := llmclient.RoleModel
		if t.Role == RoleUser {
			role = llmclient.RoleUser
		}
		turns = append(turns, llmclient.Turn{Role: role, Text: t.Text})
	}

	reply, err := o.reasoner.Chat(ctx, llmclient.ChatRequest{
		Model:   ChatModel,
		System:  chatSystemInstruction,
		History: turns,
		Message: message,
	})
	if err != nil {
		return "", &Error{
			Kind:    KindChat,
			Message: "chat reasoner call failed",
			Details: err.Error(),
			cause:   err,
		}
	}
	if strings.TrimSpace(reply) == "" {
		return "", Errf(KindChat, "chat reasoner returned an empty reply")
	}
	return reply, nil
}
