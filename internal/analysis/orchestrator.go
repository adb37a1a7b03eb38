package analysis

import (
	"context"
	"log"
	"strings"

	"logsight/internal/llmclient"
)

// DefaultMaxEvidenceBytes bounds the combined evidence payload of one
// analysis request. Matches the transport-level upload limit.
const DefaultMaxEvidenceBytes = 50 << 20

// ChatModel is the lighter tier used for follow-up turns regardless of
// the analysis mode that produced the report.
const ChatModel = "gemini-3-flash-preview"

// Orchestrator composes encoded evidence, the resolved mode profile and
// the schema contract into a single reasoner call and validates the
// reply. It is stateless per call: every request carries its own
// evidence, and for chat its own turn history.
type Orchestrator struct {
	reasoner         llmclient.Reasoner
	jointInstruction bool
	maxEvidenceBytes int64
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithJointInstruction toggles the leading joint-correlation
// instruction emitted when text and images are both present.
func WithJointInstruction(enabled bool) Option {
	return func(o *Orchestrator) { o.jointInstruction = enabled }
}

// WithMaxEvidenceBytes overrides the combined evidence size bound.
// Zero disables the client-side check.
func WithMaxEvidenceBytes(n int64) Option {
	return func(o *Orchestrator) { o.maxEvidenceBytes = n }
}

// NewOrchestrator builds an orchestrator over the given reasoner. A nil
// reasoner is allowed: every call then fails with a configuration
// error, so a process booted without credentials still serves typed
// errors instead of crashing.
func NewOrchestrator(r llmclient.Reasoner, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		reasoner:         r,
		jointInstruction: true,
		maxEvidenceBytes: DefaultMaxEvidenceBytes,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Analyze runs one incident analysis. Single synchronous reasoner
// call; no automatic retries, retry policy belongs to the caller.
func (o *Orchestrator) Analyze(ctx context.Context, req AnalyzeRequest) (*Result, error) {
	hasText := strings.TrimSpace(req.LogContent) != ""
	if !hasText && len(req.Images) == 0 {
		return nil, Errf(KindInvalidInput, "no evidence supplied: provide log text or at least one image")
	}
	if o.maxEvidenceBytes > 0 {
		if size := evidenceSize(req); size > o.maxEvidenceBytes {
			return nil, Errf(KindPayloadTooLarge, "combined evidence is %d bytes, limit is %d", size, o.maxEvidenceBytes)
		}
	}
	profile, err := ResolveMode(req.Mode)
	if err != nil {
		return nil, err
	}
	if o.reasoner == nil {
		return nil, Errf(KindConfig, "reasoning provider is not configured (set GEMINI_API_KEY)")
	}

	items := make([]EvidenceItem, 0, len(req.Images)+1)
	if hasText {
		items = append(items, TextEvidence(logContextPrefix+req.LogContent))
	}
	items = append(items, req.Images...)
	encoded, droppedItems := EncodeEvidence(items)
	for _, d := range droppedItems {
		log.Printf("[LogSight] dropped evidence item %q: %s", d.Name, d.Reason)
	}
	if len(encoded) == 0 {
		e := Errf(KindInvalidInput, "all evidence items were rejected during encoding")
		e.Details = dropReasons(droppedItems)
		return nil, e
	}

	parts := composeParts(profile, encoded, hasText, o.jointInstruction)

	temp := profile.Temperature
	lreq := llmclient.Request{
		Model:       profile.Model,
		System:      systemInstruction,
		Parts:       parts,
		Temperature: &temp,
		Schema:      ResponseSchema(profile.Schema),
	}
	if profile.ThinkingBudget > 0 {
		budget := profile.ThinkingBudget
		lreq.ThinkingBudget = &budget
	}

	raw, err := o.reasoner.GenerateStructured(ctx, lreq)
	if err != nil {
		return nil, providerError(err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, Errf(KindEmptyResponse,
			"reasoner returned no usable text; the evidence may have been filtered upstream, try reducing or altering it")
	}
	return Validate(raw, profile.Schema)
}

// composeParts orders the outbound content: lead instruction first,
// then the joint-correlation directive when both evidence kinds are
// present (policy-controlled), then the evidence itself. When only
// images were supplied, each image is preceded by a visual-anomaly
// instruction.
func composeParts(profile Profile, encoded []llmclient.Part, hasText, joint bool) []llmclient.Part {
	hasImages := false
	for _, p := range encoded {
		if len(p.Data) > 0 {
			hasImages = true
			break
		}
	}
	parts := make([]llmclient.Part, 0, 2*len(encoded)+2)
	parts = append(parts, llmclient.Part{Text: profile.Lead})
	if hasText && hasImages && joint {
		parts = append(parts, llmclient.Part{Text: jointInstruction})
	}
	imagesOnly := !hasText && hasImages
	for _, p := range encoded {
		if imagesOnly && len(p.Data) > 0 {
			parts = append(parts, llmclient.Part{Text: perImageInstruction})
		}
		parts = append(parts, p)
	}
	return parts
}

func evidenceSize(req AnalyzeRequest) int64 {
	size := int64(len(req.LogContent))
	for _, img := range req.Images {
		size += int64(len(img.Data))
	}
	return size
}

func dropReasons(dropped []DroppedItem) string {
	reasons := make([]string, 0, len(dropped))
	for _, d := range dropped {
		if d.Name != "" {
			reasons = append(reasons, d.Name+": "+d.Reason)
			continue
		}
		reasons = append(reasons, d.Reason)
	}
	return strings.Join(reasons, "; ")
}
