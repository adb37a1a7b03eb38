package analysis

import (
	"strings"

	"logsight/internal/llmclient"
)

// DroppedItem records why an evidence item was excluded from the
// encoded batch. Partial evidence is preferable to total failure, so
// inconsistent items are dropped with a reason instead of aborting.
type DroppedItem struct {
	Name   string
	Reason string
}

// EncodeEvidence normalizes heterogeneous evidence into an ordered
// list of provider-neutral parts. It is a pure transformation: input
// order is preserved and encoding the same list twice yields
// structurally identical output.
//
// Text items are trimmed and must be non-empty to be included. Image
// items must carry an image/* MIME type and a non-empty payload.
func EncodeEvidence(items []EvidenceItem) ([]llmclient.Part, []DroppedItem) {
	parts := make([]llmclient.Part, 0, len(items))
	var dropped []DroppedItem
	for _, it := range items {
		switch it.Kind {
		case EvidenceText:
			txt := strings.TrimSpace(it.Content)
			if txt == "" {
				dropped = append(dropped, DroppedItem{Name: it.Name, Reason: "text item is empty after trimming"})
				continue
			}
			parts = append(parts, llmclient.Part{Text: txt, Name: it.Name})
		case EvidenceImage:
			mime := strings.TrimSpace(it.MIMEType)
			if !strings.HasPrefix(mime, "image/") {
				dropped = append(dropped, DroppedItem{Name: it.Name, Reason: "item tagged as image carries non-image MIME type " + strings.TrimSpace(it.MIMEType)})
				continue
			}
			if len(it.Data) == 0 {
				dropped = append(dropped, DroppedItem{Name: it.Name, Reason: "image payload is empty"})
				continue
			}
			parts = append(parts, llmclient.Part{MIMEType: mime, Data: it.Data, Name: it.Name})
		default:
			dropped = append(dropped, DroppedItem{Name: it.Name, Reason: "unknown evidence kind " + string(it.Kind)})
		}
	}
	return parts, dropped
}
