package analysis

// Mode selects an analysis depth profile. The set is closed; anything
// else fails mode resolution.
type Mode string

const (
	ModeQuick    Mode = "QUICK"
	ModeDeep     Mode = "DEEP"
	ModeMarathon Mode = "MARATHON"
)

// Chat turn roles. The wire format uses "model" for assistant turns,
// matching the provider's own role vocabulary.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatTurn is one turn of the follow-up conversation. The sequence is
// append-only and owned by the caller (or its session) for the lifetime
// of one investigation.
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// EvidenceKind discriminates evidence items.
type EvidenceKind string

const (
	EvidenceText  EvidenceKind = "text"
	EvidenceImage EvidenceKind = "image"
)

// EvidenceItem is one piece of caller-supplied incident evidence:
// either free-form log text or a binary image attachment.
type EvidenceItem struct {
	Kind     EvidenceKind
	Content  string // text items
	MIMEType string // image items
	Data     []byte // image items
	Name     string
}

// TextEvidence builds a text evidence item.
func TextEvidence(content string) EvidenceItem {
	return EvidenceItem{Kind: EvidenceText, Content: content}
}

// ImageEvidence builds an image evidence item.
func ImageEvidence(name, mimeType string, data []byte) EvidenceItem {
	return EvidenceItem{Kind: EvidenceImage, Name: name, MIMEType: mimeType, Data: data}
}

// AnalyzeRequest carries everything one analysis call needs. Each
// request is self-contained; the orchestrator holds no state between
// calls.
type AnalyzeRequest struct {
	Mode       Mode
	LogContent string
	Images     []EvidenceItem
}

// StepLevel is the depth of one investigation step.
type StepLevel string

const (
	LevelTriage      StepLevel = "TRIAGE"
	LevelCorrelation StepLevel = "CORRELATION"
	LevelDeepDive    StepLevel = "DEEP_DIVE"
)

// StepStatus tracks whether a step's finding still stands. Correction
// is modeled by appending a REFUTED step, never by mutating earlier
// entries.
type StepStatus string

const (
	StatusProbing   StepStatus = "PROBING"
	StatusConfirmed StepStatus = "CONFIRMED"
	StatusRefuted   StepStatus = "REFUTED"
)

// InvestigationStep is one entry of the marathon-mode ledger.
type InvestigationStep struct {
	Timestamp     string     `json:"timestamp"`
	Level         StepLevel  `json:"level"`
	Rationale     string     `json:"thought_signature"`
	Finding       string     `json:"finding"`
	Status        StepStatus `json:"status"`
	EvidenceLinks []string   `json:"evidence_links,omitempty"`
}

// Hypothesis is a candidate root cause with a calibrated confidence.
// CorrectedFrom names an earlier hypothesis statement this one
// supersedes.
type Hypothesis struct {
	Statement          string   `json:"hypothesis"`
	Confidence         float64  `json:"confidence"`
	SupportingEvidence []string `json:"supporting_evidence"`
	Unknowns           []string `json:"unknowns"`
	CorrectedFrom      string   `json:"corrected_from,omitempty"`
}

// Result is one complete analysis report. It is created fresh per
// request, immutable once returned, and superseded wholesale by the
// next analysis. Ledger and ActiveLeads are present in marathon mode
// only.
type Result struct {
	Summary     string              `json:"summary"`
	Hypotheses  []Hypothesis        `json:"root_cause_hypotheses"`
	NextActions []string            `json:"next_actions"`
	Ledger      []InvestigationStep `json:"investigation_ledger,omitempty"`
	ActiveLeads []string            `json:"active_leads,omitempty"`
}
