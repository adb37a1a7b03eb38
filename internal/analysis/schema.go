package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	genai "google.golang.org/genai"
)

// SchemaVariant selects which output contract binds a result. The
// extended variant adds the investigation ledger and active leads.
type SchemaVariant string

const (
	SchemaBase     SchemaVariant = "base"
	SchemaExtended SchemaVariant = "extended"
)

var stepLevels = []string{string(LevelTriage), string(LevelCorrelation), string(LevelDeepDive)}
var stepStatuses = []string{string(StatusProbing), string(StatusConfirmed), string(StatusRefuted)}

func stringArraySchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
}

// ResponseSchema renders the contract into the machine-consumable form
// the provider enforces during decoding. Provider-side enforcement is
// best effort only; Validate remains the authority on receipt.
func ResponseSchema(variant SchemaVariant) *genai.Schema {
	hypothesis := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"hypothesis":          {Type: genai.TypeString},
			"confidence":          {Type: genai.TypeNumber},
			"supporting_evidence": stringArraySchema(),
			"unknowns":            stringArraySchema(),
			"corrected_from":      {Type: genai.TypeString},
		},
		Required: []string{"hypothesis", "confidence", "supporting_evidence", "unknowns"},
	}
	root := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary":               {Type: genai.TypeString},
			"root_cause_hypotheses": {Type: genai.TypeArray, Items: hypothesis},
			"next_actions":          stringArraySchema(),
		},
		Required: []string{"summary", "root_cause_hypotheses", "next_actions"},
	}
	if variant != SchemaExtended {
		return root
	}
	step := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"timestamp":         {Type: genai.TypeString},
			"level":             {Type: genai.TypeString, Enum: stepLevels},
			"thought_signature": {Type: genai.TypeString},
			"finding":           {Type: genai.TypeString},
			"status":            {Type: genai.TypeString, Enum: stepStatuses},
			"evidence_links":    stringArraySchema(),
		},
		Required: []string{"timestamp", "level", "thought_signature", "finding", "status"},
	}
	root.Properties["investigation_ledger"] = &genai.Schema{Type: genai.TypeArray, Items: step}
	root.Properties["active_leads"] = stringArraySchema()
	root.Required = append(root.Required, "investigation_ledger", "active_leads")
	return root
}

// StripWrapping removes fenced code block markers some replies still
// wrap around the JSON despite the no-prose directive.
func StripWrapping(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		head := strings.TrimSpace(s[:i])
		if head == "" || strings.EqualFold(head, "json") {
			s = s[i+1:]
		}
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// Validate parses raw reasoner output against the contract. Every
// required field must be present and type-correct; hypotheses with a
// confidence outside [0,1] or missing list fields are rejected, never
// coerced. Failures keep the raw text in Details for diagnosis.
func Validate(raw string, variant SchemaVariant) (*Result, error) {
	text := StripWrapping(raw)
	var m map[string]any
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return nil, &Error{
			Kind:    KindMalformedOutput,
			Message: "reasoner output is not valid JSON: " + err.Error(),
			Details: raw,
		}
	}
	if err := checkContract(m, variant); err != nil {
		return nil, &Error{Kind: KindMalformedOutput, Message: err.Error(), Details: raw}
	}
	var res Result
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		return nil, &Error{
			Kind:    KindMalformedOutput,
			Message: "reasoner output does not decode into the result shape: " + err.Error(),
			Details: raw,
		}
	}
	return &res, nil
}

func checkContract(m map[string]any, variant SchemaVariant) error {
	if _, ok := m["summary"].(string); !ok {
		return fmt.Errorf("missing or non-string field %q", "summary")
	}
	hyps, ok := m["root_cause_hypotheses"].([]any)
	if !ok {
		return fmt.Errorf("missing or non-array field %q", "root_cause_hypotheses")
	}
	for i, h := range hyps {
		if err := checkHypothesis(h); err != nil {
			return fmt.Errorf("root_cause_hypotheses[%d]: %w", i, err)
		}
	}
	if err := checkStringList(m, "next_actions"); err != nil {
		return err
	}
	if variant != SchemaExtended {
		return nil
	}
	steps, ok := m["investigation_ledger"].([]any)
	if !ok {
		return fmt.Errorf("missing or non-array field %q", "investigation_ledger")
	}
	for i, s := range steps {
		if err := checkStep(s); err != nil {
			return fmt.Errorf("investigation_ledger[%d]: %w", i, err)
		}
	}
	return checkStringList(m, "active_leads")
}

func checkHypothesis(v any) error {
	obj, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("not an object")
	}
	if _, ok := obj["hypothesis"].(string); !ok {
		return fmt.Errorf("missing or non-string field %q", "hypothesis")
	}
	conf, ok := obj["confidence"].(float64)
	if !ok {
		return fmt.Errorf("missing or non-numeric field %q", "confidence")
	}
	if conf < 0 || conf > 1 {
		return fmt.Errorf("confidence %v is outside [0,1]", conf)
	}
	for _, key := range []string{"supporting_evidence", "unknowns"} {
		if err := checkStringList(obj, key); err != nil {
			return err
		}
	}
	if v, present := obj["corrected_from"]; present && v != nil {
		if _, ok := v.(string); !ok {
			return fmt.Errorf("non-string field %q", "corrected_from")
		}
	}
	return nil
}

func checkStep(v any) error {
	obj, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("not an object")
	}
	for _, key := range []string{"timestamp", "thought_signature", "finding"} {
		if _, ok := obj[key].(string); !ok {
			return fmt.Errorf("missing or non-string field %q", key)
		}
	}
	level, _ := obj["level"].(string)
	if !contains(stepLevels, level) {
		return fmt.Errorf("level %q is not one of %v", level, stepLevels)
	}
	status, _ := obj["status"].(string)
	if !contains(stepStatuses, status) {
		return fmt.Errorf("status %q is not one of %v", status, stepStatuses)
	}
	if v, present := obj["evidence_links"]; present && v != nil {
		if err := checkStringList(obj, "evidence_links"); err != nil {
			return err
		}
	}
	return nil
}

func checkStringList(obj map[string]any, key string) error {
	list, ok := obj[key].([]any)
	if !ok {
		return fmt.Errorf("missing or non-array field %q", key)
	}
	for i, v := range list {
		if _, ok := v.(string); !ok {
			return fmt.Errorf("%s[%d] is not a string", key, i)
		}
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
