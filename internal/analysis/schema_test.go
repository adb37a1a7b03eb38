package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const minimalResult = `{
	"summary": "Connection pool exhausted",
	"root_cause_hypotheses": [
		{
			"hypothesis": "DB connection pool exhausted after deploy",
			"confidence": 0.8,
			"supporting_evidence": ["ERROR: connection refused at 10:02"],
			"unknowns": ["pool size before deploy"]
		}
	],
	"next_actions": ["Check pool metrics"]
}`

func TestValidate_MinimalBase(t *testing.T) {
	res, err := Validate(minimalResult, SchemaBase)
	require.NoError(t, err)
	require.Equal(t, "Connection pool exhausted", res.Summary)
	require.Len(t, res.Hypotheses, 1)
	require.InDelta(t, 0.8, res.Hypotheses[0].Confidence, 1e-9)
	require.Equal(t, []string{"Check pool metrics"}, res.NextActions)
}

func TestValidate_StripsFencedWrapping(t *testing.T) {
	wrapped := "```json\n" + minimalResult + "\n```"
	res, err := Validate(wrapped, SchemaBase)
	require.NoError(t, err)
	require.Equal(t, "Connection pool exhausted", res.Summary)

	bare := "```\n" + minimalResult + "\n```"
	res, err = Validate(bare, SchemaBase)
	require.NoError(t, err)
	require.Len(t, res.Hypotheses, 1)
}

func TestValidate_RejectsConfidenceOutOfRange(t *testing.T) {
	bad := `{
		"summary": "s",
		"root_cause_hypotheses": [
			{"hypothesis": "h", "confidence": 1.7, "supporting_evidence": [], "unknowns": []}
		],
		"next_actions": []
	}`
	_, err := Validate(bad, SchemaBase)
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, KindMalformedOutput, kind)

	var ae *Error
	require.ErrorAs(t, err, &ae)
	require.Contains(t, ae.Details, `"confidence": 1.7`, "raw text must be retained for diagnosis")
}

func TestValidate_RejectsMissingRequiredLists(t *testing.T) {
	bad := `{
		"summary": "s",
		"root_cause_hypotheses": [
			{"hypothesis": "h", "confidence": 0.4, "supporting_evidence": []}
		],
		"next_actions": []
	}`
	_, err := Validate(bad, SchemaBase)
	require.Error(t, err)
	kind, _ := KindOf(err)
	require.Equal(t, KindMalformedOutput, kind)
}

func TestValidate_RejectsNonJSON(t *testing.T) {
	_, err := Validate("I could not produce JSON, sorry.", SchemaBase)
	require.Error(t, err)
	kind, _ := KindOf(err)
	require.Equal(t, KindMalformedOutput, kind)
}

func TestValidate_ExtendedRequiresLedger(t *testing.T) {
	_, err := Validate(minimalResult, SchemaExtended)
	require.Error(t, err, "extended contract must reject a result without a ledger")

	full := `{
		"summary": "s",
		"root_cause_hypotheses": [],
		"next_actions": [],
		"investigation_ledger": [
			{
				"timestamp": "2026-09-01T10:02:00Z",
				"level": "TRIAGE",
				"thought_signature": "surface scan of the error burst",
				"finding": "errors started at 10:02",
				"status": "CONFIRMED",
				"evidence_links": ["logs:42"]
			}
		],
		"active_leads": ["correlate with deploy window"]
	}`
	res, err := Validate(full, SchemaExtended)
	require.NoError(t, err)
	require.Len(t, res.Ledger, 1)
	require.Equal(t, LevelTriage, res.Ledger[0].Level)
	require.Equal(t, StatusConfirmed, res.Ledger[0].Status)
	require.Equal(t, []string{"correlate with deploy window"}, res.ActiveLeads)
}

func TestValidate_RejectsBadLedgerEnums(t *testing.T) {
	bad := `{
		"summary": "s",
		"root_cause_hypotheses": [],
		"next_actions": [],
		"investigation_ledger": [
			{"timestamp": "t", "level": "GUESSING", "thought_signature": "x", "finding": "f", "status": "PROBING"}
		],
		"active_leads": []
	}`
	_, err := Validate(bad, SchemaExtended)
	require.Error(t, err)
}

func TestResponseSchema_Variants(t *testing.T) {
	base := ResponseSchema(SchemaBase)
	require.NotContains(t, base.Required, "investigation_ledger")
	require.Nil(t, base.Properties["investigation_ledger"])

	ext := ResponseSchema(SchemaExtended)
	require.Contains(t, ext.Required, "investigation_ledger")
	require.Contains(t, ext.Required, "active_leads")
	require.NotNil(t, ext.Properties["investigation_ledger"])
}

func TestStripWrapping_PassthroughWithoutFence(t *testing.T) {
	require.Equal(t, `{"a":1}`, StripWrapping("  {\"a\":1}  "))
}
