package analysis

// Profile is the resource envelope one mode resolves to: which model
// tier to call, how exploratory the sampling is, how much extended
// reasoning the model may spend, and which schema variant binds the
// output.
type Profile struct {
	Model          string
	Temperature    float32
	ThinkingBudget int32 // 0 disables extended reasoning
	Schema         SchemaVariant
	Lead           string // instruction part prepended to the evidence
}

// modeProfiles is the single declarative mode table. The orchestrator
// never branches on mode directly.
var modeProfiles = map[Mode]Profile{
	ModeQuick: {
		Model:       "gemini-3-flash-preview",
		Temperature: 0.2,
		Schema:      SchemaBase,
		Lead:        "Perform rapid triage.",
	},
	ModeDeep: {
		Model:          "gemini-3-pro-preview",
		Temperature:    0.3,
		ThinkingBudget: 8192,
		Schema:         SchemaBase,
		Lead:           "Perform a thorough root-cause investigation.",
	},
	ModeMarathon: {
		Model:          "gemini-3-pro-preview",
		Temperature:    0.4,
		ThinkingBudget: 32768,
		Schema:         SchemaExtended,
		Lead:           "Begin deep autonomous marathon investigation.",
	},
}

// ResolveMode maps a mode to its profile. Unknown modes fail with a
// configuration error rather than defaulting.
func ResolveMode(mode Mode) (Profile, error) {
	p, ok := modeProfiles[mode]
	if !ok {
		return Profile{}, Errf(KindConfig, "unknown analysis mode %q", string(mode))
	}
	return p, nil
}
