package domain

// QuickFix is the only analysis mode requested from the grammar backend.
const QuickFix = "quick_fix"

type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

type Issue struct {
	Index         int    `json:"index" yaml:"index"`
	Span          Span   `json:"span" yaml:"span"`
	IssueType     string `json:"issue_type" yaml:"issue_type"`
	ExplanationZh string `json:"explanation_zh" yaml:"explanation_zh"`
	Suggestion    string `json:"suggestion" yaml:"suggestion"`
}

type Score struct {
	Grammar    float64 `json:"grammar" yaml:"grammar"`
	Vocabulary float64 `json:"vocabulary" yaml:"vocabulary"`
	Fluency    float64 `json:"fluency" yaml:"fluency"`
	Overall    float64 `json:"overall" yaml:"overall"`
}

// Feedback is the backend's analysis of one sentence. It is passed through
// as received.
type Feedback struct {
	Original          string  `json:"original" yaml:"original"`
	MinimalCorrection string  `json:"minimal_correction" yaml:"minimal_correction"`
	NaturalVersion    string  `json:"natural_version" yaml:"natural_version"`
	Issues            []Issue `json:"issues" yaml:"issues"`
	Score             Score   `json:"score" yaml:"score"`
}

type GrammarRequest struct {
	Sentence     string         `json:"sentence"`
	TaskType     string         `json:"task_type"`
	ExtraContext map[string]any `json:"extra_context,omitempty"`
}

type Health struct {
	Status string `json:"status"`
}
