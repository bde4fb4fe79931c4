package models

// Evaluation is the scored result of one answered question. It is appended
// to the session once and never mutated. Score is whatever the model
// returned; the expected range is 0-10 but it is not clamped or validated.
type Evaluation struct {
	Question     string  `json:"question"`
	Answer       string  `json:"answer"`
	Score        float64 `json:"score"`
	Feedback     string  `json:"feedback"`
	BetterAnswer string  `json:"better_answer"`
}

// Summary is the final interview result. FinalScore is always computed
// locally from the evaluation scores; the narrative fields come from the
// model and are best-effort.
type Summary struct {
	FinalScore     float64  `json:"final_score"`
	OverallScore   float64  `json:"overall_score,omitempty"`
	Strengths      []string `json:"strengths,omitempty"`
	Weaknesses     []string `json:"weaknesses,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
	Summary        string   `json:"summary"`
}
