package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type SessionState string

const (
	StateSetup      SessionState = "setup"
	StateInProgress SessionState = "in_progress"
	StateComplete   SessionState = "complete"
)

// TurnStage is the externally observable phase of the current turn. Clients
// poll it to render intermediate progress while an answer is being processed.
type TurnStage string

const (
	StageIdle       TurnStage = "idle"
	StageProcessing TurnStage = "processing"
	StageResponding TurnStage = "responding"
	StageReady      TurnStage = "ready"
	StageFinished   TurnStage = "finished"
)

// Session tracks one candidate's full interview attempt. It lives only in
// the in-memory registry and is mutated exclusively by the session manager.
//
// Invariant: CurrentIndex == len(Evaluations) and is within
// [0, len(Questions)]; the session is complete iff CurrentIndex equals
// len(Questions).
type Session struct {
	ID            uuid.UUID    `json:"id"`
	CandidateName string       `json:"candidate_name"`
	Role          string       `json:"role"`
	ResumeText    string       `json:"-"`
	ResumeDocID   string       `json:"resume_doc_id,omitempty"`
	Questions     []Question   `json:"questions"`
	Evaluations   []Evaluation `json:"evaluations"`
	CurrentIndex  int          `json:"current_index"`
	StartTime     time.Time    `json:"start_time"`
	State         SessionState `json:"state"`
	Stage         TurnStage    `json:"stage"`
	Summary       *Summary     `json:"summary,omitempty"`
}

func (s *Session) Complete() bool {
	return s.CurrentIndex >= len(s.Questions)
}

// CurrentQuestion returns the question awaiting an answer.
func (s *Session) CurrentQuestion() (Question, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// Progress renders the "Question N of M" label shown to the candidate.
func (s *Session) Progress() string {
	return fmt.Sprintf("Question %d of %d", s.CurrentIndex+1, len(s.Questions))
}
