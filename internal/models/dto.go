package models

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	FileType     string `json:"file_type"`
}

type StartInterviewRequest struct {
	CandidateName string `json:"candidate_name"`
	Role          string `json:"role"`
	NumQuestions  int    `json:"num_questions"`
	ResumeID      string `json:"resume_id,omitempty"`
}

// QuestionPayload is a question as delivered to the client: text plus a
// best-effort audio URL and the progress label.
type QuestionPayload struct {
	Index    int    `json:"index"`
	Total    int    `json:"total"`
	Text     string `json:"text"`
	AudioURL string `json:"audio_url,omitempty"`
	Progress string `json:"progress"`
}

type StartInterviewResponse struct {
	SessionID string          `json:"session_id"`
	State     string          `json:"state"`
	Question  QuestionPayload `json:"question"`
}

type AnswerRequest struct {
	Text string `json:"text"`
}

type TurnResponse struct {
	SessionID          string           `json:"session_id"`
	State              string           `json:"state"`
	Evaluation         *Evaluation      `json:"evaluation,omitempty"`
	TransitionAudioURL string           `json:"transition_audio_url,omitempty"`
	NextQuestion       *QuestionPayload `json:"next_question,omitempty"`
	Summary            *Summary         `json:"summary,omitempty"`
}

type SessionStatusResponse struct {
	SessionID       string           `json:"session_id"`
	CandidateName   string           `json:"candidate_name"`
	Role            string           `json:"role"`
	State           string           `json:"state"`
	Stage           string           `json:"stage"`
	CurrentIndex    int              `json:"current_index"`
	TotalQuestions  int              `json:"total_questions"`
	CurrentQuestion *QuestionPayload `json:"current_question,omitempty"`
	Summary         *Summary         `json:"summary,omitempty"`
}
