package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Banoth-Rajesham/ai-interview-app/internal/models"
	"github.com/Banoth-Rajesham/ai-interview-app/internal/repositories"
)

// TurnEvent is one observable progress step of an answer turn. Events are
// emitted in order on the channel returned by SubmitAnswer; the channel is
// closed when the turn is done.
type TurnEvent struct {
	Stage      models.TurnStage        `json:"stage"`
	Message    string                  `json:"message,omitempty"`
	AudioPath  string                  `json:"audio_path,omitempty"`
	Evaluation *models.Evaluation      `json:"evaluation,omitempty"`
	Question   *models.QuestionPayload `json:"question,omitempty"`
	Summary    *models.Summary         `json:"summary,omitempty"`
}

// AnswerPayload is the candidate's submitted answer: typed text or a
// recorded audio file, at least one of which must be present.
type AnswerPayload struct {
	Text      string
	AudioPath string
}

func (p AnswerPayload) Empty() bool {
	return p.Text == "" && p.AudioPath == ""
}

// transcriptionPlaceholder replaces an answer whose audio could not be
// transcribed, so the turn still advances.
const transcriptionPlaceholder = "(Audio could not be transcribed)"

const transitionUtterance = "Thank you for your answer. Now for the next question."

// SessionManager owns every live interview session. Sessions move strictly
// forward through setup -> in progress -> complete; each session is guarded
// by its own lock so at most one answer is in flight per session.
type SessionManager interface {
	// Start returns the new session plus the synthesized audio path for the
	// first question ("" when no audio is available).
	Start(ctx context.Context, name, role string, count int, resumeID string) (*models.Session, string, error)
	SubmitAnswer(ctx context.Context, sessionID uuid.UUID, payload AnswerPayload) (<-chan TurnEvent, error)
	Get(sessionID uuid.UUID) (*models.Session, error)
	MarkReported(sessionID uuid.UUID) bool
	Delete(sessionID uuid.UUID)
}

// managedSession guards one live session. mu is the turn-admission lock,
// held for a whole answer turn; stateMu guards the session fields so status
// reads can snapshot them while a turn is running.
type managedSession struct {
	mu       sync.Mutex
	stateMu  sync.RWMutex
	session  *models.Session
	reported bool
}

// snapshot copies the session for callers outside the manager. The
// evaluations slice is copied because the running turn appends to it;
// questions are immutable and the summary is never mutated once set.
func (ms *managedSession) snapshot() *models.Session {
	ms.stateMu.RLock()
	defer ms.stateMu.RUnlock()

	copied := *ms.session
	copied.Evaluations = append([]models.Evaluation(nil), ms.session.Evaluations...)
	return &copied
}

type sessionManager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*managedSession

	questions    QuestionService
	evaluator    AnswerEvaluator
	summarizer   Summarizer
	speech       SpeechService
	docRepo      repositories.DocumentRepository
	defaultCount int
	pause        time.Duration
}

func NewSessionManager(
	questions QuestionService,
	evaluator AnswerEvaluator,
	summarizer Summarizer,
	speech SpeechService,
	docRepo repositories.DocumentRepository,
	defaultCount int,
	pause time.Duration,
) SessionManager {
	if defaultCount <= 0 {
		defaultCount = 5
	}
	return &sessionManager{
		sessions:     make(map[uuid.UUID]*managedSession),
		questions:    questions,
		evaluator:    evaluator,
		summarizer:   summarizer,
		speech:       speech,
		docRepo:      docRepo,
		defaultCount: defaultCount,
		pause:        pause,
	}
}

// Start implements SessionManager. Validation and generation failures leave
// no session behind; the caller stays on the setup screen.
func (m *sessionManager) Start(ctx context.Context, name, role string, count int, resumeID string) (*models.Session, string, error) {
	if name == "" || role == "" {
		return nil, "", &ValidationError{Msg: "Please enter both your name and the job role."}
	}

	if count <= 0 {
		count = m.defaultCount
	}

	var resumeText, resumeDocID string
	if resumeID != "" {
		docID, err := uuid.Parse(resumeID)
		if err != nil {
			return nil, "", &ValidationError{Msg: "Invalid resume_id format."}
		}
		doc, err := m.docRepo.FindByID(docID)
		if err != nil {
			return nil, "", &ValidationError{Msg: "Resume not found. Upload it first."}
		}
		resumeText = doc.ExtractedText
		resumeDocID = doc.ID.String()
	}

	log.Printf("🎤 Starting interview for %s for the role of %s\n", name, role)

	questions := m.questions.Generate(ctx, role, count, resumeText)
	if len(questions) == 0 {
		return nil, "", &GenerationError{Msg: "Failed to generate interview questions. Please try again."}
	}

	session := &models.Session{
		ID:            uuid.New(),
		CandidateName: name,
		Role:          role,
		ResumeText:    resumeText,
		ResumeDocID:   resumeDocID,
		Questions:     questions,
		CurrentIndex:  0,
		StartTime:     time.Now(),
		State:         models.StateInProgress,
		Stage:         models.StageReady,
	}

	m.mu.Lock()
	m.sessions[session.ID] = &managedSession{session: session}
	m.mu.Unlock()

	firstAudio := m.speech.Synthesize(ctx, questions[0].Text)

	return session, firstAudio, nil
}

// SubmitAnswer implements SessionManager. Validation failures are returned
// synchronously with no state change; an accepted answer runs the turn
// pipeline in the background and streams progress events.
func (m *sessionManager) SubmitAnswer(ctx context.Context, sessionID uuid.UUID, payload AnswerPayload) (<-chan TurnEvent, error) {
	ms, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	if !ms.mu.TryLock() {
		return nil, ErrTurnInProgress
	}

	session := ms.session
	if session.State != models.StateInProgress {
		ms.mu.Unlock()
		return nil, ErrInterviewNotActive
	}

	if payload.Empty() {
		ms.mu.Unlock()
		return nil, &ValidationError{Msg: "Please record your answer before submitting."}
	}

	events := make(chan TurnEvent, 4)
	go func() {
		defer ms.mu.Unlock()
		defer close(events)
		m.runTurn(ctx, ms, payload, events)
	}()

	return events, nil
}

func (m *sessionManager) runTurn(ctx context.Context, ms *managedSession, payload AnswerPayload, events chan<- TurnEvent) {
	session := ms.session

	ms.setStage(models.StageProcessing)
	events <- TurnEvent{Stage: models.StageProcessing, Message: "Processing..."}

	answer := payload.Text
	if payload.AudioPath != "" {
		answer = m.speech.Transcribe(ctx, payload.AudioPath)
		if answer == "" {
			answer = transcriptionPlaceholder
		}
	}

	question, _ := session.CurrentQuestion()
	evaluation := m.evaluator.Evaluate(ctx, question.Text, answer, session.ResumeDocID)

	ms.stateMu.Lock()
	session.Evaluations = append(session.Evaluations, evaluation)
	session.CurrentIndex++
	complete := session.Complete()
	ms.stateMu.Unlock()

	if complete {
		summary := m.summarizer.Summarize(ctx, session.Evaluations)

		ms.stateMu.Lock()
		session.Summary = &summary
		session.State = models.StateComplete
		session.Stage = models.StageFinished
		ms.stateMu.Unlock()

		log.Printf("✅ Interview %s complete, final score %.1f\n", session.ID, summary.FinalScore)
		events <- TurnEvent{
			Stage:      models.StageFinished,
			Evaluation: &evaluation,
			Summary:    &summary,
		}
		return
	}

	transitionAudio := m.speech.Synthesize(ctx, transitionUtterance)
	ms.setStage(models.StageResponding)
	events <- TurnEvent{
		Stage:      models.StageResponding,
		Message:    transitionUtterance,
		AudioPath:  transitionAudio,
		Evaluation: &evaluation,
	}

	// UX pacing only: give the candidate time to hear the transition.
	if m.pause > 0 {
		time.Sleep(m.pause)
	}

	next, _ := session.CurrentQuestion()
	questionAudio := m.speech.Synthesize(ctx, next.Text)
	ms.setStage(models.StageReady)

	events <- TurnEvent{
		Stage: models.StageReady,
		Question: &models.QuestionPayload{
			Index:    session.CurrentIndex,
			Total:    len(session.Questions),
			Text:     next.Text,
			Progress: session.Progress(),
		},
		AudioPath: questionAudio,
	}
}

func (ms *managedSession) setStage(stage models.TurnStage) {
	ms.stateMu.Lock()
	ms.session.Stage = stage
	ms.stateMu.Unlock()
}

// Get implements SessionManager. The returned session is a snapshot taken
// under the state lock, so callers can read it while a turn is running.
func (m *sessionManager) Get(sessionID uuid.UUID) (*models.Session, error) {
	ms, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return ms.snapshot(), nil
}

// MarkReported flags the session's report as rendered; returns false if it
// was already flagged, so the archive row is only written once.
func (m *sessionManager) MarkReported(sessionID uuid.UUID) bool {
	ms, err := m.lookup(sessionID)
	if err != nil {
		return false
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.reported {
		return false
	}
	ms.reported = true
	return true
}

// Delete implements SessionManager. Sessions are discarded once the client
// is done with them; nothing survives a restart.
func (m *sessionManager) Delete(sessionID uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}

func (m *sessionManager) lookup(sessionID uuid.UUID) (*managedSession, error) {
	m.mu.RLock()
	ms, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return ms, nil
}
