package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Banoth-Rajesham/ai-interview-app/internal/models"
)

func questionsNamed(texts ...string) []models.Question {
	qs := make([]models.Question, len(texts))
	for i, text := range texts {
		qs[i] = models.Question{Text: text}
	}
	return qs
}

func newTestManager(questions []models.Question, scores []float64, transcript string) SessionManager {
	return NewSessionManager(
		&fakeQuestionService{questions: questions},
		&fakeEvaluator{scores: scores},
		&fakeSummarizer{},
		&fakeSpeech{transcript: transcript},
		&fakeDocRepo{},
		5,
		0, // no transition pause in tests
	)
}

func drainEvents(t *testing.T, events <-chan TurnEvent) []TurnEvent {
	t.Helper()
	var collected []TurnEvent
	for event := range events {
		collected = append(collected, event)
	}
	return collected
}

func TestStart_RequiresNameAndRole(t *testing.T) {
	m := newTestManager(questionsNamed("Q1"), nil, "")

	for _, tc := range []struct{ name, role string }{
		{"", "Engineer"},
		{"Ada", ""},
		{"", ""},
	} {
		session, _, err := m.Start(context.Background(), tc.name, tc.role, 3, "")

		require.Error(t, err)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Nil(t, session, "no session is registered on validation failure")
	}
}

func TestStart_EmptyGenerationFails(t *testing.T) {
	m := newTestManager(nil, nil, "")

	session, _, err := m.Start(context.Background(), "Ada", "Engineer", 3, "")

	require.Error(t, err)
	var gerr *GenerationError
	assert.ErrorAs(t, err, &gerr)
	assert.Nil(t, session)
}

func TestStart_RegistersSessionWithFirstQuestionAudio(t *testing.T) {
	m := newTestManager(questionsNamed("Q1", "Q2"), nil, "")

	session, firstAudio, err := m.Start(context.Background(), "Ada", "Engineer", 2, "")
	require.NoError(t, err)

	assert.Equal(t, models.StateInProgress, session.State)
	assert.Equal(t, models.StageReady, session.Stage)
	assert.Equal(t, 0, session.CurrentIndex)
	assert.Equal(t, "Question 1 of 2", session.Progress())
	assert.NotEmpty(t, firstAudio)

	fetched, err := m.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, fetched.ID)
}

func TestSubmitAnswer_UnknownSession(t *testing.T) {
	m := newTestManager(questionsNamed("Q1"), nil, "")

	_, err := m.SubmitAnswer(context.Background(), uuid.New(), AnswerPayload{Text: "hi"})

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSubmitAnswer_EmptyPayloadIsNoOp(t *testing.T) {
	m := newTestManager(questionsNamed("Q1", "Q2", "Q3", "Q4", "Q5"), []float64{7, 7}, "")

	session, _, err := m.Start(context.Background(), "Ada", "Engineer", 5, "")
	require.NoError(t, err)

	// Answer the first two questions normally.
	for i := 0; i < 2; i++ {
		events, err := m.SubmitAnswer(context.Background(), session.ID, AnswerPayload{Text: "answer"})
		require.NoError(t, err)
		drainEvents(t, events)
	}
	require.Equal(t, 2, session.CurrentIndex)

	// An empty submission is rejected and nothing moves.
	_, err = m.SubmitAnswer(context.Background(), session.ID, AnswerPayload{})
	require.Error(t, err)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	assert.Equal(t, 2, session.CurrentIndex)
	assert.Len(t, session.Evaluations, 2)
	assert.Equal(t, models.StateInProgress, session.State)
}

func TestSubmitAnswer_FullSession(t *testing.T) {
	m := newTestManager(questionsNamed("Q1", "Q2", "Q3"), []float64{6, 8, 4}, "")

	session, _, err := m.Start(context.Background(), "Ada", "Engineer", 3, "")
	require.NoError(t, err)

	// First two answers advance to the next question.
	for turn := 0; turn < 2; turn++ {
		events, err := m.SubmitAnswer(context.Background(), session.ID, AnswerPayload{Text: "my answer"})
		require.NoError(t, err)

		collected := drainEvents(t, events)
		require.Len(t, collected, 3)
		assert.Equal(t, models.StageProcessing, collected[0].Stage)
		assert.Equal(t, models.StageResponding, collected[1].Stage)
		require.NotNil(t, collected[1].Evaluation)
		assert.Equal(t, models.StageReady, collected[2].Stage)
		require.NotNil(t, collected[2].Question)
		assert.Equal(t, turn+1, collected[2].Question.Index)
		assert.Equal(t, 3, collected[2].Question.Total)
		assert.NotEmpty(t, collected[2].AudioPath)

		// Invariant: the answered count always matches the cursor.
		assert.Equal(t, turn+1, session.CurrentIndex)
		assert.Len(t, session.Evaluations, turn+1)
	}

	// The last answer finishes the interview.
	events, err := m.SubmitAnswer(context.Background(), session.ID, AnswerPayload{Text: "my answer"})
	require.NoError(t, err)

	collected := drainEvents(t, events)
	require.Len(t, collected, 2)
	assert.Equal(t, models.StageProcessing, collected[0].Stage)
	assert.Equal(t, models.StageFinished, collected[1].Stage)
	require.NotNil(t, collected[1].Summary)
	assert.Equal(t, 6.0, collected[1].Summary.FinalScore)

	assert.Equal(t, models.StateComplete, session.State)
	assert.Equal(t, models.StageFinished, session.Stage)
	require.NotNil(t, session.Summary)
	assert.Equal(t, 6.0, session.Summary.FinalScore)

	// Further answers are rejected.
	_, err = m.SubmitAnswer(context.Background(), session.ID, AnswerPayload{Text: "one more"})
	assert.ErrorIs(t, err, ErrInterviewNotActive)
}

func TestSubmitAnswer_EmptyTranscriptionUsesPlaceholder(t *testing.T) {
	m := newTestManager(questionsNamed("Q1", "Q2"), []float64{3}, "")

	session, _, err := m.Start(context.Background(), "Ada", "Engineer", 2, "")
	require.NoError(t, err)

	events, err := m.SubmitAnswer(context.Background(), session.ID, AnswerPayload{AudioPath: "/tmp/answer.webm"})
	require.NoError(t, err)
	drainEvents(t, events)

	require.Len(t, session.Evaluations, 1)
	assert.Equal(t, transcriptionPlaceholder, session.Evaluations[0].Answer)
	assert.Equal(t, 1, session.CurrentIndex, "the turn still advances")
}

func TestSubmitAnswer_AudioTranscribed(t *testing.T) {
	m := newTestManager(questionsNamed("Q1", "Q2"), []float64{9}, "I built a payment service in Go.")

	session, _, err := m.Start(context.Background(), "Ada", "Engineer", 2, "")
	require.NoError(t, err)

	events, err := m.SubmitAnswer(context.Background(), session.ID, AnswerPayload{AudioPath: "/tmp/answer.webm"})
	require.NoError(t, err)
	drainEvents(t, events)

	require.Len(t, session.Evaluations, 1)
	assert.Equal(t, "I built a payment service in Go.", session.Evaluations[0].Answer)
}

func TestGet_ReturnsSnapshot(t *testing.T) {
	m := newTestManager(questionsNamed("Q1", "Q2"), []float64{5}, "")

	session, _, err := m.Start(context.Background(), "Ada", "Engineer", 2, "")
	require.NoError(t, err)

	snap, err := m.Get(session.ID)
	require.NoError(t, err)

	snap.CandidateName = "mutated"
	snap.Evaluations = append(snap.Evaluations, models.Evaluation{Question: "injected"})

	fresh, err := m.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", fresh.CandidateName)
	assert.Empty(t, fresh.Evaluations)
}

func TestGet_SafeToPollDuringTurn(t *testing.T) {
	m := NewSessionManager(
		&fakeQuestionService{questions: questionsNamed("Q1", "Q2", "Q3")},
		&fakeEvaluator{scores: []float64{6, 8}},
		&fakeSummarizer{},
		&fakeSpeech{},
		&fakeDocRepo{},
		5,
		10*time.Millisecond,
	)

	session, _, err := m.Start(context.Background(), "Ada", "Engineer", 3, "")
	require.NoError(t, err)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			snap, err := m.Get(session.ID)
			if assert.NoError(t, err) {
				assert.Equal(t, snap.CurrentIndex, len(snap.Evaluations))
				assert.LessOrEqual(t, snap.CurrentIndex, len(snap.Questions))
			}
		}
	}()

	for turn := 0; turn < 2; turn++ {
		events, err := m.SubmitAnswer(context.Background(), session.ID, AnswerPayload{Text: "answer"})
		require.NoError(t, err)
		drainEvents(t, events)
	}

	close(stop)
	wg.Wait()

	snap, err := m.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.CurrentIndex)
}

func TestMarkReported_OnlyOnce(t *testing.T) {
	m := newTestManager(questionsNamed("Q1"), []float64{5}, "")

	session, _, err := m.Start(context.Background(), "Ada", "Engineer", 1, "")
	require.NoError(t, err)

	assert.True(t, m.MarkReported(session.ID))
	assert.False(t, m.MarkReported(session.ID), "second report render does not archive again")
	assert.False(t, m.MarkReported(uuid.New()))
}

func TestDelete_RemovesSession(t *testing.T) {
	m := newTestManager(questionsNamed("Q1"), nil, "")

	session, _, err := m.Start(context.Background(), "Ada", "Engineer", 1, "")
	require.NoError(t, err)

	m.Delete(session.ID)

	_, err = m.Get(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
