package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Banoth-Rajesham/ai-interview-app/internal/models"
)

// fakeGemini scripts the model's reply for a component under test.
type fakeGemini struct {
	response  string
	err       error
	calls     int
	embedding []float32
	embedErr  error
}

func (f *fakeGemini) GenerateJSON(ctx context.Context, prompt string, temperature float32) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeGemini) GenerateJSONWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return f.embedding, nil
}

type fakeQuestionService struct {
	questions []models.Question
}

func (f *fakeQuestionService) Generate(ctx context.Context, role string, count int, resumeText string) []models.Question {
	return f.questions
}

// fakeEvaluator returns scripted scores in call order.
type fakeEvaluator struct {
	scores []float64
	calls  int
}

func (f *fakeEvaluator) Evaluate(ctx context.Context, question, answer, resumeDocID string) models.Evaluation {
	score := 0.0
	if f.calls < len(f.scores) {
		score = f.scores[f.calls]
	}
	f.calls++
	return models.Evaluation{
		Question:     question,
		Answer:       answer,
		Score:        score,
		Feedback:     fmt.Sprintf("feedback %d", f.calls),
		BetterAnswer: "a better answer",
	}
}

type fakeSummarizer struct{}

func (f *fakeSummarizer) Summarize(ctx context.Context, evaluations []models.Evaluation) models.Summary {
	return models.Summary{
		FinalScore: FinalScore(evaluations),
		Summary:    "a solid performance overall",
	}
}

// fakeSpeech scripts the transcription result; synthesis always "works".
type fakeSpeech struct {
	transcript string
}

func (f *fakeSpeech) Transcribe(ctx context.Context, audioPath string) string {
	return f.transcript
}

func (f *fakeSpeech) Synthesize(ctx context.Context, text string) string {
	return "/tmp/tts/" + contentKey(text) + ".mp3"
}

type fakeDocRepo struct {
	docs map[uuid.UUID]*models.Document
}

func (f *fakeDocRepo) Create(document *models.Document) error {
	if f.docs == nil {
		f.docs = make(map[uuid.UUID]*models.Document)
	}
	f.docs[document.ID] = document
	return nil
}

func (f *fakeDocRepo) FindByID(id uuid.UUID) (*models.Document, error) {
	if doc, ok := f.docs[id]; ok {
		return doc, nil
	}
	return nil, errors.New("document not found")
}

func (f *fakeDocRepo) MarkIngested(id uuid.UUID) error {
	if doc, ok := f.docs[id]; ok {
		doc.Ingested = true
		return nil
	}
	return errors.New("document not found")
}

func (f *fakeDocRepo) Delete(id uuid.UUID) error {
	if _, ok := f.docs[id]; ok {
		delete(f.docs, id)
		return nil
	}
	return errors.New("document not found")
}
