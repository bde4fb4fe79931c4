package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeVectorStore struct {
	chunks    []ResumeChunk
	searchErr error
	lastDocID string
}

func (f *fakeVectorStore) InitCollection() error { return nil }

func (f *fakeVectorStore) UpsertResumeChunk(ctx context.Context, docID string, chunkIndex int, text string, embedding []float32) error {
	return nil
}

func (f *fakeVectorStore) SearchResumeContext(ctx context.Context, queryEmbedding []float32, docID string, limit int) ([]ResumeChunk, error) {
	f.lastDocID = docID
	return f.chunks, f.searchErr
}

func (f *fakeVectorStore) DeleteResume(ctx context.Context, docID string) error { return nil }

func TestEvaluate_HappyPath(t *testing.T) {
	gemini := &fakeGemini{
		response: `{"score": 8, "feedback": "Clear and specific.", "better_answer": "Mention metrics."}`,
	}
	e := NewAnswerEvaluator(gemini, nil, 1)

	eval := e.Evaluate(context.Background(), "What is a goroutine?", "A lightweight thread.", "")

	assert.Equal(t, "What is a goroutine?", eval.Question)
	assert.Equal(t, "A lightweight thread.", eval.Answer)
	assert.Equal(t, 8.0, eval.Score)
	assert.Equal(t, "Clear and specific.", eval.Feedback)
	assert.Equal(t, "Mention metrics.", eval.BetterAnswer)
}

func TestEvaluate_EmptyAnswerSkipsModel(t *testing.T) {
	gemini := &fakeGemini{}
	e := NewAnswerEvaluator(gemini, nil, 1)

	for _, answer := range []string{"", "   ", "\n\t"} {
		eval := e.Evaluate(context.Background(), "Q", answer, "")

		assert.Equal(t, 0.0, eval.Score)
		assert.Equal(t, "Evaluation could not be performed.", eval.Feedback)
		assert.Equal(t, "N/A", eval.BetterAnswer)
	}
	assert.Zero(t, gemini.calls, "empty answers never reach the model")
}

func TestEvaluate_ModelFailureDegrades(t *testing.T) {
	gemini := &fakeGemini{err: errors.New("quota exceeded")}
	e := NewAnswerEvaluator(gemini, nil, 1)

	eval := e.Evaluate(context.Background(), "Q", "an answer", "")

	assert.Equal(t, 0.0, eval.Score)
	assert.Equal(t, "An error occurred during evaluation.", eval.Feedback)
	assert.Equal(t, "Q", eval.Question)
	assert.Equal(t, "an answer", eval.Answer)
}

func TestEvaluate_MalformedResponseDegrades(t *testing.T) {
	gemini := &fakeGemini{response: "I would rate this answer favorably."}
	e := NewAnswerEvaluator(gemini, nil, 1)

	eval := e.Evaluate(context.Background(), "Q", "an answer", "")

	assert.Equal(t, 0.0, eval.Score)
	assert.Equal(t, "Evaluation failed.", eval.Feedback)
}

func TestEvaluate_ProseWrappedResponseRecovered(t *testing.T) {
	gemini := &fakeGemini{
		response: "Here is my assessment:\n{\"score\": 6.5, \"feedback\": \"Decent.\", \"better_answer\": \"Add detail.\"}\nHope that helps.",
	}
	e := NewAnswerEvaluator(gemini, nil, 1)

	eval := e.Evaluate(context.Background(), "Q", "an answer", "")

	assert.Equal(t, 6.5, eval.Score)
	assert.Equal(t, "Decent.", eval.Feedback)
}

func TestEvaluate_ScoreIsPassedThroughUnclamped(t *testing.T) {
	gemini := &fakeGemini{
		response: `{"score": 14, "feedback": "over-enthusiastic model", "better_answer": ""}`,
	}
	e := NewAnswerEvaluator(gemini, nil, 1)

	eval := e.Evaluate(context.Background(), "Q", "an answer", "")

	assert.Equal(t, 14.0, eval.Score)
}

func TestEvaluate_ResumeContextSearchedForDoc(t *testing.T) {
	gemini := &fakeGemini{
		response:  `{"score": 7, "feedback": "ok", "better_answer": "x"}`,
		embedding: []float32{0.1, 0.2},
	}
	vectors := &fakeVectorStore{
		chunks: []ResumeChunk{{DocID: "doc-1", Text: "5 years of Go", Score: 0.9}},
	}
	e := NewAnswerEvaluator(gemini, vectors, 1)

	eval := e.Evaluate(context.Background(), "Q", "an answer", "doc-1")

	assert.Equal(t, 7.0, eval.Score)
	assert.Equal(t, "doc-1", vectors.lastDocID)
}

func TestEvaluate_RetrievalFailureIsNonFatal(t *testing.T) {
	gemini := &fakeGemini{
		response:  `{"score": 7, "feedback": "ok", "better_answer": "x"}`,
		embedding: []float32{0.1},
	}
	vectors := &fakeVectorStore{searchErr: errors.New("qdrant down")}
	e := NewAnswerEvaluator(gemini, vectors, 1)

	eval := e.Evaluate(context.Background(), "Q", "an answer", "doc-1")

	assert.Equal(t, 7.0, eval.Score, "evaluation proceeds without resume context")
}
