package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/Banoth-Rajesham/ai-interview-app/internal/models"
)

// AnswerEvaluator scores a single answer. Model failures never escape:
// every failure path yields a degraded zero-score evaluation so the
// interview always moves forward.
type AnswerEvaluator interface {
	Evaluate(ctx context.Context, question, answer, resumeDocID string) models.Evaluation
}

type answerEvaluator struct {
	gemini     GeminiService
	vectors    VectorStore
	prompts    *PromptBuilder
	maxRetries int
}

// NewAnswerEvaluator builds an evaluator. vectors may be nil, in which case
// resume context retrieval is skipped.
func NewAnswerEvaluator(gemini GeminiService, vectors VectorStore, maxRetries int) AnswerEvaluator {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &answerEvaluator{
		gemini:     gemini,
		vectors:    vectors,
		prompts:    NewPromptBuilder(),
		maxRetries: maxRetries,
	}
}

type evaluationPayload struct {
	Score        float64 `json:"score"`
	Feedback     string  `json:"feedback"`
	BetterAnswer string  `json:"better_answer"`
}

// Evaluate implements AnswerEvaluator.
func (e *answerEvaluator) Evaluate(ctx context.Context, question, answer, resumeDocID string) models.Evaluation {
	result := models.Evaluation{
		Question: question,
		Answer:   answer,
	}

	if strings.TrimSpace(answer) == "" {
		result.Feedback = "Evaluation could not be performed."
		result.BetterAnswer = "N/A"
		return result
	}

	resumeContext := e.retrieveResumeContext(ctx, question, resumeDocID)

	prompt := e.prompts.BuildEvaluationPrompt(question, answer, resumeContext)
	response, err := e.gemini.GenerateJSONWithRetry(ctx, prompt, 0.5, e.maxRetries)
	if err != nil {
		log.Printf("⚠️ Answer evaluation failed: %v\n", err)
		result.Feedback = "An error occurred during evaluation."
		result.BetterAnswer = "Could not be generated."
		return result
	}

	// JSON mode usually yields a bare object; fall back to scanning for an
	// embedded one when the strict decode fails.
	var payload evaluationPayload
	if err := json.Unmarshal([]byte(response), &payload); err != nil {
		if !DecodeFirstJSON(response, &payload) {
			log.Println("⚠️ Could not parse evaluation response")
			result.Feedback = "Evaluation failed."
			result.BetterAnswer = "Could not be generated."
			return result
		}
	}

	result.Score = payload.Score
	result.Feedback = payload.Feedback
	result.BetterAnswer = payload.BetterAnswer
	return result
}

// retrieveResumeContext pulls the resume chunks most relevant to the
// question from the vector store. Best-effort: any failure degrades to an
// empty context.
func (e *answerEvaluator) retrieveResumeContext(ctx context.Context, question, resumeDocID string) string {
	if e.vectors == nil || resumeDocID == "" {
		return ""
	}

	embedding, err := e.gemini.GenerateEmbedding(ctx, question)
	if err != nil {
		log.Printf("⚠️ Failed to embed question for resume retrieval: %v\n", err)
		return ""
	}

	results, err := e.vectors.SearchResumeContext(ctx, embedding, resumeDocID, 3)
	if err != nil {
		log.Printf("⚠️ Resume context search failed: %v\n", err)
		return ""
	}

	return FormatResumeContext(results)
}
