package services

import (
	"context"
	"encoding/json"
	"log"
	"math"

	"github.com/Banoth-Rajesham/ai-interview-app/internal/models"
)

// Summarizer produces the final interview summary. The numeric final score
// is computed locally and survives every narrative failure.
type Summarizer interface {
	Summarize(ctx context.Context, evaluations []models.Evaluation) models.Summary
}

type summarizer struct {
	gemini     GeminiService
	prompts    *PromptBuilder
	maxRetries int
}

func NewSummarizer(gemini GeminiService, maxRetries int) Summarizer {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &summarizer{
		gemini:     gemini,
		prompts:    NewPromptBuilder(),
		maxRetries: maxRetries,
	}
}

type summaryPayload struct {
	Summary        string   `json:"summary"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	Recommendation string   `json:"recommendation"`
	OverallScore   float64  `json:"overall_score"`
}

// Summarize implements Summarizer.
func (s *summarizer) Summarize(ctx context.Context, evaluations []models.Evaluation) models.Summary {
	result := models.Summary{
		FinalScore: FinalScore(evaluations),
	}

	if len(evaluations) == 0 {
		result.Summary = "Could not generate a summary."
		return result
	}

	prompt := s.prompts.BuildSummaryPrompt(evaluations)
	response, err := s.gemini.GenerateJSONWithRetry(ctx, prompt, 0.6, s.maxRetries)
	if err != nil {
		log.Printf("⚠️ Summary generation failed: %v\n", err)
		result.Summary = "An error occurred while generating the final summary."
		return result
	}

	var payload summaryPayload
	if err := json.Unmarshal([]byte(response), &payload); err != nil {
		if !DecodeFirstJSON(response, &payload) {
			log.Println("⚠️ Could not parse summary response")
			result.Summary = "An error occurred while generating the final summary."
			return result
		}
	}

	result.Summary = payload.Summary
	if result.Summary == "" {
		result.Summary = "Summary could not be generated."
	}
	result.Strengths = payload.Strengths
	result.Weaknesses = payload.Weaknesses
	result.Recommendation = payload.Recommendation
	result.OverallScore = payload.OverallScore
	return result
}

// FinalScore is the arithmetic mean of the evaluation scores rounded to one
// decimal place, or 0 when there are no evaluations.
func FinalScore(evaluations []models.Evaluation) float64 {
	if len(evaluations) == 0 {
		return 0
	}

	var total float64
	for _, e := range evaluations {
		total += e.Score
	}

	mean := total / float64(len(evaluations))
	return math.Round(mean*10) / 10
}
