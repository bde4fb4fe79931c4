package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/Banoth-Rajesham/ai-interview-app/internal/models"
)

// QuestionService generates the question list for an interview. It never
// returns an empty list: any model failure falls back to the static list,
// and in the worst case to a single hardcoded default.
type QuestionService interface {
	Generate(ctx context.Context, role string, count int, resumeText string) []models.Question
}

type questionService struct {
	gemini     GeminiService
	prompts    *PromptBuilder
	fallback   []models.Question
	maxRetries int
}

func NewQuestionService(gemini GeminiService, fallback []models.Question, maxRetries int) QuestionService {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &questionService{
		gemini:     gemini,
		prompts:    NewPromptBuilder(),
		fallback:   fallback,
		maxRetries: maxRetries,
	}
}

// Generate implements QuestionService. The count argument only steers the
// prompt; the returned list is whatever length the model produced.
func (s *questionService) Generate(ctx context.Context, role string, count int, resumeText string) []models.Question {
	prompt := s.prompts.BuildQuestionPrompt(role, count, resumeText)

	response, err := s.gemini.GenerateJSONWithRetry(ctx, prompt, 0.7, s.maxRetries)
	if err != nil {
		log.Printf("⚠️ Question generation failed: %v. Falling back to static questions.\n", err)
		return s.staticQuestions()
	}

	questions := parseQuestionList(response)
	if len(questions) == 0 {
		log.Println("⚠️ Model returned unexpected question structure. Falling back to static questions.")
		return s.staticQuestions()
	}

	return questions
}

func (s *questionService) staticQuestions() []models.Question {
	if len(s.fallback) > 0 {
		out := make([]models.Question, len(s.fallback))
		copy(out, s.fallback)
		return out
	}
	return []models.Question{{Text: "Tell me about yourself."}}
}

// parseQuestionList accepts either a JSON array of question objects or an
// object containing exactly one list-valued field (models in JSON mode
// sometimes wrap the array in a keyed object).
func parseQuestionList(response string) []models.Question {
	// JSON mode yields a bare value; decode the whole response before
	// scanning for an embedded one, since the scanner's object-first order
	// would pick a question object out of a bare array.
	var value interface{}
	if err := json.Unmarshal([]byte(response), &value); err != nil {
		var ok bool
		value, ok = ExtractFirstJSON(response)
		if !ok {
			return nil
		}
	}

	switch v := value.(type) {
	case []interface{}:
		return questionsFromItems(v)
	case map[string]interface{}:
		var lists [][]interface{}
		for _, field := range v {
			if list, ok := field.([]interface{}); ok {
				lists = append(lists, list)
			}
		}
		if len(lists) == 1 {
			return questionsFromItems(lists[0])
		}
	}

	return nil
}

func questionsFromItems(items []interface{}) []models.Question {
	var questions []models.Question
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		text, _ := obj["text"].(string)
		if strings.TrimSpace(text) == "" {
			continue
		}

		q := models.Question{Text: text}
		if topic, ok := obj["topic"].(string); ok {
			q.Topic = topic
		}
		if difficulty, ok := obj["difficulty"].(string); ok {
			q.Difficulty = difficulty
		}
		questions = append(questions, q)
	}
	return questions
}
