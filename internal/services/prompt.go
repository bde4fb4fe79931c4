package services

import (
	"fmt"
	"strings"

	"github.com/Banoth-Rajesham/ai-interview-app/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildQuestionPrompt creates the prompt for generating interview questions.
func (pb *PromptBuilder) BuildQuestionPrompt(role string, count int, resumeText string) string {
	var resumeSection string
	if resumeText != "" {
		resumeSection = fmt.Sprintf("\nCANDIDATE RESUME:\n%s\n\nTailor the questions to the candidate's background where relevant.\n", resumeText)
	}

	return fmt.Sprintf(`You are an expert HR interviewer. Generate %d diverse interview questions for a candidate applying for the role of '%s'.
The questions should cover a range of topics, including technical skills, behavioral aspects, problem-solving abilities, and cultural fit.
%s
Return the output as a clean JSON array of objects, where each object has a "text" key containing the question, and optionally "topic" and "difficulty" keys.

Example format:
[
    {"text": "What is your experience with Python and Django?", "topic": "technical", "difficulty": "medium"},
    {"text": "Describe a time you had a conflict with a team member and how you resolved it.", "topic": "behavioral", "difficulty": "easy"}
]`, count, role, resumeSection)
}

// BuildEvaluationPrompt creates the prompt for scoring a single answer.
func (pb *PromptBuilder) BuildEvaluationPrompt(question, answer, resumeContext string) string {
	var contextSection string
	if resumeContext != "" {
		contextSection = fmt.Sprintf("\nRELEVANT RESUME CONTEXT:\n%s\n", resumeContext)
	}

	return fmt.Sprintf(`As an expert interviewer, evaluate the following answer to an interview question.
Provide a constructive, encouraging, and brief feedback.
Also, provide a score from 0 to 10, where 0 is very poor and 10 is excellent.
Finally, provide an improved, concise version of the answer that would be considered ideal.
%s
Question: "%s"
Candidate's Answer: "%s"

Return your evaluation as a clean JSON object with three keys: "score", "feedback", and "better_answer".
Example format:
{
    "score": 8,
    "feedback": "This is a strong answer that clearly demonstrates your skills. You could make it even better by providing a more specific metric of your success.",
    "better_answer": "In my previous role, I led a project that increased user engagement by 15%% in one quarter by implementing a new recommendation algorithm."
}`, contextSection, question, answer)
}

// BuildSummaryPrompt creates the prompt for the final interview summary.
func (pb *PromptBuilder) BuildSummaryPrompt(evaluations []models.Evaluation) string {
	var transcript strings.Builder
	for i, e := range evaluations {
		transcript.WriteString(fmt.Sprintf("Question %d: %s\nAnswer: %s\nFeedback: %s (Score: %.0f)\n\n",
			i+1, e.Question, e.Answer, e.Feedback, e.Score))
	}

	return fmt.Sprintf(`Based on the following interview transcript and evaluations, provide a brief, overall summary of the candidate's performance.
Highlight key strengths and areas for improvement. Keep the tone professional and constructive.
Do not mention the final score in your summary text.

Transcript:
%s
Return a single JSON object with the keys "summary", "strengths" (list), "weaknesses" (list), "recommendation" and "overall_score".`,
		transcript.String())
}
