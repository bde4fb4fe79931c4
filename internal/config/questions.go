package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Banoth-Rajesham/ai-interview-app/internal/models"
)

type staticQuestionsFile struct {
	Questions []staticQuestion `yaml:"questions"`
}

type staticQuestion struct {
	Text       string `yaml:"text"`
	Topic      string `yaml:"topic"`
	Difficulty string `yaml:"difficulty"`
}

// LoadStaticQuestions reads the fallback question list used when the model
// cannot produce questions. A missing or broken file is not fatal; the
// generator keeps a hardcoded default.
func LoadStaticQuestions(path string) ([]models.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file staticQuestionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var questions []models.Question
	for i, q := range file.Questions {
		if q.Text == "" {
			return nil, fmt.Errorf("question %d has no text", i+1)
		}
		questions = append(questions, models.Question{
			Text:       q.Text,
			Topic:      q.Topic,
			Difficulty: q.Difficulty,
		})
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions defined in %s", path)
	}

	return questions, nil
}
