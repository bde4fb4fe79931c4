package models

import (
	"time"

	"github.com/google/uuid"
)

// InterviewRecord is the archive row written when a completed interview's
// report is rendered. Sessions themselves are never persisted; this is the
// durable artifact that outlives them.
type InterviewRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateName string    `gorm:"type:text" json:"candidate_name"`
	Role          string    `gorm:"type:text" json:"role"`
	QuestionCount int       `gorm:"not null" json:"question_count"`
	FinalScore    float64   `gorm:"type:decimal(4,1)" json:"final_score"`
	Summary       string    `gorm:"type:text" json:"summary"`
	ReportSize    int64     `json:"report_size"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (InterviewRecord) TableName() string {
	return "interviews"
}
