package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Banoth-Rajesham/ai-interview-app/internal/models"
)

type InterviewRepository interface {
	Create(record *models.InterviewRecord) error
	FindByID(id uuid.UUID) (*models.InterviewRecord, error)
	FindRecent(limit int) ([]models.InterviewRecord, error)
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(record *models.InterviewRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create interview record: %w", err)
	}
	return nil
}

func (r *interviewRepository) FindByID(id uuid.UUID) (*models.InterviewRecord, error) {
	var record models.InterviewRecord
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("interview record not found")
		}
		return nil, fmt.Errorf("failed to find interview record: %w", err)
	}
	return &record, nil
}

func (r *interviewRepository) FindRecent(limit int) ([]models.InterviewRecord, error) {
	var records []models.InterviewRecord
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list interview records: %w", err)
	}

	return records, nil
}
