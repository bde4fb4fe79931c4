package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Banoth-Rajesham/ai-interview-app/internal/models"
	"github.com/Banoth-Rajesham/ai-interview-app/internal/repositories"
	"github.com/Banoth-Rajesham/ai-interview-app/internal/services"
)

type ReportHandler struct {
	manager       services.SessionManager
	reportService services.ReportService
	interviewRepo repositories.InterviewRepository
}

func NewReportHandler(
	manager services.SessionManager,
	reportService services.ReportService,
	interviewRepo repositories.InterviewRepository,
) *ReportHandler {
	return &ReportHandler{
		manager:       manager,
		reportService: reportService,
		interviewRepo: interviewRepo,
	}
}

// HandleGetReport handles GET /interviews/:id/report. The PDF is only
// available once the interview is complete; the first successful render
// also writes the archive row.
func (h *ReportHandler) HandleGetReport(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	session, err := h.manager.Get(sessionID)
	if err != nil {
		return respondError(c, err)
	}

	if session.State != models.StateComplete || session.Summary == nil {
		return respondError(c, services.ErrInterviewNotDone)
	}

	report, err := h.reportService.Render(
		session.CandidateName,
		session.Role,
		*session.Summary,
		session.Questions,
		session.Evaluations,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to render report: %v", err),
		})
	}

	if h.manager.MarkReported(sessionID) {
		record := &models.InterviewRecord{
			ID:            session.ID,
			CandidateName: session.CandidateName,
			Role:          session.Role,
			QuestionCount: len(session.Questions),
			FinalScore:    session.Summary.FinalScore,
			Summary:       session.Summary.Summary,
			ReportSize:    int64(len(report)),
		}
		if err := h.interviewRepo.Create(record); err != nil {
			// Archive failure should not block the download.
			log.Printf("⚠️ Failed to archive interview %s: %v\n", session.ID, err)
		}
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="interview_report_%s.pdf"`, session.ID))
	return c.Send(report)
}

// HandleListReports handles GET /reports.
func (h *ReportHandler) HandleListReports(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	records, err := h.interviewRepo.FindRecent(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list interview reports",
		})
	}

	return c.JSON(fiber.Map{
		"reports": records,
	})
}
