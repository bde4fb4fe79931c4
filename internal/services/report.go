package services

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/Banoth-Rajesham/ai-interview-app/internal/models"
)

// ReportService renders the final interview report as a PDF document.
type ReportService interface {
	Render(candidateName, role string, summary models.Summary, questions []models.Question, evaluations []models.Evaluation) ([]byte, error)
}

type reportService struct{}

func NewReportService() ReportService {
	return &reportService{}
}

// Render implements ReportService.
func (r *reportService) Render(candidateName, role string, summary models.Summary, questions []models.Question, evaluations []models.Evaluation) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, "AI Interview Report", "", 1, "C", false, 0, "")
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Candidate: %s", candidateName), "", 1, "", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 10, fmt.Sprintf("Role: %s", role), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("Overall Score: %.1f/10", summary.FinalScore), "", 1, "", false, 0, "")

	recommendation := summary.Recommendation
	if recommendation == "" {
		recommendation = "N/A"
	}
	pdf.CellFormat(0, 10, fmt.Sprintf("Recommendation: %s", recommendation), "", 1, "", false, 0, "")

	if summary.Summary != "" {
		pdf.Ln(5)
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, "Summary:", "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.MultiCell(0, 8, summary.Summary, "", "", false)
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Detailed Q&A:", "", 1, "", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	for i, e := range evaluations {
		questionText := e.Question
		if i < len(questions) {
			questionText = questions[i].Text
		}
		pdf.MultiCell(0, 8, fmt.Sprintf("Q%d: %s", i+1, questionText), "", "", false)
		pdf.MultiCell(0, 8, fmt.Sprintf("Answer: %s", e.Answer), "", "", false)
		pdf.MultiCell(0, 8, fmt.Sprintf("Feedback: %s (Score: %.0f/10)", e.Feedback, e.Score), "", "", false)
		pdf.Ln(5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	return buf.Bytes(), nil
}
