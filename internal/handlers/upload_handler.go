package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Banoth-Rajesham/ai-interview-app/internal/models"
	"github.com/Banoth-Rajesham/ai-interview-app/internal/repositories"
	"github.com/Banoth-Rajesham/ai-interview-app/internal/services"
)

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	resumeParser   services.ResumeParser
	worker         services.IngestionWorker
	vectorStore    services.VectorStore
	maxFileSize    int64
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	resumeParser services.ResumeParser,
	worker services.IngestionWorker,
	vectorStore services.VectorStore,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		resumeParser:   resumeParser,
		worker:         worker,
		vectorStore:    vectorStore,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /resumes. The resume is stored, its text is
// extracted immediately, and vector ingestion runs in the background.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resume file uploaded. Send a 'resume' field with a PDF or TXT file.",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(file, "resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume file: %v", err),
		})
	}

	// Extraction failure is not fatal: the interview just runs without
	// resume context.
	extractedText := h.resumeParser.ExtractText(filePath)

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		FileType:         "resume",
		FilePath:         filePath,
		ExtractedText:    extractedText,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume record: %v", err),
		})
	}

	if extractedText != "" {
		h.worker.EnqueueResume(doc.ID)
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		ID:           doc.ID.String(),
		Filename:     doc.Filename,
		OriginalName: doc.OriginalFileName,
		FileType:     doc.FileType,
	})
}

// HandleDelete handles DELETE /resumes/:id. The stored file and the vector
// chunks are cleaned up best-effort; only the record delete can fail the
// request.
func (h *UploadHandler) HandleDelete(c *fiber.Ctx) error {
	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	doc, err := h.docRepo.FindByID(docID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resume not found",
		})
	}

	if err := h.vectorStore.DeleteResume(c.Context(), docID.String()); err != nil {
		log.Printf("⚠️ Failed to delete vector chunks for resume %s: %v\n", docID, err)
	}

	if err := h.storageService.DeleteFile(doc.Filename); err != nil {
		log.Printf("⚠️ Failed to delete resume file %s: %v\n", doc.Filename, err)
	}

	if err := h.docRepo.Delete(docID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to delete resume record: %v", err),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Resume deleted",
		"id":      docID.String(),
	})
}
