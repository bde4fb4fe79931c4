package handlers

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Banoth-Rajesham/ai-interview-app/internal/models"
	"github.com/Banoth-Rajesham/ai-interview-app/internal/services"
)

type InterviewHandler struct {
	manager        services.SessionManager
	storageService services.StorageService
}

func NewInterviewHandler(manager services.SessionManager, storageService services.StorageService) *InterviewHandler {
	return &InterviewHandler{
		manager:        manager,
		storageService: storageService,
	}
}

// HandleStart handles POST /interviews.
func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	var req models.StartInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	session, firstAudio, err := h.manager.Start(
		c.Context(),
		strings.TrimSpace(req.CandidateName),
		strings.TrimSpace(req.Role),
		req.NumQuestions,
		req.ResumeID,
	)
	if err != nil {
		return respondError(c, err)
	}

	first := session.Questions[0]
	return c.Status(fiber.StatusCreated).JSON(models.StartInterviewResponse{
		SessionID: session.ID.String(),
		State:     string(session.State),
		Question: models.QuestionPayload{
			Index:    0,
			Total:    len(session.Questions),
			Text:     first.Text,
			AudioURL: audioURL(firstAudio),
			Progress: session.Progress(),
		},
	})
}

// HandleAnswer handles POST /interviews/:id/answers. The answer is typed
// text (JSON body) or a recorded audio file (multipart field "audio"). The
// response carries the whole turn outcome; intermediate stages are visible
// through HandleStatus while the turn runs.
func (h *InterviewHandler) HandleAnswer(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	payload, err := h.parseAnswerPayload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// Turns have no cancellation semantics: once submitted, they run to
	// completion even if the client goes away.
	events, err := h.manager.SubmitAnswer(context.Background(), sessionID, payload)
	if err != nil {
		return respondError(c, err)
	}

	response := models.TurnResponse{SessionID: sessionID.String()}
	for event := range events {
		switch event.Stage {
		case models.StageResponding:
			response.Evaluation = event.Evaluation
			response.TransitionAudioURL = audioURL(event.AudioPath)
		case models.StageReady:
			if event.Question != nil {
				q := *event.Question
				q.AudioURL = audioURL(event.AudioPath)
				response.NextQuestion = &q
			}
		case models.StageFinished:
			response.Evaluation = event.Evaluation
			response.Summary = event.Summary
		}
	}

	if response.Summary != nil {
		response.State = string(models.StateComplete)
	} else {
		response.State = string(models.StateInProgress)
	}

	return c.JSON(response)
}

// HandleStatus handles GET /interviews/:id.
func (h *InterviewHandler) HandleStatus(c *fiber.Ctx) error {
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

	response := models.SessionStatusResponse{
		SessionID:      session.ID.String(),
		CandidateName:  session.CandidateName,
		Role:           session.Role,
		State:          string(session.State),
		Stage:          string(session.Stage),
		CurrentIndex:   session.CurrentIndex,
		TotalQuestions: len(session.Questions),
		Summary:        session.Summary,
	}

	if question, ok := session.CurrentQuestion(); ok {
		response.CurrentQuestion = &models.QuestionPayload{
			Index:    session.CurrentIndex,
			Total:    len(session.Questions),
			Text:     question.Text,
			Progress: session.Progress(),
		}
	}

	return c.JSON(response)
}

func (h *InterviewHandler) parseAnswerPayload(c *fiber.Ctx) (services.AnswerPayload, error) {
	var payload services.AnswerPayload

	if form, err := c.MultipartForm(); err == nil && form != nil {
		if texts := form.Value["text"]; len(texts) > 0 {
			payload.Text = strings.TrimSpace(texts[0])
		}
		if audioFiles := form.File["audio"]; len(audioFiles) > 0 {
			_, audioPath, err := h.storageService.SaveFile(audioFiles[0], "answer")
			if err != nil {
				return payload, err
			}
			payload.AudioPath = audioPath
		}
		return payload, nil
	}

	var req models.AnswerRequest
	if err := c.BodyParser(&req); err == nil {
		payload.Text = strings.TrimSpace(req.Text)
	}
	return payload, nil
}

func audioURL(audioPath string) string {
	if audioPath == "" {
		return ""
	}
	return "/api/v1/audio/" + filepath.Base(audioPath)
}

// respondError maps service errors onto the API's status codes.
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationErr.Msg,
		})
	}

	var generationErr *services.GenerationError
	if errors.As(err, &generationErr) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": generationErr.Msg,
		})
	}

	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	case errors.Is(err, services.ErrInterviewNotActive),
		errors.Is(err, services.ErrInterviewNotDone),
		errors.Is(err, services.ErrTurnInProgress):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
