package services

import "errors"

// ValidationError reports missing or invalid user input. It is the only
// error class that blocks a request without any state change; the user is
// expected to correct the input and retry.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// GenerationError reports that no usable interview questions could be
// produced, even from the static fallback.
type GenerationError struct {
	Msg string
}

func (e *GenerationError) Error() string { return e.Msg }

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrInterviewNotActive = errors.New("interview is not in progress")
	ErrInterviewNotDone   = errors.New("interview is not complete")
	ErrTurnInProgress     = errors.New("an answer is already being processed")
)
