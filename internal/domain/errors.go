package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound is returned when no widget is registered for a session.
	ErrSessionNotFound = errors.New("checklist session not found")
	// ErrChecklistNotFound indicates the checklist content could not be loaded.
	ErrChecklistNotFound = errors.New("checklist not found")
	// ErrUnknownQuestion indicates a control refers to a question outside the universe.
	ErrUnknownQuestion = errors.New("question not found")
	// ErrInvalidChoice indicates a control value other than sim/nao.
	ErrInvalidChoice = errors.New("invalid option value")
	// ErrIncomplete is matched by IncompleteError.
	ErrIncomplete = errors.New("checklist incomplete")
)

// IncompleteError is returned when results are requested before every
// question has an answer.
type IncompleteError struct {
	Answered int
	Total    int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("checklist incomplete: %d of %d answered", e.Answered, e.Total)
}

func (e *IncompleteError) Is(target error) bool {
	return target == ErrIncomplete
}

// Notice is the user-facing message shown for the rejected submission.
func (e *IncompleteError) Notice() string {
	return fmt.Sprintf("Por favor, responda todas as perguntas. Você respondeu %d de %d.", e.Answered, e.Total)
}
