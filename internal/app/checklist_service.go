package app

import (
	"context"

	"infra-checklist/internal/domain"
	"go.uber.org/zap"
)

// SessionRepository abstracts where live widgets are kept (in-memory, Redis-marked, etc).
// Swap and DeleteIf check and mutate atomically.
type SessionRepository interface {
	Get(sessionID string) (*Widget, bool)
	// Swap registers widget and returns the one it replaced, if any.
	Swap(sessionID string, widget *Widget) (prev *Widget, replaced bool)
	// DeleteIf removes the session only while widget is the registered one.
	DeleteIf(sessionID string, widget *Widget) bool
}

// sessionToucher is implemented by stores that track session liveness.
type sessionToucher interface {
	Touch(ctx context.Context, sessionID string) error
}

// ChecklistRepository loads checklist definitions (from cache/backing store).
type ChecklistRepository interface {
	GetChecklist(ctx context.Context, checklistID string) (domain.Checklist, error)
}

// ChecklistService contains the checklist use cases shared by every transport.
type ChecklistService struct {
	sessions   SessionRepository
	checklists ChecklistRepository
	logger     *zap.Logger
	observer   Observer
}

func NewChecklistService(store SessionRepository, checklists ChecklistRepository, logger *zap.Logger, observer Observer) *ChecklistService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if observer == nil {
		observer = noopObserver{}
	}
	return &ChecklistService{
		sessions:   store,
		checklists: checklists,
		logger:     logger,
		observer:   observer,
	}
}

// Checklist returns the definition a page is rendered from.
func (s *ChecklistService) Checklist(ctx context.Context, checklistID string) (domain.Checklist, error) {
	return s.checklists.GetChecklist(ctx, checklistID)
}

// Open creates a widget for the checklist bound to display and registers it
// under sessionID, replacing any widget already there.
func (s *ChecklistService) Open(ctx context.Context, checklistID, sessionID string, display Display) (*Widget, error) {
	checklist, err := s.checklists.GetChecklist(ctx, checklistID)
	if err != nil {
		return nil, err
	}

	widget := NewWidget(checklist.Controls(), display,
		WithLogger(s.logger.With(zap.String("checklist", checklistID), zap.String("session", sessionID))),
		WithObserver(s.observer),
	)
	if _, replaced := s.sessions.Swap(sessionID, widget); replaced {
		s.observer.SessionClosed()
	}
	s.observer.SessionOpened()
	return widget, nil
}

// Widget looks up a live widget.
func (s *ChecklistService) Widget(sessionID string) (*Widget, error) {
	widget, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return widget, nil
}

// Touch marks the session active in stores that track liveness.
func (s *ChecklistService) Touch(ctx context.Context, sessionID string) {
	t, ok := s.sessions.(sessionToucher)
	if !ok {
		return
	}
	if err := t.Touch(ctx, sessionID); err != nil {
		s.logger.Debug("session touch failed", zap.String("session", sessionID), zap.Error(err))
	}
}

// Close drops the session if widget is still the one registered under it.
// Answers are never kept past this point.
func (s *ChecklistService) Close(sessionID string, widget *Widget) {
	if s.sessions.DeleteIf(sessionID, widget) {
		s.observer.SessionClosed()
	}
}
