package app

import (
	"strconv"

	"infra-checklist/internal/domain"
	"go.uber.org/zap"
)

const (
	assessmentSectionID = "assessmentSection"
	howItWorksSectionID = "howItWorks"
	scoreTitleText      = "Sua pontuação"
)

// Widget is one questionnaire instance: the question universe, the answer
// set and the display handles bound at creation. A widget is driven by one
// event source at a time and is not safe for concurrent use.
type Widget struct {
	universe map[string]struct{}
	controls map[domain.Control]struct{}
	answers  domain.AnswerSet
	display  Display
	dialog   Dialog

	logger   *zap.Logger
	observer Observer
}

// WidgetOption customizes a widget.
type WidgetOption func(*Widget)

// WithLogger sets the logger used for skipped display updates.
func WithLogger(logger *zap.Logger) WidgetOption {
	return func(w *Widget) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithObserver registers an observer for answer and result events.
func WithObserver(observer Observer) WidgetOption {
	return func(w *Widget) {
		if observer != nil {
			w.observer = observer
		}
	}
}

// NewWidget binds the rendered controls and display handles, then renders
// the initial state.
func NewWidget(controls []domain.Control, display Display, opts ...WidgetOption) *Widget {
	w := &Widget{
		universe: make(map[string]struct{}),
		controls: make(map[domain.Control]struct{}, len(controls)),
		answers:  make(domain.AnswerSet),
		display:  display,
		logger:   zap.NewNop(),
		observer: noopObserver{},
	}
	for _, opt := range opts {
		opt(w)
	}
	for _, c := range controls {
		w.universe[c.QuestionID] = struct{}{}
		w.controls[c] = struct{}{}
	}
	w.renderProgress()
	w.renderScore()
	return w
}

// Click records the option a user selected. Selecting the opposite option
// overwrites the earlier answer; selecting the same one again is a no-op
// apart from re-rendering.
func (w *Widget) Click(control domain.Control) error {
	if _, ok := w.controls[control]; !ok {
		if _, known := w.universe[control.QuestionID]; !known {
			return domain.ErrUnknownQuestion
		}
		return domain.ErrInvalidChoice
	}

	if w.display.Options != nil {
		w.display.Options.ClearSelection(control.QuestionID)
		w.display.Options.MarkSelected(control)
	}

	w.answers[control.QuestionID] = control.Value.Contribution()
	w.observer.AnswerRecorded(control.Value)

	w.renderProgress()
	w.renderScore()
	return nil
}

// Progress is the current completion snapshot.
func (w *Widget) Progress() domain.Progress {
	return domain.NewProgress(len(w.answers), len(w.universe))
}

// RunningScore is the rounded mean over answered questions.
func (w *Widget) RunningScore() (int, bool) {
	return w.answers.Mean()
}

// Answers returns a copy of the recorded answers.
func (w *Widget) Answers() domain.AnswerSet {
	return w.answers.Clone()
}

// CalculateResults scores the whole checklist and opens the results dialog.
// It fails with *domain.IncompleteError while any question is unanswered.
func (w *Widget) CalculateResults() (domain.Result, error) {
	answered, total := len(w.answers), len(w.universe)
	if answered < total {
		incomplete := &domain.IncompleteError{Answered: answered, Total: total}
		if w.display.Notices != nil {
			w.display.Notices.Notify(incomplete.Notice())
		}
		w.observer.SubmissionRejected(answered, total)
		return domain.Result{}, incomplete
	}

	score := domain.RoundDiv(w.answers.Sum(), total)
	result := domain.Result{
		Score:    score,
		Answered: answered,
		Total:    total,
		Band:     domain.ClassifyResult(score),
	}
	w.observer.ResultCalculated(result)
	w.openDialog(result)
	return result, nil
}

// DialogOpen reports whether a results dialog is shown.
func (w *Widget) DialogOpen() bool {
	return w.dialog != nil
}

// CloseDialog removes the results dialog if one is open.
func (w *Widget) CloseDialog() {
	if w.dialog == nil {
		return
	}
	w.dialog.Remove()
	w.dialog = nil
}

// ScrollToAssessment brings the questions into view.
func (w *Widget) ScrollToAssessment() {
	if w.display.Navigator != nil {
		w.display.Navigator.ScrollTo(assessmentSectionID)
	}
}

// ToggleHowItWorks shows or hides the explanation panel, scrolling to it
// when it becomes visible.
func (w *Widget) ToggleHowItWorks() {
	if w.display.Navigator == nil {
		return
	}
	if w.display.Navigator.ToggleHidden(howItWorksSectionID) {
		w.display.Navigator.ScrollTo(howItWorksSectionID)
	}
}

func (w *Widget) openDialog(result domain.Result) {
	if w.display.Dialogs == nil {
		w.logger.Warn("no dialog host bound, result not shown", zap.Int("score", result.Score))
		return
	}
	w.CloseDialog()
	w.dialog = w.display.Dialogs.ShowDialog(result)
}

func (w *Widget) renderProgress() {
	p := w.Progress()
	d := w.display

	if d.ProgressRing != nil {
		d.ProgressRing.SetDashOffset(domain.DashOffset(domain.ProgressRingCircumference, p.Percent))
	}
	if d.ProgressBar != nil {
		d.ProgressBar.SetWidth(p.Percent)
		d.ProgressBar.SetComplete(p.Complete())
	}
	if d.ProgressText != nil {
		d.ProgressText.SetText(p.PercentText())
	}
	if d.Counter != nil {
		d.Counter.SetText(p.CounterText())
	}
}

func (w *Widget) renderScore() {
	score, ok := w.answers.Mean()
	if !ok {
		return
	}
	d := w.display

	text := strconv.Itoa(score)
	for _, el := range d.ScoreValues {
		if el != nil {
			el.SetText(text)
		}
	}

	color := domain.ScoreColor(score)
	offset := domain.DashOffset(domain.ScoreRingCircumference, float64(score))
	for i, ring := range d.ScoreRings {
		if ring == nil {
			continue
		}
		if ring.RenderedWidth() <= 0 {
			w.logger.Warn("score ring not laid out yet, skipping", zap.Int("ring", i))
			continue
		}
		ring.SetDashOffset(offset)
		ring.SetStroke(color)
	}

	if d.ScoreTitle != nil {
		d.ScoreTitle.SetText(scoreTitleText)
	}
	if d.Status != nil {
		d.Status.SetStatus(domain.ClassifyStatus(score))
	}
}
