package app

import "infra-checklist/internal/domain"

// OptionMarker toggles the selected state of option controls.
type OptionMarker interface {
	ClearSelection(questionID string)
	MarkSelected(control domain.Control)
}

// Ring is a circular indicator driven by its stroke dash offset.
type Ring interface {
	SetDashOffset(offset float64)
}

// ScoreRing is a ring that also takes a stroke color. RenderedWidth reports
// the laid-out width; zero means the element is not visible yet.
type ScoreRing interface {
	Ring
	RenderedWidth() float64
	SetStroke(color string)
}

// Bar is the horizontal progress fill.
type Bar interface {
	SetWidth(percent float64)
	SetComplete(complete bool)
}

// Text is any element whose text content is replaced.
type Text interface {
	SetText(text string)
}

// StatusLine shows the running status sentence and its style class.
type StatusLine interface {
	SetStatus(tier domain.StatusTier)
}

// Notifier surfaces blocking notices to the user.
type Notifier interface {
	Notify(message string)
}

// DialogHost presents the results dialog. ShowDialog returns nil when
// nothing could be shown.
type DialogHost interface {
	ShowDialog(result domain.Result) Dialog
}

// Dialog is a handle to a presented dialog.
type Dialog interface {
	Remove()
}

// Navigator moves around the page sections.
type Navigator interface {
	ScrollTo(sectionID string)
	// ToggleHidden flips the hidden state of a section and reports whether
	// it is visible afterwards.
	ToggleHidden(sectionID string) bool
}

// Display is the set of output handles bound once when a widget is created.
// Every field is optional; a nil handle skips that update only.
type Display struct {
	Options      OptionMarker
	ProgressRing Ring
	ProgressBar  Bar
	ProgressText Text
	Counter      Text
	ScoreValues  []Text
	ScoreRings   []ScoreRing
	ScoreTitle   Text
	Status       StatusLine
	Notices      Notifier
	Dialogs      DialogHost
	Navigator    Navigator
}

// Observer receives widget events, typically for metrics.
type Observer interface {
	AnswerRecorded(choice domain.Choice)
	SubmissionRejected(answered, total int)
	ResultCalculated(result domain.Result)
	SessionOpened()
	SessionClosed()
}

type noopObserver struct{}

func (noopObserver) AnswerRecorded(domain.Choice)   {}
func (noopObserver) SubmissionRejected(int, int)    {}
func (noopObserver) ResultCalculated(domain.Result) {}
func (noopObserver) SessionOpened()                 {}
func (noopObserver) SessionClosed()                 {}
