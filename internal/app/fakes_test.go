package app_test

import (
	"fmt"
	"testing"

	"infra-checklist/internal/app"
	"infra-checklist/internal/domain"
)

type fakeText struct {
	text  string
	calls int
}

func (f *fakeText) SetText(text string) {
	f.text = text
	f.calls++
}

type fakeRing struct {
	width  float64
	offset float64
	stroke string
	calls  int
}

func (f *fakeRing) SetDashOffset(offset float64) {
	f.offset = offset
	f.calls++
}

func (f *fakeRing) RenderedWidth() float64 { return f.width }

func (f *fakeRing) SetStroke(color string) {
	f.stroke = color
	f.calls++
}

type fakeBar struct {
	width    float64
	complete bool
}

func (f *fakeBar) SetWidth(percent float64)  { f.width = percent }
func (f *fakeBar) SetComplete(complete bool) { f.complete = complete }

type fakeStatus struct {
	tier  domain.StatusTier
	calls int
}

func (f *fakeStatus) SetStatus(tier domain.StatusTier) {
	f.tier = tier
	f.calls++
}

type fakeOptions struct {
	selected map[string]domain.Choice
	cleared  map[string]int
}

func (f *fakeOptions) ClearSelection(questionID string) {
	delete(f.selected, questionID)
	f.cleared[questionID]++
}

func (f *fakeOptions) MarkSelected(control domain.Control) {
	f.selected[control.QuestionID] = control.Value
}

type fakeNotices struct {
	last string
}

func (f *fakeNotices) Notify(message string) { f.last = message }

type fakeDialogs struct {
	shown   int
	open    int
	removed int
	last    domain.Result
}

func (f *fakeDialogs) ShowDialog(result domain.Result) app.Dialog {
	f.shown++
	f.open++
	f.last = result
	return &fakeDialog{host: f}
}

type fakeDialog struct {
	host *fakeDialogs
}

func (d *fakeDialog) Remove() {
	d.host.open--
	d.host.removed++
}

type fakeNav struct {
	scrolled []string
	hidden   map[string]bool
}

func (f *fakeNav) ScrollTo(sectionID string) {
	f.scrolled = append(f.scrolled, sectionID)
}

func (f *fakeNav) ToggleHidden(sectionID string) bool {
	f.hidden[sectionID] = !f.hidden[sectionID]
	return !f.hidden[sectionID]
}

type fakeDisplay struct {
	options      *fakeOptions
	progressRing *fakeRing
	bar          *fakeBar
	progressText *fakeText
	counter      *fakeText
	scoreValue   *fakeText
	scoreRing    *fakeRing
	scoreTitle   *fakeText
	status       *fakeStatus
	notices      *fakeNotices
	dialogs      *fakeDialogs
	nav          *fakeNav
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{
		options:      &fakeOptions{selected: map[string]domain.Choice{}, cleared: map[string]int{}},
		progressRing: &fakeRing{},
		bar:          &fakeBar{},
		progressText: &fakeText{},
		counter:      &fakeText{},
		scoreValue:   &fakeText{},
		scoreRing:    &fakeRing{width: 200},
		scoreTitle:   &fakeText{},
		status:       &fakeStatus{},
		notices:      &fakeNotices{},
		dialogs:      &fakeDialogs{},
		nav:          &fakeNav{hidden: map[string]bool{"howItWorks": true}},
	}
}

func (f *fakeDisplay) display() app.Display {
	return app.Display{
		Options:      f.options,
		ProgressRing: f.progressRing,
		ProgressBar:  f.bar,
		ProgressText: f.progressText,
		Counter:      f.counter,
		ScoreValues:  []app.Text{f.scoreValue},
		ScoreRings:   []app.ScoreRing{f.scoreRing},
		ScoreTitle:   f.scoreTitle,
		Status:       f.status,
		Notices:      f.notices,
		Dialogs:      f.dialogs,
		Navigator:    f.nav,
	}
}

type countingObserver struct {
	answers  int
	rejected int
	results  int
	opened   int
	closed   int
}

func (o *countingObserver) AnswerRecorded(domain.Choice)   { o.answers++ }
func (o *countingObserver) SubmissionRejected(int, int)    { o.rejected++ }
func (o *countingObserver) ResultCalculated(domain.Result) { o.results++ }
func (o *countingObserver) SessionOpened()                 { o.opened++ }
func (o *countingObserver) SessionClosed()                 { o.closed++ }

func newTestWidget(questions int) (*app.Widget, *fakeDisplay) {
	fake := newFakeDisplay()
	return app.NewWidget(controlsFor(questions), fake.display()), fake
}

func controlsFor(questions int) []domain.Control {
	controls := make([]domain.Control, 0, questions*2)
	for i := 1; i <= questions; i++ {
		controls = append(controls, yes(qid(i)), no(qid(i)))
	}
	return controls
}

func qid(i int) string { return fmt.Sprintf("q%d", i) }

func yes(id string) domain.Control { return domain.Control{QuestionID: id, Value: domain.ChoiceYes} }
func no(id string) domain.Control  { return domain.Control{QuestionID: id, Value: domain.ChoiceNo} }

func mustClick(t *testing.T, w *app.Widget, c domain.Control) {
	t.Helper()
	if err := w.Click(c); err != nil {
		t.Fatalf("click %+v: %v", c, err)
	}
}
