package http

import (
	"strconv"

	"infra-checklist/internal/app"
	"infra-checklist/internal/domain"
	"infra-checklist/internal/view"
	"go.uber.org/zap"
)

const (
	progressRingSelector = ".progress-ring-circle"
	progressFillSelector = "#progressFill"
	progressTextSelector = ".progress-text"
	counterSelector      = ".questions-count"
	scoreValueSelector   = "#scoreValue, .score-value"
	scoreRingSelector    = "#scoreCircle, .score-progress"
	scoreTitleSelector   = "#scoreTitle"
	statusSelector       = ".score-status"
)

// patchOp is one DOM mutation applied by the page script.
type patchOp struct {
	Op       string `json:"op"`
	Selector string `json:"selector,omitempty"`
	Index    *int   `json:"index,omitempty"`
	Question string `json:"question,omitempty"`
	Name     string `json:"name,omitempty"`
	Value    string `json:"value,omitempty"`
	On       bool   `json:"on"`
	ID       string `json:"id,omitempty"`
	Styles   string `json:"styles,omitempty"`
}

// layoutReport carries what only the browser knows: rendered sizes.
type layoutReport struct {
	ScoreRings []float64 `json:"scoreRings"`
}

type dialogRenderer interface {
	DialogHTML(result domain.Result) (string, error)
}

// wsDisplay implements every widget sink by queueing patch ops; the handler
// flushes them as one message per inbound event.
type wsDisplay struct {
	renderer dialogRenderer
	logger   *zap.Logger

	ops        []patchOp
	notices    []string
	ringWidths []float64
	hidden     map[string]bool
	dialogSeq  int
	stylesSent bool
}

func newWSDisplay(renderer dialogRenderer, logger *zap.Logger) *wsDisplay {
	d := &wsDisplay{
		renderer: renderer,
		logger:   logger,
		hidden:   make(map[string]bool),
	}
	// the page ships with the explanation panel collapsed
	d.hidden["howItWorks"] = true
	return d
}

// bind returns the display handles for a page with the given number of score rings.
func (d *wsDisplay) bind(rings int) app.Display {
	scoreRings := make([]app.ScoreRing, 0, rings)
	for i := 0; i < rings; i++ {
		scoreRings = append(scoreRings, &wsScoreRing{d: d, index: i})
	}
	return app.Display{
		Options:      d,
		ProgressRing: wsRing{d: d, selector: progressRingSelector},
		ProgressBar:  wsBar{d: d},
		ProgressText: wsText{d: d, selector: progressTextSelector},
		Counter:      wsText{d: d, selector: counterSelector},
		ScoreValues:  []app.Text{wsText{d: d, selector: scoreValueSelector}},
		ScoreRings:   scoreRings,
		ScoreTitle:   wsText{d: d, selector: scoreTitleSelector},
		Status:       d,
		Notices:      d,
		Dialogs:      d,
		Navigator:    d,
	}
}

func (d *wsDisplay) setLayout(l *layoutReport) {
	if l == nil {
		return
	}
	d.ringWidths = l.ScoreRings
}

func (d *wsDisplay) push(op patchOp) {
	d.ops = append(d.ops, op)
}

// flush hands over everything queued since the last flush.
func (d *wsDisplay) flush() ([]patchOp, []string) {
	ops, notices := d.ops, d.notices
	d.ops, d.notices = nil, nil
	return ops, notices
}

func (d *wsDisplay) ClearSelection(questionID string) {
	d.push(patchOp{Op: "clearSelection", Question: questionID})
}

func (d *wsDisplay) MarkSelected(control domain.Control) {
	d.push(patchOp{Op: "select", Question: control.QuestionID, Value: string(control.Value)})
}

func (d *wsDisplay) SetStatus(tier domain.StatusTier) {
	d.push(patchOp{Op: "text", Selector: statusSelector, Value: tier.Text})
	d.push(patchOp{Op: "className", Selector: statusSelector, Value: "score-status " + tier.Class})
}

func (d *wsDisplay) Notify(message string) {
	d.notices = append(d.notices, message)
}

func (d *wsDisplay) ShowDialog(result domain.Result) app.Dialog {
	markup, err := d.renderer.DialogHTML(result)
	if err != nil {
		d.logger.Error("render results dialog", zap.Error(err))
		return nil
	}
	d.dialogSeq++
	id := "results-" + strconv.Itoa(d.dialogSeq)
	op := patchOp{Op: "dialogOpen", ID: id, Value: markup}
	if !d.stylesSent {
		op.Styles = view.DialogStyles
		d.stylesSent = true
	}
	d.push(op)
	return wsDialog{d: d, id: id}
}

func (d *wsDisplay) ScrollTo(sectionID string) {
	d.push(patchOp{Op: "scroll", Selector: "#" + sectionID})
}

func (d *wsDisplay) ToggleHidden(sectionID string) bool {
	hidden := !d.hidden[sectionID]
	d.hidden[sectionID] = hidden
	d.push(patchOp{Op: "classToggle", Selector: "#" + sectionID, Name: "hidden", On: hidden})
	return !hidden
}

// syncHidden adopts the hidden state the page reported.
func (d *wsDisplay) syncHidden(sectionID string, hidden bool) {
	d.hidden[sectionID] = hidden
}

type wsDialog struct {
	d  *wsDisplay
	id string
}

func (w wsDialog) Remove() {
	w.d.push(patchOp{Op: "dialogClose", ID: w.id})
}

type wsText struct {
	d        *wsDisplay
	selector string
}

func (t wsText) SetText(text string) {
	t.d.push(patchOp{Op: "text", Selector: t.selector, Value: text})
}

type wsRing struct {
	d        *wsDisplay
	selector string
}

func (r wsRing) SetDashOffset(offset float64) {
	r.d.push(patchOp{Op: "style", Selector: r.selector, Name: "strokeDashoffset", Value: formatFloat(offset)})
}

type wsScoreRing struct {
	d     *wsDisplay
	index int
}

func (r *wsScoreRing) SetDashOffset(offset float64) {
	r.d.push(patchOp{Op: "style", Selector: scoreRingSelector, Index: &r.index, Name: "strokeDashoffset", Value: formatFloat(offset)})
}

func (r *wsScoreRing) SetStroke(color string) {
	r.d.push(patchOp{Op: "style", Selector: scoreRingSelector, Index: &r.index, Name: "stroke", Value: color})
}

func (r *wsScoreRing) RenderedWidth() float64 {
	if r.index >= len(r.d.ringWidths) {
		return 0
	}
	return r.d.ringWidths[r.index]
}

type wsBar struct {
	d *wsDisplay
}

func (b wsBar) SetWidth(percent float64) {
	b.d.push(patchOp{Op: "style", Selector: progressFillSelector, Name: "width", Value: formatFloat(percent) + "%"})
}

func (b wsBar) SetComplete(complete bool) {
	b.d.push(patchOp{Op: "classToggle", Selector: progressFillSelector, Name: "progress-complete", On: complete})
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
