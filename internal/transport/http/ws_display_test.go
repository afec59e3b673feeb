package http

import (
	"errors"
	"testing"

	"infra-checklist/internal/app"
	"infra-checklist/internal/domain"
	"go.uber.org/zap"
)

type failingRenderer struct{}

func (failingRenderer) DialogHTML(domain.Result) (string, error) {
	return "", errors.New("template broken")
}

func TestDialogRenderFailureLeavesNoDialog(t *testing.T) {
	display := newWSDisplay(failingRenderer{}, zap.NewNop())
	controls := []domain.Control{
		{QuestionID: "q1", Value: domain.ChoiceYes},
		{QuestionID: "q1", Value: domain.ChoiceNo},
	}
	widget := app.NewWidget(controls, display.bind(1))
	if err := widget.Click(controls[0]); err != nil {
		t.Fatalf("click: %v", err)
	}
	display.flush()

	if _, err := widget.CalculateResults(); err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if widget.DialogOpen() {
		t.Fatalf("expected no dialog tracked when rendering failed")
	}
	ops, _ := display.flush()
	if findOp(ops, "dialogOpen", "") != nil {
		t.Fatalf("expected nothing sent, got %+v", ops)
	}

	widget.CloseDialog()
	ops, _ = display.flush()
	if len(ops) != 0 {
		t.Fatalf("expected close to be a no-op, got %+v", ops)
	}
}
