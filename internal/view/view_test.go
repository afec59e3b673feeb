package view

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"

	"infra-checklist/internal/domain"
)

func TestDialogHTMLFromResult(t *testing.T) {
	r, err := New("")
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	html, err := r.DialogHTML(domain.Result{Score: 85, Answered: 5, Total: 5, Band: domain.ClassifyResult(85)})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{"🟢", "Resultado", "85%", "Está bom", "#10b981", "Consultar especialistas", "Fechar", "api.whatsapp.com", `target="_blank"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected dialog to contain %q, got:\n%s", want, html)
		}
	}
}

func TestDialogTextUsesContactURL(t *testing.T) {
	r, err := New("https://example.com/contato")
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	text, err := r.DialogText(domain.Result{Score: 39, Band: domain.ClassifyResult(39)})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(text, "Resultado: 39%") || !strings.Contains(text, "Situação crítica") {
		t.Fatalf("unexpected text:\n%s", text)
	}
	if !strings.Contains(text, "https://example.com/contato") {
		t.Fatalf("expected custom contact url, got:\n%s", text)
	}
}

func TestPageRendersControlsAndGrid(t *testing.T) {
	r, err := New("")
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	checklist := domain.Checklist{
		ID:    "infra",
		Title: "Checklist",
		Sections: []domain.Section{
			{Title: "Quatro", Questions: []domain.Question{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}},
			{Title: "Duas", Questions: []domain.Question{{ID: "e"}, {ID: "f"}}},
		},
	}
	data := NewPageData(checklist)
	if data.Sections[0].GridClass != "questions-grid grid-four" || data.Sections[1].GridClass != "questions-grid" {
		t.Fatalf("unexpected grid classes %q %q", data.Sections[0].GridClass, data.Sections[1].GridClass)
	}
	if data.Sections[1].Questions[0].Number != 5 {
		t.Fatalf("expected numbering to continue across sections")
	}

	var buf bytes.Buffer
	if err := r.RenderPage(&buf, data); err != nil {
		t.Fatalf("render page: %v", err)
	}
	page := buf.String()
	if got := strings.Count(page, `class="btn-option"`); got != 12 {
		t.Fatalf("expected 12 option controls, got %d", got)
	}
	for _, want := range []string{`data-question="a" data-value="sim"`, `data-question="f" data-value="nao"`, "0/6 questões respondidas", `id="howItWorks"`, `id="assessmentSection"`} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected page to contain %q", want)
		}
	}
}

func TestStaticAssets(t *testing.T) {
	if _, err := fs.Stat(Static(), "checklist.js"); err != nil {
		t.Fatalf("expected checklist.js: %v", err)
	}
}
