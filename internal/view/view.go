// Package view renders the checklist page and the results dialog from
// domain data. Nothing here computes scores.
package view

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"io/fs"
	"strings"
	texttemplate "text/template"

	"infra-checklist/internal/domain"
)

// DefaultContactURL opens a WhatsApp conversation with the support team.
const DefaultContactURL = "https://api.whatsapp.com/send?phone=5511991387121&text=Ol%C3%A1%2C%20gostaria%20de%20falar%20com%20um%20especialista"

// DialogStyles holds the entrance animations injected alongside the dialog.
const DialogStyles = `@keyframes fadeIn {
    from { opacity: 0; }
    to { opacity: 1; }
}
@keyframes slideUp {
    from { transform: translateY(30px); opacity: 0; }
    to { transform: translateY(0); opacity: 1; }
}`

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the client assets served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Renderer owns the parsed templates.
type Renderer struct {
	page       *htmltemplate.Template
	dialog     *htmltemplate.Template
	dialogText *texttemplate.Template
	contactURL string
}

// New parses the embedded templates. An empty contactURL uses DefaultContactURL.
func New(contactURL string) (*Renderer, error) {
	if contactURL == "" {
		contactURL = DefaultContactURL
	}
	page, err := htmltemplate.ParseFS(templateFS, "templates/page.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	dialog, err := htmltemplate.ParseFS(templateFS, "templates/dialog.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse dialog template: %w", err)
	}
	dialogText, err := texttemplate.ParseFS(templateFS, "templates/dialog.txt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse dialog text template: %w", err)
	}
	return &Renderer{
		page:       page,
		dialog:     dialog,
		dialogText: dialogText,
		contactURL: contactURL,
	}, nil
}

// DialogData is what the results dialog is drawn from.
type DialogData struct {
	Score      int
	Label      string
	Color      string
	Icon       string
	Message    string
	ContactURL string
}

func (r *Renderer) dialogData(result domain.Result) DialogData {
	return DialogData{
		Score:      result.Score,
		Label:      result.Band.Label,
		Color:      result.Band.Color,
		Icon:       result.Band.Icon,
		Message:    result.Band.Message,
		ContactURL: r.contactURL,
	}
}

// DialogHTML renders the overlay markup for a result.
func (r *Renderer) DialogHTML(result domain.Result) (string, error) {
	var buf bytes.Buffer
	if err := r.dialog.Execute(&buf, r.dialogData(result)); err != nil {
		return "", fmt.Errorf("render dialog: %w", err)
	}
	return buf.String(), nil
}

// DialogText renders the result for a terminal.
func (r *Renderer) DialogText(result domain.Result) (string, error) {
	var buf bytes.Buffer
	if err := r.dialogText.Execute(&buf, r.dialogData(result)); err != nil {
		return "", fmt.Errorf("render dialog text: %w", err)
	}
	return buf.String(), nil
}

// PageData drives the checklist page.
type PageData struct {
	Title       string
	ChecklistID string
	Total       int
	Sections    []PageSection
}

type PageSection struct {
	Title     string
	GridClass string
	Questions []PageQuestion
}

type PageQuestion struct {
	Number int
	ID     string
	Prompt string
	Hint   string
}

// NewPageData lays out a checklist; sections with exactly four questions
// use the four-column grid.
func NewPageData(c domain.Checklist) PageData {
	data := PageData{
		Title:       c.Title,
		ChecklistID: c.ID,
		Total:       c.QuestionCount(),
	}
	n := 0
	for _, s := range c.Sections {
		classes := []string{"questions-grid"}
		if len(s.Questions) == 4 {
			classes = append(classes, "grid-four")
		}
		section := PageSection{Title: s.Title, GridClass: strings.Join(classes, " ")}
		for _, q := range s.Questions {
			n++
			section.Questions = append(section.Questions, PageQuestion{
				Number: n,
				ID:     q.ID,
				Prompt: q.Prompt,
				Hint:   q.Hint,
			})
		}
		data.Sections = append(data.Sections, section)
	}
	return data
}

// RenderPage writes the full checklist page.
func (r *Renderer) RenderPage(w io.Writer, data PageData) error {
	return r.page.Execute(w, data)
}
