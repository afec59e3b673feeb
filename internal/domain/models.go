package domain

import (
	"fmt"
	"math"
	"strings"
)

// Choice is the value carried by an option control.
type Choice string

const (
	ChoiceYes Choice = "sim"
	ChoiceNo  Choice = "nao"
)

// ParseChoice accepts the control values used by the page and the terminal.
func ParseChoice(raw string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sim", "s", "yes", "y":
		return ChoiceYes, nil
	case "nao", "não", "n", "no":
		return ChoiceNo, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidChoice, raw)
}

// Contribution is the score a choice adds to its question.
func (c Choice) Contribution() int {
	if c == ChoiceYes {
		return 100
	}
	return 0
}

// Control is one clickable option: a question id plus the value it records.
type Control struct {
	QuestionID string `json:"questionId"`
	Value      Choice `json:"value"`
}

// AnswerSet maps question ids to their contribution (0 or 100).
type AnswerSet map[string]int

// Mean returns the rounded average contribution and false when empty.
func (a AnswerSet) Mean() (int, bool) {
	if len(a) == 0 {
		return 0, false
	}
	return RoundDiv(a.Sum(), len(a)), true
}

func (a AnswerSet) Sum() int {
	sum := 0
	for _, v := range a {
		sum += v
	}
	return sum
}

// Clone returns an independent copy.
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// RoundDiv divides and rounds half away from zero, which for the
// non-negative sums used here matches the page's Math.round.
func RoundDiv(sum, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}

// Progress is the completion snapshot rendered after each event.
type Progress struct {
	Answered int     `json:"answered"`
	Total    int     `json:"total"`
	Percent  float64 `json:"percent"`
}

// NewProgress guards the empty universe.
func NewProgress(answered, total int) Progress {
	p := Progress{Answered: answered, Total: total}
	if total > 0 {
		p.Percent = float64(answered) / float64(total) * 100
	}
	return p
}

func (p Progress) Complete() bool {
	return p.Percent == 100
}

// CounterText is the "X/Y questões respondidas" label.
func (p Progress) CounterText() string {
	return fmt.Sprintf("%d/%d questões respondidas", p.Answered, p.Total)
}

// PercentText is the rounded percentage label.
func (p Progress) PercentText() string {
	return fmt.Sprintf("%d%%", int(math.Round(p.Percent)))
}

// Result is the outcome of a complete checklist.
type Result struct {
	Score    int  `json:"score"`
	Answered int  `json:"answered"`
	Total    int  `json:"total"`
	Band     Band `json:"band"`
}

// Question is a single yes/no item.
type Question struct {
	ID     string `json:"id" yaml:"id"`
	Prompt string `json:"prompt" yaml:"prompt"`
	Hint   string `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// Section groups questions on the page.
type Section struct {
	Title     string     `json:"title" yaml:"title"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Checklist is the questionnaire definition the page is rendered from.
type Checklist struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// Controls lists the option controls rendered for the checklist, two per
// question in page order.
func (c Checklist) Controls() []Control {
	var controls []Control
	for _, s := range c.Sections {
		for _, q := range s.Questions {
			controls = append(controls,
				Control{QuestionID: q.ID, Value: ChoiceYes},
				Control{QuestionID: q.ID, Value: ChoiceNo},
			)
		}
	}
	return controls
}

// QuestionCount is the number of distinct question ids.
func (c Checklist) QuestionCount() int {
	seen := make(map[string]struct{})
	for _, s := range c.Sections {
		for _, q := range s.Questions {
			seen[q.ID] = struct{}{}
		}
	}
	return len(seen)
}
