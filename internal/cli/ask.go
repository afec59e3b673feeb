package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"infra-checklist/internal/app"
	"infra-checklist/internal/config"
	"infra-checklist/internal/domain"
	"infra-checklist/internal/logging"
	"infra-checklist/internal/view"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewAskCmd runs the checklist interactively on the terminal.
func NewAskCmd(configPath *string) *cobra.Command {
	var checklistID string
	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Answer a checklist on the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Log.Level == "" {
				cfg.Log.Level = "warn"
			}
			logger := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
			defer logger.Sync()

			b, err := connectBackends(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer b.Close()
			checklists, err := b.checklistRepository(cfg)
			if err != nil {
				return err
			}
			renderer, err := view.New(cfg.Checklist.ContactURL)
			if err != nil {
				return err
			}
			if checklistID == "" {
				checklistID = defaultChecklistID(cfg)
			}

			service := app.NewChecklistService(b.sessionStore(cfg), checklists, logger, nil)
			s := &askSession{
				service:  service,
				renderer: renderer,
				logger:   logger,
				in:       cmd.InOrStdin(),
				out:      cmd.OutOrStdout(),
			}
			return s.run(cmd.Context(), checklistID)
		},
	}
	cmd.Flags().StringVar(&checklistID, "checklist", "", "checklist id (defaults to the configured one)")
	return cmd
}

type askSession struct {
	service  *app.ChecklistService
	renderer *view.Renderer
	logger   *zap.Logger
	in       io.Reader
	out      io.Writer
}

func (s *askSession) run(ctx context.Context, checklistID string) error {
	checklist, err := s.service.Checklist(ctx, checklistID)
	if err != nil {
		return err
	}

	sessionID := uuid.NewString()
	display := newTerminalDisplay(s.out, s.renderer, s.logger)
	widget, err := s.service.Open(ctx, checklistID, sessionID, display.bind())
	if err != nil {
		return err
	}
	defer s.service.Close(sessionID, widget)

	questions := numberQuestions(checklist)
	printChecklist(s.out, checklist)
	display.printState()

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		quit, err := s.handle(widget, questions, line)
		if err != nil {
			fmt.Fprintf(s.out, "erro: %v\n", err)
		}
		if quit {
			return nil
		}
		s.service.Touch(ctx, sessionID)
		display.printState()
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (s *askSession) handle(widget *app.Widget, questions []string, line string) (bool, error) {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "sair", "quit", "exit":
		return true, nil
	case "calcular":
		_, err := widget.CalculateResults()
		if errors.Is(err, domain.ErrIncomplete) {
			return false, nil
		}
		return false, err
	case "fechar":
		widget.CloseDialog()
		return false, nil
	case "ajuda", "help":
		fmt.Fprintln(s.out, "comandos: <pergunta> <sim|nao>, calcular, fechar, sair")
		return false, nil
	}

	if len(fields) != 2 {
		return false, errors.New("use: <pergunta> <sim|nao>")
	}
	choice, err := domain.ParseChoice(fields[1])
	if err != nil {
		return false, err
	}
	return false, widget.Click(domain.Control{QuestionID: resolveQuestion(questions, fields[0]), Value: choice})
}

// numberQuestions lists question ids in page order so they can be answered by number.
func numberQuestions(c domain.Checklist) []string {
	var ids []string
	for _, section := range c.Sections {
		for _, q := range section.Questions {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

func resolveQuestion(questions []string, ref string) string {
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(questions) {
		return questions[n-1]
	}
	return ref
}

func printChecklist(w io.Writer, c domain.Checklist) {
	fmt.Fprintln(w, c.Title)
	n := 0
	for _, section := range c.Sections {
		fmt.Fprintf(w, "\n%s\n", section.Title)
		for _, q := range section.Questions {
			n++
			fmt.Fprintf(w, "  %2d. [%s] %s\n", n, q.ID, q.Prompt)
		}
	}
	fmt.Fprintln(w)
}

type textRenderer interface {
	DialogText(result domain.Result) (string, error)
}

// terminalDisplay collects widget output and prints it once per command.
type terminalDisplay struct {
	out      io.Writer
	renderer textRenderer
	logger   *zap.Logger

	percent string
	counter string
	score   string
	status  string
	dirty   bool
}

func newTerminalDisplay(out io.Writer, renderer textRenderer, logger *zap.Logger) *terminalDisplay {
	return &terminalDisplay{out: out, renderer: renderer, logger: logger}
}

func (d *terminalDisplay) bind() app.Display {
	return app.Display{
		ProgressText: textFunc(func(s string) { d.percent = s; d.dirty = true }),
		Counter:      textFunc(func(s string) { d.counter = s; d.dirty = true }),
		ScoreValues:  []app.Text{textFunc(func(s string) { d.score = s; d.dirty = true })},
		ScoreRings:   []app.ScoreRing{terminalRing{}},
		Status:       d,
		Notices:      d,
		Dialogs:      d,
	}
}

func (d *terminalDisplay) printState() {
	if !d.dirty {
		return
	}
	d.dirty = false
	line := fmt.Sprintf("%s (%s)", d.counter, d.percent)
	if d.score != "" {
		line += fmt.Sprintf(" | pontuação %s%% | %s", d.score, d.status)
	}
	fmt.Fprintln(d.out, line)
}

func (d *terminalDisplay) SetStatus(tier domain.StatusTier) {
	d.status = tier.Text
	d.dirty = true
}

func (d *terminalDisplay) Notify(message string) {
	fmt.Fprintln(d.out, message)
}

func (d *terminalDisplay) ShowDialog(result domain.Result) app.Dialog {
	text, err := d.renderer.DialogText(result)
	if err != nil {
		d.logger.Error("render results", zap.Error(err))
		return nil
	}
	fmt.Fprintf(d.out, "\n%s\n", text)
	return terminalDialog{out: d.out}
}

type terminalDialog struct {
	out io.Writer
}

func (t terminalDialog) Remove() {
	fmt.Fprintln(t.out, "(resultado fechado)")
}

type textFunc func(string)

func (f textFunc) SetText(s string) { f(s) }

// terminalRing has no geometry; it only counts as laid out.
type terminalRing struct{}

func (terminalRing) SetDashOffset(float64)  {}
func (terminalRing) SetStroke(string)       {}
func (terminalRing) RenderedWidth() float64 { return 1 }
