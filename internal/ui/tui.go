package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/gopher-go/internal/gopher"
	"github.com/nibzard/gopher-go/internal/tasklist"
)

const (
	defaultVisible = 8
	maxHistory     = 200
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	altScreen bool
	taskFile  string
	visible   int
}

// WithAltScreen runs the TUI in the terminal's alternate screen.
func WithAltScreen(enabled bool) TUIOption {
	return func(c *tuiConfig) {
		c.altScreen = enabled
	}
}

// WithTaskFile shows the task file path in the footer.
func WithTaskFile(path string) TUIOption {
	return func(c *tuiConfig) {
		c.taskFile = path
	}
}

// WithVisible sets how many exchanges stay on screen.
func WithVisible(n int) TUIOption {
	return func(c *tuiConfig) {
		if n > 0 {
			c.visible = n
		}
	}
}

// RunTUI starts the chat TUI over r. It returns when the user says bye,
// presses ctrl+c or ctx is cancelled.
func RunTUI(ctx context.Context, r Responder, opts ...TUIOption) error {
	c := &tuiConfig{
		altScreen: true,
		visible:   defaultVisible,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if c.altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	program := tea.NewProgram(newTUIModel(r, c), programOpts...)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	replyStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(0, 1)
	warnStyle   = replyStyle.BorderForeground(lipgloss.Color("11"))
	errorStyle  = replyStyle.BorderForeground(lipgloss.Color("9"))
	footerStyle = lipgloss.NewStyle().Faint(true)
)

type exchange struct {
	input string
	reply gopher.Reply
}

type tuiModel struct {
	responder Responder
	cfg       *tuiConfig
	input     textinput.Model
	greeting  string
	history   []exchange
	width     int
	showHelp  bool
	done      bool
}

func newTUIModel(r Responder, cfg *tuiConfig) *tuiModel {
	ti := textinput.New()
	ti.Placeholder = "todo read book"
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Width = 60
	ti.Focus()

	return &tuiModel{
		responder: r,
		cfg:       cfg,
		input:     ti,
		greeting:  r.Greeting(),
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.done = true
			return m, tea.Quit
		case "f1":
			m.showHelp = !m.showHelp
			return m, nil
		case "enter":
			return m.submit()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 10 {
			m.input.Width = msg.Width - 6
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *tuiModel) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	if strings.TrimSpace(line) == "" {
		return m, nil
	}

	reply := m.responder.Respond(line)
	m.history = append(m.history, exchange{input: line, reply: reply})
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
	if reply.Exit {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.cfg.taskFile)
		return b.String()
	}

	if len(m.history) == 0 {
		b.WriteString(m.renderReply(gopher.Reply{Message: m.greeting}))
		b.WriteString("\n\n")
	}

	start := 0
	if len(m.history) > m.cfg.visible {
		start = len(m.history) - m.cfg.visible
	}
	for _, ex := range m.history[start:] {
		b.WriteString(promptStyle.Render("> " + ex.input))
		b.WriteString("\n")
		b.WriteString(m.renderReply(ex.reply))
		b.WriteString("\n\n")
	}

	if !m.done {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}
	writeFooter(&b, m.cfg.taskFile)
	return b.String()
}

func (m *tuiModel) renderReply(reply gopher.Reply) string {
	style := replyStyle
	var saveErr *tasklist.SaveError
	switch {
	case errors.As(reply.Err, &saveErr):
		style = warnStyle
	case reply.Err != nil:
		style = errorStyle
	}
	if m.width > 4 {
		style = style.MaxWidth(m.width)
	}
	return style.Render(reply.Message)
}

func writeTitle(b *strings.Builder) {
	b.WriteString(titleStyle.Render("Gopher"))
	b.WriteString("\n\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Commands\n\n")
	b.WriteString("  todo DESC                          Add a todo\n")
	b.WriteString("  deadline DESC /by DATE             Add a deadline\n")
	b.WriteString("  event DESC /from DATE /to DATE     Add an event\n")
	b.WriteString("  list                               Show all tasks\n")
	b.WriteString("  mark N..., unmark N...             Change status\n")
	b.WriteString("  delete N...                        Remove tasks\n")
	b.WriteString("  find PATTERN                       Search descriptions\n")
	b.WriteString("  update N FIELD VALUE               Change description, by, from or to\n")
	b.WriteString("  bye                                Quit\n\n")
	b.WriteString("  DATE is yyyy-MM-dd or yyyy-MM-dd HH:mm\n\n")
}

func writeFooter(b *strings.Builder, taskFile string) {
	footer := "enter to send | f1 for help | esc to quit"
	if taskFile != "" {
		footer += " | " + taskFile
	}
	b.WriteString(footerStyle.Render(footer))
	b.WriteString("\n")
}
