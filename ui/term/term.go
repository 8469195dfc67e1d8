// Package term renders console overlays and toasts on a terminal.
//
// In interactive mode an overlay is a bubbletea program drawing a spinner
// next to the status text until it is removed. Otherwise overlays and toasts
// are single styled lines, which keeps logs and pipes readable.
package term

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/InsulaLabs/counsel/ui"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrUnknownKind = errors.New("unknown node kind")

type Surface struct {
	out         io.Writer
	interactive bool
	styles      styles

	mu sync.Mutex // serializes line output
}

type Option func(*Surface)

// WithInteractive turns the spinner overlay on or off.
func WithInteractive(interactive bool) Option {
	return func(s *Surface) {
		s.interactive = interactive
	}
}

func New(out io.Writer, opts ...Option) *Surface {
	s := &Surface{
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Surface) Render(node ui.Node) (ui.Mounted, error) {
	switch node.Kind {
	case ui.KindOverlay:
		if s.interactive {
			return s.startOverlay(node), nil
		}
		s.println(s.styles.overlay.Render("… " + node.Text))
		return noop, nil
	case ui.KindToast:
		s.println(s.toastLine(node))
		return noop, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, node.Kind)
	}
}

var noop = ui.RemoveFunc(func() error { return nil })

func (s *Surface) println(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, line)
}

func (s *Surface) toastLine(node ui.Node) string {
	glyph, style := "•", s.styles.info
	switch node.Level {
	case ui.LevelSuccess:
		glyph, style = "✓", s.styles.success
	case ui.LevelError:
		glyph, style = "✗", s.styles.failure
	case ui.LevelWarning:
		glyph, style = "!", s.styles.warning
	}
	return style.Render(glyph) + " " + node.Text
}

// startOverlay runs the spinner program until the returned Mounted is removed.
// Remove waits for the program to exit so the terminal is clean afterwards.
func (s *Surface) startOverlay(node ui.Node) ui.Mounted {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.styles.spinner))
	p := tea.NewProgram(
		overlayModel{spinner: sp, text: node.Text, style: s.styles.overlay},
		tea.WithOutput(s.out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	done := make(chan error, 1)
	go func() {
		_, err := p.Run()
		done <- err
	}()

	var (
		once   sync.Once
		runErr error
	)
	return ui.RemoveFunc(func() error {
		once.Do(func() {
			p.Send(dismissMsg{})
			runErr = <-done
		})
		return runErr
	})
}

type dismissMsg struct{}

type overlayModel struct {
	spinner   spinner.Model
	text      string
	style     lipgloss.Style
	dismissed bool
}

func (m overlayModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m overlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dismissMsg:
		m.dismissed = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m overlayModel) View() string {
	if m.dismissed {
		return ""
	}
	return m.spinner.View() + " " + m.style.Render(m.text) + "\n"
}

type styles struct {
	overlay lipgloss.Style
	spinner lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		overlay: r.NewStyle().Foreground(lipgloss.Color("7")).Italic(true),
		spinner: r.NewStyle().Foreground(lipgloss.Color("#1890ff")),
		success: r.NewStyle().Foreground(lipgloss.Color("#52c41a")).Bold(true),
		failure: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		info:    r.NewStyle().Foreground(lipgloss.Color("12")),
	}
}
