package progress

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
)

// Spinner shows a fixed message next to an animated dot.
type Spinner struct {
	line
	message string
}

type spinnerModel struct {
	spinner spinner.Model
	message string
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinnerModel) View() tea.View {
	if m.message == "" {
		return tea.NewView("")
	}
	return tea.NewView(m.spinner.View() + " " + m.message)
}

// NewSpinner returns a stopped spinner for message.
func NewSpinner(message string) *Spinner {
	return &Spinner{message: message}
}

// Start draws the spinner until Stop.
func (s *Spinner) Start() {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	s.start(spinnerModel{spinner: sp, message: s.message})
}

// Stop erases the spinner. Safe to call without Start.
func (s *Spinner) Stop() {
	s.stop()
}

// Run shows a spinner with message while fn runs. The spinner is skipped
// when show is false (no terminal, or verbose output that would interleave).
func Run(show bool, message string, fn func() error) error {
	if !show {
		return fn()
	}
	s := NewSpinner(message)
	s.Start()
	defer s.Stop()
	return fn()
}
