package prompt

import (
	"os"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/raphi011/gpick/internal/ui/styles"
)

// TextInputResult is a trimmed answer, or Cancelled after esc or ctrl+c.
type TextInputResult struct {
	Value     string
	Cancelled bool
}

type textState int

const (
	textEditing textState = iota
	textSubmitted
	textCancelled
)

type textInputModel struct {
	input textinput.Model
	label string
	state textState
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter":
			m.state = textSubmitted
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.state = textCancelled
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textInputModel) View() tea.View {
	if m.state != textEditing {
		return tea.NewView("")
	}
	return tea.NewView(styles.PrimaryStyle.Render(m.label) + "\n" + m.input.View())
}

// TextInput asks for a single line on stderr, e.g. a commit message.
// An empty answer is returned as is; callers decide whether to abort.
func TextInput(label, placeholder string) (TextInputResult, error) {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 200
	in.SetWidth(72)
	in.Focus()

	final, err := tea.NewProgram(textInputModel{input: in, label: label}, tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return TextInputResult{}, err
	}
	m := final.(textInputModel)
	return TextInputResult{
		Value:     strings.TrimSpace(m.input.Value()),
		Cancelled: m.state == textCancelled,
	}, nil
}
