package progress

import (
	"fmt"
	"sync"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/raphi011/gpick/internal/ui/styles"
)

// step reports that done of total items finished, the last being label.
type step struct {
	done  int
	label string
}

// ProgressBar counts through a batch of known size, e.g. remote deletes.
type ProgressBar struct {
	line
	mu    sync.Mutex
	total int
	done  int
	label string
}

type barModel struct {
	bar   progress.Model
	total int
	step  step
}

func (m barModel) Init() tea.Cmd { return nil }

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case step:
		m.step = msg
		return m, nil
	case tea.KeyPressMsg:
		return m, nil
	}
	var cmd tea.Cmd
	m.bar, cmd = m.bar.Update(msg)
	return m, cmd
}

// View renders e.g. "[████░░░░] 3/7 deleting origin/feature-x".
func (m barModel) View() tea.View {
	if m.step.label == "" {
		return tea.NewView("")
	}
	var ratio float64
	if m.total > 0 {
		ratio = float64(m.step.done) / float64(m.total)
	}
	return tea.NewView(fmt.Sprintf("%s %d/%d %s", m.bar.ViewAs(ratio), m.step.done, m.total, m.step.label))
}

// NewProgressBar returns a stopped bar over total items, labelled label
// until the first Increment.
func NewProgressBar(total int, label string) *ProgressBar {
	return &ProgressBar{total: total, label: label}
}

// Start draws the bar in the theme's colors.
func (p *ProgressBar) Start() {
	p.mu.Lock()
	m := barModel{
		bar: progress.New(
			progress.WithWidth(40),
			progress.WithoutPercentage(),
			progress.WithColors(styles.Primary, styles.Accent),
		),
		total: p.total,
		step:  step{done: p.done, label: p.label},
	}
	p.mu.Unlock()
	p.start(m)
}

// Increment marks one more item finished. Counting continues when the
// bar was never started.
func (p *ProgressBar) Increment(label string) {
	p.mu.Lock()
	p.done++
	p.label = label
	s := step{done: p.done, label: label}
	p.mu.Unlock()
	p.send(s)
}

// Stop erases the bar. Safe to call without Start.
func (p *ProgressBar) Stop() {
	p.stop()
}
