// Package progress draws transient status lines on stderr while gpick
// waits on git: a spinner for open-ended work and a bar for batches.
package progress

import (
	"fmt"
	"os"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
)

// stopTimeout bounds how long Stop waits for the renderer to exit.
const stopTimeout = 500 * time.Millisecond

// line runs a single-line bubbletea program on stderr, so stdout stays
// clean for --json and other piped output.
type line struct {
	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// start launches the program for m. A second start is a no-op.
func (l *line) start(m tea.Model) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.program != nil {
		return
	}
	l.program = tea.NewProgram(m, tea.WithoutSignalHandler(), tea.WithOutput(os.Stderr))
	l.done = make(chan struct{})
	go func(p *tea.Program, done chan struct{}) {
		_, _ = p.Run()
		close(done)
	}(l.program, l.done)
}

// send delivers msg to a running program and drops it otherwise.
func (l *line) send(msg tea.Msg) {
	l.mu.Lock()
	p := l.program
	l.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// stop quits the program and erases its line.
func (l *line) stop() {
	l.mu.Lock()
	p, done := l.program, l.done
	l.program = nil
	l.mu.Unlock()
	if p == nil {
		return
	}

	p.Quit()
	select {
	case <-done:
	case <-time.After(stopTimeout):
	}
	fmt.Fprint(os.Stderr, "\r\033[K")
}
