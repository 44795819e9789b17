package picker

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/raphi011/gpick/internal/cmd"
)

// Entry is one line handed to a backend.
type Entry struct {
	Key         string
	Display     string
	Preselected bool
	// Disabled entries are shown but cannot be chosen in the builtin backend.
	Disabled bool
}

// Menu is a fully rendered selector invocation.
type Menu struct {
	Entries     []Entry
	Multi       bool
	Query       string
	Header      string
	Preview     string
	PreviewFunc func(key string) string
	// Keys are the extra keys (fzf names, e.g. "ctrl-d") that end selection.
	Keys []string
}

// Selection is what a backend reports back.
type Selection struct {
	// Key is the extra key that ended selection; empty for enter.
	Key     string
	Query   string
	Indices []int // indices into Menu.Entries
	// Cancelled is set for esc, ctrl-c and enter without a match.
	Cancelled bool
	// Interrupted marks a cancel by esc or ctrl-c rather than by no match.
	Interrupted bool
}

// Selector runs one interactive selection.
type Selector interface {
	Select(ctx context.Context, m Menu) (Selection, error)
}

// Backend names accepted by New.
const (
	BackendFzf     = "fzf"
	BackendBuiltin = "builtin"
)

// Options configures New.
type Options struct {
	Backend string
	// FzfOpts are appended to every fzf invocation.
	FzfOpts []string
	// Dir is the working directory for fzf and its preview command.
	Dir string
	// Output receives the builtin TUI. Defaults to stderr.
	Output io.Writer
}

// New returns the selector for the configured backend. The fzf backend
// fails with cmd.ErrDependencyMissing when fzf is not on PATH.
func New(opts Options) (Selector, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendFzf:
		if err := cmd.Require("fzf"); err != nil {
			return nil, err
		}
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("locate gpick executable: %w", err)
		}
		return &Fzf{Exe: exe, Opts: opts.FzfOpts, Dir: opts.Dir}, nil
	case BackendBuiltin:
		return &Builtin{Output: opts.Output}, nil
	}
	return nil, fmt.Errorf("unknown picker backend %q (valid: %s, %s)", opts.Backend, BackendFzf, BackendBuiltin)
}
