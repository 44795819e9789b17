package picker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/raphi011/gpick/internal/cmd"
	"github.com/raphi011/gpick/internal/log"
)

// fzf exit codes
const (
	fzfNoMatch     = 1
	fzfInterrupted = 130
)

// Fzf runs selections through the fzf binary.
type Fzf struct {
	// Exe is the gpick binary used for the preview command.
	Exe string
	// Opts are extra fzf flags, appended last so they win.
	Opts []string
	// Dir is the working directory for fzf and its preview.
	Dir string
	// TempDir is where the scratch directory is created. Empty means os.TempDir.
	TempDir string
	// Bin overrides the fzf binary name.
	Bin string
}

// Select implements Selector. The menu is staged in a scratch directory
// that is removed before Select returns.
func (f *Fzf) Select(ctx context.Context, m Menu) (Selection, error) {
	scratch, err := os.MkdirTemp(f.TempDir, "gpick-picker-")
	if err != nil {
		return Selection{}, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	menuPath := filepath.Join(scratch, "menu")
	if err := os.WriteFile(menuPath, []byte(menuLines(m.Entries)), 0o600); err != nil {
		return Selection{}, fmt.Errorf("write menu: %w", err)
	}
	in, err := os.Open(menuPath)
	if err != nil {
		return Selection{}, fmt.Errorf("open menu: %w", err)
	}
	defer in.Close()

	bin := f.Bin
	if bin == "" {
		bin = "fzf"
	}
	out, code, err := cmd.Pipe(ctx, f.Dir, in, bin, f.args(m)...)
	if err != nil {
		return Selection{}, err
	}
	log.FromContext(ctx).Debug("fzf exited", "code", code)

	switch code {
	case 0, fzfNoMatch:
		sel, err := parseFzfOutput(string(out), len(m.Keys) > 0)
		if err != nil {
			return Selection{}, err
		}
		if code == fzfNoMatch && sel.Key == "" {
			sel.Cancelled = true
			sel.Indices = nil
		}
		return sel, nil
	case fzfInterrupted:
		return Selection{Cancelled: true, Interrupted: true, Query: m.Query}, nil
	}
	return Selection{}, fmt.Errorf("fzf exited with status %d", code)
}

// args builds the fzf command line for a menu.
func (f *Fzf) args(m Menu) []string {
	args := []string{
		"--ansi",
		"--delimiter=\t",
		"--with-nth=3..",
		"--tiebreak=index",
		"--layout=reverse",
		"--height=80%",
		"--print-query",
	}
	// fzf rejects an empty --expect
	if len(m.Keys) > 0 {
		args = append(args, "--expect="+strings.Join(m.Keys, ","))
	}
	if m.Query != "" {
		args = append(args, "--query="+m.Query)
	}
	if m.Header != "" {
		args = append(args, "--header="+m.Header)
	}
	if m.Multi {
		args = append(args, "--multi")
		if bind := preselectBind(m.Entries); bind != "" {
			args = append(args, "--bind="+bind)
		}
	}
	if m.Preview != "" && f.Exe != "" {
		args = append(args,
			"--preview="+shellQuote(f.Exe)+" preview "+m.Preview+" {2}",
			"--preview-window=right,50%,wrap",
		)
	}
	return append(args, f.Opts...)
}

// menuLines renders entries as "index<TAB>key<TAB>display" lines.
func menuLines(entries []Entry) string {
	var b strings.Builder
	for i, e := range entries {
		b.WriteString(strconv.Itoa(i))
		b.WriteByte('\t')
		b.WriteString(flatten(e.Key))
		b.WriteByte('\t')
		b.WriteString(flatten(e.Display))
		b.WriteByte('\n')
	}
	return b.String()
}

// preselectBind toggles the preselected lines once fzf has started and
// moves the cursor back to the top.
func preselectBind(entries []Entry) string {
	var actions []string
	for i, e := range entries {
		if e.Preselected {
			actions = append(actions, fmt.Sprintf("pos(%d)", i+1), "toggle")
		}
	}
	if len(actions) == 0 {
		return ""
	}
	return "start:" + strings.Join(append(actions, "first"), "+")
}

// parseFzfOutput reads the --print-query output: the query line, the key
// line when fzf ran with --expect, then one line per chosen entry.
func parseFzfOutput(out string, withKey bool) (Selection, error) {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	var sel Selection
	if len(lines) > 0 {
		sel.Query = lines[0]
	}
	first := 1
	if withKey {
		if len(lines) > 1 {
			sel.Key = lines[1]
		}
		first = 2
	}
	for _, line := range lines[min(first, len(lines)):] {
		if line == "" {
			continue
		}
		idx, _, _ := strings.Cut(line, "\t")
		n, err := strconv.Atoi(idx)
		if err != nil {
			return Selection{}, fmt.Errorf("unexpected fzf output %q", line)
		}
		sel.Indices = append(sel.Indices, n)
	}
	return sel, nil
}

func flatten(s string) string {
	return strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(s)
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
