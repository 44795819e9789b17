package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/raphi011/gpick/internal/branch"
	"github.com/raphi011/gpick/internal/config"
	"github.com/raphi011/gpick/internal/git"
	"github.com/raphi011/gpick/internal/log"
	"github.com/raphi011/gpick/internal/output"
	"github.com/raphi011/gpick/internal/picker"
	"github.com/raphi011/gpick/internal/preview"
	"github.com/raphi011/gpick/internal/ui/progress"
	"github.com/raphi011/gpick/internal/ui/styles"
)

// openRepo opens the repository at the working directory and returns it
// with the effective config (global < .gpick.toml < environment).
func openRepo(ctx context.Context) (*git.Repo, *config.Config, error) {
	repo, err := git.Open(ctx, workDir)
	if err != nil {
		return nil, nil, err
	}

	effCfg := cfg
	local, err := config.LoadLocal(repo.Dir())
	if err != nil {
		log.FromContext(ctx).Warnf("failed to load local config: %v (using global config)", err)
	}
	if local != nil {
		effCfg = config.MergeLocal(cfg, local)
		// env still wins over the repo file
		if err := effCfg.ApplyEnv(os.Getenv); err != nil {
			log.FromContext(ctx).Warnf("%v", err)
		}
	}
	return repo, effCfg, nil
}

// isInteractive reports whether stdin and stderr are terminals.
func isInteractive() bool {
	tty := func(f *os.File) bool {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return tty(os.Stdin) && tty(os.Stderr)
}

// errNotInteractive is returned when a picker is needed but there is no
// terminal to draw it on.
var errNotInteractive = errors.New("no terminal for the interactive picker (use --json for scripted output)")

// newPresenter checks for a terminal and builds the configured selector.
func newPresenter(repo *git.Repo, c *config.Config) (*picker.Presenter, error) {
	if !isInteractive() {
		return nil, errNotInteractive
	}
	sel, err := picker.New(picker.Options{
		Backend: c.Picker.Backend,
		FzfOpts: c.Picker.FzfOpts,
		Dir:     repo.Dir(),
	})
	if err != nil {
		return nil, err
	}
	return &picker.Presenter{Selector: sel}, nil
}

// previewFunc renders previews in-process for the builtin picker.
func previewFunc(ctx context.Context, repo *git.Repo, c *config.Config, kind string) func(string) string {
	h := newHighlighter(c)
	return func(key string) string {
		text, err := renderPreview(ctx, repo, h, kind, key)
		if err != nil {
			return styles.ErrorStyle.Render(err.Error())
		}
		return text
	}
}

func newHighlighter(c *config.Config) *preview.Highlighter {
	return preview.New(c.Theme.Mode != "light", c.Theme.Name == "none")
}

// showProgress reports whether spinners and bars may draw: only on a
// terminal, and not while verbose command traces are printed.
func showProgress(ctx context.Context) bool {
	return isInteractive() && !log.FromContext(ctx).IsVerbose()
}

// fetch runs fetch+prune behind a spinner. A failed fetch is only a
// warning: the run continues with the refs already present.
func fetch(ctx context.Context, repo *git.Repo) error {
	err := progress.Run(showProgress(ctx), "Fetching remotes...", func() error {
		return repo.FetchAndPrune(ctx)
	})
	if errors.Is(err, git.ErrSyncFailed) {
		log.FromContext(ctx).Warnf("%v (continuing with local refs)", err)
		return nil
	}
	return err
}

// branchItems turns branch rows into picker items keyed by ref. Queries
// match the ref only, never the age or author columns.
func branchItems(rows []branch.Row) []picker.Item {
	items := make([]picker.Item, len(rows))
	for i, r := range rows {
		items[i] = picker.Item{Key: r.Ref(), Match: r.Ref(), Display: r.Display, Preselected: r.Preselected}
	}
	return items
}

// chosenRows maps chosen items back to their rows, in choice order.
func chosenRows(rows []branch.Row, chosen []picker.Item) []branch.Row {
	byRef := make(map[string]branch.Row, len(rows))
	for _, r := range rows {
		byRef[r.Ref()] = r
	}
	var out []branch.Row
	for _, it := range chosen {
		if r, ok := byRef[it.Key]; ok {
			out = append(out, r)
		}
	}
	return out
}

// report prints one line per result and returns errMutationsFailed if any
// of them failed.
func report(ctx context.Context, results []branch.Result, verb string) error {
	out := output.FromContext(ctx)
	for _, r := range results {
		if r.Err != nil {
			out.Println(styles.FormatResult(false, r.Err.Error()))
			continue
		}
		out.Println(styles.FormatResult(true, fmt.Sprintf("%s %s", verb, r.Ref)))
	}
	if n := branch.Failed(results); n > 0 {
		return fmt.Errorf("%w: %d of %d", errMutationsFailed, n, len(results))
	}
	return nil
}

// pluralize returns "1 branch" or "3 branches".
func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
