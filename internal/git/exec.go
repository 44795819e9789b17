package git

import (
	"context"
	"strings"

	"github.com/raphi011/gpick/internal/cmd"
)

// Every git call goes through internal/cmd so --verbose can trace it. The
// repository is passed with -C rather than as the working directory, which
// keeps the traced command line copy-pasteable.

func inDir(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

func runGit(ctx context.Context, dir string, args ...string) error {
	return cmd.RunContext(ctx, "", "git", inDir(dir, args)...)
}

func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, "", "git", inDir(dir, args)...)
}

// outputLines runs git and returns its stdout as trimmed, non-empty lines.
func outputLines(ctx context.Context, dir string, args ...string) ([]string, error) {
	out, err := outputGit(ctx, dir, args...)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
