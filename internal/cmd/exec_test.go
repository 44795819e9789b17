package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/raphi011/gpick/internal/log"
)

func logCtx() context.Context {
	l := log.New(&bytes.Buffer{}, false, false)
	return log.WithLogger(context.Background(), l)
}

func TestRunContext_Success(t *testing.T) {
	t.Parallel()
	if err := RunContext(logCtx(), "", "echo", "hello"); err != nil {
		t.Errorf("RunContext(echo hello) = %v, want nil", err)
	}
}

func TestRunContext_StderrMessage(t *testing.T) {
	t.Parallel()
	err := RunContext(logCtx(), "", "sh", "-c", "echo 'bad thing' >&2; exit 1")
	if err == nil {
		t.Fatal("RunContext = nil, want error")
	}
	if err.Error() != "bad thing" {
		t.Errorf("RunContext error = %q, want %q", err.Error(), "bad thing")
	}
}

func TestRunContext_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(logCtx())
	cancel()
	err := RunContext(ctx, "", "sleep", "10")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RunContext error = %v, want context.Canceled", err)
	}
}

func TestOutputContext_Dir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	out, err := OutputContext(logCtx(), dir, "pwd")
	if err != nil {
		t.Fatalf("OutputContext(pwd) = %v", err)
	}
	if got := strings.TrimSpace(string(out)); !strings.HasSuffix(got, dir[strings.LastIndex(dir, "/"):]) {
		t.Errorf("pwd = %q, want suffix of %q", got, dir)
	}
}

func TestOutputContext_Success(t *testing.T) {
	t.Parallel()
	out, err := OutputContext(logCtx(), "", "echo", "hello")
	if err != nil {
		t.Fatalf("OutputContext(echo hello) = %v, want nil", err)
	}
	if got := string(out); got != "hello\n" {
		t.Errorf("OutputContext output = %q, want %q", got, "hello\n")
	}
}

func TestPipe(t *testing.T) {
	t.Parallel()

	t.Run("stdin to stdout", func(t *testing.T) {
		t.Parallel()
		out, code, err := Pipe(logCtx(), "", strings.NewReader("a\nb\n"), "cat")
		if err != nil {
			t.Fatalf("Pipe(cat) = %v", err)
		}
		if code != 0 {
			t.Errorf("exit code = %d, want 0", code)
		}
		if string(out) != "a\nb\n" {
			t.Errorf("output = %q, want %q", out, "a\nb\n")
		}
	})

	t.Run("non-zero exit is not an error", func(t *testing.T) {
		t.Parallel()
		_, code, err := Pipe(logCtx(), "", strings.NewReader(""), "sh", "-c", "exit 130")
		if err != nil {
			t.Fatalf("Pipe = %v, want nil", err)
		}
		if code != 130 {
			t.Errorf("exit code = %d, want 130", code)
		}
	})
}

func TestRequire(t *testing.T) {
	t.Parallel()

	if err := Require("sh"); err != nil {
		t.Errorf("Require(sh) = %v, want nil", err)
	}
	err := Require("definitely-not-a-real-tool-gpick")
	if !errors.Is(err, ErrDependencyMissing) {
		t.Errorf("Require(missing) = %v, want ErrDependencyMissing", err)
	}
	if !strings.Contains(err.Error(), "definitely-not-a-real-tool-gpick") {
		t.Errorf("error %q should name the tool", err)
	}
}
