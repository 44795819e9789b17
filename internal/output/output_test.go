package output

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"
)

func TestWithPrinter_FromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		ctx := WithPrinter(context.Background(), &buf)
		p := FromContext(ctx)
		if p == nil {
			t.Fatal("FromContext returned nil")
		}
		if p.Writer != &buf {
			t.Error("Writer should be the buffer passed to WithPrinter")
		}
	})

	t.Run("default to stdout when not set", func(t *testing.T) {
		t.Parallel()
		p := FromContext(context.Background())
		if p == nil {
			t.Fatal("FromContext returned nil on empty context")
		}
		if p.Writer != os.Stdout {
			t.Error("Writer should default to os.Stdout")
		}
	})
}

func TestPrinter_JSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"empty slice", []string{}, "[]\n"},
		{"object", map[string]int{"n": 1}, "{\n  \"n\": 1\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := New(&buf).JSON(tt.in); err != nil {
				t.Fatalf("JSON() = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("JSON() wrote %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrinter_Printf(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := FromContext(WithPrinter(context.Background(), &buf))

	p.Printf("count: %d", 42)
	if got := buf.String(); got != "count: 42" {
		t.Errorf("Printf() wrote %q, want %q", got, "count: 42")
	}
}

func TestPrinter_Println(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := FromContext(WithPrinter(context.Background(), &buf))

	p.Println("line one")
	p.Println("line two")
	want := "line one\nline two\n"
	if got := buf.String(); got != want {
		t.Errorf("Println() wrote %q, want %q", got, want)
	}
}

func TestPrinter_IsWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	var w io.Writer = New(&buf)
	if _, err := io.WriteString(w, "main\n"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "main\n" {
		t.Errorf("wrote %q, want %q", got, "main\n")
	}
}
