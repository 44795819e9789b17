// Package output writes gpick's results: tables, branch names and --json
// documents go to stdout, while diagnostics go through the log package on
// stderr.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type printerKey struct{}

// Printer writes command results. It is itself an io.Writer, so renderers
// such as the preview highlighter can stream straight into it.
type Printer struct {
	io.Writer
}

// New returns a Printer on w.
func New(w io.Writer) *Printer {
	return &Printer{Writer: w}
}

// WithPrinter returns a copy of ctx carrying a Printer on w.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, printerKey{}, New(w))
}

// FromContext returns the Printer carried by ctx, or one on stdout.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(printerKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}

func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.Writer, a...)
}

func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.Writer, format, a...)
}

func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.Writer, a...)
}

// JSON writes v indented by two spaces, newline-terminated, for --json.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
