// Package printer writes styled status lines for CLI commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/reel/internal/core/styles"
)

type ctxKey struct{}

// Printer writes human-readable status output. Status lines go to out;
// errors and warnings go to errOut.
type Printer struct {
	out    io.Writer
	errOut io.Writer
}

// New creates a printer writing to out and errOut.
func New(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or one writing to stdout/stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stdout, os.Stderr)
}

var sectionText = lipgloss.NewStyle().Bold(true)

// Printf writes a plain line.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

// Section writes a bold heading.
func (p *Printer) Section(title string) {
	_, _ = fmt.Fprintln(p.out, sectionText.Render(title))
}

// Infof writes an informational line.
func (p *Printer) Infof(format string, args ...any) {
	mark := lipgloss.NewStyle().Foreground(styles.ColorPrimary).Render("•")
	_, _ = fmt.Fprintf(p.out, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

// Successf writes a success line.
func (p *Printer) Successf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, "%s %s\n", styles.SuccessStyle.Render("✓"), fmt.Sprintf(format, args...))
}

// Success writes a success title followed by a muted detail.
func (p *Printer) Success(title, detail string) {
	if detail == "" {
		p.Successf("%s", title)
		return
	}
	p.Successf("%s %s", title, styles.TextMutedStyle.Render(detail))
}

// Warnf writes a warning line to the error stream.
func (p *Printer) Warnf(format string, args ...any) {
	mark := lipgloss.NewStyle().Foreground(styles.ColorWarning).Render("!")
	_, _ = fmt.Fprintf(p.errOut, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

// Errorf writes an error line to the error stream.
func (p *Printer) Errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.errOut, "%s %s\n", styles.ErrorStyle.Render("✗"), fmt.Sprintf(format, args...))
}
