// Package printer writes styled, human-oriented command output.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"charm.land/lipgloss/v2"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/styles"
)

type ctxKey struct{}

// Printer prefixes each line with a status glyph colored from the active theme.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) line(style lipgloss.Style, glyph, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if glyph == "" {
		_, _ = fmt.Fprintln(p.w, msg)
		return
	}
	_, _ = fmt.Fprintln(p.w, style.Render(glyph)+" "+msg)
}

// Printf writes a plain line.
func (p *Printer) Printf(format string, args ...any) {
	p.line(lipgloss.Style{}, "", format, args...)
}

// Infof writes an informational line.
func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.TextPrimaryStyle, "•", format, args...)
}

// Successf writes a success line.
func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.TextSuccessStyle, "✔", format, args...)
}

// Warnf writes a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.TextWarningStyle, "!", format, args...)
}

// Errorf writes an error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.TextErrorStyle, "✘", format, args...)
}

// Success writes a success line with a muted detail underneath.
func (p *Printer) Success(title, detail string) {
	p.Successf("%s", title)
	if detail != "" {
		_, _ = fmt.Fprintln(p.w, "  "+styles.TextMutedStyle.Render(detail))
	}
}

// Section writes a bold heading.
func (p *Printer) Section(title string) {
	_, _ = fmt.Fprintln(p.w, styles.TextStrongStyle.Render(title))
}
