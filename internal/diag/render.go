package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSyntax   = lipgloss.Color("#EF4444")
	colorSemantic = lipgloss.Color("#F59E0B")
	colorMuted    = lipgloss.Color("#6B7280")
	colorAccent   = lipgloss.Color("#7C3AED")
)

// Renderer formats diagnostics for a terminal.
type Renderer struct {
	color bool

	phase    map[Phase]lipgloss.Style
	pos      lipgloss.Style
	code     lipgloss.Style
	expected lipgloss.Style
}

// NewRenderer returns a renderer. Without color the output is plain
// text.
func NewRenderer(color bool) *Renderer {
	return &Renderer{
		color: color,
		phase: map[Phase]lipgloss.Style{
			Syntax:   lipgloss.NewStyle().Bold(true).Foreground(colorSyntax),
			Semantic: lipgloss.NewStyle().Bold(true).Foreground(colorSemantic),
		},
		pos:      lipgloss.NewStyle().Bold(true),
		code:     lipgloss.NewStyle().Foreground(colorMuted),
		expected: lipgloss.NewStyle().Foreground(colorAccent).Italic(true),
	}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Render formats one diagnostic:
//
//	file:3:7: syntax error [SyntaxError]: unexpected +
//		expected to or step
func (r *Renderer) Render(d *Diagnostic) string {
	var b strings.Builder
	if d.Pos.IsValid() {
		b.WriteString(r.style(r.pos, d.Pos.String()+":"))
		b.WriteByte(' ')
	}
	b.WriteString(r.style(r.phase[d.Phase], d.Phase.String()+" error"))
	if d.Code != "" {
		b.WriteByte(' ')
		b.WriteString(r.style(r.code, "["+d.Code+"]"))
	}
	b.WriteString(": ")
	b.WriteString(d.Msg)
	if len(d.Expected) > 0 {
		b.WriteString("\n\t")
		b.WriteString(r.style(r.expected, "expected "+KindList(d.Expected)))
	}
	return b.String()
}

// Fprint writes every diagnostic of l followed by a summary line.
func (r *Renderer) Fprint(w io.Writer, l List) error {
	for _, d := range l {
		if _, err := fmt.Fprintln(w, r.Render(d)); err != nil {
			return err
		}
	}
	if len(l) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, r.style(r.code, Summary(l)))
	return err
}

// Summary describes the size of l: "1 error", "3 errors (1 syntax, 2 semantic)".
func Summary(l List) string {
	word := "errors"
	if len(l) == 1 {
		word = "error"
	}
	s := fmt.Sprintf("%d %s", len(l), word)
	syn, sem := l.Count(Syntax), l.Count(Semantic)
	if syn > 0 && sem > 0 {
		s += fmt.Sprintf(" (%d syntax, %d semantic)", syn, sem)
	}
	return s
}
