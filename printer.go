// printer.go: token-trace rendering
package minilua

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// FormatTrace renders one trace line for a token: the class label, then the
// raw lexeme. EOL and EOF carry no lexeme.
func FormatTrace(t Token) string {
	switch t.Type {
	case EOL, EOF:
		return t.Type.Label()
	default:
		return t.Type.Label() + " " + t.Lexeme
	}
}

// NewTracePrinter returns a Tracer that writes one plain trace line per
// token to w.
func NewTracePrinter(w io.Writer) Tracer {
	return func(t Token) {
		fmt.Fprintln(w, FormatTrace(t))
	}
}

// NewColorTracePrinter returns a Tracer that writes one highlighted trace
// line per token to w.
func NewColorTracePrinter(w io.Writer) Tracer {
	hl := NewHighlighter()
	return func(t Token) {
		fmt.Fprintln(w, hl.Render(t))
	}
}

// Highlighter colorizes trace lines, one style per token class.
type Highlighter struct {
	labelStyle    lipgloss.Style
	reservedStyle lipgloss.Style
	numberStyle   lipgloss.Style
	stringStyle   lipgloss.Style
	symbolStyle   lipgloss.Style
	nameStyle     lipgloss.Style
}

func NewHighlighter() *Highlighter {
	return &Highlighter{
		labelStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4")),
		reservedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF79C6")).
			Bold(true),
		numberStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#BD93F9")),
		stringStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F1FA8C")),
		symbolStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C")),
		nameStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8BE9FD")),
	}
}

// Render returns the highlighted trace line for a token.
func (h *Highlighter) Render(t Token) string {
	label := h.labelStyle.Render(t.Type.Label())
	switch t.Type {
	case EOL, EOF:
		return label
	default:
		return label + " " + h.lexemeStyle(t.Type).Render(t.Lexeme)
	}
}

func (h *Highlighter) lexemeStyle(tt TokenType) lipgloss.Style {
	switch tt {
	case RESERVED:
		return h.reservedStyle
	case NUMBER:
		return h.numberStyle
	case STRING:
		return h.stringStyle
	case SYMBOL:
		return h.symbolStyle
	default:
		return h.nameStyle
	}
}
