package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme maps semantic types to lipgloss styles.
type Theme struct {
	Name    string
	Result  lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

// DefaultTheme returns the console's color theme.
func DefaultTheme() *Theme {
	return &Theme{
		Name:    "default",
		Result:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}

// GetStyle implements StyleProvider.
func (t *Theme) GetStyle(semantic string) TextStyle {
	switch SemanticType(semantic) {
	case SemanticResult:
		return lipglossStyle{t.Result}
	case SemanticInfo:
		return lipglossStyle{t.Info}
	case SemanticSuccess:
		return lipglossStyle{t.Success}
	case SemanticError:
		return lipglossStyle{t.Error}
	default:
		return NewPlainTextStyle("")
	}
}

// lipglossStyle adapts the variadic lipgloss Render to TextStyle.
type lipglossStyle struct {
	style lipgloss.Style
}

func (s lipglossStyle) Render(text string) string {
	return s.style.Render(text)
}

// IsAvailable implements StyleProvider.
func (t *Theme) IsAvailable() bool {
	return t != nil
}

// SupportsColor reports whether w is a terminal with a color profile.
// NO_COLOR and dumb terminals are honored by termenv.
func SupportsColor(w io.Writer) bool {
	return termenv.NewOutput(w).ColorProfile() != termenv.Ascii
}

// NewConsolePrinter returns a printer for w, styled with the default theme
// when w supports color and plain otherwise.
func NewConsolePrinter(w io.Writer, plain bool) *Printer {
	if plain || !SupportsColor(w) {
		return NewPrinter(WithWriter(w), PlainText())
	}
	return NewPrinter(WithWriter(w), WithStyles(DefaultTheme()))
}
