package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Printer writes operator-facing text, styled when a provider is available.
type Printer struct {
	styleProvider StyleProvider
	writer        io.Writer
	forcePlain    bool

	mu sync.Mutex
}

// NewPrinter creates a Printer with the given options.
// By default it writes to os.Stdout without styles.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer: os.Stdout,
	}

	for _, opt := range options {
		opt(p)
	}

	return p
}

// Print outputs text without a trailing newline.
func (p *Printer) Print(text string) {
	p.output(SemanticPlain, text, false)
}

// Println outputs text followed by a newline.
func (p *Printer) Println(text string) {
	p.output(SemanticPlain, text, true)
}

// Newline writes a bare line break.
func (p *Printer) Newline() {
	p.output(SemanticPlain, "\n", false)
}

// Result outputs a formatted query reply.
func (p *Printer) Result(text string) {
	p.output(SemanticResult, text, true)
}

// Info outputs informational text.
func (p *Printer) Info(text string) {
	p.output(SemanticInfo, text, true)
}

// Success outputs success text.
func (p *Printer) Success(text string) {
	p.output(SemanticSuccess, text, true)
}

// Error outputs error text.
func (p *Printer) Error(text string) {
	p.output(SemanticError, text, true)
}

func (p *Printer) output(semantic SemanticType, text string, addNewline bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, _ = fmt.Fprint(p.writer, p.render(semantic, text, addNewline))
}

func (p *Printer) render(semantic SemanticType, text string, addNewline bool) string {
	var style TextStyle
	if p.IsStylable() {
		style = p.styleProvider.GetStyle(string(semantic))
	} else {
		style = NewPlainStyleProvider().GetStyle(string(semantic))
	}

	result := style.Render(text)
	if addNewline && !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	return result
}

// IsStylable returns true if the printer applies its style provider.
func (p *Printer) IsStylable() bool {
	return !p.forcePlain && p.styleProvider != nil && p.styleProvider.IsAvailable()
}
