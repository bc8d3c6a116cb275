package output

import "io"

// Option is a functional option for configuring Printer instances.
type Option func(*Printer)

// WithStyles makes the printer use provider when it is available.
func WithStyles(provider StyleProvider) Option {
	return func(p *Printer) {
		if provider != nil && provider.IsAvailable() {
			p.styleProvider = provider
		}
	}
}

// WithWriter sets the destination. Default is os.Stdout.
func WithWriter(writer io.Writer) Option {
	return func(p *Printer) {
		if writer != nil {
			p.writer = writer
		}
	}
}

// PlainText forces plain output even when a style provider is set.
func PlainText() Option {
	return func(p *Printer) {
		p.forcePlain = true
	}
}

// TestMode configures deterministic plain output for tests.
func TestMode() Option {
	return PlainText()
}
