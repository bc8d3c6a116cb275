package shell

import (
	"bufio"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"

	"liveconsole/internal/output"
)

// Prompt is shown before each line.
const Prompt = ">>> "

// MaxLineLength bounds a piped line; longer lines fail with bufio.ErrTooLong.
const MaxLineLength = 1 << 20

// NewLineReader returns a readline editor with tab completion when stdin is a terminal,
// and a plain line scanner otherwise so that commands can be piped in. The scanner
// writes its prompt through printer.
func NewLineReader(completer readline.AutoCompleter, printer *output.Printer) (LineReader, error) {
	fd := os.Stdin.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return NewScannerReader(os.Stdin, printer), nil
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          Prompt,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, err
	}
	return rl, nil
}

// ScannerReader reads newline-terminated lines without editing.
type ScannerReader struct {
	scanner *bufio.Scanner
	printer *output.Printer
}

// NewScannerReader creates a ScannerReader over r. A nil printer falls back to the global printer.
func NewScannerReader(r io.Reader, printer *output.Printer) *ScannerReader {
	if printer == nil {
		printer = output.GetGlobalPrinter()
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), MaxLineLength)
	return &ScannerReader{scanner: scanner, printer: printer}
}

// Readline prints the prompt and returns the next line, or io.EOF when input is exhausted.
func (s *ScannerReader) Readline() (string, error) {
	s.printer.Print(Prompt)
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// Close implements LineReader.
func (s *ScannerReader) Close() error {
	return nil
}
