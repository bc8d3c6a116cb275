// Package shell provides the interactive console: it reads operator lines, runs macros,
// forwards everything else to AbletonOSC as a query and prints the reply.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/chzyer/readline"

	"liveconsole/internal/logger"
	"liveconsole/internal/macro"
	"liveconsole/internal/output"
	"liveconsole/internal/parser"
	"liveconsole/internal/transport"
)

// ReloadAddress asks the remote script to reload its API handlers.
const ReloadAddress = "/live/api/reload"

// Banner lines printed before the first prompt.
const (
	Banner = "AbletonOSC command console"
	Usage  = "Usage: /live/osc/command [params]"
)

// Transport is the OSC client the console forwards commands to.
type Transport interface {
	Send(path string, args ...any) error
	Query(ctx context.Context, path string, args ...any) ([]any, error)
}

// LineReader supplies operator input one line at a time.
// It returns io.EOF when input ends and readline.ErrInterrupt on Ctrl-C.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// Console is the read-dispatch loop. It owns the transport for its lifetime.
type Console struct {
	transport Transport
	reader    LineReader
	printer   *output.Printer
	macros    *macro.Runner
}

// New creates a console. A nil printer falls back to the global printer.
func New(t Transport, reader LineReader, printer *output.Printer) *Console {
	if printer == nil {
		printer = output.GetGlobalPrinter()
	}
	return &Console{
		transport: t,
		reader:    reader,
		printer:   printer,
		macros:    macro.NewRunner(t, printer),
	}
}

// Run reloads the remote API, prints the banner and processes lines until input ends.
// End of input prints a blank line and returns nil.
func (c *Console) Run(ctx context.Context) error {
	if err := c.transport.Send(ReloadAddress); err != nil {
		logger.Debug("API reload not sent", "error", err)
	}

	c.printer.Info(Banner)
	c.printer.Println(Usage)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := c.reader.Readline()
		switch {
		case errors.Is(err, io.EOF):
			c.printer.Newline()
			return nil
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case err != nil:
			return fmt.Errorf("read input: %w", err)
		}

		c.ProcessInput(ctx, line)
	}
}

// ProcessInput dispatches one line. Macro keywords run their workflow; any other line
// is parsed and sent as a query whose reply is printed. Request errors print nothing.
func (c *Console) ProcessInput(ctx context.Context, line string) {
	if kind, ok := macro.Lookup(line); ok {
		if err := c.macros.Run(ctx, kind); err != nil {
			logger.Debug("Macro failed", "macro", kind.String(), "error", err)
			c.printer.Error(fmt.Sprintf("%s: %v", kind, err))
		}
		return
	}

	path, params := parser.ParseLine(line)
	reply, err := c.transport.Query(ctx, path, parser.Args(params)...)
	if err != nil {
		if errors.Is(err, transport.ErrRequest) {
			logger.Debug("Query failed", "command", path, "error", err)
			return
		}
		c.printer.Error(err.Error())
		return
	}

	c.printer.Result(parser.FormatResponse(reply))
}
