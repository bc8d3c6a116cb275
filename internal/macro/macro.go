// Package macro implements named multi-step workflows that the console runs instead of
// forwarding the line as a literal OSC command.
package macro

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"liveconsole/internal/logger"
	"liveconsole/internal/output"
)

// OSC addresses used by the track macros.
const (
	TestAddress      = "/live/test"
	NumTracksAddress = "/live/song/get/num_tracks"
	TrackMuteAddress = "/live/track/set/mute"
)

var (
	// ErrPrecondition is returned when the readiness check fails.
	ErrPrecondition = errors.New("check Ableton Live is running")
	// ErrMalformedResponse is returned when the track count cannot be read from the reply.
	ErrMalformedResponse = errors.New("malformed track count")
)

// Kind enumerates the macros the console recognizes.
type Kind int

const (
	// MuteAll mutes every track of the current set.
	MuteAll Kind = iota + 1
	// UnmuteAll unmutes every track of the current set.
	UnmuteAll
)

var keywords = []struct {
	word string
	kind Kind
}{
	{"MUTE_ALL", MuteAll},
	{"UNMUTE_ALL", UnmuteAll},
}

// Keywords returns the macro keywords in declaration order.
func Keywords() []string {
	words := make([]string, len(keywords))
	for i, k := range keywords {
		words[i] = k.word
	}
	return words
}

// Lookup reports the macro a line invokes. Only an exact, case-sensitive match counts.
func Lookup(line string) (Kind, bool) {
	for _, k := range keywords {
		if line == k.word {
			return k.kind, true
		}
	}
	return 0, false
}

// String returns the keyword for the kind.
func (k Kind) String() string {
	for _, kw := range keywords {
		if kw.kind == k {
			return kw.word
		}
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Mute reports the mute flag the macro applies to every track.
func (k Kind) Mute() bool {
	return k == MuteAll
}

// Transport is the subset of the OSC client the macros need.
type Transport interface {
	Send(path string, args ...any) error
	Query(ctx context.Context, path string, args ...any) ([]any, error)
}

// Runner executes macros against a transport and reports completion on a printer.
type Runner struct {
	transport Transport
	printer   *output.Printer
}

// NewRunner creates a Runner. A nil printer falls back to the global printer.
func NewRunner(transport Transport, printer *output.Printer) *Runner {
	if printer == nil {
		printer = output.GetGlobalPrinter()
	}
	return &Runner{transport: transport, printer: printer}
}

// Run executes the macro. Tracks muted before a failing send stay muted.
func (r *Runner) Run(ctx context.Context, kind Kind) error {
	switch kind {
	case MuteAll, UnmuteAll:
		return r.setAllMuted(ctx, kind.Mute())
	default:
		return fmt.Errorf("unknown macro %s", kind)
	}
}

func (r *Runner) setAllMuted(ctx context.Context, mute bool) error {
	alive, err := r.transport.Query(ctx, TestAddress)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPrecondition, err)
	}
	if len(alive) == 0 {
		return ErrPrecondition
	}

	reply, err := r.transport.Query(ctx, NumTracksAddress)
	if err != nil {
		return fmt.Errorf("query track count: %w", err)
	}
	if len(reply) == 0 {
		return fmt.Errorf("%w: empty reply", ErrMalformedResponse)
	}
	count, err := toInt(reply[0])
	if err != nil {
		return err
	}

	flag := int32(0)
	if mute {
		flag = 1
	}
	logger.Debug("Setting mute on all tracks", "tracks", count, "mute", mute)

	for track := 0; track < count; track++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.transport.Send(TrackMuteAddress, int32(track), flag); err != nil {
			return fmt.Errorf("set mute on track %d: %w", track, err)
		}
	}

	if mute {
		r.printer.Success("Muted All Tracks")
	} else {
		r.printer.Success("Unmuted All Tracks")
	}
	return nil
}

// toInt reads a track count out of a reply argument. Floats are truncated.
// Counts outside 0..MaxInt32 are malformed.
func toInt(arg any) (int, error) {
	switch v := arg.(type) {
	case int32:
		return checkCount(int64(v))
	case int64:
		return checkCount(v)
	case int:
		return checkCount(int64(v))
	case float32:
		return truncate(float64(v))
	case float64:
		return truncate(v)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedResponse, v)
		}
		return checkCount(n)
	default:
		return 0, fmt.Errorf("%w: %v (%T)", ErrMalformedResponse, arg, arg)
	}
}

func truncate(f float64) (int, error) {
	if math.IsNaN(f) || f < 0 || f >= math.MaxInt32+1 {
		return 0, fmt.Errorf("%w: %v", ErrMalformedResponse, f)
	}
	return int(f), nil
}

func checkCount(n int64) (int, error) {
	if n < 0 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d tracks", ErrMalformedResponse, n)
	}
	return int(n), nil
}
