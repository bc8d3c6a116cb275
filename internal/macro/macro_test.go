package macro

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liveconsole/internal/output"
	"liveconsole/internal/testutils"
	"liveconsole/internal/transport"
)

func newRunner(ft *testutils.FakeTransport) (*Runner, *output.CaptureBuffer) {
	buffer := output.NewCaptureBuffer()
	return NewRunner(ft, output.NewPrinter(output.WithWriter(buffer), output.TestMode())), buffer
}

func TestLookup(t *testing.T) {
	tests := []struct {
		line  string
		kind  Kind
		found bool
	}{
		{line: "MUTE_ALL", kind: MuteAll, found: true},
		{line: "UNMUTE_ALL", kind: UnmuteAll, found: true},
		{line: "mute_all", found: false},
		{line: " MUTE_ALL", found: false},
		{line: "MUTE_ALL ", found: false},
		{line: "/live/track/set/mute", found: false},
		{line: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			kind, found := Lookup(tt.line)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestKind(t *testing.T) {
	assert.True(t, MuteAll.Mute())
	assert.False(t, UnmuteAll.Mute())
	assert.Equal(t, "MUTE_ALL", MuteAll.String())
	assert.Equal(t, "UNMUTE_ALL", UnmuteAll.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
	assert.Equal(t, []string{"MUTE_ALL", "UNMUTE_ALL"}, Keywords())
}

func TestRun_MuteAllFansOutInOrder(t *testing.T) {
	ft := testutils.NewFakeTransport().
		Reply(TestAddress, "ok").
		Reply(NumTracksAddress, int32(4))
	runner, buffer := newRunner(ft)

	require.NoError(t, runner.Run(context.Background(), MuteAll))

	sends := ft.Sends()
	require.Len(t, sends, 4)
	for i, call := range sends {
		assert.Equal(t, TrackMuteAddress, call.Path)
		assert.Equal(t, []any{int32(i), int32(1)}, call.Args)
	}
	assert.Equal(t, []string{"Muted All Tracks"}, buffer.Lines())
}

func TestRun_UnmuteAllSendsZeroFlag(t *testing.T) {
	ft := testutils.NewFakeTransport().
		Reply(TestAddress, "ok").
		Reply(NumTracksAddress, int32(2))
	runner, buffer := newRunner(ft)

	require.NoError(t, runner.Run(context.Background(), UnmuteAll))

	assert.Equal(t, []testutils.Call{
		{Path: TestAddress, Query: true},
		{Path: NumTracksAddress, Query: true},
		{Path: TrackMuteAddress, Args: []any{int32(0), int32(0)}},
		{Path: TrackMuteAddress, Args: []any{int32(1), int32(0)}},
	}, ft.Calls())
	assert.Equal(t, []string{"Unmuted All Tracks"}, buffer.Lines())
}

func TestRun_ZeroTracks(t *testing.T) {
	ft := testutils.NewFakeTransport().
		Reply(TestAddress, "ok").
		Reply(NumTracksAddress, int32(0))
	runner, buffer := newRunner(ft)

	require.NoError(t, runner.Run(context.Background(), MuteAll))
	assert.Empty(t, ft.Sends())
	assert.Equal(t, []string{"Muted All Tracks"}, buffer.Lines())
}

func TestRun_SuccessIsReportedAsSuccessLine(t *testing.T) {
	ft := testutils.NewFakeTransport().
		Reply(TestAddress, "ok").
		Reply(NumTracksAddress, int32(1))
	buffer := output.NewCaptureBuffer()
	printer := output.NewPrinter(output.WithWriter(buffer), output.WithStyles(output.NewMockStyleProvider()))

	require.NoError(t, NewRunner(ft, printer).Run(context.Background(), UnmuteAll))
	assert.Equal(t, "[success]Unmuted All Tracks[/success]\n", buffer.String())
}

func TestRun_ZeroTracksCaptured(t *testing.T) {
	ft := testutils.NewFakeTransport().
		Reply(TestAddress, "ok").
		Reply(NumTracksAddress, "0")

	out := output.CaptureOutput(func(p *output.Printer) {
		require.NoError(t, NewRunner(ft, p).Run(context.Background(), UnmuteAll))
	})
	assert.Equal(t, "Unmuted All Tracks\n", out)
}

func TestRun_ReadinessGate(t *testing.T) {
	tests := []struct {
		name string
		ft   *testutils.FakeTransport
	}{
		{
			name: "empty liveness reply",
			ft:   testutils.NewFakeTransport().Reply(TestAddress).Reply(NumTracksAddress, int32(3)),
		},
		{
			name: "liveness query times out",
			ft:   testutils.NewFakeTransport().Reply(NumTracksAddress, int32(3)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner, buffer := newRunner(tt.ft)

			err := runner.Run(context.Background(), MuteAll)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrPrecondition))

			queries := tt.ft.Queries()
			require.Len(t, queries, 1)
			assert.Equal(t, TestAddress, queries[0].Path)
			assert.Empty(t, tt.ft.Sends())
			assert.Empty(t, buffer.String())
		})
	}
}

func TestRun_MalformedTrackCount(t *testing.T) {
	tests := []struct {
		name  string
		reply []any
	}{
		{name: "empty reply", reply: []any{}},
		{name: "non numeric string", reply: []any{"many"}},
		{name: "blob", reply: []any{[]byte{1}}},
		{name: "nil", reply: []any{nil}},
		{name: "negative", reply: []any{int32(-1)}},
		{name: "beyond int32", reply: []any{int64(1) << 40}},
		{name: "huge float", reply: []any{float64(1e20)}},
		{name: "negative float", reply: []any{float32(-2.5)}},
		{name: "infinity", reply: []any{math.Inf(1)}},
		{name: "NaN", reply: []any{math.NaN()}},
		{name: "huge numeric string", reply: []any{"99999999999"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := testutils.NewFakeTransport().
				Reply(TestAddress, "ok").
				Reply(NumTracksAddress, tt.reply...)
			runner, buffer := newRunner(ft)

			err := runner.Run(context.Background(), MuteAll)
			assert.True(t, errors.Is(err, ErrMalformedResponse))
			assert.Empty(t, ft.Sends())
			assert.Empty(t, buffer.String())
		})
	}
}

func TestRun_TrackCountConversions(t *testing.T) {
	tests := []struct {
		name     string
		count    any
		expected int
	}{
		{name: "int32", count: int32(3), expected: 3},
		{name: "int64", count: int64(2), expected: 2},
		{name: "float truncates", count: float32(2.9), expected: 2},
		{name: "numeric string", count: "3", expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := testutils.NewFakeTransport().
				Reply(TestAddress, "ok").
				Reply(NumTracksAddress, tt.count)
			runner, _ := newRunner(ft)

			require.NoError(t, runner.Run(context.Background(), MuteAll))
			assert.Len(t, ft.Sends(), tt.expected)
		})
	}
}

func TestRun_DiscoveryRequestError(t *testing.T) {
	ft := testutils.NewFakeTransport().Reply(TestAddress, "ok")
	runner, _ := newRunner(ft)

	err := runner.Run(context.Background(), MuteAll)
	assert.True(t, errors.Is(err, transport.ErrRequest))
	assert.False(t, errors.Is(err, ErrPrecondition))
	assert.Empty(t, ft.Sends())
}

func TestRun_SendFailureAbandonsRemainingTracks(t *testing.T) {
	sendErr := errors.New("network unreachable")
	ft := testutils.NewFakeTransport().
		Reply(TestAddress, "ok").
		Reply(NumTracksAddress, int32(5)).
		FailSendsAfter(2, sendErr)
	runner, buffer := newRunner(ft)

	err := runner.Run(context.Background(), MuteAll)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sendErr))
	assert.Contains(t, err.Error(), "track 2")

	sends := ft.Sends()
	require.Len(t, sends, 2)
	assert.Equal(t, []any{int32(0), int32(1)}, sends[0].Args)
	assert.Equal(t, []any{int32(1), int32(1)}, sends[1].Args)
	assert.Empty(t, buffer.String())
}

func TestRun_CanceledContextStopsFanOut(t *testing.T) {
	ft := testutils.NewFakeTransport().
		Reply(TestAddress, "ok").
		Reply(NumTracksAddress, int32(3))
	runner, _ := newRunner(ft)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runner.Run(ctx, MuteAll)
	assert.True(t, errors.Is(err, ErrPrecondition))
	assert.Empty(t, ft.Sends())
}

func TestRun_UnknownKind(t *testing.T) {
	runner, _ := newRunner(testutils.NewFakeTransport())
	assert.Error(t, runner.Run(context.Background(), Kind(0)))
}
