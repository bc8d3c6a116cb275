package testutils

import (
	"context"
	"fmt"
	"sync"

	"liveconsole/internal/transport"
)

// Call records one message handed to a FakeTransport.
type Call struct {
	Path  string
	Args  []any
	Query bool
}

// FakeTransport is an in-memory stand-in for the OSC client.
// Queries without a registered reply fail with transport.ErrRequest, like a timeout would.
type FakeTransport struct {
	mu          sync.Mutex
	calls       []Call
	replies     map[string][]any
	queryErrors map[string]error
	sendErr     error
	sendBudget  int
}

// NewFakeTransport creates a transport with no replies registered.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{
		replies:     make(map[string][]any),
		queryErrors: make(map[string]error),
		sendBudget:  -1,
	}
}

// Reply registers the reply returned for queries to path.
func (f *FakeTransport) Reply(path string, args ...any) *FakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	if args == nil {
		args = []any{}
	}
	f.replies[path] = args
	return f
}

// FailQuery makes queries to path return err.
func (f *FakeTransport) FailQuery(path string, err error) *FakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryErrors[path] = err
	return f
}

// FailSendsAfter lets n sends succeed and fails every later one with err.
func (f *FakeTransport) FailSendsAfter(n int, err error) *FakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendBudget = n
	f.sendErr = err
	return f
}

// Send implements the transport Send operation.
func (f *FakeTransport) Send(path string, args ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sendErr != nil && f.sendBudget == 0 {
		return f.sendErr
	}
	if f.sendBudget > 0 {
		f.sendBudget--
	}
	f.calls = append(f.calls, Call{Path: path, Args: args})
	return nil
}

// Query implements the transport Query operation.
func (f *FakeTransport) Query(ctx context.Context, path string, args ...any) ([]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, Call{Path: path, Args: args, Query: true})

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", transport.ErrRequest, path, err)
	}
	if err, ok := f.queryErrors[path]; ok {
		return nil, err
	}
	if reply, ok := f.replies[path]; ok {
		out := make([]any, len(reply))
		copy(out, reply)
		return out, nil
	}
	return nil, fmt.Errorf("%w: no response to %s", transport.ErrRequest, path)
}

// Calls returns every recorded call in order.
func (f *FakeTransport) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Sends returns the fire-and-forget calls in order.
func (f *FakeTransport) Sends() []Call {
	var out []Call
	for _, c := range f.Calls() {
		if !c.Query {
			out = append(out, c)
		}
	}
	return out
}

// Queries returns the query calls in order.
func (f *FakeTransport) Queries() []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Query {
			out = append(out, c)
		}
	}
	return out
}
