package testutils

import (
	"io"
	"sync"
)

// Step is one scripted result of a Readline call.
type Step struct {
	Line string
	Err  error
}

// ScriptedReader replays steps and then reports io.EOF.
type ScriptedReader struct {
	mu     sync.Mutex
	steps  []Step
	reads  int
	closed bool
}

// NewScriptedReader creates a reader returning each line in order.
func NewScriptedReader(lines ...string) *ScriptedReader {
	steps := make([]Step, len(lines))
	for i, l := range lines {
		steps[i] = Step{Line: l}
	}
	return &ScriptedReader{steps: steps}
}

// NewStepReader creates a reader from explicit steps, including errors.
func NewStepReader(steps ...Step) *ScriptedReader {
	return &ScriptedReader{steps: steps}
}

// Readline implements the console LineReader.
func (r *ScriptedReader) Readline() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reads++
	if len(r.steps) == 0 {
		return "", io.EOF
	}
	step := r.steps[0]
	r.steps = r.steps[1:]
	return step.Line, step.Err
}

// Close implements the console LineReader.
func (r *ScriptedReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// Reads reports how many times Readline was called, i.e. how many prompts were shown.
func (r *ScriptedReader) Reads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reads
}

// Closed reports whether Close was called.
func (r *ScriptedReader) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
