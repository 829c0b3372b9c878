// Package autodiff provides reverse-mode automatic differentiation via a
// gradient tape. An AutodiffBackend wraps any tensor backend and records
// every operation it executes; walking the tape in reverse yields exact
// gradients for all inputs.
package autodiff

import (
	"github.com/vecnorm-ml/vecnorm/internal/autodiff/ops"
)

// GradientTape records operations during the forward pass for later
// backward traversal. Not safe for concurrent use.
type GradientTape struct {
	operations []ops.Operation
	recording  bool
}

// NewGradientTape creates a tape that starts recording.
func NewGradientTape() *GradientTape {
	return &GradientTape{recording: true}
}

// Record appends an operation to the tape if recording is enabled.
func (t *GradientTape) Record(op ops.Operation) {
	if t.recording {
		t.operations = append(t.operations, op)
	}
}

// Operations returns the recorded operations in execution order.
func (t *GradientTape) Operations() []ops.Operation {
	return t.operations
}

// IsRecording reports whether new operations are being recorded.
func (t *GradientTape) IsRecording() bool {
	return t.recording
}

// StopRecording pauses recording. Operations executed while paused are
// not differentiated.
func (t *GradientTape) StopRecording() {
	t.recording = false
}

// ResumeRecording resumes recording after StopRecording.
func (t *GradientTape) ResumeRecording() {
	t.recording = true
}

// Reset clears the tape and resumes recording.
func (t *GradientTape) Reset() {
	t.Dispose()
	t.recording = true
}

// retainedReleaser is implemented by operations that hold a reference on
// an input buffer past the forward pass.
type retainedReleaser interface {
	ReleaseRetained()
}

// Dispose releases resources held by recorded operations and clears the
// tape. Use it when a recorded graph is discarded without running backward.
func (t *GradientTape) Dispose() {
	for _, op := range t.operations {
		if r, ok := op.(retainedReleaser); ok {
			r.ReleaseRetained()
		}
	}
	t.operations = nil
}
