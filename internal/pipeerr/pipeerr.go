// Package pipeerr defines the pipeline's error taxonomy. Per-entity drops
// (degenerate geometry, unhashable blocks) are counted in stage metrics and
// never raised as errors; only the kinds below are allowed to reach the
// executor and terminate a run.
package pipeerr

import "fmt"

// Kind categorizes a pipeline-terminating error.
type Kind string

const (
	// InvalidInput means the input document cannot be parsed or the
	// selected-layer set is empty. Raised by Extract.
	InvalidInput Kind = "invalid_input"

	// DegenerateGeometry is recoverable and normally only counted in
	// Normalize's metrics; it is defined here so a caller that wants to
	// treat it as fatal (e.g. "abort if >50% of lines degenerate") has a
	// named kind to construct.
	DegenerateGeometry Kind = "degenerate_geometry"

	// OversizedInput means the line count handed to the detector exceeds
	// its configured safety cap. Fatal at the detector stage.
	OversizedInput Kind = "oversized_input"

	// CorruptUpstream means a required bundle key was missing or of the
	// wrong shape, or a stage produced NaN/Inf. Implies a programming
	// error, not a data error.
	CorruptUpstream Kind = "corrupt_upstream"

	// SinkUnavailable means the artifact sink failed after retries.
	SinkUnavailable Kind = "sink_unavailable"

	// Cancelled means cooperative shutdown was requested between stages.
	Cancelled Kind = "cancelled"
)

// Error is the error type every stage and the executor communicate
// termination with.
type Error struct {
	Kind    Kind
	Stage   string
	Message string
	Cause   error
}

// New builds an Error with no wrapped cause.
func New(kind Kind, stage, message string) *Error {
	return &Error{Kind: kind, Stage: stage, Message: message}
}

// Wrap builds an Error that carries an underlying cause.
func Wrap(kind Kind, stage, message string, cause error) *Error {
	return &Error{Kind: kind, Stage: stage, Message: message, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s[%s]: %s: %v", e.Stage, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s[%s]: %s", e.Stage, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by Kind, ignoring Stage/Message/Cause, so callers can
// do errors.Is(err, pipeerr.New(pipeerr.OversizedInput, "", "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Fatal reports whether a Kind is allowed to terminate the pipeline, per
// the error handling policy: only these five surface to the executor.
func Fatal(k Kind) bool {
	switch k {
	case InvalidInput, OversizedInput, CorruptUpstream, SinkUnavailable, Cancelled:
		return true
	default:
		return false
	}
}
