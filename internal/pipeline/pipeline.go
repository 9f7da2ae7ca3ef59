// Package pipeline holds the outcome type and host-level error taxonomy
// shared by the import and export pipelines.
package pipeline

import "fmt"

// Status is the tri-state outcome of a run. Recoverable failures (bad input,
// no usable camera) are reported as cancelled with a message rather than as
// errors; ordinary Go errors are reserved for I/O and caller contract
// violations.
type Status int

const (
	StatusFinished Status = iota
	StatusCancelled
)

func (s Status) String() string {
	if s == StatusCancelled {
		return "cancelled"
	}
	return "finished"
}

// Result is what a pipeline run reports back to the command layer.
type Result struct {
	Status  Status
	Message string
}

// Finished builds a successful result with a formatted status message.
func Finished(format string, args ...any) Result {
	return Result{Status: StatusFinished, Message: fmt.Sprintf(format, args...)}
}

// Cancelled builds a recoverable-failure result with a formatted message.
func Cancelled(format string, args ...any) Result {
	return Result{Status: StatusCancelled, Message: fmt.Sprintf(format, args...)}
}

// TargetError reports that no usable camera could be resolved: nothing to
// write keyframes to on import, or nothing to read from on export.
type TargetError struct {
	Reason string
}

func (e *TargetError) Error() string { return e.Reason }

// AnimationMissingError reports an export source without any keyframe track.
type AnimationMissingError struct {
	Object string
}

func (e *AnimationMissingError) Error() string {
	return fmt.Sprintf("camera %q has no animation data", e.Object)
}
