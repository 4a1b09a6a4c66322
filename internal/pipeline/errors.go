package pipeline

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the failure class of a pipeline stage.
type ErrorKind string

const (
	KindInvalidImage         ErrorKind = "invalid_image"
	KindNoContourFound       ErrorKind = "no_contour_found"
	KindInsufficientCorners  ErrorKind = "insufficient_corners"
	KindDegenerateCorners    ErrorKind = "degenerate_corners"
	KindDegenerateHomography ErrorKind = "degenerate_homography"
	KindBorderTrimFailure    ErrorKind = "border_trim_failure"
)

// Error tags a per-image failure with the stage that produced it. Every
// failure is recoverable at the batch level; the caller records it and
// moves on.
type Error struct {
	Kind   ErrorKind
	Stage  string
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Stage, e.Detail, e.Kind)
}

func stageErr(kind ErrorKind, stage, format string, args ...any) *Error {
	return &Error{Kind: kind, Stage: stage, Detail: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err when it is a pipeline Error, else "".
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
