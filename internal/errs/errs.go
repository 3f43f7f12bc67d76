// Package errs provides coded errors for verification outcomes.
// Every scenario failure is classified into one of a small set of codes so
// the process exit status distinguishes navigation failures, assertion
// timeouts, and unexpected errors instead of collapsing them all into one.
package errs

import (
	"errors"
	"strings"
)

// Code is a verification error code.
type Code string

const (
	LaunchFailed       Code = "launch_failed"
	NavigationFailed   Code = "navigation_failed"
	AssertionTimeout   Code = "assertion_timeout"
	AssertionFailed    Code = "assertion_failed"
	ArtifactWriteError Code = "artifact_write_failed"
	Internal           Code = "internal"
)

// Error is a coded verification error.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" && e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a coded error with message.
func New(code Code, message string) error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a coded error with message and cause. The cause's code wins if
// it already carries one, so classification done close to the failure is not
// overwritten by outer layers.
func Wrap(code Code, message string, cause error) error {
	var coded *Error
	if errors.As(cause, &coded) && coded.Code != "" {
		code = coded.Code
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     cause,
	}
}

// CodeOf returns the error code, defaulting to internal.
func CodeOf(err error) Code {
	if err == nil {
		return Internal
	}
	var coded *Error
	if errors.As(err, &coded) {
		if coded.Code == "" {
			return Internal
		}
		return coded.Code
	}
	return Internal
}

// MessageOf returns the human-readable message for a coded error, or a
// generic fallback for untyped errors.
func MessageOf(err error) string {
	if err == nil {
		return string(Internal)
	}
	var coded *Error
	if errors.As(err, &coded) && coded.Message != "" {
		return coded.Message
	}
	return "internal error"
}

// Classify wraps a raw automation error with a code. Playwright does not
// export a typed timeout error, so timeouts are detected from the message
// text; anything else gets the caller's fallback code.
func Classify(err error, message string, fallback Code) error {
	if err == nil {
		return nil
	}
	code := fallback
	if IsTimeout(err) {
		code = AssertionTimeout
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsTimeout reports whether err looks like an automation timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	var coded *Error
	if errors.As(err, &coded) && coded.Code == AssertionTimeout {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out")
}

// ExitCode maps an error code to a process exit status.
// Zero is reserved for a fully passing run.
func ExitCode(code Code) int {
	switch code {
	case NavigationFailed:
		return 2
	case AssertionTimeout:
		return 3
	case AssertionFailed:
		return 4
	case LaunchFailed:
		return 5
	case ArtifactWriteError:
		return 6
	default:
		return 1
	}
}
