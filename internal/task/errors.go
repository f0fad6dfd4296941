package task

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the parser and the task list engine.
var (
	ErrEmptyDescription  = errors.New("the description of a task cannot be empty")
	ErrInvalidDuration   = errors.New("an event cannot end before it starts")
	ErrMissingTaskNumber = errors.New("please provide at least one task number")
)

// UnknownCommandError reports input whose leading keyword is not a command.
type UnknownCommandError struct {
	Input string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("sorry, I don't know what %q means", e.Input)
}

// MissingTokenError reports a required delimiter such as /by that is absent.
type MissingTokenError struct {
	Token string
	Kind  Kind
}

func (e *MissingTokenError) Error() string {
	article := "a"
	if e.Kind == KindEvent {
		article = "an"
	}
	return fmt.Sprintf("%s %s needs a %s token", article, e.Kind, e.Token)
}

// InvalidTokenError reports a delimiter or update field that is present but unusable.
type InvalidTokenError struct {
	Token  string
	Reason string
}

func (e *InvalidTokenError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("invalid token: %s", e.Reason)
	}
	return fmt.Sprintf("invalid token %q: %s", e.Token, e.Reason)
}

// InvalidTaskNumberError reports a task number that is not a positive
// integer or falls outside [1, Size].
type InvalidTaskNumberError struct {
	Input string
	Size  int
}

func (e *InvalidTaskNumberError) Error() string {
	if e.Size == 0 {
		return fmt.Sprintf("task number %s is invalid, the list is empty", e.Input)
	}
	return fmt.Sprintf("task number %s is invalid, pick a number from 1 to %d", e.Input, e.Size)
}

// DateError reports text that is neither yyyy-MM-dd nor yyyy-MM-dd HH:mm.
type DateError struct {
	Input string
	Err   error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date format %q, use yyyy-MM-dd or yyyy-MM-dd HH:mm", e.Input)
}

// Unwrap returns the underlying time parse error.
func (e *DateError) Unwrap() error {
	return e.Err
}

// LineError reports a save line that cannot be decoded.
type LineError struct {
	Line   string
	Reason string
	Err    error
}

func (e *LineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed task line %q: %s: %v", e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed task line %q: %s", e.Line, e.Reason)
}

// Unwrap returns the underlying error, if any.
func (e *LineError) Unwrap() error {
	return e.Err
}
