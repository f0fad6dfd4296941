// Package task defines the task variants, their text renderings and the
// errors shared across the command pipeline.
package task

import (
	"fmt"
	"strings"
	"time"
)

// Kind tags a task variant.
type Kind int

const (
	KindTodo Kind = iota
	KindDeadline
	KindEvent
)

// Letter returns the single-letter tag used in displays and save lines.
func (k Kind) Letter() string {
	switch k {
	case KindTodo:
		return "T"
	case KindDeadline:
		return "D"
	case KindEvent:
		return "E"
	default:
		return "?"
	}
}

// String returns the command keyword for the kind.
func (k Kind) String() string {
	switch k {
	case KindTodo:
		return "todo"
	case KindDeadline:
		return "deadline"
	case KindEvent:
		return "event"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// dateCount is the number of timestamps a save line carries for the kind.
func (k Kind) dateCount() int {
	switch k {
	case KindDeadline:
		return 1
	case KindEvent:
		return 2
	default:
		return 0
	}
}

// KindFromKeyword maps a command keyword (todo, deadline, event) to a Kind.
// Matching is case-insensitive.
func KindFromKeyword(word string) (Kind, bool) {
	switch strings.ToLower(word) {
	case "todo":
		return KindTodo, true
	case "deadline":
		return KindDeadline, true
	case "event":
		return KindEvent, true
	}
	return 0, false
}

// KindFromLetter maps a save-line letter to a Kind.
func KindFromLetter(letter string) (Kind, bool) {
	switch letter {
	case "T":
		return KindTodo, true
	case "D":
		return KindDeadline, true
	case "E":
		return KindEvent, true
	}
	return 0, false
}

// Task is a single tracked item. The kind is fixed at construction; only the
// status, description and the dates that apply to the kind can change.
type Task struct {
	kind        Kind
	description string
	done        bool
	due         time.Time
	start       time.Time
	end         time.Time
}

// NewTodo creates a todo.
func NewTodo(description string) (*Task, error) {
	desc, err := cleanDescription(description)
	if err != nil {
		return nil, err
	}
	return &Task{kind: KindTodo, description: desc}, nil
}

// NewDeadline creates a deadline due at the given time.
func NewDeadline(description string, due time.Time) (*Task, error) {
	desc, err := cleanDescription(description)
	if err != nil {
		return nil, err
	}
	return &Task{kind: KindDeadline, description: desc, due: due}, nil
}

// NewEvent creates an event spanning start to end.
func NewEvent(description string, start, end time.Time) (*Task, error) {
	desc, err := cleanDescription(description)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, ErrInvalidDuration
	}
	return &Task{kind: KindEvent, description: desc, start: start, end: end}, nil
}

func cleanDescription(description string) (string, error) {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return "", ErrEmptyDescription
	}
	return desc, nil
}

func (t *Task) Kind() Kind { return t.kind }
func (t *Task) Description() string { return t.description }
func (t *Task) Done() bool { return t.done }
func (t *Task) Due() time.Time { return t.due }
func (t *Task) Start() time.Time { return t.start }
func (t *Task) End() time.Time { return t.end }

// MarkDone sets the task as done. It is idempotent.
func (t *Task) MarkDone() {
	t.done = true
}

// MarkUndone sets the task as not done. It is idempotent.
func (t *Task) MarkUndone() {
	t.done = false
}

// SetDescription replaces the description.
func (t *Task) SetDescription(description string) error {
	desc, err := cleanDescription(description)
	if err != nil {
		return err
	}
	t.description = desc
	return nil
}

// SetDue replaces the due date of a deadline.
func (t *Task) SetDue(due time.Time) error {
	if t.kind != KindDeadline {
		return &InvalidTokenError{Token: "/by", Reason: fmt.Sprintf("a %s has no due date", t.kind)}
	}
	t.due = due
	return nil
}

// SetStart replaces the start of an event. The event must still end no
// earlier than it starts.
func (t *Task) SetStart(start time.Time) error {
	if t.kind != KindEvent {
		return &InvalidTokenError{Token: "/from", Reason: fmt.Sprintf("a %s has no start date", t.kind)}
	}
	if t.end.Before(start) {
		return ErrInvalidDuration
	}
	t.start = start
	return nil
}

// SetEnd replaces the end of an event.
func (t *Task) SetEnd(end time.Time) error {
	if t.kind != KindEvent {
		return &InvalidTokenError{Token: "/to", Reason: fmt.Sprintf("a %s has no end date", t.kind)}
	}
	if end.Before(t.start) {
		return ErrInvalidDuration
	}
	t.end = end
	return nil
}

// Clone returns an independent copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}

func (t *Task) statusIcon() string {
	if t.done {
		return "X"
	}
	return " "
}

// String renders the task for display, e.g.
// "[D][ ] return book (by Aug 30 2024 00:00)".
func (t *Task) String() string {
	s := fmt.Sprintf("[%s][%s] %s", t.kind.Letter(), t.statusIcon(), t.description)
	switch t.kind {
	case KindDeadline:
		s += fmt.Sprintf(" (by %s)", FormatDisplay(t.due))
	case KindEvent:
		s += fmt.Sprintf(" (from %s to %s)", FormatDisplay(t.start), FormatDisplay(t.end))
	}
	return s
}

// SaveLine renders the task as one line of the task file.
func (t *Task) SaveLine() string {
	parts := []string{t.kind.Letter(), t.statusIcon(), t.description}
	switch t.kind {
	case KindDeadline:
		parts = append(parts, FormatSave(t.due))
	case KindEvent:
		parts = append(parts, FormatSave(t.start), FormatSave(t.end))
	}
	return strings.Join(parts, fieldSeparator)
}
