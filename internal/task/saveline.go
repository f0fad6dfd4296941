package task

import (
	"strings"
	"time"
)

const fieldSeparator = " | "

// ParseSaveLine decodes one line produced by SaveLine.
// The description may itself contain the field separator, so the dates are
// taken from the right and the head is split at most twice.
func ParseSaveLine(line string) (*Task, error) {
	head, _, _ := strings.Cut(line, fieldSeparator)
	kind, ok := KindFromLetter(head)
	if !ok {
		if !strings.Contains(line, fieldSeparator) {
			return nil, &LineError{Line: line, Reason: "expected at least 3 fields"}
		}
		return nil, &LineError{Line: line, Reason: "unknown task kind " + head}
	}

	n := kind.dateCount()
	rest := line
	dateFields := make([]string, n)
	for i := n - 1; i >= 0; i-- {
		idx := strings.LastIndex(rest, fieldSeparator)
		if idx < 0 {
			return nil, &LineError{Line: line, Reason: "missing date fields"}
		}
		dateFields[i] = rest[idx+len(fieldSeparator):]
		rest = rest[:idx]
	}

	fields := strings.SplitN(rest, fieldSeparator, 3)
	if len(fields) < 3 {
		if n > 0 {
			return nil, &LineError{Line: line, Reason: "missing date fields"}
		}
		return nil, &LineError{Line: line, Reason: "expected at least 3 fields"}
	}

	var done bool
	switch fields[1] {
	case "X":
		done = true
	case " ":
	default:
		return nil, &LineError{Line: line, Reason: "status must be X or a space"}
	}
	description := fields[2]

	dates := make([]time.Time, 0, n)
	for _, f := range dateFields {
		d, err := time.ParseInLocation(DateTimeLayout, f, time.UTC)
		if err != nil {
			return nil, &LineError{Line: line, Reason: "bad date", Err: err}
		}
		dates = append(dates, d)
	}

	var (
		t   *Task
		err error
	)
	switch kind {
	case KindTodo:
		t, err = NewTodo(description)
	case KindDeadline:
		t, err = NewDeadline(description, dates[0])
	case KindEvent:
		t, err = NewEvent(description, dates[0], dates[1])
	}
	if err != nil {
		return nil, &LineError{Line: line, Reason: "invalid task", Err: err}
	}
	t.done = done
	return t, nil
}
