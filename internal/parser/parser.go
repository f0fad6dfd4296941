package parser

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/nibzard/gopher-go/internal/task"
)

// Parse classifies a command line. size is the current number of tasks and
// bounds every task number in the input.
//
// Keywords are matched case-insensitively in a fixed priority order: bye and
// list must match exactly, mark, unmark, delete and find match as prefixes,
// then a leading todo/deadline/event creates a task, then update. Anything
// else is an *task.UnknownCommandError.
func Parse(input string, size int) (Command, error) {
	line := strings.TrimSpace(input)
	lower := strings.ToLower(line)

	switch {
	case lower == "bye":
		return Exit{}, nil
	case lower == "list":
		return ListAll{}, nil
	case strings.HasPrefix(lower, "mark"):
		nums, err := ParseTaskNumbers(line, size)
		if err != nil {
			return nil, err
		}
		return Mark{Numbers: nums}, nil
	case strings.HasPrefix(lower, "unmark"):
		nums, err := ParseTaskNumbers(line, size)
		if err != nil {
			return nil, err
		}
		return Unmark{Numbers: nums}, nil
	case strings.HasPrefix(lower, "delete"):
		nums, err := ParseTaskNumbers(line, size)
		if err != nil {
			return nil, err
		}
		return Delete{Numbers: nums}, nil
	case strings.HasPrefix(lower, "find"):
		return Find{Keyword: ParseKeyword(line)}, nil
	case isTaskKeyword(line):
		t, err := ParseTask(line)
		if err != nil {
			return nil, err
		}
		return CreateTask{Task: t}, nil
	case strings.HasPrefix(lower, "update"):
		return parseUpdate(line, size)
	}
	return nil, &task.UnknownCommandError{Input: line}
}

func isTaskKeyword(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	_, ok := task.KindFromKeyword(fields[0])
	return ok
}

// ParseTaskNumbers reads the whitespace-separated task numbers that follow
// the leading keyword. Duplicates and input order are preserved.
func ParseTaskNumbers(line string, size int) ([]int, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, task.ErrMissingTaskNumber
	}
	nums := make([]int, 0, len(fields)-1)
	for _, f := range fields[1:] {
		n, err := ParseTaskNumber(f, size)
		if err != nil {
			return nil, err
		}
		nums = append(nums, n)
	}
	return nums, nil
}

// ParseTaskNumber parses one 1-based task number and checks it against size.
func ParseTaskNumber(s string, size int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > size {
		return 0, &task.InvalidTaskNumberError{Input: s, Size: size}
	}
	return n, nil
}

// ParseKeyword returns everything after the first run of whitespace,
// verbatim. A bare keyword yields the empty string.
func ParseKeyword(line string) string {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return ""
	}
	return strings.TrimLeftFunc(line[i:], unicode.IsSpace)
}

func parseUpdate(line string, size int) (Command, error) {
	ws := splitWords(line)
	if len(ws) < 2 {
		return nil, task.ErrMissingTaskNumber
	}
	n, err := ParseTaskNumber(ws[1].text, size)
	if err != nil {
		return nil, err
	}
	if len(ws) < 3 {
		return nil, &task.InvalidTokenError{Reason: "update needs a field: description, by, from or to"}
	}
	field, ok := ParseField(ws[2].text)
	if !ok {
		return nil, &task.InvalidTokenError{Token: ws[2].text, Reason: "not a field that can be updated"}
	}
	return Update{
		Number: n,
		Field:  field,
		Value:  span(line, ws[3:]),
	}, nil
}
