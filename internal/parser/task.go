package parser

import (
	"github.com/nibzard/gopher-go/internal/task"
)

const (
	tokenBy   = "/by"
	tokenFrom = "/from"
	tokenTo   = "/to"
)

// ParseTask builds a task from a creation command:
//
//	todo <description>
//	deadline <description> /by <date>
//	event <description> /from <date> /to <date>
//
// Whitespace inside the description is kept as typed.
func ParseTask(line string) (*task.Task, error) {
	ws := splitWords(line)
	if len(ws) == 0 {
		return nil, &task.UnknownCommandError{Input: line}
	}
	kind, ok := task.KindFromKeyword(ws[0].text)
	if !ok {
		return nil, &task.UnknownCommandError{Input: line}
	}
	args := ws[1:]

	switch kind {
	case task.KindDeadline:
		return parseDeadline(line, args)
	case task.KindEvent:
		return parseEvent(line, args)
	default:
		return task.NewTodo(span(line, args))
	}
}

func parseDeadline(line string, args []word) (*task.Task, error) {
	by, err := findToken(args, tokenBy)
	if err != nil {
		return nil, err
	}
	desc := description(line, args, by)
	if desc == "" {
		return nil, task.ErrEmptyDescription
	}
	if by < 0 {
		return nil, &task.MissingTokenError{Token: tokenBy, Kind: task.KindDeadline}
	}
	due, err := task.ParseDate(span(line, args[by+1:]))
	if err != nil {
		return nil, err
	}
	return task.NewDeadline(desc, due)
}

func parseEvent(line string, args []word) (*task.Task, error) {
	from, err := findToken(args, tokenFrom)
	if err != nil {
		return nil, err
	}
	to, err := findToken(args, tokenTo)
	if err != nil {
		return nil, err
	}

	first := from
	if first < 0 || (to >= 0 && to < first) {
		first = to
	}
	desc := description(line, args, first)
	if desc == "" {
		return nil, task.ErrEmptyDescription
	}
	if from < 0 {
		return nil, &task.MissingTokenError{Token: tokenFrom, Kind: task.KindEvent}
	}
	if to < 0 {
		return nil, &task.MissingTokenError{Token: tokenTo, Kind: task.KindEvent}
	}
	if to < from {
		return nil, &task.InvalidTokenError{Token: tokenTo, Reason: "must come after " + tokenFrom}
	}

	start, err := task.ParseDate(span(line, args[from+1:to]))
	if err != nil {
		return nil, err
	}
	end, err := task.ParseDate(span(line, args[to+1:]))
	if err != nil {
		return nil, err
	}
	return task.NewEvent(desc, start, end)
}

// findToken returns the index of the delimiter in args, or -1. A delimiter
// given more than once is an *task.InvalidTokenError.
func findToken(args []word, token string) (int, error) {
	idx := -1
	for i, a := range args {
		if a.text != token {
			continue
		}
		if idx >= 0 {
			return -1, &task.InvalidTokenError{Token: token, Reason: "appears more than once"}
		}
		idx = i
	}
	return idx, nil
}

// description returns the text of the words before the delimiter at end, or
// of all words when end is negative.
func description(line string, args []word, end int) string {
	if end < 0 {
		end = len(args)
	}
	return span(line, args[:end])
}
