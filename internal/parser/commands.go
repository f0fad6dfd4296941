package parser

import (
	"strings"

	"github.com/nibzard/gopher-go/internal/task"
)

// Command is one parsed user intent. The concrete types below are the only
// implementations.
type Command interface {
	// Name returns the command keyword, used in logs.
	Name() string
}

// Exit ends the session.
type Exit struct{}

// ListAll shows every task.
type ListAll struct{}

// Mark marks tasks as done. Numbers are 1-based, in input order, and may repeat.
type Mark struct {
	Numbers []int
}

// Unmark marks tasks as not done.
type Unmark struct {
	Numbers []int
}

// Delete removes tasks. Numbers refer to the list as it was before the command.
type Delete struct {
	Numbers []int
}

// Find searches task display strings.
type Find struct {
	Keyword string
}

// CreateTask adds a new task.
type CreateTask struct {
	Task *task.Task
}

// Update changes one field of an existing task.
type Update struct {
	Number int
	Field  Field
	Value  string
}

func (Exit) Name() string { return "bye" }
func (ListAll) Name() string { return "list" }
func (Mark) Name() string { return "mark" }
func (Unmark) Name() string { return "unmark" }
func (Delete) Name() string { return "delete" }
func (Find) Name() string { return "find" }
func (CreateTask) Name() string { return "create" }
func (Update) Name() string { return "update" }

// Field names a mutable task field.
type Field string

const (
	FieldDescription Field = "description"
	FieldBy          Field = "by"
	FieldFrom        Field = "from"
	FieldTo          Field = "to"
)

// ParseField recognises an update field name. A leading slash is optional,
// so both "by" and "/by" select the due date.
func ParseField(s string) (Field, bool) {
	name := strings.ToLower(strings.TrimPrefix(s, "/"))
	switch name {
	case "description", "desc":
		return FieldDescription, true
	case "by":
		return FieldBy, true
	case "from":
		return FieldFrom, true
	case "to":
		return FieldTo, true
	}
	return "", false
}

// AppliesTo reports whether the field exists on tasks of the given kind.
func (f Field) AppliesTo(kind task.Kind) bool {
	switch f {
	case FieldDescription:
		return true
	case FieldBy:
		return kind == task.KindDeadline
	case FieldFrom, FieldTo:
		return kind == task.KindEvent
	}
	return false
}
