package gopher

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nibzard/gopher-go/internal/task"
	"github.com/nibzard/gopher-go/internal/tasklist"
)

const (
	greetingMessage    = "Hello! I'm Gopher.\nWhat can I do for you?"
	exitMessage        = "Bye. Hope to see you again soon!"
	emptyListMessage   = "Your task list is empty."
	noMatchMessage     = "No matching tasks found."
	invalidDateMessage = "Invalid date format! Please use yyyy-MM-dd or yyyy-MM-dd HH:mm."
)

func countMessage(n int) string {
	if n == 1 {
		return "Now you have 1 task in the list."
	}
	return fmt.Sprintf("Now you have %d tasks in the list.", n)
}

func listMessage(l *tasklist.List) string {
	if l.Size() == 0 {
		return emptyListMessage
	}
	return "Here are the tasks in your list:\n" + l.String()
}

func matchesMessage(view *tasklist.List) string {
	if view.Size() == 0 {
		return noMatchMessage
	}
	return "Here are the matching tasks in your list:\n" + view.String()
}

func addMessage(t *task.Task, size int) string {
	return fmt.Sprintf("Got it. I've added this task:\n  %s\n%s", t, countMessage(size))
}

func deleteMessage(removed []*task.Task, size int) string {
	var b strings.Builder
	for _, t := range removed {
		fmt.Fprintf(&b, "Noted. I've removed this task:\n  %s\n", t)
	}
	b.WriteString(countMessage(size))
	return b.String()
}

func markMessage(changed []*task.Task) string {
	return eachTask(changed, "Nice! I've marked this task as done:\n  %s")
}

func unmarkMessage(changed []*task.Task) string {
	return eachTask(changed, "OK, I've marked this task as not done yet:\n  %s")
}

func updateMessage(t *task.Task) string {
	return fmt.Sprintf("Got it. I've updated this task:\n  %s", t)
}

func saveWarning(err error) string {
	return fmt.Sprintf("Warning: your changes could not be saved (%v).", err)
}

func eachTask(tasks []*task.Task, format string) string {
	parts := make([]string, len(tasks))
	for i, t := range tasks {
		parts[i] = fmt.Sprintf(format, t)
	}
	return strings.Join(parts, "\n")
}

// sentence upper-cases the first letter of an error message.
func sentence(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
