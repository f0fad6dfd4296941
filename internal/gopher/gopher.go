// Package gopher is the assistant session: it owns the task list, runs each
// command line through the parser and the list, and turns every outcome,
// including errors, into a reply for the user.
package gopher

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/gopher-go/internal/parser"
	"github.com/nibzard/gopher-go/internal/storage"
	"github.com/nibzard/gopher-go/internal/task"
	"github.com/nibzard/gopher-go/internal/tasklist"
)

// Reply is the response to one command line.
type Reply struct {
	Message string
	// Exit is set when the user ended the session.
	Exit bool
	// Err is the failure behind the message, if any. A reply to a change
	// that could not be saved carries both the change and a *tasklist.SaveError.
	Err error
}

// Options configures Open.
type Options struct {
	TaskFile      string
	FindCacheSize int
	Logger        *log.Logger
}

// Gopher holds one session's state. It is not safe for concurrent use;
// commands are handled one at a time.
type Gopher struct {
	list   *tasklist.List
	logger *log.Logger
}

// New creates a session over an existing list.
func New(list *tasklist.List, logger *log.Logger) *Gopher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Gopher{list: list, logger: logger}
}

// Open loads the task file and returns a session that saves back to it.
func Open(opts Options) (*Gopher, error) {
	if opts.TaskFile == "" {
		return nil, fmt.Errorf("task file path is empty")
	}
	store := storage.NewFileStore(opts.TaskFile, opts.Logger)
	loaded, err := store.Load()
	if err != nil {
		return nil, err
	}
	if loaded.Skipped > 0 && opts.Logger != nil {
		opts.Logger.Warn("some saved tasks could not be read", "skipped", loaded.Skipped, "path", opts.TaskFile)
	}
	list := tasklist.New(loaded.Tasks,
		tasklist.WithStore(store),
		tasklist.WithLogger(opts.Logger),
		tasklist.WithPatternCacheSize(opts.FindCacheSize),
	)
	return New(list, opts.Logger), nil
}

// List returns the session's task list.
func (g *Gopher) List() *tasklist.List {
	return g.list
}

// Greeting returns the message shown when a session starts.
func (g *Gopher) Greeting() string {
	return greetingMessage
}

// Respond handles one command line.
func (g *Gopher) Respond(input string) Reply {
	cmd, err := parser.Parse(input, g.list.Size())
	if err != nil {
		g.logger.Debug("command rejected", "input", input, "err", err)
		return Reply{Message: g.errorMessage(err), Err: err}
	}
	g.logger.Debug("command", "name", cmd.Name())

	switch c := cmd.(type) {
	case parser.Exit:
		return Reply{Message: exitMessage, Exit: true}
	case parser.ListAll:
		return Reply{Message: listMessage(g.list)}
	case parser.Find:
		return Reply{Message: matchesMessage(g.list.Find(c.Keyword))}
	case parser.CreateTask:
		size, err := g.list.Add(c.Task)
		return g.reply(addMessage(c.Task, size), err)
	case parser.Delete:
		removed, err := g.list.Delete(c.Numbers)
		if removed == nil {
			return g.reply("", err)
		}
		return g.reply(deleteMessage(removed, g.list.Size()), err)
	case parser.Mark:
		changed, err := g.list.MarkDone(c.Numbers)
		return g.reply(markMessage(changed), err)
	case parser.Unmark:
		changed, err := g.list.MarkUndone(c.Numbers)
		return g.reply(unmarkMessage(changed), err)
	case parser.Update:
		t, err := g.list.Update(c.Number, c.Field, c.Value)
		if t == nil {
			return g.reply("", err)
		}
		return g.reply(updateMessage(t), err)
	}
	err = fmt.Errorf("unhandled command %q", cmd.Name())
	return Reply{Message: g.errorMessage(err), Err: err}
}

// reply combines the success message with err. A save failure keeps the
// message, since the change was applied in memory, and appends a warning.
func (g *Gopher) reply(msg string, err error) Reply {
	if err == nil {
		return Reply{Message: msg}
	}
	var saveErr *tasklist.SaveError
	if errors.As(err, &saveErr) {
		return Reply{Message: msg + "\n" + saveWarning(saveErr.Err), Err: err}
	}
	return Reply{Message: g.errorMessage(err), Err: err}
}

func (g *Gopher) errorMessage(err error) string {
	var (
		dateErr    *task.DateError
		unknownErr *task.UnknownCommandError
		missingErr *task.MissingTokenError
		tokenErr   *task.InvalidTokenError
		numberErr  *task.InvalidTaskNumberError
	)
	switch {
	case errors.As(err, &dateErr):
		return invalidDateMessage
	case errors.As(err, &unknownErr),
		errors.As(err, &missingErr),
		errors.As(err, &tokenErr),
		errors.As(err, &numberErr),
		errors.Is(err, task.ErrEmptyDescription),
		errors.Is(err, task.ErrInvalidDuration),
		errors.Is(err, task.ErrMissingTaskNumber):
		return sentence(err.Error()) + "."
	}
	g.logger.Error("unexpected error", "err", err)
	return "Something went wrong: " + err.Error()
}
