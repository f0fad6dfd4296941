// Package tasklist holds the ordered task collection and applies commands to it.
//
// Task numbers are 1-based and always contiguous. Every mutating operation
// validates its numbers against the list as it is when the operation runs,
// applies the whole batch, and then saves the full list once. A batch that
// fails validation changes nothing and saves nothing.
package tasklist

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nibzard/gopher-go/internal/parser"
	"github.com/nibzard/gopher-go/internal/task"
)

// DefaultPatternCacheSize bounds the number of compiled find patterns kept.
const DefaultPatternCacheSize = 64

// Store persists the full task sequence.
type Store interface {
	Save(tasks []*task.Task) error
}

// SaveError reports that a mutation was applied in memory but could not be
// persisted.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save tasks: %v", e.Err)
}

// Unwrap returns the store error.
func (e *SaveError) Unwrap() error {
	return e.Err
}

// Option configures a List.
type Option func(*List)

// WithStore persists the list after every mutation.
func WithStore(s Store) Option {
	return func(l *List) {
		l.store = s
	}
}

// WithLogger sets the logger used for mutation events.
func WithLogger(logger *log.Logger) Option {
	return func(l *List) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithPatternCacheSize sets how many compiled find patterns are cached.
// A size of zero or less disables the cache.
func WithPatternCacheSize(size int) Option {
	return func(l *List) {
		l.cacheSize = size
	}
}

// List is the ordered task collection.
type List struct {
	tasks     []*task.Task
	store     Store
	logger    *log.Logger
	cacheSize int
	patterns  *lru.Cache[string, *regexp.Regexp]
}

// New creates a list holding tasks in order.
func New(tasks []*task.Task, opts ...Option) *List {
	l := &List{
		tasks:     append([]*task.Task(nil), tasks...),
		logger:    log.New(io.Discard),
		cacheSize: DefaultPatternCacheSize,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.cacheSize > 0 {
		// lru.New only fails for a non-positive size.
		l.patterns, _ = lru.New[string, *regexp.Regexp](l.cacheSize)
	}
	return l
}

// Size returns the number of tasks.
func (l *List) Size() int {
	return len(l.tasks)
}

// Task returns the task with the given 1-based number.
func (l *List) Task(number int) (*task.Task, error) {
	if err := l.checkNumber(number); err != nil {
		return nil, err
	}
	return l.tasks[number-1], nil
}

// Tasks returns the tasks in order. The slice is a copy.
func (l *List) Tasks() []*task.Task {
	return append([]*task.Task(nil), l.tasks...)
}

func (l *List) checkNumber(number int) error {
	if number < 1 || number > len(l.tasks) {
		return &task.InvalidTaskNumberError{Input: strconv.Itoa(number), Size: len(l.tasks)}
	}
	return nil
}

func (l *List) checkNumbers(numbers []int) error {
	if len(numbers) == 0 {
		return task.ErrMissingTaskNumber
	}
	for _, n := range numbers {
		if err := l.checkNumber(n); err != nil {
			return err
		}
	}
	return nil
}

// Add appends t and returns the new size.
func (l *List) Add(t *task.Task) (int, error) {
	l.tasks = append(l.tasks, t)
	l.logger.Debug("task added", "task", t.SaveLine(), "size", len(l.tasks))
	return len(l.tasks), l.save()
}

// Delete removes the tasks with the given numbers. All numbers refer to the
// list before any removal, so "delete 2 1" removes the first two tasks.
// The removed tasks are returned in input order; a repeated number repeats
// its task in the result but removes it once.
func (l *List) Delete(numbers []int) ([]*task.Task, error) {
	if err := l.checkNumbers(numbers); err != nil {
		return nil, err
	}

	removed := make([]*task.Task, 0, len(numbers))
	drop := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		removed = append(removed, l.tasks[n-1])
		drop[n-1] = true
	}

	for i := len(l.tasks) - 1; i >= 0; i-- {
		if drop[i] {
			l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
		}
	}
	l.logger.Debug("tasks deleted", "numbers", numbers, "size", len(l.tasks))
	return removed, l.save()
}

// MarkDone marks the numbered tasks as done.
func (l *List) MarkDone(numbers []int) ([]*task.Task, error) {
	return l.setDone(numbers, true)
}

// MarkUndone marks the numbered tasks as not done.
func (l *List) MarkUndone(numbers []int) ([]*task.Task, error) {
	return l.setDone(numbers, false)
}

func (l *List) setDone(numbers []int, done bool) ([]*task.Task, error) {
	if err := l.checkNumbers(numbers); err != nil {
		return nil, err
	}
	changed := make([]*task.Task, 0, len(numbers))
	for _, n := range numbers {
		t := l.tasks[n-1]
		if done {
			t.MarkDone()
		} else {
			t.MarkUndone()
		}
		changed = append(changed, t)
	}
	l.logger.Debug("tasks marked", "numbers", numbers, "done", done)
	return changed, l.save()
}

// Update sets one field of the numbered task. The field must exist on the
// task's kind; dates are re-parsed and an event must still end no earlier
// than it starts.
func (l *List) Update(number int, field parser.Field, value string) (*task.Task, error) {
	t, err := l.Task(number)
	if err != nil {
		return nil, err
	}
	if !field.AppliesTo(t.Kind()) {
		return nil, &task.InvalidTokenError{
			Token:  string(field),
			Reason: fmt.Sprintf("a %s has no %s field", t.Kind(), field),
		}
	}

	if field == parser.FieldDescription {
		err = t.SetDescription(value)
	} else {
		err = updateDate(t, field, value)
	}
	if err != nil {
		return nil, err
	}
	l.logger.Debug("task updated", "number", number, "field", field, "task", t.SaveLine())
	return t, l.save()
}

func updateDate(t *task.Task, field parser.Field, value string) error {
	d, err := task.ParseDate(value)
	if err != nil {
		return err
	}
	switch field {
	case parser.FieldBy:
		return t.SetDue(d)
	case parser.FieldFrom:
		return t.SetStart(d)
	case parser.FieldTo:
		return t.SetEnd(d)
	}
	return &task.InvalidTokenError{Token: string(field), Reason: "not a date field"}
}

// Find returns a new list holding copies of the tasks whose display string
// matches keyword, case-insensitively. The keyword is a regular expression;
// one that does not compile is matched literally. The result has its own
// numbering and no store, and changes to it never reach l.
func (l *List) Find(keyword string) *List {
	re := l.pattern(keyword)
	var matches []*task.Task
	for _, t := range l.tasks {
		if re.MatchString(t.String()) {
			matches = append(matches, t.Clone())
		}
	}
	return New(matches, WithLogger(l.logger), WithPatternCacheSize(0))
}

func (l *List) pattern(keyword string) *regexp.Regexp {
	if l.patterns != nil {
		if re, ok := l.patterns.Get(keyword); ok {
			return re
		}
	}
	re, err := regexp.Compile("(?i)" + keyword)
	if err != nil {
		re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(keyword))
	}
	if l.patterns != nil {
		l.patterns.Add(keyword, re)
	}
	return re
}

// String renders the numbered listing, one task per line.
func (l *List) String() string {
	var b strings.Builder
	for i, t := range l.tasks {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, t)
	}
	return b.String()
}

func (l *List) save() error {
	if l.store == nil {
		return nil
	}
	if err := l.store.Save(l.tasks); err != nil {
		l.logger.Error("failed to save tasks", "err", err)
		return &SaveError{Err: err}
	}
	return nil
}
