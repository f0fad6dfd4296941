package tasklist

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nibzard/gopher-go/internal/parser"
	"github.com/nibzard/gopher-go/internal/task"
)

// fakeStore records every save as the list of save lines.
type fakeStore struct {
	saves [][]string
	err   error
}

func (s *fakeStore) Save(tasks []*task.Task) error {
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = t.SaveLine()
	}
	s.saves = append(s.saves, lines)
	return s.err
}

func mustTask(t *testing.T, line string) *task.Task {
	t.Helper()
	tk, err := parser.ParseTask(line)
	if err != nil {
		t.Fatalf("ParseTask(%q) failed: %v", line, err)
	}
	return tk
}

func newTestList(t *testing.T, n int) (*List, *fakeStore) {
	t.Helper()
	store := &fakeStore{}
	tasks := make([]*task.Task, 0, n)
	for i := 1; i <= n; i++ {
		tasks = append(tasks, mustTask(t, fmt.Sprintf("todo task %d", i)))
	}
	return New(tasks, WithStore(store)), store
}

func descriptions(l *List) []string {
	var out []string
	for _, t := range l.Tasks() {
		out = append(out, t.Description())
	}
	return out
}

func TestAdd(t *testing.T) {
	l, store := newTestList(t, 0)

	size, err := l.Add(mustTask(t, "todo read book"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if size != 1 {
		t.Errorf("size: got %d, want 1", size)
	}
	size, err = l.Add(mustTask(t, "deadline return book /by 2024-08-30"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if size != 2 || l.Size() != 2 {
		t.Errorf("size: got %d/%d, want 2", size, l.Size())
	}
	if len(store.saves) != 2 {
		t.Fatalf("saves: got %d, want 2", len(store.saves))
	}
	last := store.saves[1]
	if last[1] != "D |   | return book | 2024-08-30 00:00" {
		t.Errorf("saved line: got %q", last[1])
	}
}

func TestDeleteSnapshotSemantics(t *testing.T) {
	l, store := newTestList(t, 3)

	removed, err := l.Delete([]int{2, 1})
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(removed) != 2 || removed[0].Description() != "task 2" || removed[1].Description() != "task 1" {
		t.Errorf("removed: got %v", removed)
	}
	got := descriptions(l)
	if len(got) != 1 || got[0] != "task 3" {
		t.Fatalf("remaining: got %v, want [task 3]", got)
	}
	first, err := l.Task(1)
	if err != nil || first.Description() != "task 3" {
		t.Errorf("Task(1): got %v, %v", first, err)
	}
	if len(store.saves) != 1 {
		t.Errorf("saves: got %d, want 1", len(store.saves))
	}
}

func TestDeleteDuplicatesAndOrder(t *testing.T) {
	l, _ := newTestList(t, 5)

	removed, err := l.Delete([]int{4, 2, 4})
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(removed) != 3 {
		t.Errorf("removed: got %d, want 3", len(removed))
	}
	want := []string{"task 1", "task 3", "task 5"}
	got := descriptions(l)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("remaining: got %v, want %v", got, want)
	}
}

func TestDeleteInvalidBatchIsAtomic(t *testing.T) {
	l, store := newTestList(t, 3)

	_, err := l.Delete([]int{1, 4})
	var numErr *task.InvalidTaskNumberError
	if !errors.As(err, &numErr) {
		t.Fatalf("got %v, want InvalidTaskNumberError", err)
	}
	if numErr.Input != "4" || numErr.Size != 3 {
		t.Errorf("error fields: got %+v", numErr)
	}
	if l.Size() != 3 {
		t.Errorf("size: got %d, want 3", l.Size())
	}
	if len(store.saves) != 0 {
		t.Errorf("saves: got %d, want 0", len(store.saves))
	}
}

func TestMarkAndUnmark(t *testing.T) {
	l, store := newTestList(t, 3)

	changed, err := l.MarkDone([]int{3, 1})
	if err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}
	if len(changed) != 2 || changed[0].Description() != "task 3" {
		t.Errorf("changed: got %v", changed)
	}
	want := []string{"T | X | task 1", "T |   | task 2", "T | X | task 3"}
	if fmt.Sprint(store.saves[0]) != fmt.Sprint(want) {
		t.Errorf("saved: got %v, want %v", store.saves[0], want)
	}

	if _, err := l.MarkUndone([]int{1}); err != nil {
		t.Fatalf("MarkUndone failed: %v", err)
	}
	tk, _ := l.Task(1)
	if tk.Done() {
		t.Error("task 1 should not be done")
	}
	if len(store.saves) != 2 {
		t.Errorf("saves: got %d, want 2", len(store.saves))
	}
}

func TestMarkInvalidBatchIsAtomic(t *testing.T) {
	l, store := newTestList(t, 2)

	if _, err := l.MarkDone([]int{1, 2, 3}); err == nil {
		t.Fatal("expected error")
	}
	for _, tk := range l.Tasks() {
		if tk.Done() {
			t.Errorf("%s was marked despite invalid batch", tk)
		}
	}
	if len(store.saves) != 0 {
		t.Errorf("saves: got %d, want 0", len(store.saves))
	}

	if _, err := l.MarkUndone(nil); !errors.Is(err, task.ErrMissingTaskNumber) {
		t.Errorf("MarkUndone(nil): got %v, want ErrMissingTaskNumber", err)
	}
}

func TestTaskOutOfRange(t *testing.T) {
	for size := 0; size <= 3; size++ {
		l, _ := newTestList(t, size)
		for _, n := range []int{-1, 0, size + 1, size + 10} {
			_, err := l.Task(n)
			var numErr *task.InvalidTaskNumberError
			if !errors.As(err, &numErr) {
				t.Errorf("size %d, Task(%d): got %v, want InvalidTaskNumberError", size, n, err)
			}
		}
		for n := 1; n <= size; n++ {
			if _, err := l.Task(n); err != nil {
				t.Errorf("size %d, Task(%d): unexpected error %v", size, n, err)
			}
		}
	}
}

func TestFind(t *testing.T) {
	store := &fakeStore{}
	l := New([]*task.Task{
		mustTask(t, "todo read Book"),
		mustTask(t, "deadline return book /by 2024-08-30"),
		mustTask(t, "event meeting /from 2024-08-30 /to 2024-08-31"),
	}, WithStore(store))

	tests := []struct {
		keyword string
		want    []string
	}{
		{"", []string{"read Book", "return book", "meeting"}},
		{"BOOK", []string{"read Book", "return book"}},
		{"aug 30", []string{"return book", "meeting"}},
		{"[D]", []string{"read Book", "return book"}},
		{`\[D\]`, []string{"return book"}},
		{"(unclosed", nil},
		{"^\\[E\\]", []string{"meeting"}},
		{"nothing here", nil},
	}
	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			view := l.Find(tt.keyword)
			got := descriptions(view)
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("Find(%q): got %v, want %v", tt.keyword, got, tt.want)
			}
		})
	}
	if len(store.saves) != 0 {
		t.Errorf("Find must not save, got %d saves", len(store.saves))
	}
}

func TestFindViewIsIndependent(t *testing.T) {
	l, store := newTestList(t, 3)

	view := l.Find("task [23]")
	if view.Size() != 2 {
		t.Fatalf("view size: got %d, want 2", view.Size())
	}
	first, err := view.Task(1)
	if err != nil || first.Description() != "task 2" {
		t.Fatalf("view Task(1): got %v, %v", first, err)
	}
	if got := view.String(); got != "1. [T][ ] task 2\n2. [T][ ] task 3" {
		t.Errorf("view String: got %q", got)
	}

	if _, err := view.MarkDone([]int{1}); err != nil {
		t.Fatalf("MarkDone on view failed: %v", err)
	}
	if _, err := view.Delete([]int{2}); err != nil {
		t.Fatalf("Delete on view failed: %v", err)
	}
	orig, _ := l.Task(2)
	if orig.Done() || l.Size() != 3 {
		t.Error("changes to the view leaked into the source list")
	}
	if len(store.saves) != 0 {
		t.Errorf("view mutations must not save, got %d saves", len(store.saves))
	}
}

func TestFindCachesPatterns(t *testing.T) {
	l, _ := newTestList(t, 2)
	l.Find("task")
	l.Find("task")
	if l.patterns == nil || l.patterns.Len() != 1 {
		t.Fatalf("expected one cached pattern")
	}

	uncached := New(nil, WithPatternCacheSize(0))
	if uncached.patterns != nil {
		t.Error("expected cache to be disabled")
	}
	if uncached.Find("x").Size() != 0 {
		t.Error("expected no matches")
	}
}

func TestUpdate(t *testing.T) {
	store := &fakeStore{}
	l := New([]*task.Task{
		mustTask(t, "todo read book"),
		mustTask(t, "deadline return book /by 2024-08-30"),
		mustTask(t, "event trip /from 2024-08-30 /to 2024-09-02"),
	}, WithStore(store))

	tests := []struct {
		name   string
		number int
		field  parser.Field
		value  string
		want   string
	}{
		{"todo description", 1, parser.FieldDescription, "read two books", "T |   | read two books"},
		{"deadline due", 2, parser.FieldBy, "2024-09-15 12:00", "D |   | return book | 2024-09-15 12:00"},
		{"event start", 3, parser.FieldFrom, "2024-08-31", "E |   | trip | 2024-08-31 00:00 | 2024-09-02 00:00"},
		{"event end", 3, parser.FieldTo, "2024-09-05 18:00", "E |   | trip | 2024-08-31 00:00 | 2024-09-05 18:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.Update(tt.number, tt.field, tt.value)
			if err != nil {
				t.Fatalf("Update failed: %v", err)
			}
			if got.SaveLine() != tt.want {
				t.Errorf("got %q, want %q", got.SaveLine(), tt.want)
			}
		})
	}
	if len(store.saves) != len(tests) {
		t.Errorf("saves: got %d, want %d", len(store.saves), len(tests))
	}
}

func TestUpdateErrors(t *testing.T) {
	store := &fakeStore{}
	l := New([]*task.Task{
		mustTask(t, "todo read book"),
		mustTask(t, "event trip /from 2024-08-30 /to 2024-09-02"),
	}, WithStore(store))

	var tokenErr *task.InvalidTokenError
	if _, err := l.Update(1, parser.FieldBy, "2024-08-30"); !errors.As(err, &tokenErr) {
		t.Errorf("by on todo: got %v, want InvalidTokenError", err)
	}
	var numErr *task.InvalidTaskNumberError
	if _, err := l.Update(3, parser.FieldDescription, "x"); !errors.As(err, &numErr) {
		t.Errorf("out of range: got %v, want InvalidTaskNumberError", err)
	}
	var dateErr *task.DateError
	if _, err := l.Update(2, parser.FieldFrom, "soon"); !errors.As(err, &dateErr) {
		t.Errorf("bad date: got %v, want DateError", err)
	}
	if _, err := l.Update(2, parser.FieldTo, "2024-08-01"); !errors.Is(err, task.ErrInvalidDuration) {
		t.Errorf("end before start: got %v, want ErrInvalidDuration", err)
	}
	if _, err := l.Update(1, parser.FieldDescription, "  "); !errors.Is(err, task.ErrEmptyDescription) {
		t.Errorf("blank description: got %v, want ErrEmptyDescription", err)
	}
	if len(store.saves) != 0 {
		t.Errorf("failed updates must not save, got %d saves", len(store.saves))
	}
}

func TestSaveError(t *testing.T) {
	store := &fakeStore{err: errors.New("disk full")}
	l := New(nil, WithStore(store))

	size, err := l.Add(mustTask(t, "todo read book"))
	var saveErr *SaveError
	if !errors.As(err, &saveErr) {
		t.Fatalf("got %v, want SaveError", err)
	}
	if size != 1 || l.Size() != 1 {
		t.Errorf("mutation should still apply, size %d", l.Size())
	}
}

func TestString(t *testing.T) {
	l, _ := newTestList(t, 0)
	if l.String() != "" {
		t.Errorf("empty list: got %q", l.String())
	}
	l, _ = newTestList(t, 2)
	if got, want := l.String(), "1. [T][ ] task 1\n2. [T][ ] task 2"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
