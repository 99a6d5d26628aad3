package store

import (
	"context"
	"strings"
	"time"

	"todolist/internal/kv"
	"todolist/internal/model"
)

// Tasks keeps every user's list in one record. Each mutation rewrites the
// whole record with the owner's list replaced.
type Tasks struct {
	kv  kv.Storage
	now func() time.Time
}

type Option func(*Tasks)

// WithClock replaces time.Now as the source of task ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(t *Tasks) { t.now = now }
}

func NewTasks(st kv.Storage, opts ...Option) *Tasks {
	t := &Tasks{kv: st, now: time.Now}
	for _, o := range opts {
		o(t)
	}
	return t
}

type taskTable map[string][]model.Task

func (t *Tasks) load(ctx context.Context) (taskTable, error) {
	table := taskTable{}
	if err := loadJSON(ctx, t.kv, kv.KeyTodos, &table); err != nil {
		return nil, err
	}
	return table, nil
}

// update applies fn to the owner's list and writes the record back if fn reports a change.
func (t *Tasks) update(ctx context.Context, owner string, fn func([]model.Task) ([]model.Task, bool)) error {
	table, err := t.load(ctx)
	if err != nil {
		return err
	}
	next, changed := fn(table[owner])
	if !changed {
		return nil
	}
	if next == nil {
		next = []model.Task{}
	}
	table[owner] = next
	return saveJSON(ctx, t.kv, kv.KeyTodos, table)
}

// Add appends a task to the owner's list. Blank text is ignored and yields a nil task.
func (t *Tasks) Add(ctx context.Context, owner, text string) (*model.Task, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	now := t.now().UTC()
	task := model.Task{
		ID:        now.UnixMilli(),
		Text:      text,
		Completed: false,
		CreatedAt: now,
	}

	err := t.update(ctx, owner, func(list []model.Task) ([]model.Task, bool) {
		out := make([]model.Task, 0, len(list)+1)
		out = append(out, list...)
		return append(out, task), true
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Toggle flips completion on the task with the given id. It returns nil when
// no task matches. Tasks sharing an id are all flipped.
func (t *Tasks) Toggle(ctx context.Context, owner string, id int64) (*model.Task, error) {
	var toggled *model.Task
	err := t.update(ctx, owner, func(list []model.Task) ([]model.Task, bool) {
		out := make([]model.Task, len(list))
		copy(out, list)
		for i := range out {
			if out[i].ID != id {
				continue
			}
			out[i].Completed = !out[i].Completed
			if toggled == nil {
				tt := out[i]
				toggled = &tt
			}
		}
		return out, toggled != nil
	})
	if err != nil {
		return nil, err
	}
	return toggled, nil
}

// Delete removes every task with the given id and reports whether any matched.
func (t *Tasks) Delete(ctx context.Context, owner string, id int64) (bool, error) {
	removed := false
	err := t.update(ctx, owner, func(list []model.Task) ([]model.Task, bool) {
		out := make([]model.Task, 0, len(list))
		for _, task := range list {
			if task.ID == id {
				removed = true
				continue
			}
			out = append(out, task)
		}
		return out, removed
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

func (t *Tasks) List(ctx context.Context, owner string, f model.Filter) ([]model.Task, error) {
	table, err := t.load(ctx)
	if err != nil {
		return nil, err
	}
	return FilterTasks(table[owner], f), nil
}

func (t *Tasks) Stats(ctx context.Context, owner string) (model.Stats, error) {
	table, err := t.load(ctx)
	if err != nil {
		return model.Stats{}, err
	}
	return model.CountTasks(table[owner]), nil
}

// FilterTasks returns a new slice holding the tasks selected by f, in order.
func FilterTasks(tasks []model.Task, f model.Filter) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if f.Match(task) {
			out = append(out, task)
		}
	}
	return out
}
