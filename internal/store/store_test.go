package store

import (
	"context"
	"errors"
	"time"

	"todolist/internal/kv/memory"
)

// countingStorage records how many writes reach the backend.
type countingStorage struct {
	*memory.Store
	sets int
}

func newCountingStorage() *countingStorage {
	return &countingStorage{Store: memory.NewStore()}
}

func (c *countingStorage) Set(ctx context.Context, key, value string) error {
	c.sets++
	return c.Store.Set(ctx, key, value)
}

// failingStorage fails every call.
type failingStorage struct{}

var errBackend = errors.New("backend down")

func (failingStorage) Get(context.Context, string) (string, bool, error) {
	return "", false, errBackend
}
func (failingStorage) Set(context.Context, string, string) error { return errBackend }
func (failingStorage) Delete(context.Context, string) error      { return errBackend }

// tickingClock advances one millisecond per call so task ids never collide.
func tickingClock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return start.Add(time.Duration(n) * time.Millisecond)
	}
}

var testEpoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
