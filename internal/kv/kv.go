package kv

import (
	"context"
)

// Keys of the persisted records.
const (
	KeyUsers   = "users"
	KeyTodos   = "todos"
	KeySession = "todoUser"
)

// Storage is a string key-value store. Get reports ok=false for a missing key.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
