package store

import (
	"context"
	"encoding/json"
	"fmt"

	"todolist/internal/kv"
	"todolist/internal/model"
)

// Sessions persists the "remember me" record of the signed-in user.
type Sessions struct {
	kv kv.Storage
}

func NewSessions(st kv.Storage) *Sessions {
	return &Sessions{kv: st}
}

func (s *Sessions) Save(ctx context.Context, sess model.Session) error {
	return saveJSON(ctx, s.kv, kv.KeySession, sess)
}

// Load returns nil when no session is persisted.
func (s *Sessions) Load(ctx context.Context) (*model.Session, error) {
	raw, ok, err := s.kv.Get(ctx, kv.KeySession)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", kv.KeySession, err)
	}
	if !ok {
		return nil, nil
	}
	var sess model.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kv.KeySession, err)
	}
	return &sess, nil
}

func (s *Sessions) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, kv.KeySession); err != nil {
		return fmt.Errorf("delete %s: %w", kv.KeySession, err)
	}
	return nil
}
