package store

import (
	"context"

	"todolist/internal/kv"
	"todolist/internal/model"
)

// Users is the credential table, kept as one record mapping username to password.
// Usernames match exactly, case included.
type Users struct {
	kv kv.Storage
}

func NewUsers(st kv.Storage) *Users {
	return &Users{kv: st}
}

type credentialTable map[string]model.Credential

func (u *Users) load(ctx context.Context) (credentialTable, error) {
	table := credentialTable{}
	if err := loadJSON(ctx, u.kv, kv.KeyUsers, &table); err != nil {
		return nil, err
	}
	return table, nil
}

func (u *Users) Create(ctx context.Context, c model.Credential) (model.Credential, error) {
	table, err := u.load(ctx)
	if err != nil {
		return model.Credential{}, err
	}
	if _, ok := table[c.Username]; ok {
		return model.Credential{}, ErrConflict
	}

	table[c.Username] = c
	if err := saveJSON(ctx, u.kv, kv.KeyUsers, table); err != nil {
		return model.Credential{}, err
	}
	return c, nil
}

func (u *Users) GetByUsername(ctx context.Context, username string) (*model.Credential, error) {
	table, err := u.load(ctx)
	if err != nil {
		return nil, err
	}
	c, ok := table[username]
	if !ok {
		return nil, ErrNotFound
	}
	c.Username = username
	return &c, nil
}
