package auth

import (
	"context"
	"fmt"
	"testing"

	"todolist/internal/kv"
	"todolist/internal/kv/memory"
	"todolist/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, *memory.Store) {
	st := memory.NewStore()
	return NewService(store.NewUsers(st), store.NewSessions(st)), st
}

func TestRegister_StartsSession(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	sess, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Username)

	cur, err := svc.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "alice", cur.Username)

	raw, ok, _ := st.Get(ctx, kv.KeySession)
	require.True(t, ok)
	assert.JSONEq(t, `{"username":"alice"}`, raw)
}

func TestRegister_Duplicate(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))
	before, _, _ := st.Get(ctx, kv.KeyUsers)

	_, err = svc.Register(ctx, "alice", "different")
	assert.ErrorIs(t, err, ErrDuplicateUser)

	after, _, _ := st.Get(ctx, kv.KeyUsers)
	assert.Equal(t, before, after)

	// A failed registration does not sign anyone in.
	cur, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestRegister_MissingField(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	for _, tc := range []struct{ user, pass string }{
		{"", "pw"},
		{"alice", ""},
		{"", ""},
	} {
		_, err := svc.Register(ctx, tc.user, tc.pass)
		assert.ErrorIs(t, err, ErrMissingField, "user=%q pass=%q", tc.user, tc.pass)
	}
	assert.Empty(t, st.Keys())
}

func TestRegister_MissingFieldBeforeDuplicate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "bob", "pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "alice", "")
	assert.ErrorIs(t, err, ErrMissingField)

	cur, _ := svc.Current(ctx)
	assert.Nil(t, cur)

	sess, err := svc.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Username)

	cur, err = svc.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "alice", cur.Username)
}

func TestRegisterLogoutLoginRoundTrip(t *testing.T) {
	pairs := []struct{ user, pass string }{
		{"alice", "pw1"},
		{"Bob Smith", "p@ss word"},
		{"ünïcødé", "日本語"},
		{" spaced ", " "},
	}
	for _, p := range pairs {
		t.Run(fmt.Sprintf("%q", p.user), func(t *testing.T) {
			svc, _ := newTestService()
			ctx := context.Background()

			_, err := svc.Register(ctx, p.user, p.pass)
			require.NoError(t, err)
			require.NoError(t, svc.Logout(ctx))

			sess, err := svc.Login(ctx, p.user, p.pass)
			require.NoError(t, err)
			assert.Equal(t, p.user, sess.Username)
		})
	}
}

func TestLogout_KeepsCredentials(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	require.NoError(t, st.Set(ctx, kv.KeyTodos, `{"alice":[]}`))

	require.NoError(t, svc.Logout(ctx))
	assert.Equal(t, []string{kv.KeyTodos, kv.KeyUsers}, st.Keys())

	// Logging out twice is harmless.
	assert.NoError(t, svc.Logout(ctx))
}

func TestCurrent_TrustsPersistedSession(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	// No credential exists for this user; the record is trusted anyway.
	require.NoError(t, st.Set(ctx, kv.KeySession, `{"username":"ghost"}`))

	cur, err := svc.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "ghost", cur.Username)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Please enter both username and password", Message(ErrMissingField))
	assert.Equal(t, "Username already exists", Message(ErrDuplicateUser))
	assert.Equal(t, "Invalid username or password", Message(fmt.Errorf("wrapped: %w", ErrInvalidCredentials)))
	assert.Equal(t, "", Message(store.ErrNotFound))
	assert.False(t, IsAuthError(nil))
	assert.True(t, IsAuthError(ErrDuplicateUser))
}
