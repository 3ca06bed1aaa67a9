package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/contentdesk/internal/common"
	"github.com/dmitrijs2005/contentdesk/internal/cryptox"
	"github.com/dmitrijs2005/contentdesk/internal/server/config"
	"github.com/dmitrijs2005/contentdesk/internal/server/models"
	"github.com/dmitrijs2005/contentdesk/internal/server/sessions"
	"github.com/dmitrijs2005/contentdesk/internal/server/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastParams = cryptox.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16}

func newAccountService(t *testing.T) (*AccountService, *storage.MemoryStorage, *sessions.MemoryStore) {
	t.Helper()
	cfg := &config.Config{SessionTTL: time.Hour}

	store := sessions.NewMemoryStore(cfg.SessionTTL, nil)
	st := storage.NewMemoryStorage(store)

	svc := NewAccountService(st, cfg, nil)
	svc.hashPassword = func(p string) string { return cryptox.HashPasswordWithParams(p, fastParams) }
	return svc, st, store
}

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := newAccountService(t)

	admin := int64(99)
	u, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "correct-horse"}, &admin)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, common.RoleEditor, u.Role)
	assert.NotEqual(t, "correct-horse", u.Password)

	ok, err := cryptox.VerifyPassword("correct-horse", u.Password)
	require.NoError(t, err)
	assert.True(t, ok)

	logs, err := st.GetActivityLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, common.ActionUserCreate, logs[0].Action)
	assert.Equal(t, admin, *logs[0].UserID)
}

func TestRegister_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAccountService(t)

	cases := []RegisterInput{
		{Username: "", Password: "long-enough"},
		{Username: "al", Password: "long-enough"},
		{Username: "bad name", Password: "long-enough"},
		{Username: "alice", Password: "short"},
		{Username: "alice", Password: "long-enough", Role: "owner"},
	}
	for _, in := range cases {
		_, err := svc.Register(ctx, in, nil)
		assert.True(t, errors.Is(err, common.ErrorValidation), "input %+v: got %v", in, err)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAccountService(t)

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "long-enough"}, nil)
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Username: "alice", Password: "long-enough"}, nil)
	assert.True(t, errors.Is(err, common.ErrorConstraintViolation))
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	svc, st, store := newAccountService(t)
	svc.newSessionID = func() string { return "sid-1" }

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "long-enough", Role: common.RoleAdmin}, nil)
	require.NoError(t, err)

	sid, u, err := svc.Login(ctx, "alice", "long-enough")
	require.NoError(t, err)
	assert.Equal(t, "sid-1", sid)
	require.NotNil(t, u.LastLogin)

	raw, found, err := store.Get(ctx, sid)
	require.NoError(t, err)
	require.True(t, found)

	var data SessionData
	require.NoError(t, json.Unmarshal(raw, &data))
	assert.Equal(t, u.ID, data.UserID)
	assert.Equal(t, common.RoleAdmin, data.Role)

	logs, err := st.GetActivityLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, common.ActionUserLogin, logs[1].Action)
}

func TestLogin_Unauthorized(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newAccountService(t)

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "long-enough"}, nil)
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice", "wrong-password")
	assert.True(t, errors.Is(err, common.ErrorUnauthorized))

	_, _, err = svc.Login(ctx, "nobody", "long-enough")
	assert.True(t, errors.Is(err, common.ErrorUnauthorized))

	n, err := store.Length(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLogin_CorruptHash(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := newAccountService(t)

	_, err := st.CreateUser(ctx, models.NewUser{Username: "legacy", Password: "plaintext"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "legacy", "plaintext")
	assert.True(t, errors.Is(err, common.ErrorUnauthorized))
}

func TestLogin_NoSessionStore(t *testing.T) {
	svc := NewAccountService(storage.NewMemoryStorage(nil), &config.Config{}, nil)

	_, _, err := svc.Login(context.Background(), "alice", "pw")
	assert.True(t, errors.Is(err, common.ErrorInternal))
}

func TestCurrentUserAndLogout(t *testing.T) {
	ctx := context.Background()
	svc, st, store := newAccountService(t)

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "long-enough"}, nil)
	require.NoError(t, err)
	sid, _, err := svc.Login(ctx, "alice", "long-enough")
	require.NoError(t, err)

	u, found, err := svc.CurrentUser(ctx, sid)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "alice", u.Username)

	require.NoError(t, svc.Logout(ctx, sid))

	_, found, err = svc.CurrentUser(ctx, sid)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, svc.Logout(ctx, sid), "logging out twice is a no-op")

	n, err := store.Length(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	logs, err := st.GetActivityLogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, common.ActionUserLogout, logs[len(logs)-1].Action)
}

func TestCurrentUser_DeletedUserDropsSession(t *testing.T) {
	ctx := context.Background()
	svc, st, store := newAccountService(t)

	u, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "long-enough"}, nil)
	require.NoError(t, err)
	sid, _, err := svc.Login(ctx, "alice", "long-enough")
	require.NoError(t, err)

	_, err = st.DeleteUser(ctx, u.ID)
	require.NoError(t, err)

	_, found, err := svc.CurrentUser(ctx, sid)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = store.Get(ctx, sid)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCurrentUser_UnreadableSession(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newAccountService(t)

	require.NoError(t, store.Set(ctx, "junk", []byte(`[1, 2, 3]`), time.Time{}))

	_, found, err := svc.CurrentUser(ctx, "junk")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := newAccountService(t)

	created, err := svc.EnsureAdmin(ctx, "", "")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = svc.EnsureAdmin(ctx, "root", "long-enough")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "root", "another-password")
	require.NoError(t, err)
	assert.False(t, created)

	u, found, err := st.GetUserByUsername(ctx, "root")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, common.RoleAdmin, u.Role)
}
