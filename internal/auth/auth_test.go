package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestBadger(t *testing.T) *badger.DB {
	t.Helper()
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPassword_RoundTrip(t *testing.T) {
	hashed, err := HashPassword("hunter2")
	require.NoError(t, err)

	parsed, err := ParsePassword(hashed.String())
	require.NoError(t, err)
	assert.Equal(t, hashed, parsed)

	ok, err := CheckPassword("hunter2", parsed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword("hunter3", parsed)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParsePassword_Rejects(t *testing.T) {
	_, err := ParsePassword("nope")
	assert.Error(t, err)

	_, err = ParsePassword("bcrypt$x$y$z")
	assert.Error(t, err)
}

func TestAdminStore_CreateAndAuthenticate(t *testing.T) {
	store := NewAdminStore(openTestBadger(t))
	ctx := context.Background()

	admin, err := store.Create(ctx, "root", "secret")
	require.NoError(t, err)
	assert.NotContains(t, admin.Password, "secret")

	_, err = store.Create(ctx, "ROOT", "other")
	assert.ErrorIs(t, err, ErrAdminExists, "usernames are case-insensitive")

	got, err := store.Authenticate(ctx, "root", "secret")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)

	_, err = store.Authenticate(ctx, "root", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = store.Authenticate(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminStore_Ensure(t *testing.T) {
	store := NewAdminStore(openTestBadger(t))
	ctx := context.Background()

	first, created, err := store.Ensure(ctx, "root", "secret")
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := store.Ensure(ctx, "root", "changed")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestSessionStore_IssueResolveRevoke(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	sessions := NewSessionStore(rdb, time.Hour)
	ctx := context.Background()
	admin := &Admin{ID: uuid.New(), Username: "root"}

	sess, err := sessions.Issue(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, sess.Token, 64)
	assert.True(t, sess.Valid())

	got, err := sessions.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.AdminID)
	assert.Equal(t, "root", got.Username)

	// Expiry is enforced by Redis.
	mr.FastForward(2 * time.Hour)
	_, err = sessions.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	sess, err = sessions.Issue(ctx, admin)
	require.NoError(t, err)
	require.NoError(t, sessions.Revoke(ctx, sess.Token))
	_, err = sessions.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = sessions.Resolve(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidSession)
}
