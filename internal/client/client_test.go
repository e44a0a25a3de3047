package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"learning-hub/internal/auth"
	"learning-hub/internal/model"
	web "learning-hub/internal/server"
	"learning-hub/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAPI(t *testing.T) (*Client, Credential) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	st, err := store.NewHybridStore(mr.Addr(), "", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(st.Close)

	admins := auth.NewAdminStore(st.Badger())
	_, err = admins.Create(context.Background(), "root", "secret")
	require.NoError(t, err)

	srv, err := web.NewServer(st, st, admins, auth.NewSessionStore(st.Redis(), time.Hour), zap.NewNop())
	require.NoError(t, err)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	c := New(ts.URL + "/api/")
	cred, err := c.Login(context.Background(), "root", "secret")
	require.NoError(t, err)
	return c, cred
}

func fields(title string) model.Fields {
	return model.Fields{
		Title:       model.String(title),
		Description: model.String("desc"),
		Content:     model.String("<p>body</p>"),
		Language:    model.String(title),
	}
}

func TestClient_CRUD(t *testing.T) {
	c, cred := newTestAPI(t)
	ctx := context.Background()

	a, err := c.Create(ctx, cred, fields("C++"))
	require.NoError(t, err)
	assert.Equal(t, "cpp", a.Slug)

	got, err := c.GetBySlug(ctx, "cpp")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	updated, err := c.Update(ctx, cred, a.ID, model.Fields{Requirements: []string{}})
	require.NoError(t, err)
	assert.Empty(t, updated.Requirements)

	list, err := c.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, c.Delete(ctx, cred, a.ID))
	_, err = c.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	c, cred := newTestAPI(t)
	ctx := context.Background()

	_, err := c.GetBySlug(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = c.Create(ctx, cred, fields("Go"))
	require.NoError(t, err)
	_, err = c.Create(ctx, cred, fields("GO"))
	assert.ErrorIs(t, err, store.ErrConflict)

	_, err = c.Create(ctx, cred, model.Fields{Title: model.String("Zig")})
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "content")

	_, err = c.Create(ctx, Credential{Token: "wrong"}, fields("Zig"))
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = c.Login(ctx, "root", "bad")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close()

	c := New(ts.URL)
	_, err := c.ListAll(context.Background())

	var terr *TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "list articles", terr.Op)
}

func TestClient_UnexpectedStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := New(ts.URL).GetByID(context.Background(), uuid.New())
	var terr *TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, http.StatusBadGateway, terr.Status)
}

func TestClient_Import(t *testing.T) {
	c, cred := newTestAPI(t)
	ctx := context.Background()

	job, err := c.Import(ctx, cred, "https://ziglang.org/learn", "Zig", "orange")
	require.NoError(t, err)
	assert.Equal(t, model.ImportPending, job.Status)

	got, err := c.GetImport(ctx, cred, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "orange", got.Color)
}
