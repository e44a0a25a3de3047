package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunValueLogGC_StopsOnCancel(t *testing.T) {
	db, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunValueLogGC(ctx, db, 10*time.Millisecond, zap.NewNop())
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("gc loop did not stop")
	}
}

func TestRunValueLogGC_InMemoryReturnsImmediately(t *testing.T) {
	db, err := OpenBadger("")
	require.NoError(t, err)
	defer db.Close()

	finished := make(chan struct{})
	go func() {
		RunValueLogGC(context.Background(), db, time.Hour, zap.NewNop())
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		assert.Fail(t, "expected immediate return for in-memory badger")
	}
}
