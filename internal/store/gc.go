package store

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// RunValueLogGC periodically reclaims space in Badger's value log until
// ctx is cancelled. In-memory databases have nothing to collect.
func RunValueLogGC(ctx context.Context, db *badger.DB, interval time.Duration, logger *zap.Logger) {
	if db.Opts().InMemory {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		// Keep collecting while Badger finds files worth rewriting.
		for {
			err := db.RunValueLogGC(0.7)
			if err == nil {
				continue
			}
			if !errors.Is(err, badger.ErrNoRewrite) {
				logger.Warn("Value log GC failed", zap.Error(err))
			}
			break
		}
	}
}
