package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"learning-hub/internal/auth"
	"learning-hub/internal/model"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	listCacheKey  = "cache:articles"
	cacheIndexKey = "cache:keys"
	importQueue   = "queue:import"

	DefaultCacheTTL = 5 * time.Minute

	invalidateTimeout = 5 * time.Second
	popTimeout        = time.Second
)

func slugCacheKey(s string) string {
	return "cache:slug:" + s
}

func importKey(id uuid.UUID) string {
	return fmt.Sprintf("import:%s", id)
}

// HybridStore combines Badger (authoritative documents) and Redis (read
// cache, sessions and the import queue).
type HybridStore struct {
	rdb      *redis.Client
	db       *badger.DB
	docs     *DocumentStore
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewHybridStore connects to Redis and opens Badger at badgerPath.
// Pass badgerPath="" to run Badger in memory.
func NewHybridStore(redisAddr, badgerPath string, logger *zap.Logger) (*HybridStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	db, err := OpenBadger(badgerPath)
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return newHybridStore(rdb, db, logger), nil
}

func newHybridStore(rdb *redis.Client, db *badger.DB, logger *zap.Logger) *HybridStore {
	return &HybridStore{
		rdb:      rdb,
		db:       db,
		docs:     NewDocumentStore(db, NewPipeline(nil)),
		logger:   logger,
		cacheTTL: DefaultCacheTTL,
	}
}

// SetCacheTTL changes how long cached reads live.
func (s *HybridStore) SetCacheTTL(ttl time.Duration) {
	s.cacheTTL = ttl
}

// Redis exposes the client for components sharing the connection.
func (s *HybridStore) Redis() *redis.Client {
	return s.rdb
}

// Badger exposes the database for components sharing it.
func (s *HybridStore) Badger() *badger.DB {
	return s.db
}

// Close cleans up connections
func (s *HybridStore) Close() {
	if s.rdb != nil {
		s.rdb.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
}

func (s *HybridStore) cacheGet(ctx context.Context, key string, dst any) bool {
	val, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	} else if err != nil {
		s.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(val, dst); err != nil {
		s.logger.Warn("Cache entry unreadable", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *HybridStore) cacheSet(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key, data, s.cacheTTL)
	pipe.SAdd(ctx, cacheIndexKey, key)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// invalidate drops every cached read. Slugs move when titles change, so
// per-key invalidation is not enough. It runs after the Badger write has
// committed, so it must not be cut short by the caller going away.
func (s *HybridStore) invalidate(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invalidateTimeout)
	defer cancel()

	keys, err := s.rdb.SMembers(ctx, cacheIndexKey).Result()
	if err != nil {
		s.logger.Warn("Cache invalidation failed", zap.Error(err))
		return
	}
	keys = append(keys, cacheIndexKey, listCacheKey)
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("Cache invalidation failed", zap.Error(err))
	}
}

// List returns all articles, served from Redis when cached.
func (s *HybridStore) List(ctx context.Context) ([]model.Article, error) {
	var articles []model.Article
	if s.cacheGet(ctx, listCacheKey, &articles) {
		return articles, nil
	}

	articles, err := s.docs.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, listCacheKey, articles)
	return articles, nil
}

// GetBySlug is cached; misses are not.
func (s *HybridStore) GetBySlug(ctx context.Context, slug string) (*model.Article, error) {
	var article model.Article
	if s.cacheGet(ctx, slugCacheKey(slug), &article) {
		return &article, nil
	}

	a, err := s.docs.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, slugCacheKey(slug), a)
	return a, nil
}

func (s *HybridStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	return s.docs.GetByID(ctx, id)
}

func (s *HybridStore) Create(ctx context.Context, sess auth.Session, fields model.Fields) (*model.Article, error) {
	a, err := s.docs.Create(ctx, sess, fields)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info("Article created",
		zap.String("id", a.ID.String()),
		zap.String("slug", a.Slug),
		zap.String("admin", sess.Username))
	return a, nil
}

func (s *HybridStore) Update(ctx context.Context, sess auth.Session, id uuid.UUID, fields model.Fields) (*model.Article, error) {
	a, err := s.docs.Update(ctx, sess, id, fields)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info("Article updated",
		zap.String("id", a.ID.String()),
		zap.String("slug", a.Slug),
		zap.String("admin", sess.Username))
	return a, nil
}

func (s *HybridStore) Delete(ctx context.Context, sess auth.Session, id uuid.UUID) error {
	if err := s.docs.Delete(ctx, sess, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.logger.Info("Article deleted", zap.String("id", id.String()), zap.String("admin", sess.Username))
	return nil
}

// SaveImport stores the job; pending jobs are also pushed to the queue.
func (s *HybridStore) SaveImport(ctx context.Context, job *model.ImportJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, importKey(job.ID), data, 0)
	if job.Status == model.ImportPending {
		pipe.LPush(ctx, importQueue, job.ID.String())
	}
	_, err = pipe.Exec(ctx)
	return err
}

// GetImport loads a job by id.
func (s *HybridStore) GetImport(ctx context.Context, id uuid.UUID) (*model.ImportJob, error) {
	val, err := s.rdb.Get(ctx, importKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrImportNotFound
	} else if err != nil {
		return nil, err
	}

	var job model.ImportJob
	if err := json.Unmarshal(val, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// PopImport waits for a job in the Redis queue (Blocking) until ctx is done.
func (s *HybridStore) PopImport(ctx context.Context) (uuid.UUID, error) {
	for {
		// Short BRPOP rounds so cancellation is noticed between them.
		result, err := s.rdb.BRPop(ctx, popTimeout, importQueue).Result()
		if err == redis.Nil {
			if ctx.Err() != nil {
				return uuid.Nil, ctx.Err()
			}
			continue
		} else if err != nil {
			return uuid.Nil, err
		}
		return uuid.Parse(result[1])
	}
}
