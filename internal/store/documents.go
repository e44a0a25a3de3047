package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"learning-hub/internal/auth"
	"learning-hub/internal/model"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	articlePrefix = "article:"
	slugPrefix    = "slug:"

	// Badger transactions are optimistic; concurrent writers to the same
	// keys get badger.ErrConflict and are retried.
	maxTxnAttempts = 5
)

func articleKey(id uuid.UUID) []byte {
	return []byte(articlePrefix + id.String())
}

func slugKey(s string) []byte {
	return []byte(slugPrefix + s)
}

// OpenBadger opens (or creates) the database at path. An empty path opens
// an in-memory database.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Silence default logger
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return db, nil
}

// DocumentStore keeps one JSON document per article in Badger, plus a
// slug -> id index key that enforces slug uniqueness. A document and its
// index entry are always written in the same transaction.
type DocumentStore struct {
	db       *badger.DB
	pipeline *Pipeline
}

func NewDocumentStore(db *badger.DB, pipeline *Pipeline) *DocumentStore {
	if pipeline == nil {
		pipeline = NewPipeline(nil)
	}
	return &DocumentStore{db: db, pipeline: pipeline}
}

func (s *DocumentStore) update(fn func(txn *badger.Txn) error) error {
	var err error
	for i := 0; i < maxTxnAttempts; i++ {
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

func getArticle(txn *badger.Txn, id uuid.UUID) (*model.Article, error) {
	item, err := txn.Get(articleKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	var a model.Article
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &a)
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func putArticle(txn *badger.Txn, a *model.Article) error {
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return txn.Set(articleKey(a.ID), data)
}

// claimSlug points the slug index at id, failing if another article owns it.
func claimSlug(txn *badger.Txn, s string, id uuid.UUID) error {
	item, err := txn.Get(slugKey(s))
	if err == nil {
		var owner []byte
		owner, err = item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if string(owner) != id.String() {
			return ErrConflict
		}
		return nil
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return err
	}
	return txn.Set(slugKey(s), []byte(id.String()))
}

// List returns every article, newest first.
func (s *DocumentStore) List(ctx context.Context) ([]model.Article, error) {
	articles := []model.Article{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(articlePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var a model.Article
				if err := json.Unmarshal(val, &a); err != nil {
					return err
				}
				articles = append(articles, a)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].CreatedAt.After(articles[j].CreatedAt)
	})
	return articles, nil
}

// GetByID loads an article by its permanent id.
func (s *DocumentStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	var a *model.Article
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		a, err = getArticle(txn, id)
		return err
	})
	return a, err
}

// GetBySlug resolves the slug index and loads the article.
func (s *DocumentStore) GetBySlug(ctx context.Context, slug string) (*model.Article, error) {
	var a *model.Article
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(slugKey(slug))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		raw, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		id, err := uuid.ParseBytes(raw)
		if err != nil {
			return fmt.Errorf("corrupt slug index for %q: %w", slug, err)
		}
		a, err = getArticle(txn, id)
		return err
	})
	return a, err
}

// Create builds a new article from fields and stores it.
func (s *DocumentStore) Create(ctx context.Context, sess auth.Session, fields model.Fields) (*model.Article, error) {
	if !sess.Valid() {
		return nil, auth.ErrUnauthenticated
	}

	a := model.NewArticle(sess.AdminID)
	fields.Apply(&a)
	if a.Color == "" {
		a.Color = model.DefaultColor
	}
	if err := s.pipeline.Prepare(nil, &a, true); err != nil {
		return nil, err
	}

	err := s.update(func(txn *badger.Txn) error {
		if err := claimSlug(txn, a.Slug, a.ID); err != nil {
			return err
		}
		return putArticle(txn, &a)
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Update applies fields to an existing article. An update that changes
// nothing is not written and keeps UpdatedAt.
func (s *DocumentStore) Update(ctx context.Context, sess auth.Session, id uuid.UUID, fields model.Fields) (*model.Article, error) {
	if !sess.Valid() {
		return nil, auth.ErrUnauthenticated
	}

	var result *model.Article
	err := s.update(func(txn *badger.Txn) error {
		prev, err := getArticle(txn, id)
		if err != nil {
			return err
		}

		a := prev.Clone()
		changed := fields.Apply(&a)
		if !changed {
			result = prev
			return nil
		}
		if err := s.pipeline.Prepare(prev, &a, changed); err != nil {
			return err
		}

		if a.Slug != prev.Slug {
			if err := claimSlug(txn, a.Slug, a.ID); err != nil {
				return err
			}
			if err := txn.Delete(slugKey(prev.Slug)); err != nil {
				return err
			}
		}
		if err := putArticle(txn, &a); err != nil {
			return err
		}
		result = &a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the article and its slug index entry.
func (s *DocumentStore) Delete(ctx context.Context, sess auth.Session, id uuid.UUID) error {
	if !sess.Valid() {
		return auth.ErrUnauthenticated
	}

	return s.update(func(txn *badger.Txn) error {
		a, err := getArticle(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(slugKey(a.Slug)); err != nil {
			return err
		}
		return txn.Delete(articleKey(id))
	})
}
