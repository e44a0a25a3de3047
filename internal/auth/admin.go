package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

var ErrAdminExists = errors.New("admin already exists")

// Admin is an account allowed to manage articles.
type Admin struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminStore keeps admin accounts in Badger under "admin:<username>".
type AdminStore struct {
	db *badger.DB
}

func NewAdminStore(db *badger.DB) *AdminStore {
	return &AdminStore{db: db}
}

func adminKey(username string) []byte {
	return []byte("admin:" + strings.ToLower(username))
}

// Create registers a new admin with the given password.
func (s *AdminStore) Create(ctx context.Context, username, password string) (*Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	admin := &Admin{
		ID:        uuid.New(),
		Username:  username,
		Password:  hashed.String(),
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(admin)
	if err != nil {
		return nil, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(adminKey(username))
		if err == nil {
			return ErrAdminExists
		} else if err != badger.ErrKeyNotFound {
			return err
		}
		return txn.Set(adminKey(username), data)
	})
	if err != nil {
		return nil, err
	}
	return admin, nil
}

// Get loads an admin by username.
func (s *AdminStore) Get(ctx context.Context, username string) (*Admin, error) {
	var admin Admin
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(adminKey(username))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &admin)
		})
	})
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// Authenticate returns the admin if password matches. Unknown users and
// wrong passwords both yield ErrInvalidCredentials.
func (s *AdminStore) Authenticate(ctx context.Context, username, password string) (*Admin, error) {
	admin, err := s.Get(ctx, username)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}

	hashed, err := ParsePassword(admin.Password)
	if err != nil {
		return nil, err
	}
	ok, err := CheckPassword(password, hashed)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

// Ensure creates the admin unless one with that username exists.
func (s *AdminStore) Ensure(ctx context.Context, username, password string) (*Admin, bool, error) {
	admin, err := s.Create(ctx, username, password)
	if errors.Is(err, ErrAdminExists) {
		existing, err := s.Get(ctx, username)
		return existing, false, err
	}
	return admin, err == nil, err
}
