package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("no admin session")
)

// Session identifies the admin on whose behalf a write is made. It is
// passed explicitly to every mutating repository call.
type Session struct {
	Token     string    `json:"token"`
	AdminID   uuid.UUID `json:"admin_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid reports whether the session names an admin.
func (s Session) Valid() bool {
	return s.AdminID != uuid.Nil
}

// SessionStore keeps session tokens in Redis with a TTL.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(token string) string {
	return "session:" + token
}

// Issue creates a new session for admin.
func (s *SessionStore) Issue(ctx context.Context, admin *Admin) (Session, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return Session{}, fmt.Errorf("failed to generate token: %w", err)
	}

	sess := Session{
		Token:     hex.EncodeToString(buf),
		AdminID:   admin.ID,
		Username:  admin.Username,
		ExpiresAt: time.Now().Add(s.ttl).UTC(),
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return Session{}, err
	}
	if err := s.rdb.Set(ctx, sessionKey(sess.Token), data, s.ttl).Err(); err != nil {
		return Session{}, fmt.Errorf("failed to store session: %w", err)
	}
	return sess, nil
}

// Resolve looks up the session for token.
func (s *SessionStore) Resolve(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrInvalidSession
	}
	val, err := s.rdb.Get(ctx, sessionKey(token)).Bytes()
	if err == redis.Nil {
		return Session{}, ErrInvalidSession
	} else if err != nil {
		return Session{}, err
	}

	var sess Session
	if err := json.Unmarshal(val, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Revoke deletes the session. Unknown tokens are not an error.
func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionKey(token)).Err()
}
