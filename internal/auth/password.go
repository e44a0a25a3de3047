package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	algorithm  = "argon2id"
	saltLength = 16
	keyLength  = 32
)

// HashedPassword is stored as "argon2id$t=..,m=..,p=..,l=..$salt$hash".
type HashedPassword struct {
	Config argon2Config
	Salt   string
	Hash   string
}

type argon2Config struct {
	Time      uint32
	Memory    uint32
	Threads   uint8
	KeyLength uint32
}

func (c argon2Config) String() string {
	return fmt.Sprintf("t=%d,m=%d,p=%d,l=%d", c.Time, c.Memory, c.Threads, c.KeyLength)
}

func parseArgon2Config(s string) (argon2Config, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return argon2Config{}, fmt.Errorf("invalid argon2id config %q", s)
	}

	values := make([]uint64, 4)
	for i, p := range parts {
		_, raw, ok := strings.Cut(p, "=")
		if !ok {
			return argon2Config{}, fmt.Errorf("invalid argon2id config %q", s)
		}
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return argon2Config{}, fmt.Errorf("failed to parse argon2id config: %w", err)
		}
		values[i] = v
	}

	return argon2Config{
		Time:      uint32(values[0]),
		Memory:    uint32(values[1]),
		Threads:   uint8(values[2]),
		KeyLength: uint32(values[3]),
	}, nil
}

func (p HashedPassword) String() string {
	return strings.Join([]string{algorithm, p.Config.String(), p.Salt, p.Hash}, "$")
}

// ParsePassword reads the string form produced by HashedPassword.String.
func ParsePassword(s string) (HashedPassword, error) {
	pieces := strings.SplitN(s, "$", 4)
	if len(pieces) < 4 {
		return HashedPassword{}, errors.New("unrecognized password string format")
	}
	if pieces[0] != algorithm {
		return HashedPassword{}, fmt.Errorf("unsupported password algorithm %q", pieces[0])
	}

	cfg, err := parseArgon2Config(pieces[1])
	if err != nil {
		return HashedPassword{}, err
	}
	return HashedPassword{Config: cfg, Salt: pieces[2], Hash: pieces[3]}, nil
}

// HashPassword hashes password with a random salt.
func HashPassword(password string) (HashedPassword, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return HashedPassword{}, fmt.Errorf("failed to generate salt: %w", err)
	}

	cfg := argon2Config{
		Time:      1,
		Memory:    64 * 1024, // KiB
		Threads:   2,
		KeyLength: keyLength,
	}
	key := argon2.IDKey([]byte(password), salt, cfg.Time, cfg.Memory, cfg.Threads, cfg.KeyLength)

	return HashedPassword{
		Config: cfg,
		Salt:   base64.StdEncoding.EncodeToString(salt),
		Hash:   base64.StdEncoding.EncodeToString(key),
	}, nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(password string, hashed HashedPassword) (bool, error) {
	salt, err := base64.StdEncoding.DecodeString(hashed.Salt)
	if err != nil {
		return false, fmt.Errorf("failed to decode salt: %w", err)
	}
	want, err := base64.StdEncoding.DecodeString(hashed.Hash)
	if err != nil {
		return false, fmt.Errorf("failed to decode hash: %w", err)
	}

	cfg := hashed.Config
	got := argon2.IDKey([]byte(password), salt, cfg.Time, cfg.Memory, cfg.Threads, cfg.KeyLength)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
