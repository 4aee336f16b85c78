package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "pionix"

// RevocationStore remembers revoked tokens until they would have expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)

	// RevokeSubject marks every token of subject issued at or before at as revoked.
	RevokeSubject(ctx context.Context, subject string, at time.Time, ttl time.Duration) error
	SubjectRevokedAt(ctx context.Context, subject string) (time.Time, bool, error)
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// NewRedisClient connects and pings the server.
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		MinIdleConns: 2,
		MaxRetries:   3,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}
	return client, nil
}

// Key joins non-empty parts under prefix with ":".
func Key(prefix string, parts ...string) string {
	if prefix == "" {
		prefix = defaultPrefix
	}
	var sb strings.Builder
	sb.WriteString(prefix)
	for _, part := range parts {
		if part != "" {
			sb.WriteString(":")
			sb.WriteString(part)
		}
	}
	return sb.String()
}

// fingerprint keeps raw tokens out of the key space.
func fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(token string) string {
	return Key(s.prefix, "revoked", fingerprint(token))
}

func (s *RedisStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.key(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *RedisStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}

func (s *RedisStore) subjectKey(subject string) string {
	return Key(s.prefix, "revoked_subject", subject)
}

func (s *RedisStore) RevokeSubject(ctx context.Context, subject string, at time.Time, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.subjectKey(subject), at.Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke subject tokens: %w", err)
	}
	return nil
}

func (s *RedisStore) SubjectRevokedAt(ctx context.Context, subject string) (time.Time, bool, error) {
	unix, err := s.client.Get(ctx, s.subjectKey(subject)).Int64()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to check subject revocation: %w", err)
	}
	return time.Unix(unix, 0), true, nil
}

type subjectEntry struct {
	at  time.Time
	exp time.Time
}

// MemoryStore is the single-process fallback used when no redis address is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries  map[string]time.Time
	subjects map[string]subjectEntry
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries:  make(map[string]time.Time),
		subjects: make(map[string]subjectEntry),
		now:      time.Now,
	}
}

func (s *MemoryStore) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[fingerprint(token)] = s.now().Add(ttl)
	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exp, ok := s.entries[fingerprint(token)]
	return ok && s.now().Before(exp), nil
}

func (s *MemoryStore) RevokeSubject(_ context.Context, subject string, at time.Time, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subjects[subject] = subjectEntry{at: at, exp: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) SubjectRevokedAt(_ context.Context, subject string) (time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.subjects[subject]
	if !ok || !s.now().Before(e.exp) {
		return time.Time{}, false, nil
	}
	return e.at, true, nil
}

// Prune drops expired entries and returns how many were removed.
func (s *MemoryStore) Prune(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for k, exp := range s.entries {
		if !now.Before(exp) {
			delete(s.entries, k)
			removed++
		}
	}
	for k, e := range s.subjects {
		if !now.Before(e.exp) {
			delete(s.subjects, k)
			removed++
		}
	}
	return removed
}
