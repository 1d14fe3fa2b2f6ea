package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/promo-quoter/internal/redissvc"
)

var ErrRefreshTokenInvalid = errors.New("invalid or expired refresh token")

// RefreshTokenStore keeps opaque refresh tokens. Consume is one-shot: a token
// can be exchanged only once.
type RefreshTokenStore interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	Consume(ctx context.Context, token string) (string, error)
}

const refreshKeyPrefix = "refresh:"

type RedisRefreshTokenStore struct {
	rs *redissvc.RedisService
}

func NewRedisRefreshTokenStore(rs *redissvc.RedisService) *RedisRefreshTokenStore {
	return &RedisRefreshTokenStore{rs: rs}
}

func (s *RedisRefreshTokenStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.rs.Rdb().Set(ctx, refreshKeyPrefix+token, userID, ttl).Err()
}

func (s *RedisRefreshTokenStore) Consume(ctx context.Context, token string) (string, error) {
	userID, err := s.rs.Rdb().GetDel(ctx, refreshKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrRefreshTokenInvalid
	}
	return userID, err
}

type refreshEntry struct {
	userID  string
	expires time.Time
}

type MemoryRefreshTokenStore struct {
	mu     sync.Mutex
	tokens map[string]refreshEntry
}

func NewMemoryRefreshTokenStore() *MemoryRefreshTokenStore {
	return &MemoryRefreshTokenStore{tokens: map[string]refreshEntry{}}
}

func (s *MemoryRefreshTokenStore) Save(_ context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = refreshEntry{userID: userID, expires: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryRefreshTokenStore) Consume(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.tokens[token]
	if !ok {
		return "", ErrRefreshTokenInvalid
	}
	delete(s.tokens, token)
	if time.Now().After(e.expires) {
		return "", ErrRefreshTokenInvalid
	}
	return e.userID, nil
}

// StartCleaner drops expired tokens every interval until ctx is done.
func (s *MemoryRefreshTokenStore) StartCleaner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for token, e := range s.tokens {
				if now.After(e.expires) {
					delete(s.tokens, token)
				}
			}
			s.mu.Unlock()
		}
	}
}
