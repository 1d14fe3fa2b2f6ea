// Package ban counts rate limit strikes per client and bans repeat offenders
// for a while.
package ban

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/promo-quoter/internal/redissvc"
)

const (
	strikeKeyPrefix = "ratelimit:strikes:"
	banKeyPrefix    = "ratelimit:ban:"
	DailyBanLogKey  = "ratelimit:banlog:daily"
)

type BanLogEntry struct {
	Target  string    `json:"target"`
	Route   string    `json:"route"`
	Strikes int       `json:"strikes"`
	Time    time.Time `json:"time"`
}

// Store persists strikes, bans and the ban log.
type Store interface {
	// BannedFor returns the remaining ban time, zero when target is not banned.
	BannedFor(ctx context.Context, target string) (time.Duration, error)
	// AddStrike increments the strike counter, which expires after window.
	AddStrike(ctx context.Context, target string, window time.Duration) (int, error)
	Ban(ctx context.Context, target string, d time.Duration, entry BanLogEntry) error
}

type Guard struct {
	store       Store
	maxStrikes  int
	banDuration time.Duration
}

func NewGuard(store Store, maxStrikes int, banDuration time.Duration) *Guard {
	return &Guard{store: store, maxStrikes: maxStrikes, banDuration: banDuration}
}

func (g *Guard) BannedFor(ctx context.Context, target string) (time.Duration, error) {
	return g.store.BannedFor(ctx, target)
}

// Strike records a rate limit violation and bans target once it reaches the
// configured number of strikes. It reports whether target is now banned.
func (g *Guard) Strike(ctx context.Context, target, route string) (bool, error) {
	strikes, err := g.store.AddStrike(ctx, target, g.banDuration)
	if err != nil {
		return false, err
	}
	if strikes < g.maxStrikes {
		return false, nil
	}

	entry := BanLogEntry{Target: target, Route: route, Strikes: strikes, Time: time.Now().UTC()}
	if err := g.store.Ban(ctx, target, g.banDuration, entry); err != nil {
		return false, err
	}
	zap.L().Warn("client banned",
		zap.String("target", target),
		zap.String("route", route),
		zap.Int("strikes", strikes),
		zap.Duration("duration", g.banDuration),
	)
	return true, nil
}

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rs *redissvc.RedisService) *RedisStore {
	return &RedisStore{rdb: rs.Rdb()}
}

func (s *RedisStore) BannedFor(ctx context.Context, target string) (time.Duration, error) {
	ttl, err := s.rdb.TTL(ctx, banKeyPrefix+target).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

func (s *RedisStore) AddStrike(ctx context.Context, target string, window time.Duration) (int, error) {
	key := strikeKeyPrefix + target
	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("add strike: %w", err)
	}
	return int(incr.Val()), nil
}

func (s *RedisStore) Ban(ctx context.Context, target string, d time.Duration, entry BanLogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, banKeyPrefix+target, entry.Route, d)
	pipe.Del(ctx, strikeKeyPrefix+target)
	pipe.RPush(ctx, DailyBanLogKey, data)
	pipe.Expire(ctx, DailyBanLogKey, 24*time.Hour)
	_, err = pipe.Exec(ctx)
	return err
}

type memoryStrikes struct {
	count   int
	expires time.Time
}

type MemoryStore struct {
	mu      sync.Mutex
	strikes map[string]memoryStrikes
	bans    map[string]time.Time
	log     []BanLogEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{strikes: map[string]memoryStrikes{}, bans: map[string]time.Time{}}
}

func (s *MemoryStore) BannedFor(_ context.Context, target string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.bans[target]
	if !ok {
		return 0, nil
	}
	left := time.Until(until)
	if left <= 0 {
		delete(s.bans, target)
		return 0, nil
	}
	return left, nil
}

func (s *MemoryStore) AddStrike(_ context.Context, target string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	st := s.strikes[target]
	if now.After(st.expires) {
		st = memoryStrikes{expires: now.Add(window)}
	}
	st.count++
	s.strikes[target] = st
	return st.count, nil
}

func (s *MemoryStore) Ban(_ context.Context, target string, d time.Duration, entry BanLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bans[target] = time.Now().Add(d)
	delete(s.strikes, target)
	s.log = append(s.log, entry)
	return nil
}

// Log returns the bans recorded so far.
func (s *MemoryStore) Log() []BanLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]BanLogEntry(nil), s.log...)
}
