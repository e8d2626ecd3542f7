package query

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares query results between admin instances.
type RedisStore struct {
	rdb       *redis.Client
	namespace string
}

func NewRedisStore(rdb *redis.Client, namespace string) *RedisStore {
	return &RedisStore{rdb: rdb, namespace: namespace}
}

func (s *RedisStore) key(k string) string { return s.namespace + ":" + k }

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return s.rdb.Set(ctx, s.key(key), val, ttl).Err()
}

// DeleteScope scans rather than using KEYS so large keyspaces don't block redis.
func (s *RedisStore) DeleteScope(ctx context.Context, scope string) error {
	iter := s.rdb.Scan(ctx, 0, globEscape(s.key(scope))+":*", 100).Iterator()
	batch := []string{s.key(scope)}
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := s.rdb.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return s.rdb.Del(ctx, batch...).Err()
	}
	return nil
}

// globEscape quotes the characters SCAN MATCH treats as patterns.
func globEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Check pings redis; it satisfies the health checker interface.
func (s *RedisStore) Check(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
