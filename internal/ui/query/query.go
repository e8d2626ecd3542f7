// Package query runs keyed fetches through a shared cache so each key is
// fetched and stored independently, with concurrent fetches of one key
// collapsed into a single call.
package query

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const defaultFetchTimeout = 30 * time.Second

// Store persists serialized query results.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	// DeleteScope removes scope itself and every key under "scope:".
	DeleteScope(ctx context.Context, scope string) error
}

// Options pairs a cache key with the fetch that fills it.
type Options[T any] struct {
	Key string
	Fn  func(ctx context.Context) (T, error)
}

// Key joins a scope and its parameters, e.g. Key("workouts", "page=2") is
// "workouts:page=2". Invalidating "workouts" drops every key under it.
func Key(scope string, params ...string) string {
	return strings.Join(append([]string{scope}, params...), ":")
}

type entry struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Data      json.RawMessage `json:"data"`
}

// Client is the query cache front end.
type Client struct {
	store     Store
	ttl       time.Duration // how long a result is kept for placeholder use
	staleTime time.Duration // how long a result is served without refetching
	timeout   time.Duration // bound on a shared fetch, which outlives its callers
	group     singleflight.Group
	now       func() time.Time
}

func NewClient(store Store, ttl, staleTime time.Duration) *Client {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Client{store: store, ttl: ttl, staleTime: staleTime, timeout: defaultFetchTimeout, now: time.Now}
}

// Fetch returns fresh data for opts.Key. A cached result younger than the
// stale time is returned as is; otherwise Fn runs and its result is stored.
// Concurrent callers of one key share a single Fn call. That call is detached
// from the caller that started it, so a caller going away returns ctx.Err()
// to itself only and the others still get the result.
func Fetch[T any](ctx context.Context, c *Client, opts Options[T]) (T, error) {
	var zero T

	if c.staleTime > 0 {
		if e, ok := c.lookup(ctx, opts.Key); ok && c.now().Sub(e.FetchedAt) < c.staleTime {
			var v T
			if err := json.Unmarshal(e.Data, &v); err == nil {
				return v, nil
			}
		}
	}

	ch := c.group.DoChan(opts.Key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		v, err := opts.Fn(fctx)
		if err != nil {
			return nil, err
		}
		c.remember(fctx, opts.Key, v)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		if res.Shared {
			log.Debug().Str("key", opts.Key).Msg("query result shared with concurrent caller")
		}
		return res.Val.(T), nil
	}
}

// Peek returns the last stored result for key without fetching.
func Peek[T any](ctx context.Context, c *Client, key string) (T, bool) {
	var v T
	e, ok := c.lookup(ctx, key)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return v, false
	}
	return v, true
}

// Invalidate drops every stored result under scope. Keys of other scopes
// that merely start with the same letters are kept.
func (c *Client) Invalidate(ctx context.Context, scope string) error {
	if err := c.store.DeleteScope(ctx, scope); err != nil {
		return fmt.Errorf("invalidate %q: %w", scope, err)
	}
	return nil
}

func (c *Client) lookup(ctx context.Context, key string) (entry, bool) {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("query cache read failed")
		return entry{}, false
	}
	if !ok {
		return entry{}, false
	}
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return entry{}, false
	}
	return e, true
}

// cache failures are logged, never surfaced: the fetched data is still good
func (c *Client) remember(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("query result not serializable")
		return
	}
	raw, err := json.Marshal(entry{FetchedAt: c.now(), Data: data})
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("query cache write failed")
	}
}
