package query

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	Items []string `json:"items"`
	Count int      `json:"count"`
}

func opts(key string, calls *atomic.Int32, v result) Options[*result] {
	return Options[*result]{
		Key: key,
		Fn: func(context.Context) (*result, error) {
			calls.Add(1)
			out := v
			return &out, nil
		},
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "workouts:page=3", Key("workouts", "page=3"))
	assert.Equal(t, "workouts", Key("workouts"))
}

func TestFetch_StoresPerKey(t *testing.T) {
	ctx := context.Background()
	c := NewClient(NewMemoryStore(), time.Minute, 0)
	var calls atomic.Int32

	got, err := Fetch(ctx, c, opts("workouts:page=1", &calls, result{Items: []string{"a"}, Count: 2}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got.Items)

	_, err = Fetch(ctx, c, opts("workouts:page=2", &calls, result{Items: []string{"b"}, Count: 2}))
	require.NoError(t, err)

	p1, ok := Peek[*result](ctx, c, "workouts:page=1")
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, p1.Items)

	p2, ok := Peek[*result](ctx, c, "workouts:page=2")
	require.True(t, ok)
	assert.Equal(t, []string{"b"}, p2.Items)

	_, ok = Peek[*result](ctx, c, "workouts:page=3")
	assert.False(t, ok)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetch_RefetchesWithoutStaleTime(t *testing.T) {
	ctx := context.Background()
	c := NewClient(NewMemoryStore(), time.Minute, 0)
	var calls atomic.Int32

	for i := 0; i < 3; i++ {
		_, err := Fetch(ctx, c, opts("k", &calls, result{}))
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetch_ServesFreshCache(t *testing.T) {
	ctx := context.Background()
	c := NewClient(NewMemoryStore(), time.Minute, 30*time.Second)
	now := time.Now()
	c.now = func() time.Time { return now }
	var calls atomic.Int32

	_, err := Fetch(ctx, c, opts("k", &calls, result{Count: 1}))
	require.NoError(t, err)
	_, err = Fetch(ctx, c, opts("k", &calls, result{Count: 1}))
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	now = now.Add(time.Minute)
	_, err = Fetch(ctx, c, opts("k", &calls, result{Count: 1}))
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetch_DeduplicatesConcurrentCalls(t *testing.T) {
	ctx := context.Background()
	c := NewClient(NewMemoryStore(), time.Minute, 0)
	release := make(chan struct{})
	var calls atomic.Int32

	o := Options[*result]{
		Key: "k",
		Fn: func(context.Context) (*result, error) {
			calls.Add(1)
			<-release
			return &result{Count: 7}, nil
		},
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := Fetch(ctx, c, o)
			assert.NoError(t, err)
			assert.Equal(t, 7, r.Count)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestFetch_CancelledCallerDoesNotFailOthers(t *testing.T) {
	c := NewClient(NewMemoryStore(), time.Minute, 0)
	started := make(chan struct{})
	release := make(chan struct{})

	o := Options[*result]{
		Key: "workouts:page=1",
		Fn: func(ctx context.Context) (*result, error) {
			close(started)
			select {
			case <-release:
				return &result{Items: []string{"a"}, Count: 1}, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		},
	}

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := Fetch(leaderCtx, c, o)
		leaderErr <- err
	}()
	<-started

	type outcome struct {
		r   *result
		err error
	}
	follower := make(chan outcome, 1)
	go func() {
		r, err := Fetch(context.Background(), c, o)
		follower <- outcome{r, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	select {
	case err := <-leaderErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(release)
	select {
	case got := <-follower:
		require.NoError(t, got.err)
		assert.Equal(t, []string{"a"}, got.r.Items)
	case <-time.After(5 * time.Second):
		t.Fatal("follower never got the shared result")
	}

	_, ok := Peek[*result](context.Background(), c, "workouts:page=1")
	assert.True(t, ok, "shared result is stored even though its first caller left")
}

func TestFetch_ErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	c := NewClient(NewMemoryStore(), time.Minute, 0)

	_, err := Fetch(ctx, c, Options[*result]{
		Key: "k",
		Fn:  func(context.Context) (*result, error) { return nil, errors.New("down") },
	})
	require.EqualError(t, err, "down")

	_, ok := Peek[*result](ctx, c, "k")
	assert.False(t, ok)
}

func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	c := NewClient(NewMemoryStore(), time.Minute, 0)
	var calls atomic.Int32

	for _, k := range []string{"workouts", "workouts:page=1", "workouts:page=2", "workoutsX:page=1", "exercises:page=1"} {
		_, err := Fetch(ctx, c, opts(k, &calls, result{}))
		require.NoError(t, err)
	}

	require.NoError(t, c.Invalidate(ctx, "workouts"))

	for _, k := range []string{"workouts", "workouts:page=1", "workouts:page=2"} {
		_, ok := Peek[*result](ctx, c, k)
		assert.False(t, ok, k)
	}
	for _, k := range []string{"workoutsX:page=1", "exercises:page=1"} {
		_, ok := Peek[*result](ctx, c, k)
		assert.True(t, ok, k)
	}
}

func TestMemoryStore_Expires(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	now := time.Now()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Second))
	_, ok, _ := m.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	s := NewRedisStore(rdb, "test-"+time.Now().Format("150405.000"))
	require.NoError(t, s.Check(ctx))

	require.NoError(t, s.Set(ctx, "workouts:page=1", []byte("a"), time.Minute))
	require.NoError(t, s.Set(ctx, "workouts:page=2", []byte("b"), time.Minute))

	v, ok, err := s.Get(ctx, "workouts:page=1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("a"), v)

	require.NoError(t, s.Set(ctx, "workoutsX:page=1", []byte("c"), time.Minute))
	require.NoError(t, s.DeleteScope(ctx, "workouts"))
	_, ok, err = s.Get(ctx, "workouts:page=2")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = s.Get(ctx, "workoutsX:page=1")
	require.NoError(t, err)
	assert.True(t, ok)
}
