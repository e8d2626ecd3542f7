package workouts

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTracker_NewestWins(t *testing.T) {
	tr := NewTracker()

	first := tr.Begin("a")
	second := tr.Begin("a")

	assert.False(t, tr.IsCurrent("a", first))
	assert.True(t, tr.IsCurrent("a", second))
}

func TestTracker_SessionsAreIndependent(t *testing.T) {
	tr := NewTracker()

	a := tr.Begin("a")
	tr.Begin("b")

	assert.True(t, tr.IsCurrent("a", a))
	assert.False(t, tr.IsCurrent("c", 1))
}

func TestTracker_SweepsIdleSessions(t *testing.T) {
	tr := NewTracker()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return now }

	for i := 0; i < trackerSweepAt; i++ {
		tr.Begin(strconv.Itoa(i))
	}
	now = now.Add(2 * trackerIdle)
	tr.Begin("fresh")

	assert.Len(t, tr.gens, 1)
	assert.True(t, tr.IsCurrent("fresh", 1))
}

func TestTracker_PublishSkipsSuperseded(t *testing.T) {
	tr := NewTracker()
	old := tr.Begin("a")
	tr.Begin("a")

	ran := false
	ok, err := tr.Publish("a", old, func() error { ran = true; return nil })
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, ran)
}

func TestTracker_PublishIsSerializedPerSession(t *testing.T) {
	tr := NewTracker()
	old := tr.Begin("a")

	inside := make(chan struct{})
	release := make(chan struct{})
	oldDone := make(chan bool, 1)
	go func() {
		ok, _ := tr.Publish("a", old, func() error {
			close(inside)
			<-release
			return nil
		})
		oldDone <- ok
	}()
	<-inside

	newer := tr.Begin("a")
	published := make(chan struct{})
	go func() {
		_, _ = tr.Publish("a", newer, func() error {
			close(published)
			return nil
		})
	}()

	select {
	case <-published:
		t.Fatal("newer patch ran while an older patch was in flight")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	assert.True(t, <-oldDone)
	select {
	case <-published:
	case <-time.After(5 * time.Second):
		t.Fatal("newer patch never ran")
	}

	// other sessions are not held up
	b := tr.Begin("b")
	ok, err := tr.Publish("b", b, func() error { return nil })
	assert.NoError(t, err)
	assert.True(t, ok)
}
