package workouts

import (
	"sync"
	"time"
)

const (
	trackerSweepAt = 10000
	trackerIdle    = time.Hour
)

type generation struct {
	n       uint64
	touched time.Time
	publish *sync.Mutex
}

// Tracker numbers page requests per session. Only the newest request of a
// session may publish its result, so a slow fetch for a page the user has
// already left never overwrites the page they are on.
type Tracker struct {
	mu   sync.Mutex
	gens map[string]generation
	now  func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{gens: make(map[string]generation), now: time.Now}
}

// Begin registers a new request for session and returns its generation.
func (t *Tracker) Begin(session string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if len(t.gens) >= trackerSweepAt {
		for k, g := range t.gens {
			if now.Sub(g.touched) > trackerIdle {
				delete(t.gens, k)
			}
		}
	}

	g := t.gens[session]
	g.n++
	g.touched = now
	t.gens[session] = g
	return g.n
}

// Publish runs patch only if gen is still the newest request for session.
// Publishes of one session are serialized, so a newer request cannot slip its
// patch in between an older request's check and its patch.
func (t *Tracker) Publish(session string, gen uint64, patch func() error) (bool, error) {
	l := t.publishLock(session)
	l.Lock()
	defer l.Unlock()

	if !t.IsCurrent(session, gen) {
		return false, nil
	}
	return true, patch()
}

func (t *Tracker) publishLock(session string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	g := t.gens[session]
	if g.publish == nil {
		g.publish = &sync.Mutex{}
		t.gens[session] = g
	}
	return g.publish
}

// IsCurrent reports whether gen is still the newest request for session.
func (t *Tracker) IsCurrent(session string, gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gens[session].n == gen
}
