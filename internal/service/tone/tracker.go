// Package tone carries the last derived reply tone per user across turns.
package tone

import (
	"context"
	"sync"

	"github.com/sandevgo/tuskvoice/internal/core"
)

// UpdateFunc derives the next tone from the current one. ok is false when
// no tone has been stored for the user yet.
type UpdateFunc func(current core.Tone, ok bool) (next core.Tone, keep bool)

// lane serializes all access for a single user. tail is closed once the most
// recently scheduled update has been applied. A retired lane has been removed
// from the tracker and must not take new work.
type lane struct {
	mu      sync.Mutex
	tone    core.Tone
	ok      bool
	tail    chan struct{}
	retired bool
}

// Tracker maps user IDs to tones. Updates for one user are applied strictly
// in the order they were scheduled, and every read waits for the updates
// scheduled before it. Different users never wait on each other.
type Tracker struct {
	mu    sync.Mutex
	lanes map[string]*lane
}

func NewTracker() *Tracker {
	return &Tracker{
		lanes: make(map[string]*lane),
	}
}

// acquire returns the user's live lane with its mutex held.
func (t *Tracker) acquire(userID string) *lane {
	for {
		t.mu.Lock()
		l, ok := t.lanes[userID]
		if !ok {
			done := make(chan struct{})
			close(done)
			l = &lane{tail: done}
			t.lanes[userID] = l
		}
		t.mu.Unlock()

		l.mu.Lock()
		if !l.retired {
			return l
		}
		l.mu.Unlock()
	}
}

// Update schedules fn for userID and returns without waiting. The returned
// channel is closed once fn has been applied.
func (t *Tracker) Update(userID string, fn UpdateFunc) <-chan struct{} {
	_, done := t.schedule(userID, fn)
	return done
}

func (t *Tracker) schedule(userID string, fn UpdateFunc) (*lane, chan struct{}) {
	l := t.acquire(userID)
	prev := l.tail
	done := make(chan struct{})
	l.tail = done
	l.mu.Unlock()

	go func() {
		defer close(done)
		<-prev

		l.mu.Lock()
		defer l.mu.Unlock()
		next, keep := fn(l.tone, l.ok)
		if keep {
			l.tone, l.ok = next, true
		} else {
			l.tone, l.ok = "", false
		}
	}()

	return l, done
}

// Get returns the stored tone once every earlier update for the user has
// been applied. Unknown users get no lane.
func (t *Tracker) Get(ctx context.Context, userID string) (core.Tone, bool, error) {
	t.mu.Lock()
	l, ok := t.lanes[userID]
	t.mu.Unlock()
	if !ok {
		return "", false, ctx.Err()
	}

	l.mu.Lock()
	tail := l.tail
	l.mu.Unlock()

	select {
	case <-tail:
	case <-ctx.Done():
		return "", false, ctx.Err()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tone, l.ok, nil
}

// Set stores tone for the user after any pending updates and waits for it.
func (t *Tracker) Set(ctx context.Context, userID string, tone core.Tone) error {
	done := t.Update(userID, func(core.Tone, bool) (core.Tone, bool) {
		return tone, true
	})
	return wait(ctx, done)
}

// Clear forgets the user's tone, ordered after pending updates. The lane is
// dropped when nothing was scheduled behind the clear.
func (t *Tracker) Clear(ctx context.Context, userID string) error {
	l, done := t.schedule(userID, func(core.Tone, bool) (core.Tone, bool) {
		return "", false
	})
	if err := wait(ctx, done); err != nil {
		return err
	}
	t.release(userID, l, done)
	return nil
}

func (t *Tracker) release(userID string, l *lane, done chan struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	l.mu.Lock()
	defer l.mu.Unlock()

	if t.lanes[userID] == l && l.tail == done && !l.ok {
		l.retired = true
		delete(t.lanes, userID)
	}
}

func (t *Tracker) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.lanes)
}

func wait(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
