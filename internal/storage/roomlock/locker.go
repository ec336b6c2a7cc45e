// Package roomlock provides exclusive, timeout-bounded locks keyed by room id
// for stores that have no row locks of their own.
package roomlock

import (
	"context"
	"sync"
	"time"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/domain"
)

type Locker struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func New() *Locker {
	return &Locker{slots: make(map[string]*slot)}
}

// Acquire waits until key is free. It returns domain.ErrBusy once timeout
// elapses, or ctx.Err() if ctx ends first. A timeout <= 0 waits on ctx only.
// The returned release func is safe to call more than once.
func (l *Locker) Acquire(ctx context.Context, key string, timeout time.Duration) (func(), error) {
	s := l.ref(key)

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case s.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-s.ch
				l.unref(key, s)
			})
		}, nil
	case <-expired:
		l.unref(key, s)
		return nil, domain.ErrBusy
	case <-ctx.Done():
		l.unref(key, s)
		return nil, ctx.Err()
	}
}

func (l *Locker) ref(key string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	return s
}

func (l *Locker) unref(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

// Len reports how many keys are currently held or awaited.
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
