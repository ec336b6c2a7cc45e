package roomlock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/domain"
)

func TestLocker_TimesOutWithBusy(t *testing.T) {
	t.Parallel()

	l := New()
	release, err := l.Acquire(context.Background(), "room-1", time.Second)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer release()

	_, err = l.Acquire(context.Background(), "room-1", 20*time.Millisecond)
	if err != domain.ErrBusy {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
}

func TestLocker_OtherKeysDoNotBlock(t *testing.T) {
	t.Parallel()

	l := New()
	release, err := l.Acquire(context.Background(), "room-1", time.Second)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer release()

	release2, err := l.Acquire(context.Background(), "room-2", 20*time.Millisecond)
	if err != nil {
		t.Fatalf("expected room-2 to be free, got %v", err)
	}
	release2()
}

func TestLocker_ReleaseHandsOver(t *testing.T) {
	t.Parallel()

	l := New()
	release, err := l.Acquire(context.Background(), "room-1", time.Second)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	acquired := make(chan error, 1)
	go func() {
		r, err := l.Acquire(context.Background(), "room-1", 2*time.Second)
		if err == nil {
			r()
		}
		acquired <- err
	}()

	time.Sleep(10 * time.Millisecond)
	release()
	release()

	if err := <-acquired; err != nil {
		t.Fatalf("expected waiter to acquire after release, got %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("expected no slots left, got %d", l.Len())
	}
}

func TestLocker_ContextCancel(t *testing.T) {
	t.Parallel()

	l := New()
	release, err := l.Acquire(context.Background(), "room-1", time.Second)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.Acquire(ctx, "room-1", time.Second); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLocker_MutualExclusion(t *testing.T) {
	t.Parallel()

	l := New()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(context.Background(), "room-1", 5*time.Second)
			if err != nil {
				t.Errorf("acquire: %v", err)
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inside--
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Fatalf("expected at most one holder, saw %d", maxSeen)
	}
}
