package clock

import (
	"testing"
	"time"
)

func TestNewFixed(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 4, 9, 0, 0, 0, time.FixedZone("WIB", 7*60*60))
	c := NewFixed(at)
	if !c.Now().Equal(at) {
		t.Fatalf("expected %v, got %v", at, c.Now())
	}
	if c.Now().Location() != time.UTC {
		t.Fatalf("expected UTC, got %v", c.Now().Location())
	}
}

func TestNewSystem_ReturnsUTC(t *testing.T) {
	t.Parallel()

	before := time.Now()
	got := NewSystem().Now()
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC, got %v", got.Location())
	}
	if got.Before(before.Add(-time.Second)) {
		t.Fatalf("expected current time, got %v", got)
	}
}
