package ts

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestTodayIsUTC(t *testing.T) {
	// 23:30 on the 14th in New York is the 15th in UTC.
	ny := time.FixedZone("EDT", -4*60*60)
	fake := clockwork.NewFakeClockAt(time.Date(2026, 10, 14, 23, 30, 0, 0, ny))
	c := NewClock(fake)
	if got := c.Today(); got != "2026-10-15" {
		t.Errorf("Today() = %q, want 2026-10-15", got)
	}

	fake.Advance(24 * time.Hour)
	if got := c.Today(); got != "2026-10-16" {
		t.Errorf("Today() after a day = %q, want 2026-10-16", got)
	}
}

func TestNowTruncates(t *testing.T) {
	fake := clockwork.NewFakeClockAt(time.Date(2026, 1, 2, 3, 4, 5, 600_000_000, time.UTC))
	if ns := NewClock(fake).Now().Nanosecond(); ns != 0 {
		t.Errorf("Now() has %d ns, want 0", ns)
	}
}

func TestRealClockIsUntruncated(t *testing.T) {
	fake := clockwork.NewFakeClockAt(time.Date(2026, 1, 2, 3, 4, 5, 600_000_000, time.UTC))
	c := NewClock(fake)
	if c.RealClock() != clockwork.Clock(fake) {
		t.Fatalf("RealClock() isn't the wrapped clock")
	}
	if ns := c.RealClock().Now().Nanosecond(); ns != 600_000_000 {
		t.Errorf("RealClock().Now() has %d ns, want 600000000", ns)
	}
}
