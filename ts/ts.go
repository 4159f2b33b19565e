package ts

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// DateLayout is the YYYY-MM-DD form sitemaps use for lastmod.
const DateLayout = "2006-01-02"

// Clock wraps clockwork.Clock with the couple of helpers the site needs.
type Clock struct {
	clock clockwork.Clock
}

func NewRealClock() *Clock {
	return &Clock{
		clock: clockwork.NewRealClock(),
	}
}

// NewClock wraps c; tests pass a clockwork.FakeClock.
func NewClock(c clockwork.Clock) *Clock {
	return &Clock{clock: c}
}

// Now provides a timestamp truncated to the second, in local time, for
// logs.
func (c *Clock) Now() time.Time {
	return c.clock.Now().Local().Truncate(time.Second)
}

// Today is the current UTC date as YYYY-MM-DD.
func (c *Clock) Today() string {
	return c.clock.Now().UTC().Format(DateLayout)
}

// RealClock returns the wrapped clock, untruncated, for things that sleep
// or need sub-second precision.
func (c *Clock) RealClock() clockwork.Clock {
	return c.clock
}
