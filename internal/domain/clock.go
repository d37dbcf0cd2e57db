package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock stamps Dataset.LoadedAt and times the pipeline stages. Tests freeze
// it via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used when cleaning and timing stages. Pass
// nil to restore the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now returns the current time from the package clock.
func Now() time.Time { return clock.Now() }

// Since returns the time elapsed since t on the package clock.
func Since(t time.Time) time.Duration { return clock.Since(t) }
