package timer

import (
	"fmt"
	"time"
)

// Countdown is the time remaining until the projected end of work.
type Countdown struct {
	Hours   int
	Minutes int
	Seconds int
	IsOver  bool
}

// String formats the countdown as "HH:MM:SS".
func (c Countdown) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hours, c.Minutes, c.Seconds)
}

// Remaining returns the countdown from now until end. Sub-second remainders
// are truncated. Once end is reached every component is zero and IsOver is set.
func Remaining(end, now time.Time) Countdown {
	total := int(end.Sub(now) / time.Second)
	if total <= 0 {
		return Countdown{IsOver: true}
	}

	return Countdown{
		Hours:   total / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}

// CountdownFor returns the countdown for a projection, or false when there is
// no projection to count down to.
func CountdownFor(p Projection, ok bool, now time.Time) (Countdown, bool) {
	if !ok || p.Projected.IsZero() {
		return Countdown{}, false
	}
	return Remaining(p.Projected, now), true
}
