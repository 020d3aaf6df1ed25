// Package clock provides the time source used by command handlers and queries.
package clock

import "time"

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to Clock.
type Func func() time.Time

func (f Func) Now() time.Time {
	return f()
}

// System returns a clock reading the wall time in loc.
// A nil loc means time.Local.
func System(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return Func(func() time.Time {
		return time.Now().In(loc)
	})
}

// Fixed returns a clock that always reports t.
func Fixed(t time.Time) Clock {
	return Func(func() time.Time {
		return t
	})
}
