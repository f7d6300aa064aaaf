package game

import "time"

// Clock supplies timestamps for session lifecycle events. Turn arithmetic
// never consults it.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FakeClock is a fixed, manually-advanced clock for tests.
type FakeClock struct {
	T time.Time
}

func NewFakeClock(t time.Time) *FakeClock { return &FakeClock{T: t} }

func (f *FakeClock) Now() time.Time { return f.T }

func (f *FakeClock) Advance(d time.Duration) { f.T = f.T.Add(d) }
