// Package clock abstracts wall-clock time so time-dependent logic can be
// driven to a fixed instant in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func NewRealClock() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

// MockClock reports the instant it was created with.
type MockClock struct {
	now time.Time
}

func NewMockClock(t time.Time) *MockClock { return &MockClock{now: t} }

func (c *MockClock) Now() time.Time { return c.now }

// Advance moves the reported instant forward by d.
func (c *MockClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
