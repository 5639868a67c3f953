package models

import (
	"sync"
	"time"
)

// IDGenerator issues identifiers for new records.
type IDGenerator interface {
	// NextUserID returns an id not used by any of users.
	NextUserID(users []User) int64
	// NextID returns an id for a leave, duty or audit log entry.
	NextID() int64
}

// ClockIDGenerator issues user ids as max+1 and every other id from the wall
// clock in milliseconds. Ids it issues are strictly increasing within the
// process; two devices acting in the same millisecond can still collide.
type ClockIDGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewClockIDGenerator returns a generator reading time from now.
// A nil now uses time.Now.
func NewClockIDGenerator(now func() time.Time) *ClockIDGenerator {
	if now == nil {
		now = time.Now
	}
	return &ClockIDGenerator{now: now}
}

func (g *ClockIDGenerator) NextUserID(users []User) int64 {
	var maxID int64
	for _, u := range users {
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	return maxID + 1
}

func (g *ClockIDGenerator) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
