package activity

import (
	"context"
	"sync"
	"time"
)

// MemoryFeed is a bounded in-process feed.
type MemoryFeed struct {
	mu     sync.Mutex
	max    int
	events []Event
}

var _ Feed = (*MemoryFeed)(nil)

func NewMemoryFeed(max int) *MemoryFeed {
	return &MemoryFeed{max: max}
}

func (f *MemoryFeed) Record(_ context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, event)
	if f.max > 0 && len(f.events) > f.max {
		f.events = f.events[len(f.events)-f.max:]
	}
	return nil
}

func (f *MemoryFeed) Recent(_ context.Context, limit int) ([]Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []Event{}
	for i := len(f.events) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, f.events[i])
	}
	return out, nil
}
