package locker

import "sync"

// Locker tracks events with an in-flight reconciliation attempt inside this
// process, so the push intake and the sweep don't race each other locally.
// Cross-process mutual exclusion is owned by the database claim check.
type Locker struct {
	mu       sync.Mutex
	inFlight map[string]bool
}

func New() *Locker {
	return &Locker{
		inFlight: make(map[string]bool),
	}
}

// TryAcquire marks an event as in flight. Returns false if it already is.
func (l *Locker) TryAcquire(eventID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inFlight[eventID] {
		return false
	}
	l.inFlight[eventID] = true
	return true
}

func (l *Locker) Release(eventID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.inFlight, eventID)
}
