// Package viewstate keeps a controller's latest fetch result and drops results
// from fetches that were superseded before they settled.
package viewstate

import (
	"sync"
	"time"
)

// Tracker hands out increasing sequence numbers per fetch. Only the result of
// the most recently issued sequence is accepted.
type Tracker[T any] struct {
	mu        sync.Mutex
	issued    uint64
	published uint64
	value     T
	updatedAt time.Time
	hasValue  bool
}

// Begin tags a new fetch.
func (t *Tracker[T]) Begin() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.issued++
	return t.issued
}

// Publish stores value if seq is still the latest issued fetch and reports
// whether it did.
func (t *Tracker[T]) Publish(seq uint64, value T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.issued || seq <= t.published {
		return false
	}
	t.published = seq
	t.value = value
	t.updatedAt = time.Now()
	t.hasValue = true
	return true
}

// Current returns the last published value.
func (t *Tracker[T]) Current() (T, time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value, t.updatedAt, t.hasValue
}

// Latest reports whether seq is still the newest issued fetch.
func (t *Tracker[T]) Latest(seq uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return seq == t.issued
}
