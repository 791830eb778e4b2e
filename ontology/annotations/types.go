// Package annotations provides a low-overhead event system for tracking
// ontology mutations and cache activity.
package annotations

import (
	"sync"
	"time"
)

// Event name constants following hierarchical naming pattern
const (
	// Mutation lifecycle
	AxiomAdded    = "axiom/added"
	AxiomRejected = "axiom/rejected"
	AxiomRemoved  = "axiom/removed"

	// Transactions
	TxRollback = "tx/rollback"

	// Decoding
	StatementSkipped = "statement/skipped"

	// Axiom cache
	CacheLoaded  = "cache/loaded"
	CacheCleared = "cache/cleared"

	// Errors
	ErrorBackend = "error/backend"
)

// Event represents a single annotation event.
type Event struct {
	Name    string         // Event name using hierarchical constants above
	Start   time.Time      // Start timestamp
	End     time.Time      // End timestamp
	Latency time.Duration  // Duration (End - Start)
	Data    map[string]any // Additional event-specific data
}

// Handler processes annotation events as they occur.
type Handler func(event Event)

// Collector accumulates events. A collector without a handler is disabled
// and drops everything.
type Collector struct {
	enabled bool
	handler Handler
	events  []Event
	limit   int
	mu      sync.Mutex
}

// DefaultLimit caps the number of retained events.
const DefaultLimit = 4096

// NewCollector creates a new annotation collector.
func NewCollector(handler Handler) *Collector {
	return &Collector{
		enabled: handler != nil,
		handler: handler,
		events:  make([]Event, 0, 64),
		limit:   DefaultLimit,
	}
}

// Enabled reports whether events are recorded. Callers use it to skip
// building event data.
func (c *Collector) Enabled() bool {
	return c != nil && c.enabled
}

// Handler returns the underlying event handler.
func (c *Collector) Handler() Handler {
	return c.handler
}

// Add records a new event.
// Thread-safe for concurrent access.
func (c *Collector) Add(event Event) {
	if !c.Enabled() {
		return
	}

	c.mu.Lock()
	if len(c.events) >= c.limit {
		// drop the oldest half
		n := copy(c.events, c.events[len(c.events)/2:])
		c.events = c.events[:n]
	}
	c.events = append(c.events, event)
	c.mu.Unlock()

	// Call handler outside the lock to avoid deadlocks
	c.handler(event)
}

// AddTiming records an event with timing information.
func (c *Collector) AddTiming(name string, start time.Time, data map[string]any) {
	if !c.Enabled() {
		return
	}

	end := time.Now()
	c.Add(Event{
		Name:    name,
		Start:   start,
		End:     end,
		Latency: end.Sub(start),
		Data:    data,
	})
}

// Events returns all collected events.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	eventsCopy := make([]Event, len(c.events))
	copy(eventsCopy, c.events)
	return eventsCopy
}

// Named returns the collected events called name.
func (c *Collector) Named(name string) []Event {
	var out []Event
	for _, e := range c.Events() {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// Reset clears the collector for reuse.
// Thread-safe for concurrent access.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
}

// Multi fans an event out to several handlers.
func Multi(handlers ...Handler) Handler {
	var hs []Handler
	for _, h := range handlers {
		if h != nil {
			hs = append(hs, h)
		}
	}
	if len(hs) == 0 {
		return nil
	}
	return func(e Event) {
		for _, h := range hs {
			h(e)
		}
	}
}
