// Package notify delivers user-facing notifications to subscribers. A Hub is
// created once at start-up and closed on shutdown.
package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level is the severity shown with a notification
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Notification is one message for the operator
type Notification struct {
	ID      string
	Level   Level
	Message string
	Time    time.Time
}

// Hub is a publish/subscribe registry for notifications
type Hub struct {
	mu     sync.RWMutex
	subs   map[int]func(Notification)
	next   int
	closed bool
	now    func() time.Time
}

// NewHub creates an open hub with no subscribers
func NewHub() *Hub {
	return &Hub{
		subs: make(map[int]func(Notification)),
		now:  time.Now,
	}
}

// Subscribe registers fn and returns a function that removes it again.
// Subscribing to a closed hub is a no-op.
func (h *Hub) Subscribe(fn func(Notification)) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return func() {}
	}
	id := h.next
	h.next++
	h.subs[id] = fn
	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Publish delivers a notification to every subscriber in registration order
// and returns it. Publishing on a closed hub delivers nothing.
func (h *Hub) Publish(level Level, message string) Notification {
	n := Notification{
		ID:      uuid.New().String(),
		Level:   level,
		Message: message,
		Time:    h.now(),
	}

	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return n
	}
	ids := make([]int, 0, len(h.subs))
	for id := range h.subs {
		ids = append(ids, id)
	}
	fns := make([]func(Notification), 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		fns = append(fns, h.subs[id])
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(n)
	}
	return n
}

func (h *Hub) Success(message string) Notification { return h.Publish(LevelSuccess, message) }
func (h *Hub) Error(message string) Notification   { return h.Publish(LevelError, message) }
func (h *Hub) Warning(message string) Notification { return h.Publish(LevelWarning, message) }
func (h *Hub) Info(message string) Notification    { return h.Publish(LevelInfo, message) }

// Close drops all subscribers; later publishes are discarded
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.subs = make(map[int]func(Notification))
}
