// Package notify holds the console's transient notification state. The
// display slot is a single-toast resource: a newly emitted notification
// unconditionally replaces whatever is showing, and every toast dismisses
// itself after a fixed duration.
package notify

import (
	"sync"
	"time"
)

// Kind classifies a toast for presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// DefaultTTL matches the console's fixed auto-dismiss duration.
const DefaultTTL = 3500 * time.Millisecond

// Toast is one visible notification.
type Toast struct {
	Message string
	Kind    Kind
}

// Center owns the single toast slot. Safe for concurrent use.
type Center struct {
	mu       sync.Mutex
	current  *Toast
	seq      uint64
	ttl      time.Duration
	onChange func()
}

// NewCenter creates a Center. ttl <= 0 selects the default duration.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl}
}

// SetOnChange registers a callback invoked after every slot change, so the
// UI can repaint. Called without the lock held.
func (c *Center) SetOnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Success emits a success toast.
func (c *Center) Success(msg string) { c.emit(msg, KindSuccess) }

// Error emits an error toast.
func (c *Center) Error(msg string) { c.emit(msg, KindError) }

// SessionExpired implements interfaces.ExpiryListener; the expiry side
// channel surfaces as an ordinary error toast.
func (c *Center) SessionExpired() {
	c.Error("Session expired. Please sign in again.")
}

func (c *Center) emit(msg string, kind Kind) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.current = &Toast{Message: msg, Kind: kind}
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn()
	}

	time.AfterFunc(c.ttl, func() {
		c.mu.Lock()
		// A later toast already took the slot; leave it alone.
		if c.seq != seq {
			c.mu.Unlock()
			return
		}
		c.current = nil
		cb := c.onChange
		c.mu.Unlock()
		if cb != nil {
			cb()
		}
	})
}

// Current returns the visible toast, or nil.
func (c *Center) Current() *Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Dismiss clears the slot immediately (the user closed the toast).
func (c *Center) Dismiss() {
	c.mu.Lock()
	c.seq++ // invalidate any pending auto-dismiss
	c.current = nil
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}
