// Package transport provides the message channels a netsync.Session sends
// through: an in-process pipe and a websocket client for the relay.
package transport

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned when sending on a closed channel.
var ErrClosed = errors.New("transport: channel closed")

// Handler receives inbound frames. It must not block.
type Handler func(data []byte)

// MemoryChannel is one end of an in-process pipe.
type MemoryChannel struct {
	mu      sync.RWMutex
	handler Handler
	peer    *MemoryChannel
	closed  *atomic.Bool // shared by both ends
}

// Pipe returns two connected ends. Frames sent on one are handed to the
// other's handler.
func Pipe() (*MemoryChannel, *MemoryChannel) {
	closed := &atomic.Bool{}
	a := &MemoryChannel{closed: closed}
	b := &MemoryChannel{closed: closed}
	a.peer, b.peer = b, a
	return a, b
}

// OnMessage sets the handler for frames arriving at this end.
func (c *MemoryChannel) OnMessage(h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = h
}

// Send copies data to the other end. Frames sent before the other end has
// a handler are dropped.
func (c *MemoryChannel) Send(data []byte) error {
	if c.closed.Load() {
		return ErrClosed
	}
	c.peer.mu.RLock()
	h := c.peer.handler
	c.peer.mu.RUnlock()
	if h == nil {
		return nil
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	h(buf)
	return nil
}

// IsOpen reports whether neither end has been closed.
func (c *MemoryChannel) IsOpen() bool {
	return !c.closed.Load()
}

// Close closes both ends. Safe to call multiple times.
func (c *MemoryChannel) Close() error {
	c.closed.Store(true)
	return nil
}
