package voxlink

import (
	"encoding/json"
)

// Handler receives the inner payload of a named server event.
type Handler func(data json.RawMessage)

// On registers a handler for a named event. Handlers for one name run in
// registration order, each on its own goroutine, so a slow handler never
// blocks the read loop or delays the next reply. Registrations persist for
// the life of the Client.
func (c *Client) On(name string, fn Handler) {
	_ = c.bus.SubscribeAsync(name, fn, false)
}

// dispatch fans one event out to every handler registered for its name and
// reports whether any handler was registered.
func (c *Client) dispatch(name string, data json.RawMessage) bool {
	if !c.bus.HasCallback(name) {
		return false
	}
	if data == nil {
		data = json.RawMessage("null")
	}
	c.bus.Publish(name, data)
	return true
}
