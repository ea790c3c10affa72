package voxlink

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/voxlink/voxlink/wire"
)

// pendingReply is the completion slot for the one outstanding request.
// It resolves exactly once; later resolutions are dropped.
type pendingReply struct {
	once sync.Once
	done chan struct{}
	data json.RawMessage
	err  error
}

func newPendingReply() *pendingReply {
	return &pendingReply{done: make(chan struct{})}
}

func (p *pendingReply) resolve(data json.RawMessage, err error) {
	p.once.Do(func() {
		p.data = data
		p.err = err
		close(p.done)
	})
}

// resolvePending completes the current slot, if there is one. The protocol
// has no request IDs: whoever is waiting right now owns the reply.
func (c *Client) resolvePending(data json.RawMessage, err error) {
	c.mu.Lock()
	p := c.pending
	c.mu.Unlock()
	if p != nil {
		p.resolve(data, err)
	}
}

func (c *Client) failPending(err error) {
	c.resolvePending(nil, err)
}

// Send transmits one envelope and waits for the reply correlated to it.
// Callers are admitted one at a time: the gate guarantees no two send+await
// windows ever overlap, which is what makes replies safe to match without
// correlation IDs. The wait is bounded by the call timeout and by ctx.
func (c *Client) Send(ctx context.Context, typ string, data any) (json.RawMessage, error) {
	if !c.open.Load() {
		return nil, ErrNotConnected
	}

	select {
	case c.gate <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-c.gate }()

	// The connection may have died while queued for the gate.
	if !c.open.Load() {
		return nil, ErrNotConnected
	}

	frame, err := wire.Encode(typ, data)
	if err != nil {
		return nil, err
	}

	p := newPendingReply()
	c.mu.Lock()
	c.pending = p
	c.mu.Unlock()

	if err := c.writeFrame(frame); err != nil {
		// Resolve the dead slot so a late frame cannot park on it.
		p.resolve(nil, err)
		return nil, fmt.Errorf("voxlink: write %s: %w", typ, err)
	}

	timer := time.NewTimer(c.callTimeout)
	defer timer.Stop()

	select {
	case <-p.done:
	case <-timer.C:
		p.resolve(nil, ErrTimeout)
	case <-ctx.Done():
		p.resolve(nil, ctx.Err())
	}

	// resolve is once-only, so if the reply raced the timeout the slot holds
	// whichever landed first.
	<-p.done
	return p.data, p.err
}
