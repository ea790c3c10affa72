package voxlink

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/voxlink/voxlink/wire"
)

type EventSuite struct {
	BaseSuite
}

func TestEventSuite(t *testing.T) {
	suite.Run(t, new(EventSuite))
}

func (s *EventSuite) TestFanOut() {
	srv := newWSServer(s.T(), nil)
	c := s.dial(srv)

	first := make(chan json.RawMessage, 1)
	second := make(chan json.RawMessage, 1)
	c.On("chat", func(data json.RawMessage) { first <- data })
	c.On("chat", func(data json.RawMessage) { second <- data })

	srv.pushEvent("chat", map[string]string{"msg": "hello"})

	select {
	case data := <-first:
		s.JSONEq(`{"msg":"hello"}`, string(data))
	case <-time.After(time.Second):
		s.Fail("first handler never ran")
	}
	select {
	case data := <-second:
		s.JSONEq(`{"msg":"hello"}`, string(data))
	case <-time.After(time.Second):
		s.Fail("second handler never ran")
	}
}

func (s *EventSuite) TestEventDoesNotResolvePending() {
	srv := newWSServer(s.T(), func(ws *wsServer, env wire.Envelope) {
		// Answer every call with an event first, then the real reply.
		ws.pushEvent("tick", 7)
		ws.reply(wire.TypeResult, "real")
	})
	c := s.dial(srv)

	ticks := make(chan json.RawMessage, 1)
	c.On("tick", func(data json.RawMessage) { ticks <- data })

	data, err := c.Call(s.shortCtx(), "steve", "getPos")
	s.Require().NoError(err)
	s.JSONEq(`"real"`, string(data), "pending call must see the result, not the event")
	s.JSONEq(`7`, string(<-ticks))
}

func (s *EventSuite) TestUnhandledEventResolvesPending() {
	srv := newWSServer(s.T(), func(ws *wsServer, env wire.Envelope) {
		// No reply frame; the server answers over the event channel.
		ws.pushEvent("pos", map[string]int{"x": 4})
	})
	c := s.dial(srv, WithCallTimeout(2*time.Second))

	data, err := c.Call(s.shortCtx(), "steve", "getPos")
	s.Require().NoError(err)
	s.JSONEq(`{"x":4}`, string(data))
}

func (s *EventSuite) TestUnhandledNullEventIsDropped() {
	srv := newWSServer(s.T(), func(ws *wsServer, env wire.Envelope) {
		ws.pushEvent("noise", nil)
	})
	c := s.dial(srv, WithCallTimeout(200*time.Millisecond))

	// A null payload with no listener must not masquerade as a reply.
	_, err := c.Call(s.shortCtx(), "steve", "getPos")
	s.ErrorIs(err, ErrTimeout)
}

func (s *EventSuite) TestSlowHandlerDoesNotBlockReplies() {
	srv := newWSServer(s.T(), func(ws *wsServer, env wire.Envelope) {
		ws.pushEvent("slow", 1)
		ws.reply(wire.TypeResult, "fast")
	})
	c := s.dial(srv, WithCallTimeout(2*time.Second))

	release := make(chan struct{})
	c.On("slow", func(json.RawMessage) { <-release })
	defer close(release)

	start := time.Now()
	data, err := c.Call(s.shortCtx(), "steve", "getPos")
	s.Require().NoError(err)
	s.JSONEq(`"fast"`, string(data))
	s.Less(time.Since(start), time.Second, "stuck handler stalled the read loop")
}
