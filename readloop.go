package voxlink

import (
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/voxlink/voxlink/wire"
)

// readLoop drains the socket until it errors or is closed. It never returns
// an error to anyone: every failure is converted into a resolution of the
// pending request or a state flip that later sends observe.
func (c *Client) readLoop(conn *websocket.Conn) {
	defer func() {
		wasOpen := c.open.Swap(false)
		c.established.Store(false)
		c.closeConn()
		c.failPending(fmt.Errorf("%w: connection closed while awaiting reply", ErrNotConnected))
		if wasOpen {
			c.log.Info().Str("addr", c.addr).Msg("connection lost")
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if c.open.Load() {
				c.log.Debug().Err(err).Msg("read failed")
			}
			return
		}
		c.route(raw)
	}
}

// route classifies one inbound frame and delivers it.
func (c *Client) route(raw []byte) {
	env, err := wire.Decode(raw)
	if err != nil {
		c.log.Warn().Err(err).Msg("undecodable frame")
		c.failPending(&DecodeError{Raw: raw, Err: err})
		return
	}

	c.log.Debug().Str("type", env.Type).Msg("frame")

	switch env.Type {
	case wire.TypeError:
		c.failPending(&ServerError{Kind: env.Type, Data: env.Data})
	case wire.TypeLogged:
		c.established.Store(true)
		c.resolvePending(env.Data, nil)
	case wire.TypeEvent:
		ev, err := env.DecodeEvent()
		if err != nil {
			c.log.Warn().Err(err).Msg("undecodable event")
			c.failPending(&DecodeError{Raw: raw, Err: err})
			return
		}
		if c.dispatch(ev.Name, ev.Data) {
			return
		}
		// Some servers answer certain calls over the event channel. With no
		// listener for the name and a real payload, treat it as the reply.
		if !wire.IsNull(ev.Data) {
			c.resolvePending(ev.Data, nil)
		}
	default:
		// result, attach, and anything unrecognized all resolve the caller.
		c.resolvePending(env.Data, nil)
	}
}
