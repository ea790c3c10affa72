package voxlink

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// wsURL expands a bare host:port into the server's websocket endpoint.
func (c *Client) wsURL() string {
	if strings.HasPrefix(c.addr, "ws://") || strings.HasPrefix(c.addr, "wss://") {
		return c.addr
	}
	return fmt.Sprintf("ws://%s/ws", c.addr)
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := c.dialer
	if dialer == nil {
		d := *websocket.DefaultDialer
		dialer = &d
	}
	dialer.HandshakeTimeout = c.connectTimeout

	ctx, cancel := context.WithTimeout(ctx, c.connectTimeout)
	defer cancel()

	conn, _, err := dialer.DialContext(ctx, c.wsURL(), nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// closeConn tears down the current socket if any. Safe to call repeatedly;
// both Disconnect and the read loop's teardown go through here.
func (c *Client) closeConn() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "closing"),
			time.Now().Add(writeWait))
		_ = conn.Close()
	}
}

// writeFrame sends one text frame. Writes are serialized and bounded by a
// write deadline so a stuck peer cannot wedge a caller forever.
func (c *Client) writeFrame(frame []byte) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}

	c.wmu.Lock()
	defer c.wmu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, frame)
}
