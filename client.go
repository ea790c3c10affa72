package voxlink

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	defaultConnectTimeout = 5 * time.Second
	defaultCallTimeout    = 30 * time.Second
	writeWait             = 5 * time.Second
)

// Client is one logical session with a world server: a single websocket
// carrying request/reply traffic and server-pushed events. A Client is safe
// for concurrent use; calls are serialized so at most one request is in
// flight at a time.
type Client struct {
	addr string

	dialer         *websocket.Dialer
	connectTimeout time.Duration
	callTimeout    time.Duration
	log            zerolog.Logger

	// open means the socket is live and the read loop is running.
	// established is set only by a logged frame from the server.
	open        atomic.Bool
	established atomic.Bool

	mu      sync.Mutex // guards conn and pending
	conn    *websocket.Conn
	pending *pendingReply

	wmu  sync.Mutex    // serializes socket writes
	gate chan struct{} // send+await critical section, capacity 1

	bus evbus.Bus
}

// Option configures a Client.
type Option func(*Client)

// WithLogger injects a structured logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithConnectTimeout bounds the websocket handshake on Connect.
func WithConnectTimeout(d time.Duration) Option {
	return func(c *Client) { c.connectTimeout = d }
}

// WithCallTimeout bounds how long a call waits for its reply.
func WithCallTimeout(d time.Duration) Option {
	return func(c *Client) { c.callTimeout = d }
}

// WithDialer replaces the websocket dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(c *Client) { c.dialer = d }
}

// New builds a Client for the given server address. addr is either a bare
// host:port, which is expanded to ws://host:port/ws, or a full ws:// / wss://
// URL used verbatim.
func New(addr string, opts ...Option) *Client {
	c := &Client{
		addr:           addr,
		connectTimeout: defaultConnectTimeout,
		callTimeout:    defaultCallTimeout,
		log:            zerolog.Nop(),
		gate:           make(chan struct{}, 1),
		bus:            evbus.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect opens the websocket and starts the read loop. It returns once the
// socket is open for writing, or a *ConnectError if the dial or handshake
// fails within the connect timeout. On failure nothing is left running.
func (c *Client) Connect(ctx context.Context) error {
	if c.open.Load() {
		return &ConnectError{Addr: c.addr, Err: errors.New("already connected")}
	}

	conn, err := c.dial(ctx)
	if err != nil {
		return &ConnectError{Addr: c.addr, Err: err}
	}

	c.mu.Lock()
	c.conn = conn
	c.pending = nil
	c.mu.Unlock()
	c.established.Store(false)
	c.open.Store(true)

	c.log.Info().Str("addr", c.addr).Msg("connected")
	go c.readLoop(conn)
	return nil
}

// Disconnect closes the session. It is idempotent: safe to call repeatedly
// and before any Connect. A request in flight is failed by the read loop's
// teardown.
func (c *Client) Disconnect() {
	wasOpen := c.open.Swap(false)
	c.established.Store(false)
	c.closeConn()
	if wasOpen {
		c.log.Info().Str("addr", c.addr).Msg("disconnected")
	}
}

// Close is an alias for Disconnect.
func (c *Client) Close() { c.Disconnect() }

// Connected reports whether the socket is live. It says nothing about login;
// see Established.
func (c *Client) Connected() bool { return c.open.Load() }

// Established reports whether the server has acknowledged login with a
// logged frame on this connection.
func (c *Client) Established() bool { return c.established.Load() }
