package voxlink

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"

	"github.com/voxlink/voxlink/wire"
)

// frameHandler scripts the fake server's reaction to one client frame.
type frameHandler func(s *wsServer, env wire.Envelope)

// wsServer is an in-process world server for tests: an httptest server with
// a websocket endpoint at /ws that hands every decoded client frame to a
// per-test handler and can push arbitrary frames back.
type wsServer struct {
	t       *testing.T
	srv     *httptest.Server
	onFrame frameHandler

	mu    sync.Mutex
	conns []*websocket.Conn
}

func newWSServer(t *testing.T, onFrame frameHandler) *wsServer {
	s := &wsServer{t: t, onFrame: onFrame}
	up := websocket.Upgrader{}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns = append(s.conns, conn)
		s.mu.Unlock()
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			env, derr := wire.Decode(raw)
			if derr != nil {
				continue
			}
			if s.onFrame != nil {
				s.onFrame(s, env)
			}
		}
	})
	s.srv = httptest.NewServer(mux)
	t.Cleanup(s.close)
	return s
}

func (s *wsServer) url() string {
	return "ws" + strings.TrimPrefix(s.srv.URL, "http") + "/ws"
}

// writeRaw sends bytes verbatim on the most recent connection.
func (s *wsServer) writeRaw(raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.conns) == 0 {
		s.t.Error("wsServer: no client connection to write to")
		return
	}
	conn := s.conns[len(s.conns)-1]
	if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
		s.t.Errorf("wsServer: write: %v", err)
	}
}

// write marshals v and sends it as one frame.
func (s *wsServer) write(v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.t.Errorf("wsServer: marshal frame: %v", err)
		return
	}
	s.writeRaw(raw)
}

// reply sends a {type, data} frame.
func (s *wsServer) reply(typ string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		s.t.Errorf("wsServer: marshal reply: %v", err)
		return
	}
	frame, _ := json.Marshal(wire.Envelope{Type: typ, Data: raw})
	s.writeRaw(frame)
}

// pushEvent sends an event frame with the nested {name, data} payload.
func (s *wsServer) pushEvent(name string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		s.t.Errorf("wsServer: marshal event: %v", err)
		return
	}
	inner, _ := json.Marshal(wire.Event{Name: name, Data: raw})
	frame, _ := json.Marshal(wire.Envelope{Type: wire.TypeEvent, Data: inner})
	s.writeRaw(frame)
}

// dropConns closes every client connection without stopping the server.
func (s *wsServer) dropConns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, conn := range s.conns {
		_ = conn.Close()
	}
	s.conns = nil
}

func (s *wsServer) close() {
	s.dropConns()
	s.srv.Close()
}

// BaseSuite carries the dial helper shared by the transport suites.
type BaseSuite struct {
	suite.Suite
}

// dial connects a fresh client to srv and registers teardown.
func (s *BaseSuite) dial(srv *wsServer, opts ...Option) *Client {
	c := New(srv.url(), opts...)
	s.Require().NoError(c.Connect(context.Background()))
	s.T().Cleanup(c.Disconnect)
	return c
}

func (s *BaseSuite) shortCtx() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	s.T().Cleanup(cancel)
	return ctx
}
