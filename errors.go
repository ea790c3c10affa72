package voxlink

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotConnected is returned when a call is attempted before Connect or
	// after the connection has been closed or lost.
	ErrNotConnected = errors.New("voxlink: not connected")

	// ErrTimeout is returned when no reply arrives within the call timeout.
	ErrTimeout = errors.New("voxlink: timed out waiting for reply")
)

// ConnectError reports a failed connection attempt: the dial itself failed or
// the websocket handshake did not complete within the connect timeout.
type ConnectError struct {
	Addr string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("voxlink: connect %s: %v", e.Addr, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// ServerError is an explicit error reply from the server. Kind is the
// envelope type that carried it and Data the server's reported payload.
type ServerError struct {
	Kind string
	Data json.RawMessage
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("voxlink: server %s: %s", e.Kind, e.Data)
}

// DecodeError reports a frame the client could not parse. Raw holds the
// offending bytes as received.
type DecodeError struct {
	Raw []byte
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("voxlink: bad frame: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ProtocolError reports a well-formed reply that violates the protocol,
// such as a login reply missing required fields.
type ProtocolError struct {
	Reason string
	Data   json.RawMessage
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("voxlink: protocol violation: %s", e.Reason)
}
