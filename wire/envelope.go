// Package wire defines the JSON envelope exchanged with a world server and
// the codec for it. Every frame is one UTF-8 text message holding a
// {"type": ..., "data": ...} object; event frames nest a second
// {"name": ..., "data": ...} object inside data.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Outgoing envelope types.
const (
	TypeLogin  = "login"
	TypeCall   = "call"
	TypeHook   = "hook"
	TypeAttach = "attach"
	TypeStart  = "start"
)

// Incoming envelope types. Anything else is treated as a plain reply.
const (
	TypeResult = "result"
	TypeError  = "error"
	TypeLogged = "logged"
	TypeEvent  = "event"
)

// Envelope is the outer wire unit.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Event is the inner payload of a TypeEvent envelope.
type Event struct {
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

// LoginData is the payload of a login envelope.
type LoginData struct {
	Player string `json:"player"`
}

// LoginResult is the reply payload of a successful login. Both fields are
// required; a reply missing either is a protocol violation.
type LoginResult struct {
	PlayerUUID string `json:"playerUUID"`
	World      string `json:"world"`
}

// CallData is the payload of call and hook envelopes. Args ride as a JSON
// array of loosely-typed values and are preserved in order, never interpreted.
type CallData struct {
	Entity string `json:"entity"`
	Name   string `json:"name"`
	Args   []any  `json:"args,omitempty"`
}

// AttachData is the payload of attach and start envelopes.
type AttachData struct {
	Entity string `json:"entity"`
}

// Encode builds one outgoing frame.
func Encode(typ string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode %s data: %w", typ, err)
	}
	frame, err := json.Marshal(Envelope{Type: typ, Data: raw})
	if err != nil {
		return nil, fmt.Errorf("encode %s envelope: %w", typ, err)
	}
	return frame, nil
}

// Decode parses one incoming frame into its envelope.
func Decode(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("decode envelope: missing type")
	}
	return env, nil
}

// DecodeEvent parses the nested event payload of a TypeEvent envelope.
func (e Envelope) DecodeEvent() (Event, error) {
	var ev Event
	if err := json.Unmarshal(e.Data, &ev); err != nil {
		return Event{}, fmt.Errorf("decode event payload: %w", err)
	}
	if ev.Name == "" {
		return Event{}, fmt.Errorf("decode event payload: missing name")
	}
	return ev, nil
}

// IsNull reports whether a raw payload is absent or JSON null.
func IsNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
