package voxlink

import (
	"context"
	"encoding/json"

	"github.com/voxlink/voxlink/wire"
)

// Session is the identity the server hands back on a successful login.
type Session struct {
	PlayerUUID string
	World      string
}

// Login identifies the player to the server and waits for the logged
// acknowledgment. The reply must carry both playerUUID and world; a reply
// missing either is a *ProtocolError and the session is not established.
func (c *Client) Login(ctx context.Context, player string) (*Session, error) {
	data, err := c.Send(ctx, wire.TypeLogin, wire.LoginData{Player: player})
	if err != nil {
		return nil, err
	}

	var res wire.LoginResult
	if err := json.Unmarshal(data, &res); err != nil {
		c.established.Store(false)
		return nil, &DecodeError{Raw: data, Err: err}
	}
	if res.PlayerUUID == "" || res.World == "" {
		c.established.Store(false)
		return nil, &ProtocolError{Reason: "login reply missing playerUUID or world", Data: data}
	}
	return &Session{PlayerUUID: res.PlayerUUID, World: res.World}, nil
}

// Call invokes a named remote operation on an entity and returns the raw
// reply payload. Args are passed through in order, untouched.
func (c *Client) Call(ctx context.Context, entity, name string, args ...any) (json.RawMessage, error) {
	return c.Send(ctx, wire.TypeCall, wire.CallData{Entity: entity, Name: name, Args: args})
}

// Hook subscribes to a named server-side condition on an entity and waits
// for it to fire.
func (c *Client) Hook(ctx context.Context, entity, name string, args ...any) (json.RawMessage, error) {
	return c.Send(ctx, wire.TypeHook, wire.CallData{Entity: entity, Name: name, Args: args})
}

// Attach binds the session to a remote entity.
func (c *Client) Attach(ctx context.Context, entity string) (json.RawMessage, error) {
	return c.Send(ctx, wire.TypeAttach, wire.AttachData{Entity: entity})
}

// Start signals readiness for an attached entity.
func (c *Client) Start(ctx context.Context, entity string) (json.RawMessage, error) {
	return c.Send(ctx, wire.TypeStart, wire.AttachData{Entity: entity})
}
