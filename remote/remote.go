// Package remote provides thin proxy wrappers over a voxlink client: an
// Entity bound to a remote object id and a Player carrying the login
// session. The proxies only build calls; they never touch the socket or the
// pending request slot.
package remote

import (
	"context"
	"encoding/json"

	"github.com/voxlink/voxlink"
)

// Entity proxies one remote object.
type Entity struct {
	c  *voxlink.Client
	id string
}

// NewEntity binds a proxy to an entity id on an existing client.
func NewEntity(c *voxlink.Client, id string) *Entity {
	return &Entity{c: c, id: id}
}

// ID returns the remote entity id this proxy is bound to.
func (e *Entity) ID() string { return e.id }

// Call invokes a named remote operation on this entity.
func (e *Entity) Call(ctx context.Context, name string, args ...any) (json.RawMessage, error) {
	return e.c.Call(ctx, e.id, name, args...)
}

// Hook waits for a named server-side condition on this entity.
func (e *Entity) Hook(ctx context.Context, name string, args ...any) (json.RawMessage, error) {
	return e.c.Hook(ctx, e.id, name, args...)
}

// Attach binds the session to this entity.
func (e *Entity) Attach(ctx context.Context) error {
	_, err := e.c.Attach(ctx, e.id)
	return err
}

// Start signals readiness for this entity.
func (e *Entity) Start(ctx context.Context) error {
	_, err := e.c.Start(ctx, e.id)
	return err
}

// Bind attaches to the entity and signals readiness in one step.
func (e *Entity) Bind(ctx context.Context) error {
	if err := e.Attach(ctx); err != nil {
		return err
	}
	return e.Start(ctx)
}

// Player is an Entity plus the identity returned by login.
type Player struct {
	Entity
	UUID  string
	World string
}

// Login performs the login handshake and returns a proxy for the player.
func Login(ctx context.Context, c *voxlink.Client, name string) (*Player, error) {
	sess, err := c.Login(ctx, name)
	if err != nil {
		return nil, err
	}
	return &Player{
		Entity: Entity{c: c, id: name},
		UUID:   sess.PlayerUUID,
		World:  sess.World,
	}, nil
}

// On registers a handler for a named world event.
func (p *Player) On(event string, fn voxlink.Handler) {
	p.c.On(event, fn)
}
