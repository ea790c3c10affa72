// Package voxlink is a websocket client transport for scripting a remote
// voxel world. It multiplexes one persistent connection into a
// request/response channel and an asynchronous named event stream.
//
// The wire protocol carries no request IDs, so calls are strictly
// single-flight: a gate admits one caller at a time into the send+await
// window and the next result/error frame belongs to whoever is waiting.
// Server-pushed event frames bypass that path entirely and fan out to
// handlers registered with On.
//
// There is no reconnection. A socket error or close fails the request in
// flight, flips the client to not-connected, and every later call fails
// fast with ErrNotConnected until a fresh Connect.
//
// Example:
//
//	c := voxlink.New("localhost:8765",
//		voxlink.WithLogger(log),
//		voxlink.WithCallTimeout(10*time.Second))
//	if err := c.Connect(ctx); err != nil {
//		return err
//	}
//	defer c.Disconnect()
//
//	sess, err := c.Login(ctx, "Ada")
//	if err != nil {
//		return err
//	}
//	fmt.Println(sess.PlayerUUID, sess.World)
//
//	c.On("chat", func(data json.RawMessage) {
//		fmt.Printf("chat: %s\n", data)
//	})
//
//	pos, err := c.Call(ctx, "Ada", "getPos")
package voxlink
