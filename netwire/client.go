// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netwire

import (
	"cogentcore.org/core/base/logx"
	"cogentcore.org/replica"
	"cogentcore.org/replica/blend"
	"github.com/gorilla/websocket"
)

// Client receives [Snapshot] messages from a snapshot server.
// Use [Dial] to create one, then [Client.OnSnapshot] or
// [Client.Feed] to start receiving.
type Client struct {

	// conn is the underlying WebSocket connection.
	conn *websocket.Conn

	// done is closed when the read loop ends.
	done chan struct{}
}

// Dial connects to a snapshot server at the given ws:// or wss:// URL.
func Dial(url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, done: make(chan struct{})}, nil
}

// OnSnapshot starts the read loop, calling f for each decoded
// snapshot. Messages that fail to decode are logged and skipped:
// one bad frame must not kill a live feed. This function can only
// be called once.
func (c *Client) OnSnapshot(f func(sn Snapshot)) {
	go func() {
		for {
			_, msg, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logx.PrintlnWarn("netwire: read:", err)
				}
				close(c.done)
				return
			}
			var sn Snapshot
			if err := sn.Decode(msg); err != nil {
				logx.PrintlnWarn("netwire: bad snapshot:", err)
				continue
			}
			f(sn)
		}
	}()
}

// Feed starts the read loop, routing every snapshot into the given
// world: teleport snapshots reset the entity's track before the new
// state is observed, and everything else is observed directly. This
// function can only be called once, in place of [Client.OnSnapshot].
func (c *Client) Feed(w *replica.World[blend.Pose]) {
	c.OnSnapshot(func(sn Snapshot) {
		if sn.Teleport {
			w.Teleport(sn.ID)
		}
		w.Observe(sn.ID, sn.Pose, sn.Time)
	})
}

// Done returns a channel that is closed once the read loop ends,
// after the server closes the connection or it fails.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close cleanly closes the connection. The read loop ends (and
// [Client.Done] closes) once the server acknowledges the close.
func (c *Client) Close() error {
	return c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
