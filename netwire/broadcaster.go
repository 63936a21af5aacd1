// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netwire

import (
	"net/http"
	"sync"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/logx"
	"github.com/gorilla/websocket"
)

// Broadcaster is the simulation side of a snapshot stream: an
// [http.Handler] that upgrades incoming connections to WebSockets
// and fans every [Broadcaster.Broadcast] snapshot out to all of
// them. Use [NewBroadcaster] to make one and mount it on any mux.
type Broadcaster struct {
	upgrader websocket.Upgrader

	mu     sync.Mutex
	conns  map[*websocket.Conn]bool
	closed bool
}

// NewBroadcaster returns a new [Broadcaster] ready to serve.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{conns: make(map[*websocket.Conn]bool)}
}

// ServeHTTP upgrades the request to a WebSocket connection and
// registers it for broadcasts until it closes.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		http.Error(w, "broadcaster closed", http.StatusServiceUnavailable)
		return
	}
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if errors.Log(err) != nil {
		return
	}
	b.mu.Lock()
	b.conns[conn] = true
	b.mu.Unlock()

	// clients only listen, but the read loop is what consumes
	// control frames and notices the peer going away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	conn.Close()
	b.mu.Lock()
	delete(b.conns, conn)
	b.mu.Unlock()
}

// Broadcast encodes the snapshot once and sends it to every
// connected client. Clients whose connection has failed are
// dropped. The returned error is only for encoding failures.
func (b *Broadcaster) Broadcast(sn Snapshot) error {
	msg, err := sn.Encode()
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for conn := range b.conns {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logx.PrintlnDebug("netwire: dropping client:", err)
			conn.Close()
			delete(b.conns, conn)
		}
	}
	return nil
}

// NumClients returns the number of connected clients.
func (b *Broadcaster) NumClients() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.conns)
}

// Close closes every client connection and makes the broadcaster
// reject new ones.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for conn := range b.conns {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	}
	clear(b.conns)
}
