// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netwire

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cogentcore.org/core/math32"
	"cogentcore.org/replica"
	"cogentcore.org/replica/blend"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestBroadcastFeed(t *testing.T) {
	b := NewBroadcaster()
	srv := httptest.NewServer(b)
	defer srv.Close()

	c, err := Dial(wsURL(srv))
	require.NoError(t, err)

	w := replica.NewWorld[blend.Pose](blend.Poses{}, replica.Params{Delay: 1, Retention: 100})
	c.Feed(w)

	assert.Eventually(t, func() bool { return b.NumClients() == 1 }, time.Second, 10*time.Millisecond)

	var p0 blend.Pose
	p0.Defaults()
	p1 := p0
	p1.Pos = math32.Vec3(10, 0, 0)

	require.NoError(t, b.Broadcast(Snapshot{ID: "p1", Time: 0, Pose: p0}))
	require.NoError(t, b.Broadcast(Snapshot{ID: "p1", Time: 2, Pose: p1}))

	assert.Eventually(t, func() bool {
		pose, err := w.State("p1", 2)
		return err == nil && math32.Abs(pose.Pos.X-5) < 1.0e-4
	}, 2*time.Second, 10*time.Millisecond)

	// a teleport must not blend across the jump
	pj := p0
	pj.Pos = math32.Vec3(500, 0, 0)
	require.NoError(t, b.Broadcast(Snapshot{ID: "p1", Time: 2.5, Pose: pj, Teleport: true}))

	assert.Eventually(t, func() bool {
		pose, err := w.State("p1", 3.5)
		return err == nil && pose.Pos.X == 500
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, c.Close())
	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("client read loop did not end after Close")
	}
	assert.Eventually(t, func() bool { return b.NumClients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestClientSkipsBadFrames(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.WriteMessage(websocket.TextMessage, []byte("{bad json"))
		good := &Snapshot{ID: "ok", Time: 1}
		msg, err := good.Encode()
		if err != nil {
			return
		}
		conn.WriteMessage(websocket.TextMessage, msg)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	c, err := Dial(wsURL(srv))
	require.NoError(t, err)

	got := make(chan Snapshot, 2)
	c.OnSnapshot(func(sn Snapshot) { got <- sn })

	select {
	case sn := <-got:
		assert.Equal(t, "ok", sn.ID)
		assert.Equal(t, 1.0, sn.Time)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot received")
	}
	assert.NoError(t, c.Close())
}

func TestBroadcasterClosed(t *testing.T) {
	b := NewBroadcaster()
	srv := httptest.NewServer(b)
	defer srv.Close()

	b.Close()
	_, err := Dial(wsURL(srv))
	assert.Error(t, err)

	// broadcasting to nobody is fine
	assert.NoError(t, b.Broadcast(Snapshot{ID: "x", Time: 1}))
}
