package server

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"onenight/internal/engine"
	"onenight/internal/lobby"
	"onenight/internal/protocol"
)

func newLobbyHub(t *testing.T, names ...string) (*Hub, *lobby.Lobby) {
	t.Helper()
	lob := lobby.NewLobby("g", engine.NewRegistry())
	for _, name := range names {
		if err := lob.Join(name+"-id", name); err != nil {
			t.Fatalf("join %s: %v", name, err)
		}
		lob.SetReady(name+"-id", true)
	}
	return NewHub("g", lob, time.Second, nil), lob
}

func run(t *testing.T, h *Hub) {
	t.Helper()
	go h.Run()
	t.Cleanup(h.Stop)
}

// settle returns once Run has finished handling everything sent before it.
func settle(h *Hub) {
	h.register <- NewClient(h, nil, "")
}

func playerIDs(lob *lobby.Lobby) []string {
	var ids []string
	for _, p := range lob.GetPlayers() {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestReconnectKeepsNewSocket(t *testing.T) {
	h, lob := newLobbyHub(t, "ann")
	r := NewRemoteParticipant("ann", nil, time.Second, h.log)
	h.remotes["ann-id"] = r
	run(t, h)

	old, fresh := NewClient(h, nil, "ann-id"), NewClient(h, nil, "ann-id")
	h.register <- old
	h.register <- fresh
	h.unregister <- old
	settle(h)

	if err := r.ShowWin(context.Background(), true); err != nil {
		t.Fatalf("notify after reload: %v", err)
	}
	for {
		select {
		case data, ok := <-fresh.send:
			if !ok {
				t.Fatal("new socket was closed")
			}
			var env protocol.Envelope
			if err := json.Unmarshal(data, &env); err != nil {
				t.Fatal(err)
			}
			if env.Type != protocol.MsgWin {
				continue
			}
			if ids := playerIDs(lob); len(ids) != 1 || ids[0] != "ann-id" {
				t.Errorf("players after reload: %v", ids)
			}
			return
		case <-time.After(2 * time.Second):
			t.Fatal("win never reached the new socket")
		}
	}
}

func TestDisconnectLeavesLobby(t *testing.T) {
	h, lob := newLobbyHub(t, "ann", "bob")
	run(t, h)

	c := NewClient(h, nil, "ann-id")
	h.register <- c
	h.unregister <- c
	settle(h)

	if ids := playerIDs(lob); len(ids) != 1 || ids[0] != "bob-id" {
		t.Errorf("players: %v", ids)
	}
}

func TestDisconnectKeepsSeatAfterStart(t *testing.T) {
	h, lob := newLobbyHub(t, "ann", "bob", "cat")
	roles := map[string]int{"Werewolf": 1, "Seer": 1, "Robber": 1, "Villager": 1, "Tanner": 1, "Hunter": 1}
	if err := lob.SetRoles(roles, false); err != nil {
		t.Fatal(err)
	}
	if _, err := lob.Start(); err != nil {
		t.Fatal(err)
	}
	run(t, h)

	c := NewClient(h, nil, "ann-id")
	h.register <- c
	h.unregister <- c
	settle(h)

	if ids := playerIDs(lob); len(ids) != 3 {
		t.Errorf("players: %v", ids)
	}
}

func TestLobbyUpdateReportsCanStart(t *testing.T) {
	tests := []struct {
		names []string
		want  bool
	}{
		{[]string{"ann", "bob"}, false},
		{[]string{"ann", "bob", "cat"}, true},
	}
	for _, tt := range tests {
		h, _ := newLobbyHub(t, tt.names...)
		run(t, h)

		c := NewClient(h, nil, "watcher")
		h.register <- c
		var env protocol.Envelope
		select {
		case data := <-c.send:
			if err := json.Unmarshal(data, &env); err != nil {
				t.Fatal(err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("no lobby update")
		}
		var up protocol.LobbyUpdate
		if err := env.Decode(&up); err != nil {
			t.Fatal(err)
		}
		if env.Type != protocol.MsgLobbyUpdate || up.CanStart != tt.want {
			t.Errorf("%d players: %s can_start=%v", len(tt.names), env.Type, up.CanStart)
		}
	}
}
