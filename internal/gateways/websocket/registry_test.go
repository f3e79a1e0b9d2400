package websocket

import "testing"

func newRegisteredClient(r *Registry, id string) *Client {
	c := &Client{ID: id, send: make(chan []byte, sendBufferSize)}
	r.Register(c)
	return c
}

func TestRegisterJoinsOwnConnectionRoom(t *testing.T) {
	r := NewRegistry()
	c := newRegisteredClient(r, "conn-1")

	clients := r.ClientsInRoom("conn-1")
	if len(clients) != 1 || clients[0] != c {
		t.Fatalf("expected connection to be addressable by its own id, got %d clients", len(clients))
	}
	if r.Connections() != 1 {
		t.Fatalf("expected 1 connection, got %d", r.Connections())
	}
	if got := r.UserID(c); got != "" {
		t.Fatalf("anonymous session must have no user id, got %q", got)
	}
}

func TestBindJoinsPersonalRoom(t *testing.T) {
	r := NewRegistry()
	c := newRegisteredClient(r, "conn-1")

	r.Bind(c, "user-1")

	if got := r.UserID(c); got != "user-1" {
		t.Fatalf("expected user-1, got %q", got)
	}
	if clients := r.ClientsInRoom("user-1"); len(clients) != 1 || clients[0] != c {
		t.Fatalf("expected session in personal room, got %d clients", len(clients))
	}
	if clients := r.ClientsForUser("user-1"); len(clients) != 1 || clients[0] != c {
		t.Fatalf("expected session mapped to user, got %d clients", len(clients))
	}
}

func TestRebindReplacesIdentity(t *testing.T) {
	r := NewRegistry()
	c := newRegisteredClient(r, "conn-1")

	r.Bind(c, "user-1")
	r.Bind(c, "user-2")

	if got := r.UserID(c); got != "user-2" {
		t.Fatalf("expected user-2 after rebind, got %q", got)
	}
	if clients := r.ClientsForUser("user-1"); len(clients) != 0 {
		t.Fatalf("old identity must stop routing, got %d clients", len(clients))
	}
	if clients := r.ClientsInRoom("user-1"); len(clients) != 0 {
		t.Fatalf("old personal room must be left, got %d clients", len(clients))
	}
	if clients := r.ClientsForUser("user-2"); len(clients) != 1 {
		t.Fatalf("new identity must route, got %d clients", len(clients))
	}
}

func TestMultipleSessionsPerUser(t *testing.T) {
	r := NewRegistry()
	c1 := newRegisteredClient(r, "conn-1")
	c2 := newRegisteredClient(r, "conn-2")

	r.Bind(c1, "user-1")
	r.Bind(c2, "user-1")

	if clients := r.ClientsForUser("user-1"); len(clients) != 2 {
		t.Fatalf("expected both sessions mapped to the user, got %d", len(clients))
	}

	if !r.Unregister(c1) {
		t.Fatalf("expected Unregister to report a live session")
	}
	clients := r.ClientsForUser("user-1")
	if len(clients) != 1 || clients[0] != c2 {
		t.Fatalf("remaining session must keep routing, got %d clients", len(clients))
	}
}

func TestUnregisterCleansUpRooms(t *testing.T) {
	r := NewRegistry()
	c := newRegisteredClient(r, "conn-1")
	r.Bind(c, "user-1")
	r.JoinRoom(c, "project-42")

	if !r.Unregister(c) {
		t.Fatalf("expected Unregister to report a live session")
	}

	for _, room := range []string{"conn-1", "user-1", "project-42"} {
		if clients := r.ClientsInRoom(room); len(clients) != 0 {
			t.Fatalf("room %q must be empty after unregister, got %d clients", room, len(clients))
		}
	}
	if clients := r.ClientsForUser("user-1"); len(clients) != 0 {
		t.Fatalf("user mapping must be removed, got %d clients", len(clients))
	}
	if r.Connections() != 0 {
		t.Fatalf("expected 0 connections, got %d", r.Connections())
	}
	if r.Unregister(c) {
		t.Fatalf("second Unregister must report the session as gone")
	}
}

func TestJoinRoomIgnoresUnknownSession(t *testing.T) {
	r := NewRegistry()
	c := &Client{ID: "ghost", send: make(chan []byte, 1)}

	r.JoinRoom(c, "project-42")
	r.Bind(c, "user-1")

	if clients := r.ClientsInRoom("project-42"); len(clients) != 0 {
		t.Fatalf("unregistered session must not join rooms")
	}
	if clients := r.ClientsForUser("user-1"); len(clients) != 0 {
		t.Fatalf("unregistered session must not bind an identity")
	}
}
