package websocket

import "sync"

type sessionState struct {
	userID string
	rooms  map[string]bool
}

// Registry tracks which live connections belong to which user identity and
// which rooms they joined. It is process-local state, rebuilt from zero on
// restart; clients re-announce themselves after reconnecting.
//
// A user may hold several concurrent sessions (multiple tabs or devices);
// every one of them receives events addressed to that user.
type Registry struct {
	mu       sync.RWMutex
	sessions map[*Client]*sessionState
	rooms    map[string]map[*Client]bool
	users    map[string]map[*Client]bool
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[*Client]*sessionState),
		rooms:    make(map[string]map[*Client]bool),
		users:    make(map[string]map[*Client]bool),
	}
}

// Register adds an anonymous session. The connection joins a room named after
// its own connection id so it can be addressed directly.
func (r *Registry) Register(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[c] = &sessionState{rooms: make(map[string]bool)}
	r.joinRoomLocked(c, c.ID)
}

// Bind attaches a user identity to a session and joins its personal room.
// Binding again with a different user replaces the previous binding; the old
// identity stops receiving events on this connection.
func (r *Registry) Bind(c *Client, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[c]
	if !ok {
		return
	}

	if sess.userID != "" && sess.userID != userID {
		r.removeUserLocked(c, sess.userID)
		r.leaveRoomLocked(c, sess.userID)
	}

	sess.userID = userID
	if _, ok := r.users[userID]; !ok {
		r.users[userID] = make(map[*Client]bool)
	}
	r.users[userID][c] = true
	r.joinRoomLocked(c, userID)
}

func (r *Registry) JoinRoom(c *Client, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[c]; !ok {
		return
	}
	r.joinRoomLocked(c, roomID)
}

// Unregister removes the session from every room and identity mapping it
// participated in. It runs unconditionally, identity announced or not, and
// reports whether the session was still registered.
func (r *Registry) Unregister(c *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[c]
	if !ok {
		return false
	}

	for roomID := range sess.rooms {
		r.leaveRoomLocked(c, roomID)
	}
	if sess.userID != "" {
		r.removeUserLocked(c, sess.userID)
	}
	delete(r.sessions, c)
	return true
}

func (r *Registry) ClientsInRoom(roomID string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clients := make([]*Client, 0, len(r.rooms[roomID]))
	for c := range r.rooms[roomID] {
		clients = append(clients, c)
	}
	return clients
}

func (r *Registry) ClientsForUser(userID string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clients := make([]*Client, 0, len(r.users[userID]))
	for c := range r.users[userID] {
		clients = append(clients, c)
	}
	return clients
}

func (r *Registry) UserID(c *Client) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if sess, ok := r.sessions[c]; ok {
		return sess.userID
	}
	return ""
}

func (r *Registry) AllClients() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clients := make([]*Client, 0, len(r.sessions))
	for c := range r.sessions {
		clients = append(clients, c)
	}
	return clients
}

func (r *Registry) Connections() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) joinRoomLocked(c *Client, roomID string) {
	if _, ok := r.rooms[roomID]; !ok {
		r.rooms[roomID] = make(map[*Client]bool)
	}
	r.rooms[roomID][c] = true
	r.sessions[c].rooms[roomID] = true
}

func (r *Registry) leaveRoomLocked(c *Client, roomID string) {
	if clients, ok := r.rooms[roomID]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(r.rooms, roomID)
		}
	}
	if sess, ok := r.sessions[c]; ok {
		delete(sess.rooms, roomID)
	}
}

func (r *Registry) removeUserLocked(c *Client, userID string) {
	if clients, ok := r.users[userID]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(r.users, userID)
		}
	}
}
