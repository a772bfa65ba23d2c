package ws

import "sync"

type connSet map[*Connection]struct{}

// Registry tracks which live connections belong to which identity. Each
// authenticated connection sits in the room named after its user id; that
// room is the sole routing mechanism for server-to-client events. Rooms are
// purely in-memory and rebuilt empty on restart.
//
// A secondary set of conversation rooms exists for scoping future broadcast
// features; direct delivery never depends on it.
type Registry struct {
	mu            sync.RWMutex
	users         map[string]connSet
	conversations map[string]connSet
}

func NewRegistry() *Registry {
	return &Registry{
		users:         make(map[string]connSet),
		conversations: make(map[string]connSet),
	}
}

// Join places a connection into its identity room. A user may hold several
// concurrent connections (multi-device).
func (r *Registry) Join(conn *Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[conn.userID]; !ok {
		r.users[conn.userID] = make(connSet)
	}
	r.users[conn.userID][conn] = struct{}{}
}

// Leave removes a connection from its identity room and from every
// conversation room. Removing an already-absent connection is a no-op, so
// disconnect handling may run more than once safely.
func (r *Registry) Leave(conn *Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if members, ok := r.users[conn.userID]; ok {
		delete(members, conn)
		if len(members) == 0 {
			delete(r.users, conn.userID)
		}
	}
	for id, members := range r.conversations {
		delete(members, conn)
		if len(members) == 0 {
			delete(r.conversations, id)
		}
	}
}

// Connections snapshots the live connections of one user. Zero members is a
// normal outcome, not an error: the caller simply has nobody to push to.
func (r *Registry) Connections(userID string) []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.users[userID]
	if !ok {
		return nil
	}
	conns := make([]*Connection, 0, len(members))
	for conn := range members {
		conns = append(conns, conn)
	}
	return conns
}

func (r *Registry) JoinConversation(conn *Connection, conversationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conversations[conversationID]; !ok {
		r.conversations[conversationID] = make(connSet)
	}
	r.conversations[conversationID][conn] = struct{}{}
}

func (r *Registry) LeaveConversation(conn *Connection, conversationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if members, ok := r.conversations[conversationID]; ok {
		delete(members, conn)
		if len(members) == 0 {
			delete(r.conversations, conversationID)
		}
	}
}

// ConversationMembers snapshots the members of one conversation room.
func (r *Registry) ConversationMembers(conversationID string) []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.conversations[conversationID]
	if !ok {
		return nil
	}
	conns := make([]*Connection, 0, len(members))
	for conn := range members {
		conns = append(conns, conn)
	}
	return conns
}
