package ws

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func testConn(userID string) *Connection {
	// No socket and no writer goroutine: registry tests never write frames.
	return &Connection{
		userID: userID,
		send:   make(chan []byte, writeBuffer),
		done:   make(chan struct{}),
		log:    slog.Default(),
	}
}

func TestRegistry_JoinAndLeave(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	conn := testConn("alice")
	registry.Join(conn)
	req.Len(registry.Connections("alice"), 1)

	registry.Leave(conn)
	req.Empty(registry.Connections("alice"))
}

func TestRegistry_MultiDevice(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	phone := testConn("alice")
	laptop := testConn("alice")
	registry.Join(phone)
	registry.Join(laptop)

	req.Len(registry.Connections("alice"), 2, "one user may hold several live connections")

	registry.Leave(phone)
	remaining := registry.Connections("alice")
	req.Len(remaining, 1)
	req.Same(laptop, remaining[0])
}

func TestRegistry_LeaveIsIdempotent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	conn := testConn("alice")
	registry.Join(conn)
	registry.Leave(conn)
	registry.Leave(conn) // a second disconnect must be harmless
	req.Empty(registry.Connections("alice"))

	registry.Leave(testConn("never-joined"))
}

func TestRegistry_UnknownUserHasNoConnections(t *testing.T) {
	require.Empty(t, NewRegistry().Connections("nobody"))
}

func TestRegistry_ConversationRooms(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	alice := testConn("alice")
	bob := testConn("bob")
	registry.Join(alice)
	registry.Join(bob)

	registry.JoinConversation(alice, "conv-1")
	registry.JoinConversation(bob, "conv-1")
	req.Len(registry.ConversationMembers("conv-1"), 2)

	registry.LeaveConversation(alice, "conv-1")
	req.Len(registry.ConversationMembers("conv-1"), 1)

	// Disconnecting sweeps every conversation room too.
	registry.Leave(bob)
	req.Empty(registry.ConversationMembers("conv-1"))
}
