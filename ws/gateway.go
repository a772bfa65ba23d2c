package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"tnkr-backend/auth"
	"tnkr-backend/errors"
	"tnkr-backend/services"
)

var upgrader = websocket.Upgrader{
	// Cross-origin policy is enforced at the edge, not here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Gateway is the real-time entry point. It authenticates the handshake,
// manages room membership, and feeds send events into the chat service.
type Gateway struct {
	registry *Registry
	chat     services.IChatService
	log      *slog.Logger
}

func NewGateway(registry *Registry, chat services.IChatService, log *slog.Logger) *Gateway {
	return &Gateway{registry: registry, chat: chat, log: log}
}

// Handle authenticates and upgrades one connection. The token is verified
// synchronously before the upgrade: an unauthenticated client never receives
// a single event. On success the connection joins the caller's identity room
// and stays there until disconnect.
func (g *Gateway) Handle(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		tokenStr = r.Header.Get(auth.TokenHeader)
	}
	if tokenStr == "" {
		http.Error(w, errors.ErrNoToken.Error(), http.StatusUnauthorized)
		return
	}

	claims, err := auth.ValidateToken(tokenStr)
	if err != nil {
		http.Error(w, errors.ErrInvalidToken.Error(), http.StatusUnauthorized)
		return
	}

	sock, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Debug("websocket upgrade failed", "error", err)
		return
	}

	conn := newConnection(sock, claims.UserID, claims.Role, g.log)
	g.registry.Join(conn)
	g.log.Info("connection joined", "user_id", claims.UserID)

	defer func() {
		g.registry.Leave(conn)
		conn.Close()
		g.log.Info("connection left", "user_id", claims.UserID)
	}()

	g.readLoop(r.Context(), conn)
}

// readLoop processes events from one connection in arrival order, so a
// single client's sends are never reordered. Each iteration runs to
// completion; a stalled persistence call stalls only this connection.
func (g *Gateway) readLoop(ctx context.Context, conn *Connection) {
	for {
		_, data, err := conn.sock.ReadMessage()
		if err != nil {
			return
		}

		var envelope Envelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			g.log.Debug("dropping unparseable frame", "user_id", conn.userID)
			continue
		}

		switch envelope.Event {
		case EventSendMessage:
			g.handleSend(ctx, conn, envelope)
		case EventJoinConversation:
			var payload ConversationPayload
			if err := json.Unmarshal(envelope.Data, &payload); err == nil && payload.ConversationID != "" {
				g.registry.JoinConversation(conn, payload.ConversationID)
			}
		case EventLeaveConversation:
			var payload ConversationPayload
			if err := json.Unmarshal(envelope.Data, &payload); err == nil && payload.ConversationID != "" {
				g.registry.LeaveConversation(conn, payload.ConversationID)
			}
		default:
			g.log.Debug("ignoring unknown event", "event", envelope.Event, "user_id", conn.userID)
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// handleSend pipes one send through the chat service and acks the outcome
// to the originating connection only. Failures are never broadcast.
func (g *Gateway) handleSend(ctx context.Context, conn *Connection, envelope Envelope) {
	var payload SendMessagePayload
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		g.ack(conn, envelope.AckID, AckPayload{Status: "error", Error: errors.ErrMissingReceiver.Error()})
		return
	}

	message, err := g.chat.SendMessage(ctx, conn.userID, payload.ReceiverID, payload.Content)
	if err != nil {
		g.ack(conn, envelope.AckID, AckPayload{Status: "error", Error: err.Error()})
		return
	}

	g.ack(conn, envelope.AckID, AckPayload{Status: "ok", Message: message})
}

func (g *Gateway) ack(conn *Connection, ackID *int64, payload AckPayload) {
	if ackID == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	conn.WriteEvent(Envelope{Event: EventAck, AckID: ackID, Data: data})
}
