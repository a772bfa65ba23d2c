package ws

import "encoding/json"

// Pusher adapts the registry to the service layer's fan-out contract.
// A push reaches every connection currently in the user's room; a racing
// disconnect may simply miss a since-departed connection, which is fine
// because the message was persisted before the push.
type Pusher struct {
	registry *Registry
}

func NewPusher(registry *Registry) *Pusher {
	return &Pusher{registry: registry}
}

func (p *Pusher) PushToUser(userID string, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	envelope := Envelope{Event: event, Data: data}
	for _, conn := range p.registry.Connections(userID) {
		conn.WriteEvent(envelope)
	}
}
