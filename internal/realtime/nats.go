package realtime

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/nats-io/nats.go"
)

// NATSBridge subscribes to NATS subjects and pushes messages into the Hub.
type NATSBridge struct {
	conn     *nats.Conn
	hub      *Hub
	tenantID string
}

func NewNATSBridge(natsURL, tenantID string, hub *Hub) (*NATSBridge, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &NATSBridge{conn: nc, hub: hub, tenantID: tenantID}, nil
}

// Subscribe listens for update events on tenant.<tenantID>.layout.*.updated
func (b *NATSBridge) Subscribe() error {
	subject := fmt.Sprintf("tenant.%s.layout.*.updated", b.tenantID)
	_, err := b.conn.Subscribe(subject, func(msg *nats.Msg) {
		layoutID, err := parseLayoutIDFromSubject(msg.Subject)
		if err != nil {
			log.Printf("nats: bad subject %q: %v", msg.Subject, err)
			return
		}

		// Wrap the raw event payload in the outgoing envelope
		envelope := outgoingMsg{
			Type:     "layout.updated",
			LayoutID: layoutID,
			Payload:  json.RawMessage(msg.Data),
		}
		data, err := json.Marshal(envelope)
		if err != nil {
			log.Printf("nats: marshal envelope: %v", err)
			return
		}

		b.hub.broadcast <- broadcastMsg{layoutID: layoutID, payload: data}
	})
	if err != nil {
		return fmt.Errorf("nats subscribe %q: %w", subject, err)
	}

	log.Printf("NATS bridge subscribed to: %s", subject)
	return nil
}

// Close drains the NATS connection.
func (b *NATSBridge) Close() {
	if err := b.conn.Drain(); err != nil {
		log.Printf("nats drain: %v", err)
	}
}

// parseLayoutIDFromSubject extracts layoutID from "tenant.<tid>.layout.<layoutID>.updated"
func parseLayoutIDFromSubject(subject string) (string, error) {
	parts := strings.Split(subject, ".")
	if len(parts) != 5 {
		return "", fmt.Errorf("expected 5 parts, got %d", len(parts))
	}
	if parts[3] == "" {
		return "", fmt.Errorf("empty layout id")
	}
	return parts[3], nil
}
