package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Price list event subjects
const (
	SubjectPriceListCreated = "pricelist.created"
	SubjectPriceListUpdated = "pricelist.updated"
	SubjectPriceListDeleted = "pricelist.deleted"
)

// PriceListEvent is the payload of every pricelist.* message
type PriceListEvent struct {
	ID            string    `json:"id"`
	ClientID      string    `json:"client_id"`
	EffectiveDate string    `json:"effectiveDate,omitempty"`
	Categories    []string  `json:"categories,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher sends domain events
type Publisher interface {
	Publish(ctx context.Context, subject string, data any) error
	Close()
}

// NATSPublisher publishes JSON messages on a NATS connection
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to url
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("fnp-marketplace"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats at %s: %w", url, err)
	}
	return &NATSPublisher{conn: conn}, nil
}

// Publish marshals data as JSON and sends it on subject
func (p *NATSPublisher) Publish(ctx context.Context, subject string, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", subject, err)
	}
	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	return nil
}

// Close drains pending messages and closes the connection
func (p *NATSPublisher) Close() {
	_ = p.conn.Drain()
}

// NopPublisher is used when NATS_URL is unset
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
func (NopPublisher) Close()                                     {}

var (
	_ Publisher = (*NATSPublisher)(nil)
	_ Publisher = NopPublisher{}
)
