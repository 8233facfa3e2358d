package domain

import "context"

// Routing keys for catalog notifications.
const (
	RoutingKeyEventCreated   = "event.created"
	RoutingKeyBookingCreated = "booking.created"
)

// Publisher announces committed writes to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}
