package events

import (
	"context"
	"time"

	"vibe-commerce/internal/model"
)

// OrderPlacedQueue is the queue order-placed events are published to.
const OrderPlacedQueue = "order.placed"

// OrderPlaced is the event emitted after a checkout commits.
type OrderPlaced struct {
	EventType   string      `json:"eventType"`
	OrderID     string      `json:"orderId"`
	OwnerID     string      `json:"ownerId"`
	TotalAmount float64     `json:"totalAmount"`
	Items       []OrderLine `json:"items"`
	Timestamp   time.Time   `json:"timestamp"`
}

// OrderLine is the per-product contract shared by event consumers.
type OrderLine struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Publisher emits order lifecycle events. Publishing is best-effort from the
// checkout flow's perspective; a failed publish never fails the order.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, order *model.Order) error
	Close() error
}

// NewOrderPlaced builds the event payload from an order.
func NewOrderPlaced(order *model.Order) OrderPlaced {
	ev := OrderPlaced{
		EventType:   "OrderPlaced",
		OrderID:     order.ID.String(),
		OwnerID:     order.OwnerID,
		TotalAmount: order.TotalAmount,
		Timestamp:   time.Now().UTC(),
	}
	for _, it := range order.Items {
		ev.Items = append(ev.Items, OrderLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return ev
}

// noopPublisher satisfies Publisher when events are disabled.
type noopPublisher struct{}

// NewNoopPublisher returns a publisher that discards all events.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishOrderPlaced(context.Context, *model.Order) error { return nil }
func (noopPublisher) Close() error                                           { return nil }
