package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/econest-bedding/storefront-api/models"
)

// Relay publishes order status-change events to a broker queue so external
// consumers (warehouse, analytics) can react without polling the API. It is
// optional: a nil *Relay is a no-op, which is what an empty AMQP_URL yields.
type Relay struct {
	conn  *amqp.Connection
	queue string
}

type statusEvent struct {
	OrderID    uint               `json:"order_id"`
	Email      string             `json:"email"`
	Status     models.OrderStatus `json:"status"`
	TotalPrice float64            `json:"total_price"`
	OccurredAt time.Time          `json:"occurred_at"`
}

func NewRelay(url, queue string) (*Relay, error) {
	if url == "" {
		return nil, nil
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, err
	}

	return &Relay{conn: conn, queue: queue}, nil
}

func (r *Relay) PublishStatusChange(order *models.Order) error {
	if r == nil {
		return nil
	}

	ch, err := r.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(statusEvent{
		OrderID:    order.ID,
		Email:      order.Email,
		Status:     order.Status,
		TotalPrice: order.TotalPrice,
		OccurredAt: time.Now(),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return ch.PublishWithContext(ctx, "", r.queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

func (r *Relay) Close() {
	if r != nil && r.conn != nil {
		r.conn.Close()
	}
}
