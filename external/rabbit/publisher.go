package rabbit

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
)

// Publisher pushes new-order notifications onto the operator queue. It
// implements the order service's Notifier contract.
type Publisher struct {
	pool      *ChannelPool
	queueName string
}

func NewPublisher(pool *ChannelPool, queueName string) *Publisher {
	return &Publisher{
		pool:      pool,
		queueName: queueName,
	}
}

func (p *Publisher) Name() string { return "rabbitmq" }

// orderMessage is the wire shape for the notification queue: a summary, not
// the full order row.
type orderMessage struct {
	OrderID       int64  `json:"orderid"`
	Reference     string `json:"reference"`
	Customer      string `json:"customer"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postalcode"`
	ItemCount     int    `json:"itemcount"`
	Total         int64  `json:"total"`
	PaymentMethod string `json:"paymentmethod"`
	PromoCode     string `json:"promocode,omitempty"`
}

// NotifyNewOrder publishes a persistent JSON message for the order.
func (p *Publisher) NotifyNewOrder(ctx context.Context, o *model.Order) error {
	ch, err := p.pool.GetChannel()
	if err != nil {
		return fmt.Errorf("failed to get channel from pool: %w", err)
	}
	defer p.pool.ReturnChannel(ch)

	msg := orderMessage{
		OrderID:       o.OrderID,
		Reference:     o.Reference,
		Customer:      o.CustomerName,
		Email:         o.Email,
		Phone:         o.Phone,
		Address:       o.Address,
		City:          o.City,
		PostalCode:    o.PostalCode,
		ItemCount:     len(o.Items),
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
	}
	if o.PromoCode != nil {
		msg.PromoCode = *o.PromoCode
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	err = ch.PublishWithContext(ctx,
		"",          // exchange
		p.queueName, // routing key (queue name)
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish order: %w", err)
	}

	return nil
}
