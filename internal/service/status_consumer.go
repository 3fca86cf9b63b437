package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/segmentio/kafka-go"

	"quickbite/internal/domain"
)

// StatusUpdate is the message shape the external order-management
// authority publishes on the order-status topic.
type StatusUpdate struct {
	OrderID string             `json:"order_id"`
	UserID  string             `json:"user_id"`
	Status  domain.OrderStatus `json:"status"`
}

// StatusConsumer applies externally-driven order status transitions.
// It is the only automatic driver of the order state machine.
type StatusConsumer struct {
	Reader *kafka.Reader
	Orders OrderServiceInterface
}

func NewStatusConsumer(reader *kafka.Reader, orders OrderServiceInterface) *StatusConsumer {
	return &StatusConsumer{Reader: reader, Orders: orders}
}

func (c *StatusConsumer) Start(ctx context.Context) {
	log.Println("Starting order status consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Error reading status message: %v", err)
			continue
		}

		var update StatusUpdate
		if err := json.Unmarshal(message.Value, &update); err != nil {
			log.Printf("Error unmarshaling status message: %v", err)
			continue
		}

		c.ProcessUpdate(ctx, update)
	}
}

func (c *StatusConsumer) ProcessUpdate(ctx context.Context, update StatusUpdate) {
	if update.OrderID == "" || update.UserID == "" {
		return
	}

	_, err := c.Orders.UpdateStatus(ctx, update.UserID, update.OrderID, update.Status)
	switch {
	case err == nil:
		log.Printf("Order %s moved to %s", update.OrderID, update.Status)
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrUnknownOrderStatus):
		log.Printf("Ignoring status update for order %s: %v", update.OrderID, err)
	case errors.Is(err, ErrOrderNotFound):
		log.Printf("Status update for unknown order %s", update.OrderID)
	default:
		log.Printf("Error applying status update for order %s: %v", update.OrderID, err)
	}
}
