package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"quickbite/internal/domain"
)

const (
	DeliveryFee = 3.99
	TaxRate     = 0.10

	estimatedDelivery = "30-45 min"
)

var (
	ErrMissingAddress     = errors.New("please select a delivery address")
	ErrMissingPayment     = errors.New("please select a payment method")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrUnknownOrderStatus = errors.New("unknown order status")
)

// The forward path is pending -> preparing -> delivering -> delivered.
// Cancelled is reachable from any non-terminal state; delivered and
// cancelled are terminal.
var validTransitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderPending:    {domain.OrderPreparing, domain.OrderCancelled},
	domain.OrderPreparing:  {domain.OrderDelivering, domain.OrderCancelled},
	domain.OrderDelivering: {domain.OrderDelivered, domain.OrderCancelled},
	domain.OrderDelivered:  {},
	domain.OrderCancelled:  {},
}

// OrderService freezes carts into orders at checkout and tracks their
// status. Transitions are driven externally, via UpdateStatus.
type OrderService struct {
	orders    OrderStore
	carts     CartStore
	users     UserStore
	publisher OrderPublisher
	qrEncoder QRGenerator
}

func NewOrderService(orders OrderStore, carts CartStore, users UserStore, publisher OrderPublisher, qr QRGenerator) *OrderService {
	return &OrderService{
		orders:    orders,
		carts:     carts,
		users:     users,
		publisher: publisher,
		qrEncoder: qr,
	}
}

// Place rejects checkout when the cart is empty or no address/payment
// can be resolved; on any rejection the cart is left untouched.
func (s *OrderService) Place(ctx context.Context, userID, addressID, paymentID string) (*domain.Order, error) {
	cart, err := s.carts.LoadCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	user, err := s.users.LoadUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	address, ok := resolveAddress(user.Addresses, addressID)
	if !ok {
		return nil, ErrMissingAddress
	}
	payment, ok := resolvePayment(user.PaymentMethods, paymentID)
	if !ok {
		return nil, ErrMissingPayment
	}

	subtotal := Subtotal(cart)
	tax := round2(subtotal * TaxRate)

	order := domain.Order{
		ID:                    uuid.NewString(),
		RestaurantID:          cart.RestaurantID,
		RestaurantName:        cart.RestaurantName,
		Items:                 cart.Items,
		Status:                domain.OrderPending,
		Total:                 subtotal,
		DeliveryFee:           DeliveryFee,
		Tax:                   tax,
		GrandTotal:            round2(subtotal + DeliveryFee + tax),
		CreatedAt:             time.Now().UTC(),
		EstimatedDeliveryTime: estimatedDelivery,
		DeliveryAddress:       address,
		PaymentMethod:         payment,
	}

	orders, err := s.orders.LoadOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	orders = append([]domain.Order{order}, orders...)
	if err := s.orders.SaveOrders(ctx, userID, orders); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	if err := s.carts.DeleteCart(ctx, userID); err != nil {
		return nil, fmt.Errorf("order placed but cart not cleared: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.PublishOrderEvent(ctx, domain.OrderEvent{
			Type:         "order_created",
			OrderID:      order.ID,
			UserID:       userID,
			RestaurantID: order.RestaurantID,
			Status:       order.Status,
			GrandTotal:   order.GrandTotal,
			Timestamp:    order.CreatedAt,
		})
	}

	return &order, nil
}

func (s *OrderService) Get(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	orders, err := s.orders.LoadOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	for i := range orders {
		if orders[i].ID == orderID {
			return &orders[i], nil
		}
	}
	return nil, ErrOrderNotFound
}

// List returns orders most recent first.
func (s *OrderService) List(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.LoadOrders(ctx, userID)
}

func (s *OrderService) UpdateStatus(ctx context.Context, userID, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if _, known := validTransitions[status]; !known {
		return nil, ErrUnknownOrderStatus
	}

	orders, err := s.orders.LoadOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	for i := range orders {
		if orders[i].ID != orderID {
			continue
		}
		if !transitionAllowed(orders[i].Status, status) {
			return nil, ErrInvalidTransition
		}
		orders[i].Status = status
		if err := s.orders.SaveOrders(ctx, userID, orders); err != nil {
			return nil, fmt.Errorf("failed to save orders: %w", err)
		}

		if s.publisher != nil {
			_ = s.publisher.PublishOrderEvent(ctx, domain.OrderEvent{
				Type:         "status_changed",
				OrderID:      orderID,
				UserID:       userID,
				RestaurantID: orders[i].RestaurantID,
				Status:       status,
				Timestamp:    time.Now().UTC(),
			})
		}
		return &orders[i], nil
	}
	return nil, ErrOrderNotFound
}

func (s *OrderService) QRCode(ctx context.Context, userID, orderID string) ([]byte, error) {
	if _, err := s.Get(ctx, userID, orderID); err != nil {
		return nil, err
	}
	return s.qrEncoder.Generate(orderID)
}

// StatusStep maps a status to its progress-bar step. Cancelled and
// unknown statuses have no step.
func StatusStep(status domain.OrderStatus) (int, bool) {
	switch status {
	case domain.OrderPending:
		return 0, true
	case domain.OrderPreparing:
		return 1, true
	case domain.OrderDelivering:
		return 2, true
	case domain.OrderDelivered:
		return 3, true
	default:
		return 0, false
	}
}

func transitionAllowed(from, to domain.OrderStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func resolveAddress(addresses []domain.Address, id string) (domain.Address, bool) {
	for _, addr := range addresses {
		if addr.ID == id {
			return addr, true
		}
	}
	if id != "" {
		return domain.Address{}, false
	}
	for _, addr := range addresses {
		if addr.IsDefault {
			return addr, true
		}
	}
	if len(addresses) > 0 {
		return addresses[0], true
	}
	return domain.Address{}, false
}

func resolvePayment(methods []domain.PaymentMethod, id string) (domain.PaymentMethod, bool) {
	for _, method := range methods {
		if method.ID == id {
			return method, true
		}
	}
	if id != "" {
		return domain.PaymentMethod{}, false
	}
	for _, method := range methods {
		if method.IsDefault {
			return method, true
		}
	}
	if len(methods) > 0 {
		return methods[0], true
	}
	return domain.PaymentMethod{}, false
}

var _ OrderServiceInterface = (*OrderService)(nil)
