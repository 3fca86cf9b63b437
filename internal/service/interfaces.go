package service

import (
	"context"

	"quickbite/internal/domain"
)

// Storage ports.

type CatalogRepository interface {
	ListRestaurants() ([]domain.Restaurant, error)
	GetRestaurant(id string) (*domain.Restaurant, error)
	ListMenuItems(restaurantID string) ([]domain.MenuItem, error)
	GetMenuItem(id string) (*domain.MenuItem, error)
}

type CartStore interface {
	LoadCart(ctx context.Context, userID string) (*domain.Cart, error)
	SaveCart(ctx context.Context, userID string, cart *domain.Cart) error
	DeleteCart(ctx context.Context, userID string) error
}

type OrderStore interface {
	LoadOrders(ctx context.Context, userID string) ([]domain.Order, error)
	SaveOrders(ctx context.Context, userID string, orders []domain.Order) error
}

type UserStore interface {
	LoadUser(ctx context.Context, userID string) (*domain.User, error)
	SaveUser(ctx context.Context, userID string, user *domain.User) error
}

type OrderPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}

// RPCClient executes a single JSON-RPC call against a blockchain node.
type RPCClient interface {
	Call(ctx context.Context, method string, params interface{}, result interface{}) error
}

// Service interfaces.

type CatalogServiceInterface interface {
	ListRestaurants() ([]domain.Restaurant, error)
	GetRestaurant(id string) (*domain.Restaurant, error)
	ListMenu(restaurantID string) ([]domain.MenuItem, error)
	GetMenuItem(id string) (*domain.MenuItem, error)
}

type CartServiceInterface interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	AddToCart(ctx context.Context, userID, menuItemID string, quantity int, selections []domain.SelectedOption, instructions string, replace bool) (*domain.Cart, error)
	UpdateItem(ctx context.Context, userID, itemID string, quantity int, selections []domain.SelectedOption, instructions *string) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) error
}

type OrderServiceInterface interface {
	Place(ctx context.Context, userID, addressID, paymentID string) (*domain.Order, error)
	Get(ctx context.Context, userID, orderID string) (*domain.Order, error)
	List(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, userID, orderID string, status domain.OrderStatus) (*domain.Order, error)
	QRCode(ctx context.Context, userID, orderID string) ([]byte, error)
}

type UserServiceInterface interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID, name, email, phone string) (*domain.User, error)
	AddAddress(ctx context.Context, userID string, address domain.Address) (*domain.User, error)
	UpdateAddress(ctx context.Context, userID, addressID string, address domain.Address) (*domain.User, error)
	RemoveAddress(ctx context.Context, userID, addressID string) (*domain.User, error)
	SetDefaultAddress(ctx context.Context, userID, addressID string) (*domain.User, error)
	AddPaymentMethod(ctx context.Context, userID string, method domain.PaymentMethod) (*domain.User, error)
	UpdatePaymentMethod(ctx context.Context, userID, methodID string, method domain.PaymentMethod) (*domain.User, error)
	RemovePaymentMethod(ctx context.Context, userID, methodID string) (*domain.User, error)
	SetDefaultPaymentMethod(ctx context.Context, userID, methodID string) (*domain.User, error)
}

type WalletServiceInterface interface {
	TokenInfo(ctx context.Context, wallet string) (*domain.TokenInfo, error)
	Transfer(ctx context.Context, req domain.TransferRequest) (string, error)
	History(ctx context.Context, wallet string) ([]domain.Transaction, error)
}

type WeatherServiceInterface interface {
	Current(ctx context.Context, lat, lon float64) (*domain.Weather, error)
	Forecast(ctx context.Context, lat, lon float64) (*domain.Forecast, error)
	SearchLocations(ctx context.Context, query string) ([]domain.Location, error)
}
