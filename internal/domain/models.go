package domain

import "time"

type Restaurant struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Image        string   `json:"image"`
	Cuisine      string   `json:"cuisine"`
	Rating       float64  `json:"rating"`
	DeliveryTime string   `json:"delivery_time"`
	DeliveryFee  float64  `json:"delivery_fee"`
	Featured     bool     `json:"featured"`
	Address      string   `json:"address"`
	Distance     string   `json:"distance"`
	Tags         []string `json:"tags"`
}

type MenuItem struct {
	ID           string        `json:"id"`
	RestaurantID string        `json:"restaurant_id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Price        float64       `json:"price"`
	Image        string        `json:"image"`
	Category     string        `json:"category"`
	Popular      bool          `json:"popular"`
	Options      []OptionGroup `json:"options,omitempty"`
}

type OptionGroup struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Choices  []Choice `json:"choices"`
	Required bool     `json:"required"`
	Multiple bool     `json:"multiple"`
}

type Choice struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// SelectedOption pairs an option group with the chosen choice ids.
// A selection list never contains a group with an empty ChoiceIDs set,
// and a non-multiple group holds at most one id.
type SelectedOption struct {
	OptionID  string   `json:"option_id"`
	ChoiceIDs []string `json:"choice_ids"`
}

// CartItem embeds a snapshot of the menu item: later catalog price
// changes do not affect items already in the cart.
type CartItem struct {
	ID                  string           `json:"id"`
	MenuItem            MenuItem         `json:"menu_item"`
	Quantity            int              `json:"quantity"`
	SelectedOptions     []SelectedOption `json:"selected_options,omitempty"`
	SpecialInstructions string           `json:"special_instructions,omitempty"`
	TotalPrice          float64          `json:"total_price"`
}

// Cart holds the items of a single restaurant. RestaurantID and
// RestaurantName are unset while the cart is empty.
type Cart struct {
	Items          []CartItem `json:"items"`
	RestaurantID   string     `json:"restaurant_id,omitempty"`
	RestaurantName string     `json:"restaurant_name,omitempty"`
	TotalItems     int        `json:"total_items"`
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderPreparing  OrderStatus = "preparing"
	OrderDelivering OrderStatus = "delivering"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Order is an immutable snapshot of a cart taken at checkout.
type Order struct {
	ID                    string        `json:"id"`
	RestaurantID          string        `json:"restaurant_id"`
	RestaurantName        string        `json:"restaurant_name"`
	Items                 []CartItem    `json:"items"`
	Status                OrderStatus   `json:"status"`
	Total                 float64       `json:"total"`
	DeliveryFee           float64       `json:"delivery_fee"`
	Tax                   float64       `json:"tax"`
	GrandTotal            float64       `json:"grand_total"`
	CreatedAt             time.Time     `json:"created_at"`
	EstimatedDeliveryTime string        `json:"estimated_delivery_time"`
	DeliveryAddress       Address       `json:"delivery_address"`
	PaymentMethod         PaymentMethod `json:"payment_method"`
	QRCode                []byte        `json:"-"`
}

type Address struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Street    string `json:"street"`
	Apt       string `json:"apt,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	IsDefault bool   `json:"is_default"`
}

type PaymentMethod struct {
	ID         string `json:"id"`
	Type       string `json:"type"` // credit, debit, paypal, apple, google
	Last4      string `json:"last4,omitempty"`
	ExpiryDate string `json:"expiry_date,omitempty"`
	IsDefault  bool   `json:"is_default"`
}

type User struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Addresses      []Address       `json:"addresses"`
	PaymentMethods []PaymentMethod `json:"payment_methods"`
}

type OrderEvent struct {
	Type         string      `json:"type"`
	OrderID      string      `json:"order_id"`
	UserID       string      `json:"user_id"`
	RestaurantID string      `json:"restaurant_id"`
	Status       OrderStatus `json:"status"`
	GrandTotal   float64     `json:"grand_total,omitempty"`
	Timestamp    time.Time   `json:"timestamp"`
}
