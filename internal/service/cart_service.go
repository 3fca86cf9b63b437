package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"quickbite/internal/domain"
)

const maxInstructionsLen = 500

var (
	ErrDifferentRestaurant = errors.New("cart holds items from another restaurant")
	ErrMenuItemNotFound    = errors.New("menu item not found")
	ErrInstructionsTooLong = errors.New("special instructions too long")
)

// MissingOptionsError reports required option groups with no selection.
type MissingOptionsError struct {
	Groups []string
}

func (e *MissingOptionsError) Error() string {
	return "please select options for: " + strings.Join(e.Groups, ", ")
}

// CartService owns the single active cart of each user. All mutations
// keep the cart bound to one restaurant and TotalItems equal to the sum
// of item quantities.
type CartService struct {
	store   CartStore
	catalog CatalogRepository
}

func NewCartService(store CartStore, catalog CatalogRepository) *CartService {
	return &CartService{store: store, catalog: catalog}
}

func (s *CartService) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.store.LoadCart(ctx, userID)
}

func (s *CartService) AddToCart(ctx context.Context, userID, menuItemID string, quantity int, selections []domain.SelectedOption, instructions string, replace bool) (*domain.Cart, error) {
	if len(instructions) > maxInstructionsLen {
		return nil, ErrInstructionsTooLong
	}

	item, err := s.catalog.GetMenuItem(menuItemID)
	if err != nil {
		return nil, ErrMenuItemNotFound
	}

	if missing := MissingRequired(*item, selections); len(missing) > 0 {
		return nil, &MissingOptionsError{Groups: missing}
	}

	cart, err := s.store.LoadCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if cart.RestaurantID != "" && cart.RestaurantID != item.RestaurantID {
		if !replace {
			return nil, ErrDifferentRestaurant
		}
		cart = &domain.Cart{}
	}

	restaurantName := cart.RestaurantName
	if rest, err := s.catalog.GetRestaurant(item.RestaurantID); err == nil {
		restaurantName = rest.Name
	}

	cart.Items = append(cart.Items, domain.CartItem{
		ID:                  uuid.NewString(),
		MenuItem:            *item,
		Quantity:            quantity,
		SelectedOptions:     selections,
		SpecialInstructions: instructions,
		TotalPrice:          ItemTotal(*item, selections, quantity),
	})
	cart.RestaurantID = item.RestaurantID
	cart.RestaurantName = restaurantName
	cart.TotalItems = totalItems(cart.Items)

	if err := s.store.SaveCart(ctx, userID, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

// UpdateItem recomputes the line total for the given item. An unknown
// item id is a no-op, not an error. Nil selections and instructions keep
// the item's current values.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID string, quantity int, selections []domain.SelectedOption, instructions *string) (*domain.Cart, error) {
	if instructions != nil && len(*instructions) > maxInstructionsLen {
		return nil, ErrInstructionsTooLong
	}

	cart, err := s.store.LoadCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	changed := false
	for i := range cart.Items {
		if cart.Items[i].ID != itemID {
			continue
		}
		if selections != nil {
			cart.Items[i].SelectedOptions = selections
		}
		if instructions != nil {
			cart.Items[i].SpecialInstructions = *instructions
		}
		cart.Items[i].Quantity = quantity
		cart.Items[i].TotalPrice = ItemTotal(cart.Items[i].MenuItem, cart.Items[i].SelectedOptions, quantity)
		changed = true
		break
	}

	if !changed {
		return cart, nil
	}

	cart.TotalItems = totalItems(cart.Items)
	if err := s.store.SaveCart(ctx, userID, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

// RemoveItem drops the item; removing the last item resets the
// restaurant binding. An unknown item id is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error) {
	cart, err := s.store.LoadCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	if len(cart.Items) == 0 {
		cart = &domain.Cart{}
	} else {
		cart.TotalItems = totalItems(cart.Items)
	}

	if err := s.store.SaveCart(ctx, userID, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.store.DeleteCart(ctx, userID)
}

// Subtotal is a pure function of the cart, recomputed on each call.
func Subtotal(cart *domain.Cart) float64 {
	var total float64
	for _, item := range cart.Items {
		total += item.TotalPrice
	}
	return round2(total)
}

func totalItems(items []domain.CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

var _ CartServiceInterface = (*CartService)(nil)
