package tests

import (
	"context"
	"quickbite/internal/domain"
	"quickbite/internal/mocks"
	"quickbite/internal/service"
	"quickbite/internal/storage"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newStateStore(t *testing.T) *storage.RedisStateStore {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return storage.NewRedisStateStore(client)
}

func friesItem() domain.MenuItem {
	return domain.MenuItem{
		ID:           "104",
		RestaurantID: "1",
		Name:         "French Fries",
		Price:        3.99,
	}
}

func pizzaItem() domain.MenuItem {
	return domain.MenuItem{
		ID:           "201",
		RestaurantID: "2",
		Name:         "Margherita Pizza",
		Price:        11.99,
	}
}

func TestCartService_AddToCart(t *testing.T) {
	pattySelection := []domain.SelectedOption{{OptionID: "1001", ChoiceIDs: []string{"2"}}}

	tests := []struct {
		name         string
		menuItemID   string
		quantity     int
		selections   []domain.SelectedOption
		instructions string
		prepareMocks func(catalog *mocks.CatalogRepository)
		wantErr      error
		wantTotal    float64
		wantItems    int
	}{
		{
			name:       "valid item with options",
			menuItemID: "101",
			quantity:   2,
			selections: pattySelection,
			prepareMocks: func(catalog *mocks.CatalogRepository) {
				item := burgerItem()
				catalog.On("GetMenuItem", "101").Return(&item, nil).Once()
				catalog.On("GetRestaurant", "1").Return(&domain.Restaurant{ID: "1", Name: "Burger Palace"}, nil).Once()
			},
			wantTotal: 19.98,
			wantItems: 2,
		},
		{
			name:       "missing required options",
			menuItemID: "101",
			quantity:   1,
			prepareMocks: func(catalog *mocks.CatalogRepository) {
				item := burgerItem()
				catalog.On("GetMenuItem", "101").Return(&item, nil).Once()
			},
			wantErr: &service.MissingOptionsError{Groups: []string{"Patty Type"}},
		},
		{
			name:       "unknown menu item",
			menuItemID: "999",
			quantity:   1,
			prepareMocks: func(catalog *mocks.CatalogRepository) {
				catalog.On("GetMenuItem", "999").Return(nil, assert.AnError).Once()
			},
			wantErr: service.ErrMenuItemNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			catalog := new(mocks.CatalogRepository)
			svc := service.NewCartService(newStateStore(t), catalog)
			testCase.prepareMocks(catalog)

			cart, err := svc.AddToCart(context.Background(), "u1", testCase.menuItemID,
				testCase.quantity, testCase.selections, testCase.instructions, false)

			if testCase.wantErr != nil {
				assert.EqualError(t, err, testCase.wantErr.Error())
				assert.Nil(t, cart)
			} else {
				assert.NoError(t, err)
				assert.Len(t, cart.Items, 1)
				assert.Equal(t, testCase.wantTotal, cart.Items[0].TotalPrice)
				assert.Equal(t, testCase.wantItems, cart.TotalItems)
				assert.Equal(t, "1", cart.RestaurantID)
				assert.Equal(t, "Burger Palace", cart.RestaurantName)
				assert.NotEmpty(t, cart.Items[0].ID)
			}
			catalog.AssertExpectations(t)
		})
	}
}

func TestCartService_SingleRestaurant(t *testing.T) {
	ctx := context.Background()
	catalog := new(mocks.CatalogRepository)
	store := newStateStore(t)
	svc := service.NewCartService(store, catalog)

	fries := friesItem()
	pizza := pizzaItem()
	catalog.On("GetMenuItem", "104").Return(&fries, nil)
	catalog.On("GetMenuItem", "201").Return(&pizza, nil)
	catalog.On("GetRestaurant", "1").Return(&domain.Restaurant{ID: "1", Name: "Burger Palace"}, nil)
	catalog.On("GetRestaurant", "2").Return(&domain.Restaurant{ID: "2", Name: "Pizza Heaven"}, nil)

	_, err := svc.AddToCart(ctx, "u1", "104", 1, nil, "", false)
	assert.NoError(t, err)

	// Crossing restaurants without consent is rejected and the cart is untouched.
	_, err = svc.AddToCart(ctx, "u1", "201", 1, nil, "", false)
	assert.ErrorIs(t, err, service.ErrDifferentRestaurant)

	cart, err := store.LoadCart(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "1", cart.RestaurantID)

	// With replace the cart starts over bound to the new restaurant.
	cart, err = svc.AddToCart(ctx, "u1", "201", 1, nil, "", true)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "201", cart.Items[0].MenuItem.ID)
	assert.Equal(t, "2", cart.RestaurantID)
	assert.Equal(t, "Pizza Heaven", cart.RestaurantName)
}

func TestCartService_UpdateItem(t *testing.T) {
	ctx := context.Background()
	catalog := new(mocks.CatalogRepository)
	store := newStateStore(t)
	svc := service.NewCartService(store, catalog)

	fries := friesItem()
	catalog.On("GetMenuItem", "104").Return(&fries, nil)
	catalog.On("GetRestaurant", "1").Return(&domain.Restaurant{ID: "1", Name: "Burger Palace"}, nil)

	cart, err := svc.AddToCart(ctx, "u1", "104", 1, nil, "", false)
	assert.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = svc.UpdateItem(ctx, "u1", itemID, 3, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 11.97, cart.Items[0].TotalPrice)
	assert.Equal(t, 3, cart.TotalItems)

	// An unknown item id is a silent no-op.
	cart, err = svc.UpdateItem(ctx, "u1", "missing", 5, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 3, cart.TotalItems)
}

func TestCartService_InstructionsTooLong(t *testing.T) {
	catalog := new(mocks.CatalogRepository)
	svc := service.NewCartService(newStateStore(t), catalog)

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'x'
	}

	_, err := svc.AddToCart(context.Background(), "u1", "104", 1, nil, string(long), false)
	assert.ErrorIs(t, err, service.ErrInstructionsTooLong)
	catalog.AssertNotCalled(t, "GetMenuItem", "104")
}

func TestCartService_RemoveLastItemResets(t *testing.T) {
	ctx := context.Background()
	catalog := new(mocks.CatalogRepository)
	store := newStateStore(t)
	svc := service.NewCartService(store, catalog)

	fries := friesItem()
	catalog.On("GetMenuItem", "104").Return(&fries, nil)
	catalog.On("GetRestaurant", "1").Return(&domain.Restaurant{ID: "1", Name: "Burger Palace"}, nil)

	cart, err := svc.AddToCart(ctx, "u1", "104", 2, nil, "", false)
	assert.NoError(t, err)

	cart, err = svc.RemoveItem(ctx, "u1", cart.Items[0].ID)
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Empty(t, cart.RestaurantID)
	assert.Empty(t, cart.RestaurantName)
	assert.Zero(t, cart.TotalItems)

	// Removing an id that is not there leaves the cart alone.
	cart, err = svc.RemoveItem(ctx, "u1", "missing")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestSubtotal(t *testing.T) {
	assert.Zero(t, service.Subtotal(&domain.Cart{}))

	cart := &domain.Cart{Items: []domain.CartItem{
		{TotalPrice: 19.98},
		{TotalPrice: 3.99},
	}}
	assert.Equal(t, 23.97, service.Subtotal(cart))
}
