package tests

import (
	"context"
	"quickbite/internal/domain"
	"quickbite/internal/mocks"
	"quickbite/internal/service"
	"quickbite/internal/storage"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type orderFixture struct {
	svc       *service.OrderService
	store     *storage.RedisStateStore
	publisher *mocks.OrderPublisher
	qr        *mocks.QRGenerator
}

func newOrderFixture(t *testing.T) orderFixture {
	store := newStateStore(t)
	publisher := new(mocks.OrderPublisher)
	qr := new(mocks.QRGenerator)
	return orderFixture{
		svc:       service.NewOrderService(store, store, store, publisher, qr),
		store:     store,
		publisher: publisher,
		qr:        qr,
	}
}

func seedCheckout(t *testing.T, store *storage.RedisStateStore, userID string) {
	t.Helper()
	ctx := context.Background()

	err := store.SaveCart(ctx, userID, &domain.Cart{
		Items: []domain.CartItem{{
			ID:         "line-1",
			MenuItem:   domain.MenuItem{ID: "102", Name: "Double Bacon Burger", Price: 12.99},
			Quantity:   1,
			TotalPrice: 12.99,
		}},
		RestaurantID:   "1",
		RestaurantName: "Burger Palace",
		TotalItems:     1,
	})
	assert.NoError(t, err)

	err = store.SaveUser(ctx, userID, &domain.User{
		ID: userID,
		Addresses: []domain.Address{
			{ID: "a1", Label: "Home", Street: "1 Main St", IsDefault: true},
		},
		PaymentMethods: []domain.PaymentMethod{
			{ID: "p1", Type: "credit", Last4: "4242", IsDefault: true},
		},
	})
	assert.NoError(t, err)
}

func TestOrderService_Place(t *testing.T) {
	ctx := context.Background()
	fixture := newOrderFixture(t)
	seedCheckout(t, fixture.store, "u1")

	fixture.publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(event domain.OrderEvent) bool {
		return event.Type == "order_created" && event.UserID == "u1"
	})).Return(nil).Once()

	order, err := fixture.svc.Place(ctx, "u1", "", "")
	assert.NoError(t, err)

	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, 12.99, order.Total)
	assert.Equal(t, 3.99, order.DeliveryFee)
	assert.Equal(t, 1.30, order.Tax)
	assert.Equal(t, 18.28, order.GrandTotal)
	assert.Equal(t, "a1", order.DeliveryAddress.ID)
	assert.Equal(t, "p1", order.PaymentMethod.ID)
	assert.Equal(t, "30-45 min", order.EstimatedDeliveryTime)

	// The cart is consumed by checkout.
	cart, err := fixture.store.LoadCart(ctx, "u1")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)

	orders, err := fixture.svc.List(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	fixture.publisher.AssertExpectations(t)
}

func TestOrderService_ListMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	fixture := newOrderFixture(t)
	fixture.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil).Twice()

	seedCheckout(t, fixture.store, "u1")
	first, err := fixture.svc.Place(ctx, "u1", "", "")
	assert.NoError(t, err)

	seedCheckout(t, fixture.store, "u1")
	second, err := fixture.svc.Place(ctx, "u1", "", "")
	assert.NoError(t, err)

	orders, err := fixture.svc.List(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestOrderService_PlaceRejections(t *testing.T) {
	tests := []struct {
		name      string
		seed      func(t *testing.T, store *storage.RedisStateStore)
		addressID string
		paymentID string
		wantErr   error
	}{
		{
			name:    "empty cart",
			seed:    func(t *testing.T, store *storage.RedisStateStore) {},
			wantErr: service.ErrEmptyCart,
		},
		{
			name: "no addresses on file",
			seed: func(t *testing.T, store *storage.RedisStateStore) {
				seedCheckout(t, store, "u1")
				err := store.SaveUser(context.Background(), "u1", &domain.User{
					ID:             "u1",
					PaymentMethods: []domain.PaymentMethod{{ID: "p1", IsDefault: true}},
				})
				assert.NoError(t, err)
			},
			wantErr: service.ErrMissingAddress,
		},
		{
			name: "no payment methods on file",
			seed: func(t *testing.T, store *storage.RedisStateStore) {
				seedCheckout(t, store, "u1")
				err := store.SaveUser(context.Background(), "u1", &domain.User{
					ID:        "u1",
					Addresses: []domain.Address{{ID: "a1", IsDefault: true}},
				})
				assert.NoError(t, err)
			},
			wantErr: service.ErrMissingPayment,
		},
		{
			name: "named address does not exist",
			seed: func(t *testing.T, store *storage.RedisStateStore) {
				seedCheckout(t, store, "u1")
			},
			addressID: "missing",
			wantErr:   service.ErrMissingAddress,
		},
		{
			name: "named payment does not exist",
			seed: func(t *testing.T, store *storage.RedisStateStore) {
				seedCheckout(t, store, "u1")
			},
			paymentID: "missing",
			wantErr:   service.ErrMissingPayment,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			ctx := context.Background()
			fixture := newOrderFixture(t)
			testCase.seed(t, fixture.store)

			before, err := fixture.store.LoadCart(ctx, "u1")
			assert.NoError(t, err)

			order, err := fixture.svc.Place(ctx, "u1", testCase.addressID, testCase.paymentID)
			assert.ErrorIs(t, err, testCase.wantErr)
			assert.Nil(t, order)

			// A rejected checkout never touches the cart.
			after, err := fixture.store.LoadCart(ctx, "u1")
			assert.NoError(t, err)
			assert.Equal(t, before, after)

			fixture.publisher.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
		})
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.OrderStatus
		to      domain.OrderStatus
		wantErr error
	}{
		{name: "pending to preparing", from: domain.OrderPending, to: domain.OrderPreparing},
		{name: "preparing to delivering", from: domain.OrderPreparing, to: domain.OrderDelivering},
		{name: "delivering to delivered", from: domain.OrderDelivering, to: domain.OrderDelivered},
		{name: "cancel while preparing", from: domain.OrderPreparing, to: domain.OrderCancelled},
		{name: "skipping a step", from: domain.OrderPending, to: domain.OrderDelivering, wantErr: service.ErrInvalidTransition},
		{name: "delivered is terminal", from: domain.OrderDelivered, to: domain.OrderCancelled, wantErr: service.ErrInvalidTransition},
		{name: "cancelled is terminal", from: domain.OrderCancelled, to: domain.OrderPreparing, wantErr: service.ErrInvalidTransition},
		{name: "backwards move", from: domain.OrderDelivering, to: domain.OrderPreparing, wantErr: service.ErrInvalidTransition},
		{name: "unknown status", from: domain.OrderPending, to: domain.OrderStatus("lost"), wantErr: service.ErrUnknownOrderStatus},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			ctx := context.Background()
			fixture := newOrderFixture(t)
			err := fixture.store.SaveOrders(ctx, "u1", []domain.Order{
				{ID: "o1", Status: testCase.from},
			})
			assert.NoError(t, err)

			if testCase.wantErr == nil {
				fixture.publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(event domain.OrderEvent) bool {
					return event.Type == "status_changed" && event.Status == testCase.to
				})).Return(nil).Once()
			}

			order, err := fixture.svc.UpdateStatus(ctx, "u1", "o1", testCase.to)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)

				stored, loadErr := fixture.store.LoadOrders(ctx, "u1")
				assert.NoError(t, loadErr)
				assert.Equal(t, testCase.from, stored[0].Status)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, testCase.to, order.Status)
			}
			fixture.publisher.AssertExpectations(t)
		})
	}
}

func TestOrderService_GetNotFound(t *testing.T) {
	fixture := newOrderFixture(t)
	order, err := fixture.svc.Get(context.Background(), "u1", "nope")
	assert.ErrorIs(t, err, service.ErrOrderNotFound)
	assert.Nil(t, order)
}

func TestOrderService_QRCode(t *testing.T) {
	ctx := context.Background()
	fixture := newOrderFixture(t)

	_, err := fixture.svc.QRCode(ctx, "u1", "nope")
	assert.ErrorIs(t, err, service.ErrOrderNotFound)
	fixture.qr.AssertNotCalled(t, "Generate", mock.Anything)

	err = fixture.store.SaveOrders(ctx, "u1", []domain.Order{{ID: "o1", Status: domain.OrderPending}})
	assert.NoError(t, err)
	fixture.qr.On("Generate", "o1").Return([]byte("png"), nil).Once()

	qr, err := fixture.svc.QRCode(ctx, "u1", "o1")
	assert.NoError(t, err)
	assert.Equal(t, []byte("png"), qr)
	fixture.qr.AssertExpectations(t)
}

func TestStatusStep(t *testing.T) {
	tests := []struct {
		status   domain.OrderStatus
		wantStep int
		wantOK   bool
	}{
		{domain.OrderPending, 0, true},
		{domain.OrderPreparing, 1, true},
		{domain.OrderDelivering, 2, true},
		{domain.OrderDelivered, 3, true},
		{domain.OrderCancelled, 0, false},
		{domain.OrderStatus("lost"), 0, false},
	}

	for _, testCase := range tests {
		step, ok := service.StatusStep(testCase.status)
		assert.Equal(t, testCase.wantStep, step, string(testCase.status))
		assert.Equal(t, testCase.wantOK, ok, string(testCase.status))
	}
}
