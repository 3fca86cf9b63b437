package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"quickbite/internal/domain"
)

var (
	ErrAddressNotFound = errors.New("address not found")
	ErrPaymentNotFound = errors.New("payment method not found")
)

// UserService keeps the profile, addresses and payment methods of a
// user. A profile is created lazily on first write.
type UserService struct {
	store UserStore
}

func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.store.LoadUser(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID, name, email, phone string) (*domain.User, error) {
	user, err := s.store.LoadUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}
	if phone != "" {
		user.Phone = phone
	}
	return s.save(ctx, userID, user)
}

func (s *UserService) AddAddress(ctx context.Context, userID string, address domain.Address) (*domain.User, error) {
	user, err := s.store.LoadUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	address.ID = uuid.NewString()
	if address.IsDefault || len(user.Addresses) == 0 {
		address.IsDefault = true
		for i := range user.Addresses {
			user.Addresses[i].IsDefault = false
		}
	}
	user.Addresses = append(user.Addresses, address)
	return s.save(ctx, userID, user)
}

func (s *UserService) UpdateAddress(ctx context.Context, userID, addressID string, address domain.Address) (*domain.User, error) {
	user, err := s.store.LoadUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	found := false
	for i := range user.Addresses {
		if user.Addresses[i].ID == addressID {
			address.ID = addressID
			user.Addresses[i] = address
			found = true
		} else if address.IsDefault {
			user.Addresses[i].IsDefault = false
		}
	}
	if !found {
		return nil, ErrAddressNotFound
	}
	return s.save(ctx, userID, user)
}

// RemoveAddress drops the address; removing the default promotes the
// first remaining one.
func (s *UserService) RemoveAddress(ctx context.Context, userID, addressID string) (*domain.User, error) {
	user, err := s.store.LoadUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	removedDefault := false
	kept := user.Addresses[:0]
	for _, addr := range user.Addresses {
		if addr.ID == addressID {
			removedDefault = addr.IsDefault
			continue
		}
		kept = append(kept, addr)
	}
	user.Addresses = kept
	if removedDefault && len(user.Addresses) > 0 {
		user.Addresses[0].IsDefault = true
	}
	return s.save(ctx, userID, user)
}

func (s *UserService) SetDefaultAddress(ctx context.Context, userID, addressID string) (*domain.User, error) {
	user, err := s.store.LoadUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	for i := range user.Addresses {
		user.Addresses[i].IsDefault = user.Addresses[i].ID == addressID
	}
	return s.save(ctx, userID, user)
}

func (s *UserService) AddPaymentMethod(ctx context.Context, userID string, method domain.PaymentMethod) (*domain.User, error) {
	user, err := s.store.LoadUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	method.ID = uuid.NewString()
	if method.IsDefault || len(user.PaymentMethods) == 0 {
		method.IsDefault = true
		for i := range user.PaymentMethods {
			user.PaymentMethods[i].IsDefault = false
		}
	}
	user.PaymentMethods = append(user.PaymentMethods, method)
	return s.save(ctx, userID, user)
}

func (s *UserService) UpdatePaymentMethod(ctx context.Context, userID, methodID string, method domain.PaymentMethod) (*domain.User, error) {
	user, err := s.store.LoadUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	found := false
	for i := range user.PaymentMethods {
		if user.PaymentMethods[i].ID == methodID {
			method.ID = methodID
			user.PaymentMethods[i] = method
			found = true
		} else if method.IsDefault {
			user.PaymentMethods[i].IsDefault = false
		}
	}
	if !found {
		return nil, ErrPaymentNotFound
	}
	return s.save(ctx, userID, user)
}

func (s *UserService) RemovePaymentMethod(ctx context.Context, userID, methodID string) (*domain.User, error) {
	user, err := s.store.LoadUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	removedDefault := false
	kept := user.PaymentMethods[:0]
	for _, method := range user.PaymentMethods {
		if method.ID == methodID {
			removedDefault = method.IsDefault
			continue
		}
		kept = append(kept, method)
	}
	user.PaymentMethods = kept
	if removedDefault && len(user.PaymentMethods) > 0 {
		user.PaymentMethods[0].IsDefault = true
	}
	return s.save(ctx, userID, user)
}

func (s *UserService) SetDefaultPaymentMethod(ctx context.Context, userID, methodID string) (*domain.User, error) {
	user, err := s.store.LoadUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	for i := range user.PaymentMethods {
		user.PaymentMethods[i].IsDefault = user.PaymentMethods[i].ID == methodID
	}
	return s.save(ctx, userID, user)
}

func (s *UserService) save(ctx context.Context, userID string, user *domain.User) (*domain.User, error) {
	user.ID = userID
	if err := s.store.SaveUser(ctx, userID, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return user, nil
}

var _ UserServiceInterface = (*UserService)(nil)
