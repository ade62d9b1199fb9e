package service

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/models"
	"storefront/internal/store"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// CustomerService manages customer profiles, including the idempotent
// provisioning hook fired after social login.
type CustomerService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(store *store.Store) *CustomerService {
	return &CustomerService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// SocialProfile carries the fields the authentication pipeline extracts
// from the identity provider.
type SocialProfile struct {
	Email      string `json:"email" binding:"required"`
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	Phone      string `json:"phone_number,omitempty"`
}

// EnsureProfile creates a customer profile from social-login data when
// the user has none. An existing profile is returned untouched, so the
// hook is safe to fire on every login.
func (s *CustomerService) EnsureProfile(ctx context.Context, userID int64, profile *SocialProfile) (*models.Customer, error) {
	ctx, span := util.StartSpan(ctx, "CustomerService.EnsureProfile")
	defer span.End()

	existing, err := s.store.GetCustomerByUserID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	customer := &models.Customer{
		UserID: userID,
		Name:   strings.TrimSpace(profile.GivenName + " " + profile.FamilyName),
		Email:  profile.Email,
		Phone:  profile.Phone,
	}

	if err := s.store.CreateCustomer(ctx, customer); err != nil {
		// Lost a race against a concurrent login; the profile exists now.
		if errors.Is(err, models.ErrConflict) {
			return s.store.GetCustomerByUserID(ctx, userID)
		}
		return nil, err
	}

	s.logger.Info("Customer profile provisioned",
		zap.Int64("user_id", userID),
		zap.Int64("customer_id", customer.ID))
	return customer, nil
}

// GetProfile returns the user's customer profile.
func (s *CustomerService) GetProfile(ctx context.Context, userID int64) (*models.Customer, error) {
	return s.store.GetCustomerByUserID(ctx, userID)
}

// CreateProfile explicitly creates a profile; a second create for the
// same user is a conflict, not an upsert.
func (s *CustomerService) CreateProfile(ctx context.Context, userID int64, name, email, phone string) (*models.Customer, error) {
	if email == "" {
		return nil, models.ValidationErrorf("email is required")
	}

	customer := &models.Customer{
		UserID: userID,
		Name:   name,
		Email:  email,
		Phone:  phone,
	}
	if err := s.store.CreateCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// UpdateProfile patches the user's profile fields.
func (s *CustomerService) UpdateProfile(ctx context.Context, userID int64, name, email, phone *string) (*models.Customer, error) {
	customer, err := s.store.GetCustomerByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		customer.Name = *name
	}
	if email != nil {
		if *email == "" {
			return nil, models.ValidationErrorf("email is required")
		}
		customer.Email = *email
	}
	if phone != nil {
		customer.Phone = *phone
	}

	if err := s.store.UpdateCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}
