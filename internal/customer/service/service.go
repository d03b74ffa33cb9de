// Package service provides the implementation of customer-related business logic.
package service

import (
	"context"
	"fmt"

	"github.com/abgdnv/customerhub/internal/customer/store"
	"github.com/abgdnv/customerhub/internal/customer/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerService defines the methods for managing customers.
// It abstracts the underlying business logic and data access.
type CustomerService interface {
	// Create validates and persists a new customer, returning the stored record.
	Create(ctx context.Context, customer CustomerCreateDto) (*CustomerDto, error)

	// Update applies a partial update; omitted fields retain their stored values.
	// Returns ErrCustomerNotFound if no customer exists with the given ID.
	Update(ctx context.Context, id string, customer CustomerUpdateDto) (*CustomerDto, error)

	// FindAll returns all customers.
	// Returns an empty slice if no customers exist.
	FindAll(ctx context.Context) ([]CustomerDto, error)

	// FindByID retrieves a single customer by its unique identifier.
	// Returns ErrCustomerNotFound if no customer exists with the given ID.
	FindByID(ctx context.Context, id string) (*CustomerDto, error)

	// DeleteByID removes a customer by its ID.
	// Returns ErrCustomerNotFound if no customer exists with the given ID.
	DeleteByID(ctx context.Context, id string) error

	// AddCredit adds a non-negative amount to the customer's available credit
	// and returns the updated record.
	AddCredit(ctx context.Context, id string, amount decimal.Decimal) (*CustomerDto, error)

	// SortByAvailableCredit returns all customers ordered by available credit.
	// An empty order token defaults to descending.
	SortByAvailableCredit(ctx context.Context, order string) ([]CustomerDto, error)
}

// Service implements CustomerService and provides methods to manage customers.
type Service struct {
	repository store.CustomerStore
	validator  *validation.Validator
}

// NewService creates a new instance of CustomerService with the provided repository.
func NewService(repo store.CustomerStore) *Service {
	return &Service{
		repository: repo,
		validator:  validation.New(repo),
	}
}

// CustomerCreateDto represents the data transfer object for creating a new customer.
// AvailableCredit defaults to zero when omitted.
type CustomerCreateDto struct {
	Name            string           `json:"name"            validate:"required"`
	Email           string           `json:"email"           validate:"required"`
	AvailableCredit *decimal.Decimal `json:"availableCredit" validate:"omitempty"`
}

// CustomerUpdateDto represents a partial update; nil fields are left untouched.
type CustomerUpdateDto struct {
	Name            *string          `json:"name"`
	Email           *string          `json:"email"`
	AvailableCredit *decimal.Decimal `json:"availableCredit"`
}

// CreditDto represents the data transfer object for adding credit.
type CreditDto struct {
	Amount decimal.Decimal `json:"amount"`
}

// CustomerDto represents the data transfer object for a customer.
type CustomerDto struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	AvailableCredit decimal.Decimal `json:"availableCredit"`
}

// Create validates the new customer's fields, enforces email uniqueness and
// persists the record. All checks pass before anything is written.
func (s *Service) Create(ctx context.Context, customer CustomerCreateDto) (*CustomerDto, error) {
	if err := s.validator.ValidateName(customer.Name); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateEmailFormat(customer.Email); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateEmailNotInUse(ctx, customer.Email, uuid.Nil); err != nil {
		return nil, err
	}
	credit := decimal.Zero
	if customer.AvailableCredit != nil {
		credit = *customer.AvailableCredit
	}
	if err := s.validator.ValidateAmount("availableCredit", credit); err != nil {
		return nil, err
	}

	created, err := s.repository.Create(ctx, customer.Name, customer.Email, credit)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return toDto(created), nil
}

// Update validates existence first, then each present field, and persists the
// merged result. The uniqueness check excludes the customer's own ID so an
// unchanged email does not conflict with itself.
func (s *Service) Update(ctx context.Context, id string, customer CustomerUpdateDto) (*CustomerDto, error) {
	customerID, err := validation.ParseID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.validator.ValidateCustomerExists(ctx, customerID); err != nil {
		return nil, err
	}
	if customer.Name != nil {
		if err := s.validator.ValidateName(*customer.Name); err != nil {
			return nil, err
		}
	}
	if customer.Email != nil {
		if err := s.validator.ValidateEmailFormat(*customer.Email); err != nil {
			return nil, err
		}
		if err := s.validator.ValidateEmailNotInUse(ctx, *customer.Email, customerID); err != nil {
			return nil, err
		}
	}
	if customer.AvailableCredit != nil {
		if err := s.validator.ValidateAmount("availableCredit", *customer.AvailableCredit); err != nil {
			return nil, err
		}
	}

	updated, err := s.repository.Update(ctx, customerID, store.UpdateParams{
		Name:            customer.Name,
		Email:           customer.Email,
		AvailableCredit: customer.AvailableCredit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update customer with ID %s: %w", id, err)
	}
	return toDto(updated), nil
}

// FindAll retrieves all customers and returns them as CustomerDTOs.
// Returns an empty slice if no customers exist.
func (s *Service) FindAll(ctx context.Context) ([]CustomerDto, error) {
	customers, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customers: %w", err)
	}
	return toDtos(customers), nil
}

// FindByID retrieves a customer by its ID and returns it as a CustomerDto.
// Returns ErrCustomerNotFound if no customer exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id string) (*CustomerDto, error) {
	customerID, err := validation.ParseID(id)
	if err != nil {
		return nil, err
	}
	customer, err := s.validator.ValidateCustomerExists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return toDto(customer), nil
}

// DeleteByID validates existence and removes the customer.
func (s *Service) DeleteByID(ctx context.Context, id string) error {
	customerID, err := validation.ParseID(id)
	if err != nil {
		return err
	}
	if _, err := s.validator.ValidateCustomerExists(ctx, customerID); err != nil {
		return err
	}
	return s.repository.DeleteByID(ctx, customerID)
}

// AddCredit validates existence and the amount, then delegates the addition
// to the store's atomic increment so concurrent additions cannot lose updates.
func (s *Service) AddCredit(ctx context.Context, id string, amount decimal.Decimal) (*CustomerDto, error) {
	customerID, err := validation.ParseID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.validator.ValidateCustomerExists(ctx, customerID); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateAmount("amount", amount); err != nil {
		return nil, err
	}
	updated, err := s.repository.AddCredit(ctx, customerID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to add credit to customer with ID %s: %w", id, err)
	}
	return toDto(updated), nil
}

// SortByAvailableCredit validates the order token (defaulting to descending)
// and returns customers ranked by credit, ties keeping insertion order.
func (s *Service) SortByAvailableCredit(ctx context.Context, order string) ([]CustomerDto, error) {
	sortOrder, err := validation.ParseSortOrder(order)
	if err != nil {
		return nil, err
	}
	customers, err := s.repository.FindByAvailableCredit(ctx, sortOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customers sorted by credit: %w", err)
	}
	return toDtos(customers), nil
}

// toDto converts a store.Customer to a CustomerDto.
func toDto(customer *store.Customer) *CustomerDto {
	return &CustomerDto{
		ID:              customer.ID.String(),
		Name:            customer.Name,
		Email:           customer.Email,
		AvailableCredit: customer.AvailableCredit,
	}
}

// toDtos converts a slice of store.Customer to CustomerDTOs.
func toDtos(customers []store.Customer) []CustomerDto {
	dtos := make([]CustomerDto, len(customers))
	for i, c := range customers {
		dtos[i] = *toDto(&c)
	}
	return dtos
}
