// Package store provides an interface for customer storage operations.
package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SortOrder is the direction used when ranking customers by available credit.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Customer represents a customer record in the store.
// Seq records insertion order and is the tie-break key for credit sorting.
type Customer struct {
	ID              uuid.UUID
	Name            string
	Email           string
	AvailableCredit decimal.Decimal
	Seq             int64
}

// UpdateParams carries the fields of a partial update. Nil fields retain the
// stored value.
type UpdateParams struct {
	Name            *string
	Email           *string
	AvailableCredit *decimal.Decimal
}

// CustomerStore is an interface for customer storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type CustomerStore interface {
	// Create adds a new customer with a fresh ID and returns the stored record.
	// Email uniqueness is enforced by the caller before invocation.
	Create(ctx context.Context, name, email string, availableCredit decimal.Decimal) (*Customer, error)

	// FindAll returns all customers in insertion order.
	// Returns an empty slice if no customers exist.
	FindAll(ctx context.Context) ([]Customer, error)

	// FindByID retrieves a single customer by its unique identifier.
	// Returns ErrCustomerNotFound if no customer exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByEmail retrieves a customer by email address.
	// Returns ErrCustomerNotFound if no customer holds the address.
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// Update modifies an existing customer; nil params retain stored values.
	// Returns ErrCustomerNotFound if no customer exists with the given ID.
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Customer, error)

	// AddCredit atomically adds amount to the customer's available credit.
	// Returns ErrCustomerNotFound if no customer exists with the given ID.
	AddCredit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*Customer, error)

	// DeleteByID removes a customer by its ID.
	// Returns ErrCustomerNotFound if no customer exists with the given ID.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// FindByAvailableCredit returns all customers ordered by available credit.
	// Equal credits keep insertion order.
	FindByAvailableCredit(ctx context.Context, order SortOrder) ([]Customer, error)

	// Clear removes every customer. Test isolation only.
	Clear(ctx context.Context) error
}
