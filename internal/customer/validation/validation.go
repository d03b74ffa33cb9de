// Package validation enforces field- and collection-level customer invariants.
package validation

import (
	"context"
	"errors"
	"strings"

	custerrors "github.com/abgdnv/customerhub/internal/customer/errors"
	"github.com/abgdnv/customerhub/internal/customer/store"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MinNameLength is the minimum accepted customer name length after trimming.
const MinNameLength = 3

// Validator bundles the stateless field checks with the storage-backed
// uniqueness and existence checks. The store reference is passed explicitly
// at construction so nothing reaches into global state.
type Validator struct {
	store    store.CustomerStore
	validate *validator.Validate
}

// New creates a Validator bound to the given store.
func New(s store.CustomerStore) *Validator {
	return &Validator{
		store:    s,
		validate: validator.New(),
	}
}

// ValidateName checks that name is non-empty after trimming and at least
// MinNameLength characters long. Empty and too-short cases fail distinctly.
func (v *Validator) ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return custerrors.ErrEmptyName
	}
	if len(trimmed) < MinNameLength {
		return custerrors.NameTooShort(len(trimmed), MinNameLength)
	}
	return nil
}

// ValidateEmailFormat checks email against the standard address grammar.
func (v *Validator) ValidateEmailFormat(email string) error {
	if err := v.validate.Var(email, "required,email"); err != nil {
		return custerrors.InvalidEmailFormat(email)
	}
	return nil
}

// ValidateEmailNotInUse checks that no customer other than excludeID holds
// the given email. Pass uuid.Nil as excludeID on create.
func (v *Validator) ValidateEmailNotInUse(ctx context.Context, email string, excludeID uuid.UUID) error {
	existing, err := v.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, custerrors.ErrCustomerNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return custerrors.EmailAlreadyInUse(email)
	}
	return nil
}

// ValidateAmount checks that amount is non-negative.
func (v *Validator) ValidateAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return custerrors.NegativeCreditAmount(field, amount)
	}
	return nil
}

// ValidateCustomerExists checks that a customer with the given ID exists and
// returns it, saving callers a second read. Absence fails with
// ErrCustomerNotFound; malformed IDs are rejected earlier by ParseID.
func (v *Validator) ValidateCustomerExists(ctx context.Context, id uuid.UUID) (*store.Customer, error) {
	customer, err := v.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// ParseID parses the canonical UUID text form of a customer ID.
// Any other shape fails with ErrInvalidType before a lookup is attempted.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, custerrors.InvalidType("id", "UUID string", raw)
	}
	return id, nil
}

// ParseSortOrder validates the sort order token, case-insensitively.
// An empty token defaults to descending.
func ParseSortOrder(raw string) (store.SortOrder, error) {
	switch strings.ToLower(raw) {
	case "":
		return store.SortDesc, nil
	case string(store.SortAsc):
		return store.SortAsc, nil
	case string(store.SortDesc):
		return store.SortDesc, nil
	default:
		return "", custerrors.InvalidSortOrder(raw)
	}
}
