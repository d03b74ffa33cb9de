// Package errors provides custom error types for customer-related operations.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the customer domain. Every failure a caller can act on
// wraps exactly one of these, so transport code can map them with errors.Is.
var (
	// ErrInvalidType signals a field of the wrong type or a malformed customer ID.
	ErrInvalidType = errors.New("invalid type")

	// ErrEmptyName signals a name that is empty after trimming whitespace.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrNameTooShort signals a name below the minimum length.
	ErrNameTooShort = errors.New("name is too short")

	// ErrInvalidEmailFormat signals an email that does not match the address grammar.
	ErrInvalidEmailFormat = errors.New("invalid email format")

	// ErrInvalidSortOrder signals an unrecognized sort order token.
	ErrInvalidSortOrder = errors.New("invalid sort order")

	// ErrEmailAlreadyInUse signals an email held by a different customer.
	ErrEmailAlreadyInUse = errors.New("email already in use")

	// ErrCustomerNotFound signals a well-formed ID with no matching customer.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrNegativeCreditAmount signals a negative amount or availableCredit.
	ErrNegativeCreditAmount = errors.New("credit amount cannot be negative")
)

// InvalidType wraps ErrInvalidType with the offending field, the expected
// shape and the received value, so the message alone identifies the failure.
func InvalidType(field, expected string, received any) error {
	return fmt.Errorf("%w: field %q expected %s, received %v", ErrInvalidType, field, expected, received)
}

// NameTooShort wraps ErrNameTooShort with the observed and required lengths.
func NameTooShort(length, minimum int) error {
	return fmt.Errorf("%w: length %d is below minimum %d", ErrNameTooShort, length, minimum)
}

// InvalidEmailFormat wraps ErrInvalidEmailFormat with the rejected value.
func InvalidEmailFormat(email string) error {
	return fmt.Errorf("%w: %q", ErrInvalidEmailFormat, email)
}

// InvalidSortOrder wraps ErrInvalidSortOrder with the rejected token.
func InvalidSortOrder(order string) error {
	return fmt.Errorf("%w: %q", ErrInvalidSortOrder, order)
}

// EmailAlreadyInUse wraps ErrEmailAlreadyInUse with the conflicting address.
func EmailAlreadyInUse(email string) error {
	return fmt.Errorf("%w: %q", ErrEmailAlreadyInUse, email)
}

// CustomerNotFound wraps ErrCustomerNotFound with the missing ID.
func CustomerNotFound(id string) error {
	return fmt.Errorf("%w: id %q", ErrCustomerNotFound, id)
}

// NegativeCreditAmount wraps ErrNegativeCreditAmount with the rejected value.
func NegativeCreditAmount(field string, received any) error {
	return fmt.Errorf("%w: field %q received %v", ErrNegativeCreditAmount, field, received)
}
