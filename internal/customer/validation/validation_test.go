package validation

import (
	"context"
	"testing"

	custerrors "github.com/abgdnv/customerhub/internal/customer/errors"
	"github.com/abgdnv/customerhub/internal/customer/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) (*Validator, store.CustomerStore) {
	t.Helper()
	s := store.NewInMemoryStore()
	return New(s), s
}

func Test_ValidateName(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expectError error
	}{
		{name: "Valid name", input: "John Doe", expectError: nil},
		{name: "Exactly minimum length", input: "Joe", expectError: nil},
		{name: "Empty", input: "", expectError: custerrors.ErrEmptyName},
		{name: "Whitespace only", input: "   ", expectError: custerrors.ErrEmptyName},
		{name: "Too short", input: "Jo", expectError: custerrors.ErrNameTooShort},
		{name: "Too short after trimming", input: "  Jo  ", expectError: custerrors.ErrNameTooShort},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, _ := newValidator(t)
			err := v.ValidateName(tc.input)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func Test_ValidateEmailFormat(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expectError error
	}{
		{name: "Valid email", input: "john.doe@example.com", expectError: nil},
		{name: "Valid email with plus tag", input: "john+tag@example.com", expectError: nil},
		{name: "Missing at sign", input: "john.doe.example.com", expectError: custerrors.ErrInvalidEmailFormat},
		{name: "Missing domain", input: "john@", expectError: custerrors.ErrInvalidEmailFormat},
		{name: "Empty", input: "", expectError: custerrors.ErrInvalidEmailFormat},
		{name: "Spaces inside", input: "john doe@example.com", expectError: custerrors.ErrInvalidEmailFormat},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, _ := newValidator(t)
			err := v.ValidateEmailFormat(tc.input)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func Test_ValidateEmailNotInUse(t *testing.T) {
	ctx := context.Background()

	t.Run("Free email passes", func(t *testing.T) {
		v, _ := newValidator(t)
		assert.NoError(t, v.ValidateEmailNotInUse(ctx, "free@example.com", uuid.Nil))
	})

	t.Run("Taken email fails", func(t *testing.T) {
		v, s := newValidator(t)
		_, err := s.Create(ctx, "John Doe", "taken@example.com", decimal.Zero)
		require.NoError(t, err)

		err = v.ValidateEmailNotInUse(ctx, "taken@example.com", uuid.Nil)
		assert.ErrorIs(t, err, custerrors.ErrEmailAlreadyInUse)
	})

	t.Run("Own email excluded by id", func(t *testing.T) {
		v, s := newValidator(t)
		created, err := s.Create(ctx, "John Doe", "own@example.com", decimal.Zero)
		require.NoError(t, err)

		assert.NoError(t, v.ValidateEmailNotInUse(ctx, "own@example.com", created.ID))
	})
}

func Test_ValidateAmount(t *testing.T) {
	v, _ := newValidator(t)

	assert.NoError(t, v.ValidateAmount("amount", decimal.NewFromInt(10)))
	assert.NoError(t, v.ValidateAmount("amount", decimal.Zero))

	err := v.ValidateAmount("amount", decimal.NewFromInt(-10))
	assert.ErrorIs(t, err, custerrors.ErrNegativeCreditAmount)
	assert.Contains(t, err.Error(), "amount", "message should name the offending field")
}

func Test_ValidateCustomerExists(t *testing.T) {
	ctx := context.Background()

	t.Run("Existing customer is returned", func(t *testing.T) {
		v, s := newValidator(t)
		created, err := s.Create(ctx, "John Doe", "john@example.com", decimal.Zero)
		require.NoError(t, err)

		found, err := v.ValidateCustomerExists(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("Absent customer fails with not found", func(t *testing.T) {
		v, _ := newValidator(t)
		_, err := v.ValidateCustomerExists(ctx, uuid.New())
		assert.ErrorIs(t, err, custerrors.ErrCustomerNotFound)
	})
}

func Test_ParseID(t *testing.T) {
	t.Run("Canonical UUID text parses", func(t *testing.T) {
		id, err := ParseID("123e4567-e89b-12d3-a456-426614174000")
		require.NoError(t, err)
		assert.Equal(t, "123e4567-e89b-12d3-a456-426614174000", id.String())
	})

	t.Run("Malformed id fails with invalid type", func(t *testing.T) {
		_, err := ParseID("12345")
		assert.ErrorIs(t, err, custerrors.ErrInvalidType)
		assert.NotErrorIs(t, err, custerrors.ErrCustomerNotFound)
	})
}

func Test_ParseSortOrder(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expected    store.SortOrder
		expectError error
	}{
		{name: "Empty defaults to descending", input: "", expected: store.SortDesc},
		{name: "asc", input: "asc", expected: store.SortAsc},
		{name: "desc", input: "desc", expected: store.SortDesc},
		{name: "Uppercase accepted", input: "ASC", expected: store.SortAsc},
		{name: "Mixed case accepted", input: "Desc", expected: store.SortDesc},
		{name: "Unknown token rejected", input: "upwards", expectError: custerrors.ErrInvalidSortOrder},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			order, err := ParseSortOrder(tc.input)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, order)
		})
	}
}
