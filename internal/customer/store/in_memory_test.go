package store

import (
	"context"
	"testing"

	custerrors "github.com/abgdnv/customerhub/internal/customer/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCustomer(t *testing.T, s CustomerStore, name, email string, credit int64) *Customer {
	t.Helper()
	created, err := s.Create(context.Background(), name, email, decimal.NewFromInt(credit))
	require.NoError(t, err)
	return created
}

func Test_InMemory_CreateAndFindByID(t *testing.T) {
	// given
	s := NewInMemoryStore()
	ctx := context.Background()
	// when
	created := seedCustomer(t, s, "John Doe", "john@example.com", 500)
	// then
	assert.NotEqual(t, uuid.Nil, created.ID)
	found, err := s.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)
}

func Test_InMemory_FindByID_NotFound(t *testing.T) {
	s := NewInMemoryStore()
	_, err := s.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, custerrors.ErrCustomerNotFound)
}

func Test_InMemory_FindByEmail(t *testing.T) {
	// given
	s := NewInMemoryStore()
	ctx := context.Background()
	created := seedCustomer(t, s, "John Doe", "john@example.com", 0)
	// when / then
	found, err := s.FindByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = s.FindByEmail(ctx, "absent@example.com")
	assert.ErrorIs(t, err, custerrors.ErrCustomerNotFound)
}

func Test_InMemory_FindAll_InsertionOrder(t *testing.T) {
	// given
	s := NewInMemoryStore()
	ctx := context.Background()
	a := seedCustomer(t, s, "First Customer", "a@example.com", 1)
	b := seedCustomer(t, s, "Second Customer", "b@example.com", 2)
	c := seedCustomer(t, s, "Third Customer", "c@example.com", 3)
	// when
	list, err := s.FindAll(ctx)
	// then
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []uuid.UUID{a.ID, b.ID, c.ID}, []uuid.UUID{list[0].ID, list[1].ID, list[2].ID})
}

func Test_InMemory_Update_Partial(t *testing.T) {
	// given
	s := NewInMemoryStore()
	ctx := context.Background()
	created := seedCustomer(t, s, "John Doe", "john@example.com", 500)
	newName := "Johnny Doe"
	// when: only the name is set
	updated, err := s.Update(ctx, created.ID, UpdateParams{Name: &newName})
	// then: untouched fields keep their stored values
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, created.Email, updated.Email)
	assert.True(t, updated.AvailableCredit.Equal(created.AvailableCredit))
	assert.Equal(t, created.Seq, updated.Seq)
}

func Test_InMemory_Update_NotFound(t *testing.T) {
	s := NewInMemoryStore()
	name := "Nobody Here"
	_, err := s.Update(context.Background(), uuid.New(), UpdateParams{Name: &name})
	assert.ErrorIs(t, err, custerrors.ErrCustomerNotFound)
}

func Test_InMemory_AddCredit(t *testing.T) {
	// given
	s := NewInMemoryStore()
	ctx := context.Background()
	created := seedCustomer(t, s, "John Doe", "john@example.com", 100)
	// when
	updated, err := s.AddCredit(ctx, created.ID, decimal.NewFromInt(50))
	// then
	require.NoError(t, err)
	assert.True(t, updated.AvailableCredit.Equal(decimal.NewFromInt(150)))

	_, err = s.AddCredit(ctx, uuid.New(), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, custerrors.ErrCustomerNotFound)
}

func Test_InMemory_AddCredit_Concurrent(t *testing.T) {
	// given
	s := NewInMemoryStore()
	ctx := context.Background()
	created := seedCustomer(t, s, "John Doe", "john@example.com", 0)
	// when: concurrent additions must not lose updates
	const workers = 16
	const perWorker = 25
	done := make(chan struct{})
	for range workers {
		go func() {
			defer func() { done <- struct{}{} }()
			for range perWorker {
				_, _ = s.AddCredit(ctx, created.ID, decimal.NewFromInt(1))
			}
		}()
	}
	for range workers {
		<-done
	}
	// then
	final, err := s.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, final.AvailableCredit.Equal(decimal.NewFromInt(workers*perWorker)),
		"expected %d, got %s", workers*perWorker, final.AvailableCredit)
}

func Test_InMemory_DeleteByID(t *testing.T) {
	// given
	s := NewInMemoryStore()
	ctx := context.Background()
	created := seedCustomer(t, s, "John Doe", "john@example.com", 0)
	// when
	err := s.DeleteByID(ctx, created.ID)
	// then
	require.NoError(t, err)
	_, err = s.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, custerrors.ErrCustomerNotFound)

	list, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = s.DeleteByID(ctx, created.ID)
	assert.ErrorIs(t, err, custerrors.ErrCustomerNotFound)
}

func Test_InMemory_FindByAvailableCredit(t *testing.T) {
	// given: credits [300, 200, 100] in store order
	s := NewInMemoryStore()
	ctx := context.Background()
	seedCustomer(t, s, "First Customer", "a@example.com", 300)
	seedCustomer(t, s, "Second Customer", "b@example.com", 200)
	seedCustomer(t, s, "Third Customer", "c@example.com", 100)

	t.Run("Descending", func(t *testing.T) {
		list, err := s.FindByAvailableCredit(ctx, SortDesc)
		require.NoError(t, err)
		require.Len(t, list, 3)
		for i, expected := range []int64{300, 200, 100} {
			assert.True(t, list[i].AvailableCredit.Equal(decimal.NewFromInt(expected)))
		}
	})

	t.Run("Ascending", func(t *testing.T) {
		list, err := s.FindByAvailableCredit(ctx, SortAsc)
		require.NoError(t, err)
		require.Len(t, list, 3)
		for i, expected := range []int64{100, 200, 300} {
			assert.True(t, list[i].AvailableCredit.Equal(decimal.NewFromInt(expected)))
		}
	})
}

func Test_InMemory_FindByAvailableCredit_StableTies(t *testing.T) {
	// given: all customers share the same credit
	s := NewInMemoryStore()
	ctx := context.Background()
	a := seedCustomer(t, s, "First Customer", "a@example.com", 100)
	b := seedCustomer(t, s, "Second Customer", "b@example.com", 100)
	c := seedCustomer(t, s, "Third Customer", "c@example.com", 100)

	for _, order := range []SortOrder{SortAsc, SortDesc} {
		// when
		list, err := s.FindByAvailableCredit(ctx, order)
		// then: ties keep insertion order in both directions
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []uuid.UUID{a.ID, b.ID, c.ID}, []uuid.UUID{list[0].ID, list[1].ID, list[2].ID},
			"order %s should keep insertion order for equal credits", order)
	}
}

func Test_InMemory_FindByAvailableCredit_Empty(t *testing.T) {
	s := NewInMemoryStore()
	list, err := s.FindByAvailableCredit(context.Background(), SortDesc)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func Test_InMemory_Clear(t *testing.T) {
	// given
	s := NewInMemoryStore()
	ctx := context.Background()
	seedCustomer(t, s, "John Doe", "john@example.com", 0)
	// when
	require.NoError(t, s.Clear(ctx))
	// then
	list, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
