package store

import (
	"context"
	"sort"
	"sync"

	custerrors "github.com/abgdnv/customerhub/internal/customer/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// inMemory implements CustomerStore using an in-memory map.
// The order slice preserves insertion order for FindAll and sort tie-breaks.
type inMemory struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]Customer
	order     []uuid.UUID
	nextSeq   int64
}

// NewInMemoryStore creates a new instance of CustomerStore backed by process memory.
func NewInMemoryStore() CustomerStore {
	return &inMemory{
		customers: make(map[uuid.UUID]Customer),
		nextSeq:   1,
	}
}

// Create creates a new customer and returns it.
func (s *inMemory) Create(_ context.Context, name, email string, availableCredit decimal.Decimal) (*Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer := Customer{
		ID:              uuid.New(),
		Name:            name,
		Email:           email,
		AvailableCredit: availableCredit,
		Seq:             s.nextSeq,
	}
	s.nextSeq++
	s.customers[customer.ID] = customer
	s.order = append(s.order, customer.ID)

	return &customer, nil
}

// FindAll retrieves all customers in insertion order.
func (s *inMemory) FindAll(_ context.Context) ([]Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot(), nil
}

// FindByID retrieves a customer by its ID.
func (s *inMemory) FindByID(_ context.Context, id uuid.UUID) (*Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, custerrors.CustomerNotFound(id.String())
	}
	return &c, nil
}

// FindByEmail retrieves a customer by email address.
func (s *inMemory) FindByEmail(_ context.Context, email string) (*Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if c := s.customers[id]; c.Email == email {
			return &c, nil
		}
	}
	return nil, custerrors.ErrCustomerNotFound
}

// Update modifies an existing customer; nil params retain stored values.
func (s *inMemory) Update(_ context.Context, id uuid.UUID, params UpdateParams) (*Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, custerrors.CustomerNotFound(id.String())
	}
	if params.Name != nil {
		c.Name = *params.Name
	}
	if params.Email != nil {
		c.Email = *params.Email
	}
	if params.AvailableCredit != nil {
		c.AvailableCredit = *params.AvailableCredit
	}
	s.customers[id] = c
	return &c, nil
}

// AddCredit adds amount to the customer's available credit under the store lock.
func (s *inMemory) AddCredit(_ context.Context, id uuid.UUID, amount decimal.Decimal) (*Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, custerrors.CustomerNotFound(id.String())
	}
	c.AvailableCredit = c.AvailableCredit.Add(amount)
	s.customers[id] = c
	return &c, nil
}

// DeleteByID deletes a customer by its ID.
func (s *inMemory) DeleteByID(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[id]; !ok {
		return custerrors.CustomerNotFound(id.String())
	}
	delete(s.customers, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// FindByAvailableCredit returns customers ordered by credit; ties keep insertion order.
func (s *inMemory) FindByAvailableCredit(_ context.Context, order SortOrder) ([]Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.snapshot()
	sort.SliceStable(list, func(i, j int) bool {
		cmp := list[i].AvailableCredit.Cmp(list[j].AvailableCredit)
		if order == SortAsc {
			return cmp < 0
		}
		return cmp > 0
	})
	return list, nil
}

// Clear removes every customer.
func (s *inMemory) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.customers = make(map[uuid.UUID]Customer)
	s.order = nil
	return nil
}

// snapshot copies the records in insertion order. Callers hold at least the read lock.
func (s *inMemory) snapshot() []Customer {
	list := make([]Customer, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, s.customers[id])
	}
	return list
}
