package store

import (
	"context"
	"errors"
	"fmt"

	custerrors "github.com/abgdnv/customerhub/internal/customer/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgStore implements CustomerStore using PostgreSQL as the data store.
// IDs are generated by the database; available_credit is a numeric column
// transferred as text so decimal values survive the round trip exactly.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of CustomerStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

const customerColumns = `id, name, email, available_credit::text, seq`

// Create adds a new customer to the database.
// Returns an error if the customer cannot be created.
func (p *PgStore) Create(ctx context.Context, name, email string, availableCredit decimal.Decimal) (*Customer, error) {
	row := p.db.QueryRow(ctx,
		`INSERT INTO customers (name, email, available_credit)
		 VALUES ($1, $2, $3::numeric)
		 RETURNING `+customerColumns,
		name, email, availableCredit.String())
	customer, err := scanCustomer(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

// FindAll retrieves all customers in insertion order.
// It returns a slice of customers, which may be empty if no customers exist.
func (p *PgStore) FindAll(ctx context.Context) ([]Customer, error) {
	rows, err := p.db.Query(ctx,
		`SELECT `+customerColumns+` FROM customers ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to find all customers: %w", err)
	}
	return collectCustomers(rows)
}

// FindByID retrieves a customer by its unique identifier.
// Returns ErrCustomerNotFound if no customer exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	row := p.db.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custerrors.CustomerNotFound(id.String())
		}
		return nil, fmt.Errorf("failed to find customer by ID: %w", err)
	}
	return customer, nil
}

// FindByEmail retrieves a customer by email address.
// Returns ErrCustomerNotFound if no customer holds the address.
func (p *PgStore) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	row := p.db.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE email = $1`, email)
	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custerrors.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer by email: %w", err)
	}
	return customer, nil
}

// Update modifies an existing customer; nil params retain stored values.
// Returns ErrCustomerNotFound if no customer exists with the given ID.
func (p *PgStore) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Customer, error) {
	var credit *string
	if params.AvailableCredit != nil {
		s := params.AvailableCredit.String()
		credit = &s
	}
	row := p.db.QueryRow(ctx,
		`UPDATE customers
		 SET name             = COALESCE($2, name),
		     email            = COALESCE($3, email),
		     available_credit = COALESCE($4::numeric, available_credit)
		 WHERE id = $1
		 RETURNING `+customerColumns,
		id, params.Name, params.Email, credit)
	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custerrors.CustomerNotFound(id.String())
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

// AddCredit atomically adds amount to the customer's available credit.
// Returns ErrCustomerNotFound if no customer exists with the given ID.
func (p *PgStore) AddCredit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*Customer, error) {
	row := p.db.QueryRow(ctx,
		`UPDATE customers
		 SET available_credit = available_credit + $2::numeric
		 WHERE id = $1
		 RETURNING `+customerColumns,
		id, amount.String())
	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custerrors.CustomerNotFound(id.String())
		}
		return nil, fmt.Errorf("failed to add credit: %w", err)
	}
	return customer, nil
}

// DeleteByID removes a customer by its unique identifier.
// Returns ErrCustomerNotFound if no customer exists with the given ID.
func (p *PgStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer by ID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return custerrors.CustomerNotFound(id.String())
	}
	return nil
}

// FindByAvailableCredit returns customers ordered by credit; the seq column
// breaks ties so equal credits keep insertion order.
func (p *PgStore) FindByAvailableCredit(ctx context.Context, order SortOrder) ([]Customer, error) {
	direction := "DESC"
	if order == SortAsc {
		direction = "ASC"
	}
	rows, err := p.db.Query(ctx,
		`SELECT `+customerColumns+` FROM customers
		 ORDER BY available_credit `+direction+`, seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to find customers by credit: %w", err)
	}
	return collectCustomers(rows)
}

// Clear removes every customer. Test isolation only.
func (p *PgStore) Clear(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, `TRUNCATE TABLE customers`); err != nil {
		return fmt.Errorf("failed to clear customers: %w", err)
	}
	return nil
}

// scanCustomer reads one customer row, converting the numeric text to decimal.
func scanCustomer(row pgx.Row) (*Customer, error) {
	var c Customer
	var credit string
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &credit, &c.Seq); err != nil {
		return nil, err
	}
	available, err := decimal.NewFromString(credit)
	if err != nil {
		return nil, fmt.Errorf("invalid available_credit value %q: %w", credit, err)
	}
	c.AvailableCredit = available
	return &c, nil
}

// collectCustomers drains rows into a slice, closing them when done.
func collectCustomers(rows pgx.Rows) ([]Customer, error) {
	defer rows.Close()
	list := make([]Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		list = append(list, *customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read customer rows: %w", err)
	}
	return list, nil
}
