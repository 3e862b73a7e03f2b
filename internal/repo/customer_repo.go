package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/talx-hub/fideliza/internal/model/customer"
	"github.com/talx-hub/fideliza/internal/serviceerrs"
)

type CustomerRepository struct {
	DB
}

func NewCustomerRepository(pool connectionPool, log *slog.Logger) *CustomerRepository {
	return &CustomerRepository{
		DB{
			pool: pool,
			log:  log,
		},
	}
}

const queryInsertCustomer = `
INSERT INTO customers (id, name, email, points, tier, registered_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, name, email, points, tier, registered_at;`

const querySelectCustomer = `
SELECT id, name, email, points, tier, registered_at
FROM customers
WHERE `

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer,
) (customer.Customer, error) {
	createLogic := func() (customer.Customer, error) {
		row := r.pool.QueryRow(ctx, queryInsertCustomer,
			c.ID, c.Name, c.Email, c.Points, string(c.Tier), c.RegisteredAt)

		created, err := scanCustomer(row)
		if err != nil {
			if isUniqueViolation(err) {
				return customer.Customer{}, serviceerrs.ErrDuplicateEmail
			}
			return customer.Customer{},
				fmt.Errorf("failed to create customer in DB: %w", err)
		}
		return created, nil
	}

	created, err := WithRetry[customer.Customer](createLogic, 0)
	if err != nil {
		return customer.Customer{}, err //nolint: wrapcheck // error from wrapped function
	}
	return created, nil
}

// nolint: dupl // lookups differ only by key column
func (r *CustomerRepository) FindByID(ctx context.Context, id string,
) (customer.Customer, error) {
	findLogic := func() (customer.Customer, error) {
		row := r.pool.QueryRow(ctx, querySelectCustomer+`id = $1;`, id)
		c, err := scanCustomer(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return customer.Customer{}, serviceerrs.ErrCustomerNotFound
			}
			return customer.Customer{},
				fmt.Errorf("failed to find customer by ID in DB: %w", err)
		}
		return c, nil
	}

	c, err := WithRetry[customer.Customer](findLogic, 0)
	if err != nil {
		return customer.Customer{}, err //nolint: wrapcheck // error from wrapped function
	}
	return c, nil
}

// nolint: dupl // lookups differ only by key column
func (r *CustomerRepository) FindByEmail(ctx context.Context, email string,
) (customer.Customer, error) {
	findLogic := func() (customer.Customer, error) {
		row := r.pool.QueryRow(ctx, querySelectCustomer+`email = $1;`, email)
		c, err := scanCustomer(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return customer.Customer{}, serviceerrs.ErrCustomerNotFound
			}
			return customer.Customer{},
				fmt.Errorf("failed to find customer by email in DB: %w", err)
		}
		return c, nil
	}

	c, err := WithRetry[customer.Customer](findLogic, 0)
	if err != nil {
		return customer.Customer{}, err //nolint: wrapcheck // error from wrapped function
	}
	return c, nil
}

func scanCustomer(row pgx.Row) (customer.Customer, error) {
	var c customer.Customer
	var tier string
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Points, &tier, &c.RegisteredAt)
	if err != nil {
		return customer.Customer{}, err
	}
	c.Tier = customer.Tier(tier)
	if !c.Tier.IsValid() {
		return customer.Customer{}, fmt.Errorf("unknown tier %q in DB", tier)
	}
	return c, nil
}
