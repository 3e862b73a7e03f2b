package repo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/talx-hub/fideliza/internal/model/customer"
	"github.com/talx-hub/fideliza/internal/model/transaction"
	"github.com/talx-hub/fideliza/internal/serviceerrs"
)

type TransactionRepository struct {
	DB
}

func NewTransactionRepository(pool connectionPool, log *slog.Logger) *TransactionRepository {
	return &TransactionRepository{
		DB{
			pool: pool,
			log:  log,
		},
	}
}

const queryInsertTransaction = `
INSERT INTO transactions
    (id, customer_id, amount, affiliated_card,
     points_earned, points_redeemed, description, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`

const querySettleCustomer = `
UPDATE customers
SET points = $2, tier = $3
WHERE id = $1;`

const queryListTransactions = `
SELECT id, customer_id, amount, affiliated_card,
       points_earned, points_redeemed, description, created_at
FROM transactions
WHERE customer_id = $1
ORDER BY created_at DESC, id DESC;`

// CreateAndSettle appends the ledger entry and writes the customer's
// new point balance and tier. Both rows go in one DB transaction, so
// the ledger can never disagree with the balance.
func (r *TransactionRepository) CreateAndSettle(ctx context.Context,
	t *transaction.Transaction, points int64, tier customer.Tier,
) error {
	settle := func(ctx context.Context, tx connectionPool) (any, error) {
		if _, err := tx.Exec(ctx, queryInsertTransaction,
			t.ID, t.CustomerID, t.Amount, t.AffiliatedCard,
			t.PointsEarned, t.PointsRedeemed, t.Description, t.CreatedAt,
		); err != nil {
			return struct{}{},
				fmt.Errorf("failed to create transaction in DB: %w", err)
		}

		res, err := tx.Exec(ctx, querySettleCustomer,
			t.CustomerID, points, string(tier))
		if err != nil {
			return struct{}{},
				fmt.Errorf("failed to settle points for customer %s: %w", t.CustomerID, err)
		}
		if res.RowsAffected() == 0 {
			return struct{}{}, serviceerrs.ErrCustomerNotFound
		}
		return struct{}{}, nil
	}

	settleWithTX := func() (struct{}, error) {
		return WithTX[struct{}](ctx, r.pool, r.log, settle)
	}

	_, err := WithRetry[struct{}](settleWithTX, 0)
	return err //nolint: wrapcheck // error from wrapped function
}

func (r *TransactionRepository) ListByCustomer(ctx context.Context, customerID string,
) ([]transaction.Transaction, error) {
	listLogic := func() ([]transaction.Transaction, error) {
		rows, err := r.pool.Query(ctx, queryListTransactions, customerID)
		if err != nil {
			return nil,
				fmt.Errorf("failed to list transactions for customer %s: %w", customerID, err)
		}
		defer rows.Close()

		var history []transaction.Transaction
		for rows.Next() {
			var t transaction.Transaction
			if err := rows.Scan(
				&t.ID, &t.CustomerID, &t.Amount, &t.AffiliatedCard,
				&t.PointsEarned, &t.PointsRedeemed, &t.Description, &t.CreatedAt,
			); err != nil {
				return nil, fmt.Errorf("failed to scan transaction: %w", err)
			}
			history = append(history, t)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to read transactions: %w", err)
		}
		return history, nil
	}

	return WithRetry[[]transaction.Transaction](listLogic, 0) //nolint: wrapcheck // error from wrapped function
}
