package transaction

import (
	"context"
	"time"

	"github.com/talx-hub/fideliza/internal/model/customer"
)

// Transaction is a single entry of the append-only ledger kept per
// customer. A purchase earns points, a redemption spends them; an entry
// is never updated once written.
type Transaction struct {
	CreatedAt      time.Time `json:"created_at"`
	ID             string    `json:"id"`
	CustomerID     string    `json:"customer_id"`
	Description    string    `json:"description"`
	Amount         int64     `json:"amount"`
	PointsEarned   int64     `json:"points_earned"`
	PointsRedeemed int64     `json:"points_redeemed"`
	AffiliatedCard bool      `json:"affiliated_card"`
}

type Repository interface {
	// CreateAndSettle writes the ledger entry and the customer's new
	// point balance and tier in a single storage transaction.
	CreateAndSettle(ctx context.Context, t *Transaction,
		points int64, tier customer.Tier) error
	ListByCustomer(ctx context.Context, customerID string) ([]Transaction, error)
}
