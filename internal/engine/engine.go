// Package engine implements the loyalty use cases: customer
// registration, purchase accrual, reward redemption and the read-only
// views over the ledger.
package engine

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talx-hub/fideliza/internal/model"
	"github.com/talx-hub/fideliza/internal/model/customer"
	"github.com/talx-hub/fideliza/internal/model/reward"
	"github.com/talx-hub/fideliza/internal/model/transaction"
	"github.com/talx-hub/fideliza/internal/serviceerrs"
	"github.com/talx-hub/fideliza/internal/utils/logger"
)

const defaultPurchaseDescription = "In-store purchase"

type Engine struct {
	customers customer.Repository
	ledger    transaction.Repository
	rewards   reward.Repository
}

func New(
	customers customer.Repository,
	ledger transaction.Repository,
	rewards reward.Repository,
) *Engine {
	return &Engine{
		customers: customers,
		ledger:    ledger,
		rewards:   rewards,
	}
}

// RegisterCustomer creates a new Bronze customer with zero points.
// The email must be unique across the store.
func (e *Engine) RegisterCustomer(ctx context.Context, name, email string,
) (customer.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return customer.Customer{}, serviceerrs.ErrEmptyName
	}
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return customer.Customer{}, serviceerrs.ErrInvalidEmail
	}

	c := customer.Customer{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Points:       0,
		Tier:         customer.TierBronze,
		RegisteredAt: time.Now().UTC(),
	}
	created, err := e.customers.Create(ctx, &c)
	if err != nil {
		return customer.Customer{}, err //nolint: wrapcheck // domain error from repo
	}

	logger.FromContext(ctx).LogAttrs(ctx,
		slog.LevelInfo,
		"customer registered",
		slog.String("customer_id", created.ID),
	)
	return created, nil
}

// RegisterPurchase credits the points earned by a purchase, appends the
// ledger entry and upgrades the tier when a threshold is crossed.
// Returns the refreshed customer and the points earned.
func (e *Engine) RegisterPurchase(ctx context.Context,
	customerID string, amount int64, affiliatedCard bool, description string,
) (customer.Customer, int64, error) {
	if amount <= 0 {
		return customer.Customer{}, 0, serviceerrs.ErrInvalidAmount
	}

	c, err := e.customers.FindByID(ctx, customerID)
	if err != nil {
		return customer.Customer{}, 0, err //nolint: wrapcheck // domain error from repo
	}

	points, err := c.CalculatePoints(amount, affiliatedCard)
	if err != nil {
		return customer.Customer{}, 0, err //nolint: wrapcheck // domain error from model
	}

	c.Points += points
	c.UpgradeIfDue()

	if strings.TrimSpace(description) == "" {
		description = defaultPurchaseDescription
	}
	entry := transaction.Transaction{
		ID:             uuid.NewString(),
		CustomerID:     c.ID,
		Amount:         amount,
		AffiliatedCard: affiliatedCard,
		PointsEarned:   points,
		PointsRedeemed: 0,
		Description:    description,
		CreatedAt:      time.Now().UTC(),
	}
	if err := e.ledger.CreateAndSettle(ctx, &entry, c.Points, c.Tier); err != nil {
		return customer.Customer{}, 0, err //nolint: wrapcheck // domain error from repo
	}

	logger.FromContext(ctx).LogAttrs(ctx,
		slog.LevelInfo,
		"purchase registered",
		slog.String("customer_id", c.ID),
		slog.Int64("amount", amount),
		slog.Int64("points_earned", points),
		slog.String("tier", string(c.Tier)),
	)

	refreshed, err := e.customers.FindByID(ctx, c.ID)
	if err != nil {
		return customer.Customer{}, 0, err //nolint: wrapcheck // domain error from repo
	}
	return refreshed, points, nil
}

// Redeem exchanges accumulated points for a catalog reward. The tier is
// kept as is: redemptions never downgrade.
func (e *Engine) Redeem(ctx context.Context, customerID, rewardID string,
) (customer.Customer, reward.Reward, error) {
	c, err := e.customers.FindByID(ctx, customerID)
	if err != nil {
		return customer.Customer{}, reward.Reward{}, err //nolint: wrapcheck // domain error from repo
	}
	rw, err := e.rewards.FindByID(ctx, rewardID)
	if err != nil {
		return customer.Customer{}, reward.Reward{}, err //nolint: wrapcheck // domain error from repo
	}
	if c.Points < rw.PointCost {
		return customer.Customer{}, reward.Reward{}, serviceerrs.ErrInsufficientPoints
	}

	entry := transaction.Transaction{
		ID:             uuid.NewString(),
		CustomerID:     c.ID,
		Amount:         0,
		AffiliatedCard: false,
		PointsEarned:   0,
		PointsRedeemed: rw.PointCost,
		Description:    "Redeemed: " + rw.Name,
		CreatedAt:      time.Now().UTC(),
	}
	if err := e.ledger.CreateAndSettle(ctx, &entry, c.Points-rw.PointCost, c.Tier); err != nil {
		return customer.Customer{}, reward.Reward{}, err //nolint: wrapcheck // domain error from repo
	}

	logger.FromContext(ctx).LogAttrs(ctx,
		slog.LevelInfo,
		"reward redeemed",
		slog.String("customer_id", c.ID),
		slog.String("reward_id", rw.ID),
		slog.Int64("point_cost", rw.PointCost),
	)

	refreshed, err := e.customers.FindByID(ctx, c.ID)
	if err != nil {
		return customer.Customer{}, reward.Reward{}, err //nolint: wrapcheck // domain error from repo
	}
	return refreshed, rw, nil
}

// ViewCustomer looks a customer up by ID or, when the reference is not
// a UUID, by email.
func (e *Engine) ViewCustomer(ctx context.Context, ref string,
) (customer.Customer, error) {
	ref = strings.TrimSpace(ref)
	if _, err := uuid.Parse(ref); err == nil {
		return e.customers.FindByID(ctx, ref) //nolint: wrapcheck // domain error from repo
	}
	return e.customers.FindByEmail(ctx, ref) //nolint: wrapcheck // domain error from repo
}

func (e *Engine) ListRewards(ctx context.Context) ([]reward.Reward, error) {
	return e.rewards.List(ctx) //nolint: wrapcheck // domain error from repo
}

// History lists the customer's ledger newest-first.
func (e *Engine) History(ctx context.Context, customerID string,
) ([]transaction.Transaction, error) {
	if _, err := e.customers.FindByID(ctx, customerID); err != nil {
		return nil, err //nolint: wrapcheck // domain error from repo
	}

	history, err := e.ledger.ListByCustomer(ctx, customerID)
	if err != nil {
		logger.FromContext(ctx).LogAttrs(ctx,
			slog.LevelError,
			"failed to load customer history",
			slog.String("customer_id", customerID),
			slog.Any(model.KeyLoggerError, err),
		)
		return nil, err //nolint: wrapcheck // domain error from repo
	}
	return history, nil
}
