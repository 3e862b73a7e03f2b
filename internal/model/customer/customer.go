package customer

import (
	"context"
	"errors"
	"time"
)

type Tier string

const (
	TierBronze Tier = "BRONZE"
	TierSilver Tier = "SILVER"
	TierGold   Tier = "GOLD"
)

const (
	ThresholdSilver int64 = 500
	ThresholdGold   int64 = 1500
)

// rateScale converts an earn rate in basis points into points:
// points = amount * rate / rateScale. Integer math keeps the floor exact.
const rateScale = 10000

const affiliatedCardFactor = 2

type profile struct {
	earnRate int64
	extras   []string
}

var baseBenefits = []string{
	"1 point per every $100 spent.",
	"Double points when paying with an affiliated card.",
}

var profiles = map[Tier]profile{
	TierBronze: {
		earnRate: 100,
		extras:   []string{"Bronze tier: base earn rate."},
	},
	TierSilver: {
		earnRate: 125,
		extras:   []string{"Silver tier: +25% points."},
	},
	TierGold: {
		earnRate: 150,
		extras:   []string{"Gold tier: +50% points and priority service."},
	},
}

func (t Tier) IsValid() bool {
	_, ok := profiles[t]
	return ok
}

type Customer struct {
	RegisteredAt time.Time `json:"registered_at"`
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Tier         Tier      `json:"tier"`
	Points       int64     `json:"points"`
}

var ErrNegativeAmount = errors.New("purchase amount must not be negative")
var ErrAmountOverflow = errors.New("purchase amount is too large")

// CalculatePoints applies the earn rate of the customer's tier to the
// purchase amount. An affiliated card doubles the result.
func (c *Customer) CalculatePoints(amount int64, affiliatedCard bool) (int64, error) {
	if amount < 0 {
		return 0, ErrNegativeAmount
	}

	const maxSafeAmount = int64(1)<<62 / rateScale
	if amount > maxSafeAmount {
		return 0, ErrAmountOverflow
	}

	// Floor first, then double: card points are exactly twice the
	// non-card points for the same amount and tier.
	points := amount * profiles[c.Tier].earnRate / rateScale
	if affiliatedCard {
		points *= affiliatedCardFactor
	}
	return points, nil
}

// TierForPoints returns the tier matching the accumulated point total.
func TierForPoints(points int64) Tier {
	switch {
	case points >= ThresholdGold:
		return TierGold
	case points >= ThresholdSilver:
		return TierSilver
	default:
		return TierBronze
	}
}

// UpgradeIfDue recomputes the tier from the current point total.
// Redemptions never downgrade, so the tier only moves up.
func (c *Customer) UpgradeIfDue() (Tier, bool) {
	due := TierForPoints(c.Points)
	if rank(due) <= rank(c.Tier) {
		return c.Tier, false
	}
	c.Tier = due
	return due, true
}

func rank(t Tier) int {
	switch t {
	case TierSilver:
		return 1
	case TierGold:
		return 2
	default:
		return 0
	}
}

func (c *Customer) Benefits() []string {
	benefits := make([]string, 0, len(baseBenefits)+len(profiles[c.Tier].extras))
	benefits = append(benefits, baseBenefits...)
	benefits = append(benefits, profiles[c.Tier].extras...)
	return benefits
}

// Multiplier reports the tier earn rate as a fraction of the amount.
func (c *Customer) Multiplier() float64 {
	return float64(profiles[c.Tier].earnRate) / rateScale
}

type Repository interface {
	Create(ctx context.Context, c *Customer) (Customer, error)
	FindByID(ctx context.Context, id string) (Customer, error)
	FindByEmail(ctx context.Context, email string) (Customer, error)
}
