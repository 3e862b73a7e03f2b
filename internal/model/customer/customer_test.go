package customer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomer_CalculatePoints(t *testing.T) {
	tests := []struct {
		name           string
		tier           Tier
		amount         int64
		affiliatedCard bool
		want           int64
		wantErr        error
	}{
		{
			"bronze base rate",
			TierBronze, 100000, false,
			1000, nil,
		},
		{
			"bronze with card doubles",
			TierBronze, 100000, true,
			2000, nil,
		},
		{
			"silver base rate",
			TierSilver, 100000, false,
			1250, nil,
		},
		{
			"silver with card",
			TierSilver, 100000, true,
			2500, nil,
		},
		{
			"gold base rate",
			TierGold, 100000, false,
			1500, nil,
		},
		{
			"gold with card",
			TierGold, 100000, true,
			3000, nil,
		},
		{
			"silver floors fractional base",
			TierSilver, 1010, false,
			12, nil,
		},
		{
			"silver card doubles the floored base",
			TierSilver, 1010, true,
			24, nil,
		},
		{
			"floors fractional points",
			TierBronze, 199, false,
			1, nil,
		},
		{
			"small amount floors to zero",
			TierBronze, 99, false,
			0, nil,
		},
		{
			"zero amount",
			TierBronze, 0, false,
			0, nil,
		},
		{
			"negative amount fails",
			TierBronze, -1, false,
			0, ErrNegativeAmount,
		},
		{
			"huge amount overflows",
			TierGold, int64(1) << 61, true,
			0, ErrAmountOverflow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Customer{Tier: tt.tier}
			got, err := c.CalculatePoints(tt.amount, tt.affiliatedCard)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCustomer_CalculatePoints_monotonic(t *testing.T) {
	for _, tier := range []Tier{TierBronze, TierSilver, TierGold} {
		c := Customer{Tier: tier}
		var prev int64
		for amount := int64(0); amount <= 100000; amount += 997 {
			got, err := c.CalculatePoints(amount, false)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got, prev,
				"points must not decrease with amount (tier %s, amount %d)", tier, amount)
			prev = got
		}
	}
}

func TestCustomer_CalculatePoints_cardDoublesExactly(t *testing.T) {
	for _, tier := range []Tier{TierBronze, TierSilver, TierGold} {
		c := Customer{Tier: tier}
		for amount := int64(1); amount <= 50000; amount += 1009 {
			plain, err := c.CalculatePoints(amount, false)
			require.NoError(t, err)
			withCard, err := c.CalculatePoints(amount, true)
			require.NoError(t, err)
			assert.Equal(t, 2*plain, withCard,
				"card points must be exactly double (tier %s, amount %d)", tier, amount)
		}
	}
}

func TestTierForPoints_thresholds(t *testing.T) {
	tests := []struct {
		points int64
		want   Tier
	}{
		{0, TierBronze},
		{499, TierBronze},
		{500, TierSilver},
		{501, TierSilver},
		{1499, TierSilver},
		{1500, TierGold},
		{100500, TierGold},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierForPoints(tt.points),
			"points=%d", tt.points)
	}
}

func TestCustomer_UpgradeIfDue(t *testing.T) {
	tests := []struct {
		name        string
		tier        Tier
		points      int64
		wantTier    Tier
		wantChanged bool
	}{
		{"bronze stays bronze", TierBronze, 499, TierBronze, false},
		{"bronze to silver at threshold", TierBronze, 500, TierSilver, true},
		{"bronze straight to gold", TierBronze, 1500, TierGold, true},
		{"silver to gold", TierSilver, 1500, TierGold, true},
		{"no downgrade after redemption", TierGold, 0, TierGold, false},
		{"silver keeps tier below gold", TierSilver, 1499, TierSilver, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Customer{Tier: tt.tier, Points: tt.points}
			got, changed := c.UpgradeIfDue()
			assert.Equal(t, tt.wantTier, got)
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.wantTier, c.Tier)
		})
	}
}

func TestCustomer_UpgradeIfDue_neverSkipsOnAccumulation(t *testing.T) {
	c := Customer{Tier: TierBronze, Points: 0}
	seen := []Tier{c.Tier}

	for i := 0; i < 200; i++ {
		c.Points += 100
		if _, changed := c.UpgradeIfDue(); changed {
			seen = append(seen, c.Tier)
		}
	}

	require.Equal(t, []Tier{TierBronze, TierSilver, TierGold}, seen)
	assert.Equal(t, TierGold, c.Tier)
}

func TestCustomer_Benefits(t *testing.T) {
	bronze := Customer{Tier: TierBronze}
	silver := Customer{Tier: TierSilver}
	gold := Customer{Tier: TierGold}

	for _, c := range []Customer{bronze, silver, gold} {
		benefits := c.Benefits()
		require.Len(t, benefits, 3)
		assert.Contains(t, strings.ToUpper(benefits[2]), string(c.Tier))
	}

	assert.NotEqual(t, bronze.Benefits()[2], gold.Benefits()[2])
}

func TestCustomer_Multiplier_ordering(t *testing.T) {
	bronze := Customer{Tier: TierBronze}
	silver := Customer{Tier: TierSilver}
	gold := Customer{Tier: TierGold}

	assert.Less(t, bronze.Multiplier(), silver.Multiplier())
	assert.Less(t, silver.Multiplier(), gold.Multiplier())
	assert.InDelta(t, 0.01, bronze.Multiplier(), 1e-9)
}

func TestTier_IsValid(t *testing.T) {
	assert.True(t, TierBronze.IsValid())
	assert.True(t, TierSilver.IsValid())
	assert.True(t, TierGold.IsValid())
	assert.False(t, Tier("PLATINUM").IsValid())
}
