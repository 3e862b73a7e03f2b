package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talx-hub/fideliza/internal/model/customer"
	"github.com/talx-hub/fideliza/internal/model/reward"
	"github.com/talx-hub/fideliza/internal/model/transaction"
	"github.com/talx-hub/fideliza/internal/serviceerrs"
)

func TestParseCardNumber(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    bool
		wantErr error
	}{
		{"no card", "", false, nil},
		{"blank input", "   ", false, nil},
		{"valid number", "79927398713", true, nil},
		{"valid number with spaces", "7992 7398 713", true, nil},
		{"invalid checksum", "79927398714", false, serviceerrs.ErrInvalidCardNumber},
		{"not a number", "not-a-card", false, serviceerrs.ErrInvalidCardNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCardNumber(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type stubEngine struct {
	customer customer.Customer
	rewards  []reward.Reward
	history  []transaction.Transaction
	err      error
}

func (s *stubEngine) RegisterCustomer(_ context.Context, _, _ string,
) (customer.Customer, error) {
	return s.customer, s.err
}

func (s *stubEngine) RegisterPurchase(_ context.Context, _ string, _ int64, _ bool, _ string,
) (customer.Customer, int64, error) {
	return s.customer, 1000, s.err
}

func (s *stubEngine) Redeem(_ context.Context, _, _ string,
) (customer.Customer, reward.Reward, error) {
	if s.err != nil {
		return customer.Customer{}, reward.Reward{}, s.err
	}
	return s.customer, s.rewards[0], nil
}

func (s *stubEngine) ViewCustomer(_ context.Context, _ string,
) (customer.Customer, error) {
	return s.customer, s.err
}

func (s *stubEngine) ListRewards(_ context.Context) ([]reward.Reward, error) {
	return s.rewards, s.err
}

func (s *stubEngine) History(_ context.Context, _ string,
) ([]transaction.Transaction, error) {
	return s.history, s.err
}

func runSession(t *testing.T, engine LoyaltyEngine, script string) string {
	t.Helper()

	var out bytes.Buffer
	c := New(engine, strings.NewReader(script), &out)
	require.NoError(t, c.Run(context.Background()))
	return out.String()
}

func TestCLI_Run_registerAndQuit(t *testing.T) {
	engine := &stubEngine{
		customer: customer.Customer{
			ID:     "d8f6bb3e-5f2a-4f64-9e86-0b3d93d9f3a1",
			Name:   "Ana",
			Email:  "ana@example.com",
			Tier:   customer.TierBronze,
			Points: 0,
		},
	}

	out := runSession(t, engine, "1\nAna\nana@example.com\n0\n")

	assert.Contains(t, out, "[Customer d8f6bb3e-5f2a-4f64-9e86-0b3d93d9f3a1] Ana")
	assert.Contains(t, out, "Tier:   BRONZE")
	assert.Contains(t, out, "Points: 0")
	assert.Contains(t, out, "Bye!")
}

func TestCLI_Run_purchase(t *testing.T) {
	engine := &stubEngine{
		customer: customer.Customer{
			ID:     "d8f6bb3e-5f2a-4f64-9e86-0b3d93d9f3a1",
			Name:   "Ana",
			Tier:   customer.TierSilver,
			Points: 1000,
		},
	}

	script := "2\nd8f6bb3e-5f2a-4f64-9e86-0b3d93d9f3a1\n100000\n\n\n0\n"
	out := runSession(t, engine, script)

	assert.Contains(t, out, "Purchase registered. Points earned: 1000")
	assert.Contains(t, out, "Tier:   SILVER")
}

func TestCLI_Run_purchaseRejectsBadCard(t *testing.T) {
	engine := &stubEngine{}

	script := "2\nsome-id\n100000\n79927398714\n0\n"
	out := runSession(t, engine, script)

	assert.Contains(t, out, serviceerrs.ErrInvalidCardNumber.Error())
}

func TestCLI_Run_listRewards(t *testing.T) {
	engine := &stubEngine{
		rewards: []reward.Reward{
			{ID: "r1", Name: "Small coffee", PointCost: 120, Description: "Small filter coffee."},
			{ID: "r2", Name: "Official merch", PointCost: 900},
		},
	}

	out := runSession(t, engine, "6\n0\n")

	assert.Contains(t, out, "Small coffee - 120 pts")
	assert.Contains(t, out, "Official merch - 900 pts")
}

func TestCLI_Run_domainErrorIsPrintedAndLoopContinues(t *testing.T) {
	engine := &stubEngine{err: serviceerrs.ErrCustomerNotFound}

	out := runSession(t, engine, "4\nnobody@example.com\n0\n")

	assert.Contains(t, out, "[Error] "+serviceerrs.ErrCustomerNotFound.Error())
	assert.Contains(t, out, "Bye!")
}

func TestCLI_Run_unknownOption(t *testing.T) {
	out := runSession(t, &stubEngine{}, "9\n0\n")
	assert.Contains(t, out, "[Error] unknown option")
}

func TestCLI_Run_eofQuits(t *testing.T) {
	out := runSession(t, &stubEngine{}, "")
	assert.Contains(t, out, "Bye!")
}
