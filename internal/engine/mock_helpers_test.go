package engine

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/talx-hub/fideliza/internal/model/customer"
	"github.com/talx-hub/fideliza/internal/model/reward"
	"github.com/talx-hub/fideliza/internal/model/transaction"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, c *customer.Customer,
) (customer.Customer, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id string,
) (customer.Customer, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string,
) (customer.Customer, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(customer.Customer), args.Error(1)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CreateAndSettle(ctx context.Context,
	t *transaction.Transaction, points int64, tier customer.Tier,
) error {
	args := m.Called(ctx, t, points, tier)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListByCustomer(ctx context.Context, customerID string,
) ([]transaction.Transaction, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]transaction.Transaction), args.Error(1)
}

type MockRewardRepository struct {
	mock.Mock
}

func (m *MockRewardRepository) List(ctx context.Context) ([]reward.Reward, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reward.Reward), args.Error(1)
}

func (m *MockRewardRepository) FindByID(ctx context.Context, id string,
) (reward.Reward, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(reward.Reward), args.Error(1)
}

var (
	_ customer.Repository    = (*MockCustomerRepository)(nil)
	_ transaction.Repository = (*MockTransactionRepository)(nil)
	_ reward.Repository      = (*MockRewardRepository)(nil)
)
