package commands_test

import (
	"context"
	"testing"
	"time"

	"foodify/internal/core/application/usecases/commands"
	"foodify/internal/core/domain/model/kernel"
	"foodify/internal/core/domain/model/order"
	"foodify/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// fixture wires a factory, a unit of work and a repository mock together.
type fixture struct {
	repo    *MockOrderRepository
	uow     *MockOrderUoW
	factory *MockOrderUoWFactory
}

func newFixture() fixture {
	f := fixture{
		repo:    new(MockOrderRepository),
		uow:     new(MockOrderUoW),
		factory: new(MockOrderUoWFactory),
	}
	f.factory.On("Create").Return(f.uow).Once()
	return f
}

func (f fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.repo.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
}

func storedOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	customer, err := order.NewCustomer("John Doe", "123 Test St", "1234567890")
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), 2)
	require.NoError(t, err)
	o, err := order.RestoreOrder(kernel.NewUUID(), customer, []order.Item{item}, status, time.Now(), time.Now())
	require.NoError(t, err)
	return o
}
