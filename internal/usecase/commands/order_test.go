//go:build unit

package commands_test

import (
	"context"
	"testing"

	"cardshop/internal/domain/inventory"
	"cardshop/internal/domain/order"
	"cardshop/internal/pkg/clock"
	"cardshop/internal/pkg/config"
	"cardshop/internal/usecase/commands"
	"cardshop/tests/common/builder"
	"cardshop/tests/common/fakestore"
	commandsmock "cardshop/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderUseCaseTestSuite struct {
	suite.Suite
	store       *fakestore.Store
	mockCtrl    *gomock.Controller
	mockMetrics *commandsmock.MockMetrics
	clock       *clock.MockClock
	uc          commands.OrderCommands

	bulk   *inventory.Record
	single *inventory.Record
}

func (s *OrderUseCaseTestSuite) SetupTest() {
	s.store = fakestore.New()
	s.clock = clock.NewMockClock(testNow)
	s.mockCtrl = gomock.NewController(s.T())
	s.mockMetrics = commandsmock.NewMockMetrics(s.mockCtrl)
	s.mockMetrics.EXPECT().OrderTransitioned(gomock.Any()).AnyTimes()
	s.uc = commands.NewOrderUseCase(s.store, s.mockMetrics, config.NewTestConfig().Kafka, s.clock)

	// Stock as it stands after the order below was paid.
	s.bulk = builder.NewInventoryBuilder().With(func(b *builder.InventoryBuilder) { b.Stock = 3 }).BuildDomain()
	s.single = builder.NewSingleBuilder().With(func(b *builder.InventoryBuilder) {
		b.Stock = 0
		b.Status = inventory.StatusSold
		b.IsActive = false
	}).BuildDomain()
	s.store.PutInventory(s.bulk)
	s.store.PutInventory(s.single)
}

func (s *OrderUseCaseTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderUseCaseSuite(t *testing.T) {
	suite.Run(t, new(OrderUseCaseTestSuite))
}

func (s *OrderUseCaseTestSuite) seedOrder(status order.Status) *order.Order {
	o := builder.NewOrderBuilder().With(func(b *builder.OrderBuilder) {
		b.Status = status
		b.Items = []order.Item{
			{InventoryID: s.bulk.ID(), Name: s.bulk.Name(), UnitPriceCents: 150, Quantity: 2},
			{InventoryID: s.single.ID(), Name: s.single.Name(), UnitPriceCents: 1000, Quantity: 1},
		}
	}).BuildDomain()
	s.store.PutOrder(o)
	return o
}

func ptrTo[T any](v T) *T { return &v }

// ================================================================================
// TestTransitions
// ================================================================================

func (s *OrderUseCaseTestSuite) TestCancel_PaidRestoresInventoryOnce() {
	o := s.seedOrder(order.StatusPaid)

	got, err := s.uc.Cancel(context.Background(), o.ID())
	s.Require().NoError(err)
	s.Equal(order.StatusCancelled, got.Status())
	s.NotNil(got.CancelledAt())

	s.Equal(5, s.store.Inventory(s.bulk.ID()).Stock())
	single := s.store.Inventory(s.single.ID())
	s.Equal(1, single.Stock())
	s.Equal(inventory.StatusActive, single.Status())
	s.True(single.IsActive())

	_, err = s.uc.Cancel(context.Background(), o.ID())
	s.ErrorIs(err, order.ErrInvalidTransition)
	s.Equal(5, s.store.Inventory(s.bulk.ID()).Stock())
}

func (s *OrderUseCaseTestSuite) TestCancel_PendingDoesNotRestore() {
	o := s.seedOrder(order.StatusPending)

	_, err := s.uc.Cancel(context.Background(), o.ID())

	s.Require().NoError(err)
	s.Equal(3, s.store.Inventory(s.bulk.ID()).Stock())
	s.Equal(inventory.StatusSold, s.store.Inventory(s.single.ID()).Status())
}

func (s *OrderUseCaseTestSuite) TestMarkPaid_CommitsInventory() {
	o := s.seedOrder(order.StatusPending)

	got, err := s.uc.MarkPaid(context.Background(), o.ID())

	s.Require().NoError(err)
	s.Equal(order.StatusPaid, got.Status())
	s.Equal(1, s.store.Inventory(s.bulk.ID()).Stock())
}

func (s *OrderUseCaseTestSuite) TestMarkFulfilled_EnqueuesShippedNotice() {
	o := s.seedOrder(order.StatusPaid)

	got, err := s.uc.MarkFulfilled(context.Background(), o.ID())

	s.Require().NoError(err)
	s.Equal(order.StatusFulfilled, got.Status())
	s.NotNil(got.FulfilledAt())
	jobs := s.store.Jobs()
	s.Require().Len(jobs, 1)
	s.Equal("order.shipped", jobs[0].Topic)
	s.Equal(3, s.store.Inventory(s.bulk.ID()).Stock())
}

func (s *OrderUseCaseTestSuite) TestMarkFulfilled_FromPendingIsRejected() {
	o := s.seedOrder(order.StatusPending)

	_, err := s.uc.MarkFulfilled(context.Background(), o.ID())

	s.ErrorIs(err, order.ErrInvalidTransition)
	s.Empty(s.store.Jobs())
}

func (s *OrderUseCaseTestSuite) TestUnknownOrder() {
	_, err := s.uc.Cancel(context.Background(), uuid.New())
	s.ErrorIs(err, commands.ErrOrderNotFound)
}

// ================================================================================
// TestRefund
// ================================================================================

func (s *OrderUseCaseTestSuite) TestRefund_FullRestoresOnceAndRejectsRepeat() {
	o := s.seedOrder(order.StatusFulfilled)

	outcome, err := s.uc.Refund(context.Background(), o.ID(), nil)
	s.Require().NoError(err)
	s.True(outcome.Full)
	s.True(outcome.RestoredStock)
	s.Equal(int64(1300), outcome.AmountCents)
	s.Equal(order.StatusRefunded, outcome.Order.Status())
	s.Equal(5, s.store.Inventory(s.bulk.ID()).Stock())

	_, err = s.uc.Refund(context.Background(), o.ID(), nil)
	s.ErrorIs(err, order.ErrInvalidTransition)
	s.Equal(5, s.store.Inventory(s.bulk.ID()).Stock())
}

func (s *OrderUseCaseTestSuite) TestRefund_PartialKeepsStatus() {
	o := s.seedOrder(order.StatusPaid)

	outcome, err := s.uc.Refund(context.Background(), o.ID(), ptrTo("4.00"))
	s.Require().NoError(err)
	s.False(outcome.Full)
	s.False(outcome.RestoredStock)
	s.Equal(order.StatusPaid, outcome.Order.Status())
	s.Equal(int64(400), s.store.Order(o.ID()).RefundedCents())
	s.Equal(3, s.store.Inventory(s.bulk.ID()).Stock())

	outcome, err = s.uc.Refund(context.Background(), o.ID(), ptrTo("9.00"))
	s.Require().NoError(err)
	s.False(outcome.Full)
	s.False(outcome.RestoredStock)
	s.Equal(int64(900), outcome.AmountCents)
	s.Equal(order.StatusPaid, s.store.Order(o.ID()).Status())
	s.Equal(int64(1300), s.store.Order(o.ID()).RefundedCents())
	s.Equal(3, s.store.Inventory(s.bulk.ID()).Stock())
}

func (s *OrderUseCaseTestSuite) TestRefund_PartialOnPendingIsRejected() {
	o := s.seedOrder(order.StatusPending)

	_, err := s.uc.Refund(context.Background(), o.ID(), ptrTo("1.00"))

	s.ErrorIs(err, order.ErrInvalidTransition)
	s.Equal(order.StatusPending, s.store.Order(o.ID()).Status())
	s.Zero(s.store.Order(o.ID()).RefundedCents())
}

func (s *OrderUseCaseTestSuite) TestRefund_AmountAtLeastTotalIsFull() {
	o := s.seedOrder(order.StatusPaid)

	outcome, err := s.uc.Refund(context.Background(), o.ID(), ptrTo("20"))

	s.Require().NoError(err)
	s.True(outcome.Full)
	s.Equal(order.StatusRefunded, outcome.Order.Status())
}

func (s *OrderUseCaseTestSuite) TestRefund_InvalidAmount() {
	o := s.seedOrder(order.StatusPaid)

	for _, amount := range []string{"abc", "-1", "0", "1.005"} {
		_, err := s.uc.Refund(context.Background(), o.ID(), ptrTo(amount))
		s.ErrorIs(err, order.ErrInvalidAmount, amount)
	}
	s.Equal(order.StatusPaid, s.store.Order(o.ID()).Status())
}
