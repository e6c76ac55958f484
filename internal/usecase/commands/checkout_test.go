//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cardshop/internal/domain/inventory"
	"cardshop/internal/domain/payment"
	"cardshop/internal/domain/reservation"
	"cardshop/internal/pkg/clock"
	"cardshop/internal/pkg/config"
	"cardshop/internal/pkg/errs"
	"cardshop/internal/usecase/commands"
	"cardshop/tests/common/builder"
	"cardshop/tests/common/fakestore"
	commandsmock "cardshop/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutUseCaseTestSuite struct {
	suite.Suite
	store       *fakestore.Store
	mockCtrl    *gomock.Controller
	mockGateway *commandsmock.MockPaymentGateway
	mockMetrics *commandsmock.MockMetrics
	uc          commands.CheckoutCommands
	holder      reservation.Holder
	bulkID      uuid.UUID
}

func (s *CheckoutUseCaseTestSuite) SetupTest() {
	cfg := config.NewTestConfig()
	clk := clock.NewMockClock(testNow)

	s.store = fakestore.New()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockGateway = commandsmock.NewMockPaymentGateway(s.mockCtrl)
	s.mockMetrics = commandsmock.NewMockMetrics(s.mockCtrl)

	reservations := commands.NewReservationUseCase(s.store, cfg.Checkout, clk)
	s.uc = commands.NewCheckoutUseCase(s.store, reservations, s.mockGateway, s.mockMetrics, cfg.Payment, clk)

	s.holder = reservation.NewGuestHolder(uuid.New())
	rec := builder.NewInventoryBuilder().BuildDomain()
	s.store.PutInventory(rec)
	s.bulkID = rec.ID()
}

func (s *CheckoutUseCaseTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutUseCaseSuite(t *testing.T) {
	suite.Run(t, new(CheckoutUseCaseTestSuite))
}

func (s *CheckoutUseCaseTestSuite) request() commands.CheckoutRequest {
	return commands.CheckoutRequest{
		Items:         []reservation.Item{{InventoryID: s.bulkID, Quantity: 2}},
		CustomerEmail: "buyer@example.com",
	}
}

func (s *CheckoutUseCaseTestSuite) onlyReservation() *reservation.Reservation {
	all := s.store.Reservations()
	s.Require().Len(all, 1)
	return all[0]
}

// ================================================================================
// TestStartCheckout
// ================================================================================

func (s *CheckoutUseCaseTestSuite) TestStartCheckout_Success() {
	var sent payment.SessionRequest
	s.mockGateway.EXPECT().CreateSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req payment.SessionRequest) (payment.Session, error) {
			sent = req
			return payment.Session{ID: "cs_123", URL: "https://pay.example.com/cs_123"}, nil
		})
	s.mockMetrics.EXPECT().CheckoutFinished("session")

	result, err := s.uc.StartCheckout(context.Background(), s.holder, s.request())

	s.Require().NoError(err)
	s.Equal("cs_123", result.SessionID)
	s.Equal("https://pay.example.com/cs_123", result.RedirectURL)
	s.Equal(testNow.Add(10*time.Minute), result.ExpiresAt)

	res := s.onlyReservation()
	s.Equal(result.ReservationID, res.ID())
	s.Require().NotNil(res.PaymentSessionID())
	s.Equal("cs_123", *res.PaymentSessionID())

	s.Require().Len(sent.LineItems, 1)
	s.Equal(int64(150), sent.LineItems[0].UnitAmount)
	s.Equal(2, sent.LineItems[0].Quantity)
	s.Equal(res.ID().String(), sent.Metadata.ReservationID)
	s.Equal("guest", sent.Metadata.HolderType)
	s.Equal("buyer@example.com", sent.CustomerEmail)
	s.Equal(result.ExpiresAt.Unix(), sent.ExpiresAt)
}

func (s *CheckoutUseCaseTestSuite) TestStartCheckout_HandoffIsSuccess() {
	handoff := &payment.Handoff{Session: payment.Session{ID: "cs_redirect", URL: "https://pay.example.com/h"}}
	s.mockGateway.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(payment.Session{}, handoff)
	s.mockMetrics.EXPECT().CheckoutFinished("handoff")

	result, err := s.uc.StartCheckout(context.Background(), s.holder, s.request())

	s.Require().NoError(err)
	s.Equal("cs_redirect", result.SessionID)
	s.Equal(reservation.StatusActive, s.onlyReservation().Status())
}

func (s *CheckoutUseCaseTestSuite) TestStartCheckout_LinksAfterClientCancel() {
	ctx, cancel := context.WithCancel(context.Background())
	s.mockGateway.EXPECT().CreateSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, payment.SessionRequest) (payment.Session, error) {
			cancel()
			return payment.Session{ID: "cs_late", URL: "https://pay.example.com/late"}, nil
		})
	s.mockMetrics.EXPECT().CheckoutFinished("session")

	_, err := s.uc.StartCheckout(ctx, s.holder, s.request())

	s.Require().NoError(err)
	s.Equal("cs_late", *s.onlyReservation().PaymentSessionID())
}

func (s *CheckoutUseCaseTestSuite) TestStartCheckout_GatewayFailureCancelsReservation() {
	s.mockGateway.EXPECT().CreateSession(gomock.Any(), gomock.Any()).
		Return(payment.Session{}, errors.New("connection reset"))
	s.mockMetrics.EXPECT().CheckoutFinished("abandoned")

	_, err := s.uc.StartCheckout(context.Background(), s.holder, s.request())

	s.True(errs.Is(err, commands.ErrPaymentGateway))
	s.Equal(reservation.StatusCancelled, s.onlyReservation().Status())
}

func (s *CheckoutUseCaseTestSuite) TestStartCheckout_LinkFailureCancelsReservation() {
	s.mockGateway.EXPECT().CreateSession(gomock.Any(), gomock.Any()).
		Return(payment.Session{ID: "cs_1", URL: "https://pay.example.com/cs_1"}, nil)
	s.mockMetrics.EXPECT().CheckoutFinished("abandoned")
	s.store.FailOn("reservations.link", errors.New("db down"))

	_, err := s.uc.StartCheckout(context.Background(), s.holder, s.request())

	s.True(errs.Is(err, commands.ErrCheckoutLink))
	s.Equal(reservation.StatusCancelled, s.onlyReservation().Status())
}

func (s *CheckoutUseCaseTestSuite) TestStartCheckout_UnavailableNeverCallsGateway() {
	s.mockMetrics.EXPECT().CheckoutFinished("rejected")

	req := s.request()
	req.Items[0].Quantity = 99
	_, err := s.uc.StartCheckout(context.Background(), s.holder, req)

	s.ErrorIs(err, inventory.ErrInsufficientStock)
	s.Empty(s.store.Reservations())
}
