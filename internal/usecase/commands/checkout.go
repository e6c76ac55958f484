package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cardshop/internal/domain/inventory"
	"cardshop/internal/domain/payment"
	"cardshop/internal/domain/reservation"
	"cardshop/internal/domain/user"
	"cardshop/internal/pkg/clock"
	"cardshop/internal/pkg/config"
	"cardshop/internal/pkg/errs"
	"cardshop/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrPaymentGateway = errs.New("payment gateway failure")
	ErrCheckoutLink   = errs.New("failed to link payment session")
)

const (
	checkoutOutcomeSession   = "session"
	checkoutOutcomeHandoff   = "handoff"
	checkoutOutcomeRejected  = "rejected"
	checkoutOutcomeAbandoned = "abandoned"
)

type CheckoutRequest struct {
	Items         []reservation.Item
	CustomerEmail string
}

type CheckoutResult struct {
	ReservationID uuid.UUID
	SessionID     string
	RedirectURL   string
	ExpiresAt     time.Time
}

type CheckoutCommands interface {
	StartCheckout(ctx context.Context, holder reservation.Holder, req CheckoutRequest) (*CheckoutResult, error)
}

type checkoutUseCaseImpl struct {
	uow          shared.UnitOfWork
	reservations ReservationCommands
	gateway      PaymentGateway
	metrics      Metrics
	cfg          config.PaymentConfig
	clock        clock.Clock
}

func NewCheckoutUseCase(
	uow shared.UnitOfWork,
	reservations ReservationCommands,
	gateway PaymentGateway,
	metrics Metrics,
	cfg config.PaymentConfig,
	clk clock.Clock,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		uow:          uow,
		reservations: reservations,
		gateway:      gateway,
		metrics:      metrics,
		cfg:          cfg,
		clock:        clk,
	}
}

func (uc *checkoutUseCaseImpl) StartCheckout(ctx context.Context, holder reservation.Holder, req CheckoutRequest) (*CheckoutResult, error) {
	res, err := uc.reservations.CreateReservation(ctx, holder, req.Items, 0)
	if err != nil {
		uc.metrics.CheckoutFinished(checkoutOutcomeRejected)
		return nil, err
	}

	session, outcome, err := uc.openSession(ctx, holder, res, req.CustomerEmail)
	if err != nil {
		uc.abandon(ctx, holder, res.ID())
		uc.metrics.CheckoutFinished(checkoutOutcomeAbandoned)
		return nil, err
	}

	// The browser may already be on the provider's page; a dropped client
	// request must not leave the session unlinked.
	linkCtx := context.WithoutCancel(ctx)
	if err := uc.link(linkCtx, res.ID(), session.ID); err != nil {
		uc.abandon(linkCtx, holder, res.ID())
		uc.metrics.CheckoutFinished(checkoutOutcomeAbandoned)
		return nil, err
	}

	uc.metrics.CheckoutFinished(outcome)
	return &CheckoutResult{
		ReservationID: res.ID(),
		SessionID:     session.ID,
		RedirectURL:   session.URL,
		ExpiresAt:     res.ExpiresAt(),
	}, nil
}

func (uc *checkoutUseCaseImpl) openSession(ctx context.Context, holder reservation.Holder, res *reservation.Reservation, email string) (payment.Session, string, error) {
	records, err := uc.uow.CommandReads().InventoryByIDs(ctx, res.Items().InventoryIDs())
	if err != nil {
		return payment.Session{}, "", err
	}
	byID := make(map[uuid.UUID]*inventory.Record, len(records))
	for _, rec := range records {
		byID[rec.ID()] = rec
	}

	lines := make([]payment.SessionLineItem, 0, len(res.Items()))
	for _, it := range res.Items() {
		rec, ok := byID[it.InventoryID]
		if !ok {
			return payment.Session{}, "", &ItemAvailabilityError{InventoryID: it.InventoryID, Err: inventory.ErrUnavailable}
		}
		lines = append(lines, payment.SessionLineItem{
			InventoryID: rec.ID(),
			Name:        rec.Name(),
			UnitAmount:  rec.PriceCents(),
			Quantity:    it.Quantity,
		})
	}

	md := payment.SessionMetadata{
		ReservationID: res.ID().String(),
		HolderType:    string(holder.Type),
		HolderKey:     holder.Key,
	}
	if userID, ok := holder.UserID(); ok {
		md.UserID = userID.String()
	}

	sessionReq := payment.NewSessionRequest(uc.cfg.Currency, lines, uc.cfg.SuccessURL, uc.cfg.CancelURL, res.ExpiresAt(), md)
	// Prefill only; an address the provider would refuse is left for the
	// buyer to type on the hosted page.
	if prefill, err := user.NewEmail(email); err == nil {
		sessionReq.CustomerEmail = prefill.Value()
	}

	session, err := uc.gateway.CreateSession(ctx, sessionReq)
	var handoff *payment.Handoff
	if errors.As(err, &handoff) {
		return handoff.Session, checkoutOutcomeHandoff, nil
	}
	if err != nil {
		return payment.Session{}, "", errs.Mark(err, ErrPaymentGateway)
	}
	return session, checkoutOutcomeSession, nil
}

func (uc *checkoutUseCaseImpl) link(ctx context.Context, reservationID uuid.UUID, sessionID string) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, err := tx.Reservations().LinkSession(ctx, tx.DB(), reservationID, sessionID, uc.clock.Now())
		if err != nil {
			return errs.Mark(err, ErrCheckoutLink)
		}
		if !ok {
			return errs.Mark(ErrReservationNotActive, ErrCheckoutLink)
		}
		return nil
	})
}

// abandon releases the hold after a failed checkout. A failed cancel is only
// logged since the hold still lapses at its expiry.
func (uc *checkoutUseCaseImpl) abandon(ctx context.Context, holder reservation.Holder, reservationID uuid.UUID) {
	err := uc.reservations.CancelReservation(context.WithoutCancel(ctx), holder, reservationID)
	if err != nil && !errs.Is(err, ErrReservationNotActive) {
		slog.Warn("failed to cancel reservation after checkout failure",
			"reservation_id", reservationID.String(),
			"error", err.Error())
	}
}
