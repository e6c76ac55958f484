package commands

import (
	"context"
	"log/slog"
	"time"

	"cardshop/internal/domain/inventory"
	"cardshop/internal/domain/order"
	"cardshop/internal/domain/payment"
	"cardshop/internal/infra"
	"cardshop/internal/pkg/clock"
	"cardshop/internal/pkg/config"
	"cardshop/internal/pkg/errs"
	"cardshop/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidSignature = errs.New("invalid payment event signature")
	ErrMalformedPayload = errs.New("malformed payment event payload")
	ErrEventInProgress  = errs.New("payment event is being processed")
	// ErrItemsUnresolved leaves the event unclaimed so the provider keeps
	// redelivering it while an operator reconciles the order.
	ErrItemsUnresolved  = errs.New("purchased items cannot be resolved")
)

type EventOutcome string

const (
	OutcomeProcessed       EventOutcome = "processed"
	OutcomeDuplicate       EventOutcome = "duplicate"
	OutcomeIgnored         EventOutcome = "ignored"
	OutcomeAlreadyRecorded EventOutcome = "already_recorded"
)

const orderNumberCounter = "order_number"

type PaymentEventCommands interface {
	HandleEvent(ctx context.Context, payload []byte, signature string) (EventOutcome, error)
}

type paymentEventUseCaseImpl struct {
	uow      shared.UnitOfWork
	verifier SignatureVerifier
	locker   EventLocker
	metrics  Metrics
	topics   config.KafkaConfig
	clock    clock.Clock
}

func NewPaymentEventUseCase(
	uow shared.UnitOfWork,
	verifier SignatureVerifier,
	locker EventLocker,
	metrics Metrics,
	topics config.KafkaConfig,
	clk clock.Clock,
) PaymentEventCommands {
	return &paymentEventUseCaseImpl{
		uow:      uow,
		verifier: verifier,
		locker:   locker,
		metrics:  metrics,
		topics:   topics,
		clock:    clk,
	}
}

func (uc *paymentEventUseCaseImpl) HandleEvent(ctx context.Context, payload []byte, signature string) (EventOutcome, error) {
	if err := uc.verifier.Verify(payload, signature, uc.clock.Now()); err != nil {
		uc.metrics.PaymentEventHandled("unknown", "invalid_signature")
		return "", errs.Mark(err, ErrInvalidSignature)
	}

	ev, err := payment.ParseEvent(payload)
	if err != nil {
		uc.metrics.PaymentEventHandled("unknown", "malformed")
		return "", errs.Mark(err, ErrMalformedPayload)
	}

	unlock, acquired, err := uc.locker.TryLock(ctx, ev.ID)
	switch {
	case err != nil:
		// The ledger claim below stays authoritative without the lock.
		slog.Warn("payment event lock unavailable", "event_id", ev.ID, "error", err.Error())
	case !acquired:
		uc.metrics.PaymentEventHandled(ev.Type, "in_progress")
		return "", ErrEventInProgress
	default:
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				slog.Warn("failed to release payment event lock", "event_id", ev.ID, "error", err.Error())
			}
		}()
	}

	var outcome EventOutcome
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		outcome, err = uc.apply(ctx, tx, ev)
		return err
	})
	if err != nil {
		uc.metrics.PaymentEventHandled(ev.Type, "failed")
		return "", err
	}

	uc.metrics.PaymentEventHandled(ev.Type, string(outcome))
	return outcome, nil
}

func (uc *paymentEventUseCaseImpl) apply(ctx context.Context, tx shared.Tx, ev payment.Event) (EventOutcome, error) {
	now := uc.clock.Now()

	claimed, err := tx.PaymentEvents().Claim(ctx, tx.DB(), ev.ID, ev.Type, now)
	if err != nil {
		return "", err
	}
	if !claimed {
		return OutcomeDuplicate, nil
	}

	// Other session events leave the order pending and the hold to expire.
	if ev.Type != payment.EventCheckoutCompleted {
		return OutcomeIgnored, nil
	}

	data := ev.Data
	if err := data.Validate(); err != nil {
		return "", errs.Mark(err, ErrMalformedPayload)
	}

	_, err = tx.Reads().OrderBySession(ctx, data.SessionID)
	if err == nil {
		return OutcomeAlreadyRecorded, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return "", err
	}

	reservationID := uc.sessionReservation(ctx, tx, data)
	items, err := uc.orderItems(ctx, tx, data, reservationID)
	if err != nil {
		if errs.Is(err, ErrItemsUnresolved) {
			slog.ErrorContext(ctx, "payment event needs manual reconciliation",
				"event_id", ev.ID,
				"session_id", data.SessionID,
				"paid", data.Paid(),
				"total_cents", data.Amounts.Total,
				"error", err.Error())
		}
		return "", err
	}

	number, err := tx.Counters().Next(ctx, tx.DB(), orderNumberCounter)
	if err != nil {
		return "", err
	}

	o, err := order.NewOrder(order.NewOrderParams{
		Number:           number,
		UserID:           data.Metadata.ParsedUserID(),
		Email:            data.CustomerEmail,
		Items:            items,
		Amounts:          orderAmounts(data.Amounts, items),
		Currency:         data.Currency,
		Paid:             data.Paid(),
		PaymentSessionID: data.SessionID,
		PaymentIntentID:  optionalString(data.PaymentIntentID),
		ReservationID:    reservationID,
		Shipping:         orderAddress(data.ShippingAddress),
	}, now)
	if err != nil {
		return "", errs.Mark(err, ErrMalformedPayload)
	}

	if err := tx.Orders().Create(ctx, tx.DB(), o); err != nil {
		// A concurrent delivery of another event for the same session won.
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return "", errs.Mark(err, ErrEventInProgress)
		}
		return "", err
	}

	if o.Status() == order.StatusPaid {
		if err := commitInventory(ctx, tx, o.Items(), now); err != nil {
			return "", err
		}
	}

	var resID uuid.UUID
	if reservationID != nil {
		resID = *reservationID
	}
	consumed, err := tx.Reservations().Consume(ctx, tx.DB(), data.SessionID, resID, o.ID(), now)
	if err != nil {
		return "", err
	}
	if consumed == 0 {
		slog.Info("no reservation to consume for session", "session_id", data.SessionID)
	}

	if err := enqueueOrderNotice(ctx, tx, noticeOrderMaterialized, uc.topics.OrderMaterialized, o, now); err != nil {
		return "", err
	}

	slog.Info("order materialized",
		"order_id", o.ID().String(),
		"order_number", o.FormattedNumber(),
		"status", o.Status().String(),
		"session_id", data.SessionID)
	return OutcomeProcessed, nil
}

// sessionReservation finds the reservation the session was opened for,
// preferring the id echoed in metadata over a lookup by session.
func (uc *paymentEventUseCaseImpl) sessionReservation(ctx context.Context, tx shared.Tx, data payment.SessionEvent) *uuid.UUID {
	if id, ok := data.Metadata.ParsedReservationID(); ok {
		return &id
	}
	res, err := tx.Reads().ReservationBySession(ctx, data.SessionID)
	if err != nil {
		return nil
	}
	id := res.ID()
	return &id
}

// orderItems snapshots the purchased items. Line items in the event win;
// without them the linked reservation is priced from live inventory.
func (uc *paymentEventUseCaseImpl) orderItems(ctx context.Context, tx shared.Tx, data payment.SessionEvent, reservationID *uuid.UUID) ([]order.Item, error) {
	if len(data.LineItems) > 0 {
		items := make([]order.Item, 0, len(data.LineItems))
		for _, li := range data.LineItems {
			items = append(items, order.Item{
				InventoryID:    li.InventoryID,
				Name:           li.Name,
				UnitPriceCents: li.UnitAmount,
				Quantity:       li.Quantity,
			})
		}
		return items, nil
	}

	if reservationID == nil {
		return nil, errs.Wrap(ErrItemsUnresolved, "event has no line items and no reservation")
	}
	res, err := tx.Reads().ReservationByID(ctx, *reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(ErrItemsUnresolved, "event has no line items and reservation %s is gone", *reservationID)
		}
		return nil, err
	}

	records, err := tx.Reads().InventoryByIDs(ctx, res.Items().InventoryIDs())
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*inventory.Record, len(records))
	for _, rec := range records {
		byID[rec.ID()] = rec
	}

	items := make([]order.Item, 0, len(res.Items()))
	for _, it := range res.Items() {
		item := order.Item{InventoryID: it.InventoryID, Quantity: it.Quantity}
		if rec, ok := byID[it.InventoryID]; ok {
			item.Name = rec.Name()
			item.UnitPriceCents = rec.PriceCents()
		}
		items = append(items, item)
	}
	return items, nil
}

// orderAmounts trusts the provider's totals and derives them from the items
// only when the event carries none.
func orderAmounts(a payment.Amounts, items []order.Item) order.Amounts {
	amounts := order.Amounts{
		SubtotalCents: a.Subtotal,
		TaxCents:      a.Tax,
		ShippingCents: a.Shipping,
		TotalCents:    a.Total,
	}
	if amounts.SubtotalCents == 0 {
		for _, it := range items {
			amounts.SubtotalCents += it.UnitPriceCents * int64(it.Quantity)
		}
	}
	if amounts.TotalCents == 0 {
		amounts.TotalCents = amounts.SubtotalCents + amounts.TaxCents + amounts.ShippingCents
	}
	return amounts
}

func orderAddress(a *payment.Address) *order.Address {
	if a == nil {
		return nil
	}
	addr := order.Address(*a)
	return &addr
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// commitInventory decrements stock for every purchased item. A record whose
// kind no longer matches is left untouched and logged.
func commitInventory(ctx context.Context, tx shared.Tx, items []order.Item, now time.Time) error {
	for _, it := range items {
		kind, err := tx.Inventory().KindOf(ctx, tx.DB(), it.InventoryID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				slog.Warn("purchased inventory record missing", "inventory_id", it.InventoryID.String())
				continue
			}
			return err
		}
		ok, err := tx.Inventory().CommitPurchase(ctx, tx.DB(), it.InventoryID, kind, it.Quantity, now)
		if err != nil {
			return err
		}
		if !ok {
			slog.Warn("inventory commit matched no row", "inventory_id", it.InventoryID.String(), "kind", kind.String())
		}
	}
	return nil
}

func restoreInventory(ctx context.Context, tx shared.Tx, items []order.Item, now time.Time) error {
	for _, it := range items {
		kind, err := tx.Inventory().KindOf(ctx, tx.DB(), it.InventoryID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				slog.Warn("inventory record to restore missing", "inventory_id", it.InventoryID.String())
				continue
			}
			return err
		}
		ok, err := tx.Inventory().Restore(ctx, tx.DB(), it.InventoryID, kind, it.Quantity, now)
		if err != nil {
			return err
		}
		if !ok {
			slog.Warn("inventory restore matched no row", "inventory_id", it.InventoryID.String(), "kind", kind.String())
		}
	}
	return nil
}
