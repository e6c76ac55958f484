//go:build unit || e2e

package builder

import (
	"time"

	"cardshop/internal/domain/order"
	sqlc "cardshop/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderBuilder struct {
	ID            uuid.UUID
	Number        int64
	UserID        *uuid.UUID
	Email         string
	Items         []order.Item
	Status        order.Status
	SessionID     string
	RefundedCents int64
	CreatedAt     time.Time
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		ID:     uuid.New(),
		Number: 1,
		Email:  "buyer@example.com",
		Items: []order.Item{
			{InventoryID: uuid.New(), Name: "Lightning Bolt", UnitPriceCents: 150, Quantity: 2},
		},
		Status:    order.StatusPaid,
		SessionID: "cs_test_" + uuid.NewString(),
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

func (b *OrderBuilder) subtotal() int64 {
	var sum int64
	for _, it := range b.Items {
		sum += it.UnitPriceCents * int64(it.Quantity)
	}
	return sum
}

// Build methods
func (b *OrderBuilder) BuildDomain() *order.Order {
	subtotal := b.subtotal()
	p := order.ReconstructParams{
		ID:               b.ID,
		Number:           b.Number,
		UserID:           b.UserID,
		Email:            b.Email,
		Items:            b.Items,
		Amounts:          order.Amounts{SubtotalCents: subtotal, TotalCents: subtotal},
		Currency:         "usd",
		Status:           b.Status,
		PaymentSessionID: b.SessionID,
		RefundedCents:    b.RefundedCents,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.CreatedAt,
	}
	if b.Status == order.StatusPaid || b.Status == order.StatusFulfilled {
		paidAt := b.CreatedAt
		p.PaidAt = &paidAt
	}
	return order.Reconstruct(p)
}

func (b *OrderBuilder) BuildInfra() sqlc.Orders {
	subtotal := b.subtotal()
	row := sqlc.Orders{
		ID:               b.ID,
		OrderNumber:      b.Number,
		Email:            b.Email,
		Currency:         "usd",
		Status:           string(b.Status),
		SubtotalCents:    subtotal,
		TotalCents:       subtotal,
		RefundedCents:    b.RefundedCents,
		PaymentSessionID: b.SessionID,
		CreatedAt:        pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
		UpdatedAt:        pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
	}
	if b.UserID != nil {
		row.UserID = pgtype.UUID{Bytes: *b.UserID, Valid: true}
	}
	return row
}

func (b *OrderBuilder) BuildItemRows() []sqlc.OrderItems {
	rows := make([]sqlc.OrderItems, len(b.Items))
	for i, it := range b.Items {
		rows[i] = sqlc.OrderItems{
			ID:             uuid.New(),
			OrderID:        b.ID,
			Position:       int32(i),
			InventoryID:    it.InventoryID,
			Name:           it.Name,
			UnitPriceCents: it.UnitPriceCents,
			Quantity:       int32(it.Quantity),
		}
	}
	return rows
}
