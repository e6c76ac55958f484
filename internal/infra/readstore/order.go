package readstore

import (
	"context"
	"encoding/json"
	"time"

	"cardshop/internal/domain/order"
	"cardshop/internal/infra"
	sqlc "cardshop/internal/infra/sqlc/generated"
	"cardshop/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type OrderReadQueries interface {
	GetOrderByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Orders, error)
	GetOrderBySession(ctx context.Context, db sqlc.DBTX, paymentSessionID string) (sqlc.Orders, error)
	GetOrderItems(ctx context.Context, db sqlc.DBTX, orderID uuid.UUID) ([]sqlc.OrderItems, error)
	GetOrderItemsByOrderIDs(ctx context.Context, db sqlc.DBTX, orderIds []uuid.UUID) ([]sqlc.OrderItems, error)
	ListOrdersFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOrdersFirstPageParams) ([]sqlc.Orders, error)
	ListOrdersKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOrdersKeysetParams) ([]sqlc.Orders, error)
}

type OrderReadStore struct {
	queries OrderReadQueries
	db      sqlc.DBTX
}

func NewOrderReadStore(queries OrderReadQueries, db sqlc.DBTX) *OrderReadStore {
	return &OrderReadStore{
		queries: queries,
		db:      db,
	}
}

func (s *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	row, err := s.queries.GetOrderByID(ctx, s.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}
	return s.withItems(ctx, row)
}

func (s *OrderReadStore) FindBySession(ctx context.Context, sessionID string) (*order.Order, error) {
	row, err := s.queries.GetOrderBySession(ctx, s.db, sessionID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found for session", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by session", err)
	}
	return s.withItems(ctx, row)
}

// FindFirstPage lists newest orders first. An empty status matches all.
func (s *OrderReadStore) FindFirstPage(ctx context.Context, status string, limit int32) ([]*order.Order, error) {
	rows, err := s.queries.ListOrdersFirstPage(ctx, s.db, sqlc.ListOrdersFirstPageParams{
		Status: status,
		Lim:    limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders first page", err)
	}
	return s.attachItems(ctx, rows)
}

func (s *OrderReadStore) FindKeyset(ctx context.Context, status string, afterCreatedAt time.Time, afterID uuid.UUID, limit int32) ([]*order.Order, error) {
	rows, err := s.queries.ListOrdersKeyset(ctx, s.db, sqlc.ListOrdersKeysetParams{
		Status:         status,
		AfterCreatedAt: pgconv.TimeToPgtype(afterCreatedAt),
		AfterID:        afterID,
		Lim:            limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders with keyset", err)
	}
	return s.attachItems(ctx, rows)
}

func (s *OrderReadStore) withItems(ctx context.Context, row sqlc.Orders) (*order.Order, error) {
	itemRows, err := s.queries.GetOrderItems(ctx, s.db, row.ID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order items", err)
	}
	return orderFromRow(row, itemRows)
}

// attachItems loads items for a whole page in one query.
func (s *OrderReadStore) attachItems(ctx context.Context, rows []sqlc.Orders) ([]*order.Order, error) {
	if len(rows) == 0 {
		return []*order.Order{}, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	itemRows, err := s.queries.GetOrderItemsByOrderIDs(ctx, s.db, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order items", err)
	}

	byOrder := make(map[uuid.UUID][]sqlc.OrderItems, len(rows))
	for _, it := range itemRows {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}

	result := make([]*order.Order, 0, len(rows))
	for _, row := range rows {
		o, err := orderFromRow(row, byOrder[row.ID])
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, nil
}

func orderFromRow(row sqlc.Orders, itemRows []sqlc.OrderItems) (*order.Order, error) {
	var shipping *order.Address
	if len(row.ShippingAddress) > 0 {
		shipping = &order.Address{}
		if err := json.Unmarshal(row.ShippingAddress, shipping); err != nil {
			return nil, infra.WrapRepoErr("stored shipping address is invalid", err, infra.KindDBFailure)
		}
	}

	items := make([]order.Item, len(itemRows))
	for i, it := range itemRows {
		items[i] = order.Item{
			InventoryID:    it.InventoryID,
			Name:           it.Name,
			UnitPriceCents: it.UnitPriceCents,
			Quantity:       int(it.Quantity),
		}
	}

	return order.Reconstruct(order.ReconstructParams{
		ID:     row.ID,
		Number: row.OrderNumber,
		UserID: pgconv.UUIDPtrFromPgtype(row.UserID),
		Email:  row.Email,
		Items:  items,
		Amounts: order.Amounts{
			SubtotalCents: row.SubtotalCents,
			TaxCents:      row.TaxCents,
			ShippingCents: row.ShippingCents,
			TotalCents:    row.TotalCents,
		},
		Currency:         row.Currency,
		Status:           order.Status(row.Status),
		PaymentSessionID: row.PaymentSessionID,
		PaymentIntentID:  pgconv.StringPtrFromPgtype(row.PaymentIntentID),
		ReservationID:    pgconv.UUIDPtrFromPgtype(row.ReservationID),
		Shipping:         shipping,
		RefundedCents:    row.RefundedCents,
		PaidAt:           pgconv.TimePtrFromPgtype(row.PaidAt),
		FulfilledAt:      pgconv.TimePtrFromPgtype(row.FulfilledAt),
		CancelledAt:      pgconv.TimePtrFromPgtype(row.CancelledAt),
		RefundedAt:       pgconv.TimePtrFromPgtype(row.RefundedAt),
		CreatedAt:        pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:        pgconv.TimeFromPgtype(row.UpdatedAt),
	}), nil
}
