package repository

import (
	"context"

	"cardshop/internal/domain/order"
	"cardshop/internal/infra"
	"cardshop/internal/infra/repository/converter"
	sqlc "cardshop/internal/infra/sqlc/generated"
)

type OrderWriteQueries interface {
	CreateOrder(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderParams) error
	CreateOrderItem(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderItemParams) error
	UpdateOrderStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateOrderStatusParams) (int64, error)
}

type OrderRepository struct {
	queries OrderWriteQueries
}

func NewOrderRepository(queries OrderWriteQueries) *OrderRepository {
	return &OrderRepository{queries: queries}
}

func (r *OrderRepository) Create(ctx context.Context, tx sqlc.DBTX, o *order.Order) error {
	params, err := converter.OrderToInfra(o)
	if err != nil {
		return infra.WrapRepoErr("failed to encode order", err, infra.KindDBFailure)
	}
	if err := r.queries.CreateOrder(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}
	for _, item := range converter.OrderItemsToInfra(o) {
		if err := r.queries.CreateOrderItem(ctx, tx, item); err != nil {
			return infra.WrapRepoErr("failed to create order item", err)
		}
	}
	return nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, tx sqlc.DBTX, o *order.Order, expectedStatus order.Status, expectedRefundedCents int64) (bool, error) {
	n, err := r.queries.UpdateOrderStatus(ctx, tx, converter.OrderStatusToInfra(o, expectedStatus, expectedRefundedCents))
	if err != nil {
		return false, infra.WrapRepoErr("failed to update order status", err)
	}
	return n > 0, nil
}
