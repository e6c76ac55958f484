package converter

import (
	"encoding/json"

	"cardshop/internal/domain/order"
	sqlc "cardshop/internal/infra/sqlc/generated"
	"cardshop/internal/pkg/pgconv"
)

func OrderToInfra(o *order.Order) (sqlc.CreateOrderParams, error) {
	var shipping []byte
	if addr := o.Shipping(); addr != nil {
		raw, err := json.Marshal(addr)
		if err != nil {
			return sqlc.CreateOrderParams{}, err
		}
		shipping = raw
	}

	amounts := o.Amounts()
	return sqlc.CreateOrderParams{
		ID:               o.ID(),
		OrderNumber:      o.Number(),
		UserID:           pgconv.UUIDPtrToPgtype(o.UserID()),
		Email:            o.Email(),
		Currency:         o.Currency(),
		Status:           o.Status().String(),
		SubtotalCents:    amounts.SubtotalCents,
		TaxCents:         amounts.TaxCents,
		ShippingCents:    amounts.ShippingCents,
		TotalCents:       amounts.TotalCents,
		PaymentSessionID: o.PaymentSessionID(),
		PaymentIntentID:  pgconv.StringPtrToPgtype(o.PaymentIntentID()),
		ReservationID:    pgconv.UUIDPtrToPgtype(o.ReservationID()),
		ShippingAddress:  shipping,
		PaidAt:           pgconv.TimePtrToPgtype(o.PaidAt()),
		CreatedAt:        pgconv.TimeToPgtype(o.CreatedAt()),
		UpdatedAt:        pgconv.TimeToPgtype(o.UpdatedAt()),
	}, nil
}

func OrderItemsToInfra(o *order.Order) []sqlc.CreateOrderItemParams {
	items := o.Items()
	params := make([]sqlc.CreateOrderItemParams, 0, len(items))
	for i, it := range items {
		params = append(params, sqlc.CreateOrderItemParams{
			OrderID:        o.ID(),
			Position:       pgconv.IntToInt32(i),
			InventoryID:    it.InventoryID,
			Name:           it.Name,
			UnitPriceCents: it.UnitPriceCents,
			Quantity:       pgconv.IntToInt32(it.Quantity),
		})
	}
	return params
}

func OrderStatusToInfra(o *order.Order, expected order.Status, expectedRefundedCents int64) sqlc.UpdateOrderStatusParams {
	return sqlc.UpdateOrderStatusParams{
		Status:                o.Status().String(),
		RefundedCents:         o.RefundedCents(),
		PaidAt:                pgconv.TimePtrToPgtype(o.PaidAt()),
		FulfilledAt:           pgconv.TimePtrToPgtype(o.FulfilledAt()),
		CancelledAt:           pgconv.TimePtrToPgtype(o.CancelledAt()),
		RefundedAt:            pgconv.TimePtrToPgtype(o.RefundedAt()),
		UpdatedAt:             pgconv.TimeToPgtype(o.UpdatedAt()),
		ID:                    o.ID(),
		ExpectedStatus:        expected.String(),
		ExpectedRefundedCents: expectedRefundedCents,
	}
}
