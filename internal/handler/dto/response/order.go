package response

import (
	"time"

	"cardshop/internal/domain/order"
	"cardshop/internal/usecase/commands"
)

type OrderItemResponse struct {
	InventoryID    string `json:"inventory_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

type OrderAmountsResponse struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	TaxCents      int64 `json:"tax_cents"`
	ShippingCents int64 `json:"shipping_cents"`
	TotalCents    int64 `json:"total_cents"`
}

type OrderResponse struct {
	ID               string               `json:"id"`
	Number           string               `json:"number"`
	UserID           *string              `json:"user_id,omitempty"`
	Email            string               `json:"email"`
	Status           string               `json:"status"`
	Currency         string               `json:"currency"`
	Items            []*OrderItemResponse `json:"items"`
	Amounts          OrderAmountsResponse `json:"amounts"`
	RefundedCents    int64                `json:"refunded_cents"`
	PaymentSessionID string               `json:"payment_session_id"`
	ShippingAddress  *order.Address       `json:"shipping_address,omitempty"`
	PaidAt           *int64               `json:"paid_at,omitempty"`
	FulfilledAt      *int64               `json:"fulfilled_at,omitempty"`
	CancelledAt      *int64               `json:"cancelled_at,omitempty"`
	RefundedAt       *int64               `json:"refunded_at,omitempty"`
	CreatedAt        int64                `json:"created_at"`
}

func FromOrder(o *order.Order) *OrderResponse {
	items := make([]*OrderItemResponse, len(o.Items()))
	for i, it := range o.Items() {
		items[i] = &OrderItemResponse{
			InventoryID:    it.InventoryID.String(),
			Name:           it.Name,
			UnitPriceCents: it.UnitPriceCents,
			Quantity:       it.Quantity,
		}
	}
	var userID *string
	if id := o.UserID(); id != nil {
		s := id.String()
		userID = &s
	}
	amounts := o.Amounts()
	return &OrderResponse{
		ID:       o.ID().String(),
		Number:   o.FormattedNumber(),
		UserID:   userID,
		Email:    o.Email(),
		Status:   o.Status().String(),
		Currency: o.Currency(),
		Items:    items,
		Amounts: OrderAmountsResponse{
			SubtotalCents: amounts.SubtotalCents,
			TaxCents:      amounts.TaxCents,
			ShippingCents: amounts.ShippingCents,
			TotalCents:    amounts.TotalCents,
		},
		RefundedCents:    o.RefundedCents(),
		PaymentSessionID: o.PaymentSessionID(),
		ShippingAddress:  o.Shipping(),
		PaidAt:           unixPtr(o.PaidAt()),
		FulfilledAt:      unixPtr(o.FulfilledAt()),
		CancelledAt:      unixPtr(o.CancelledAt()),
		RefundedAt:       unixPtr(o.RefundedAt()),
		CreatedAt:        o.CreatedAt().Unix(),
	}
}

func FromOrderList(orders []*order.Order) []*OrderResponse {
	res := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		res[i] = FromOrder(o)
	}
	return res
}

type RefundResponse struct {
	Order         *OrderResponse `json:"order"`
	Full          bool           `json:"full"`
	AmountCents   int64          `json:"amount_cents"`
	RestoredStock bool           `json:"restored_stock"`
}

func FromRefundOutcome(r *commands.RefundOutcome) *RefundResponse {
	return &RefundResponse{
		Order:         FromOrder(r.Order),
		Full:          r.Full,
		AmountCents:   r.AmountCents,
		RestoredStock: r.RestoredStock,
	}
}

func unixPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	v := t.Unix()
	return &v
}
