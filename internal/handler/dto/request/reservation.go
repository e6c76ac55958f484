package request

import (
	"strings"

	"cardshop/internal/domain/reservation"
	"cardshop/internal/usecase/commands"

	"github.com/google/uuid"
)

type CartItem struct {
	InventoryID uuid.UUID `json:"inventory_id" binding:"required"`
	Quantity    int       `json:"quantity" binding:"required,min=1"`
}

type CheckoutRequest struct {
	Items []CartItem `json:"items" binding:"required,min=1,dive"`
	Email string     `json:"email" binding:"omitempty,email,max=254"`
}

func (r CheckoutRequest) ToCommand() commands.CheckoutRequest {
	items := make([]reservation.Item, len(r.Items))
	for i, it := range r.Items {
		items[i] = reservation.Item{InventoryID: it.InventoryID, Quantity: it.Quantity}
	}
	return commands.CheckoutRequest{
		Items:         items,
		CustomerEmail: strings.TrimSpace(r.Email),
	}
}
