package response

import (
	"cardshop/internal/domain/reservation"
	"cardshop/internal/usecase/commands"
)

type CheckoutResponse struct {
	ReservationID string `json:"reservation_id"`
	SessionID     string `json:"session_id"`
	RedirectURL   string `json:"redirect_url"`
	ExpiresAt     int64  `json:"expires_at"`
}

func FromCheckoutResult(r *commands.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		ReservationID: r.ReservationID.String(),
		SessionID:     r.SessionID,
		RedirectURL:   r.RedirectURL,
		ExpiresAt:     r.ExpiresAt.Unix(),
	}
}

type ReservationItemResponse struct {
	InventoryID string `json:"inventory_id"`
	Quantity    int    `json:"quantity"`
}

type ReservationResponse struct {
	ID               string                     `json:"id"`
	Status           string                     `json:"status"`
	Items            []*ReservationItemResponse `json:"items"`
	ExpiresAt        int64                      `json:"expires_at"`
	PaymentSessionID *string                    `json:"payment_session_id,omitempty"`
	CreatedAt        int64                      `json:"created_at"`
}

func FromReservation(r *reservation.Reservation) *ReservationResponse {
	items := make([]*ReservationItemResponse, len(r.Items()))
	for i, it := range r.Items() {
		items[i] = &ReservationItemResponse{
			InventoryID: it.InventoryID.String(),
			Quantity:    it.Quantity,
		}
	}
	return &ReservationResponse{
		ID:               r.ID().String(),
		Status:           r.Status().String(),
		Items:            items,
		ExpiresAt:        r.ExpiresAt().Unix(),
		PaymentSessionID: r.PaymentSessionID(),
		CreatedAt:        r.CreatedAt().Unix(),
	}
}
