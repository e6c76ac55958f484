package request

import "strings"

type RefundRequest struct {
	// Amount in major units, e.g. "12.50". Omitted means a full refund.
	Amount *string `json:"amount" binding:"omitempty,max=32"`
}

func (r RefundRequest) GetAmount() *string {
	if r.Amount == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.Amount)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
