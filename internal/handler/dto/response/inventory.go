package response

import "cardshop/internal/usecase/queries"

type AvailabilityResponse struct {
	InventoryID string `json:"inventory_id"`
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	PriceCents  int64  `json:"price_cents"`
	Listed      bool   `json:"listed"`
	Available   int    `json:"available"`
	Held        bool   `json:"held"`
}

func FromAvailabilityList(views []*queries.AvailabilityView) []*AvailabilityResponse {
	res := make([]*AvailabilityResponse, len(views))
	for i, v := range views {
		res[i] = &AvailabilityResponse{
			InventoryID: v.InventoryID.String(),
			Kind:        v.Kind,
			Name:        v.Name,
			PriceCents:  v.PriceCents,
			Listed:      v.Listed,
			Available:   v.Available,
			Held:        v.Held,
		}
	}
	return res
}
