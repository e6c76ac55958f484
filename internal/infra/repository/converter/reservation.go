package converter

import (
	"cardshop/internal/domain/reservation"
	sqlc "cardshop/internal/infra/sqlc/generated"
	"cardshop/internal/pkg/pgconv"
)

func ReservationToInfra(res *reservation.Reservation) sqlc.CreateReservationParams {
	holder := res.Holder()
	return sqlc.CreateReservationParams{
		ID:         res.ID(),
		HolderType: string(holder.Type),
		HolderKey:  holder.Key,
		Status:     res.Status().String(),
		ExpiresAt:  pgconv.TimeToPgtype(res.ExpiresAt()),
		PurgeAfter: pgconv.TimeToPgtype(res.PurgeAfter()),
		CreatedAt:  pgconv.TimeToPgtype(res.CreatedAt()),
		UpdatedAt:  pgconv.TimeToPgtype(res.UpdatedAt()),
	}
}

func ReservationItemsToInfra(res *reservation.Reservation) []sqlc.CreateReservationItemParams {
	items := res.Items()
	params := make([]sqlc.CreateReservationItemParams, 0, len(items))
	for _, it := range items {
		params = append(params, sqlc.CreateReservationItemParams{
			ReservationID: res.ID(),
			InventoryID:   it.InventoryID,
			Quantity:      pgconv.IntToInt32(it.Quantity),
		})
	}
	return params
}
