//go:build unit || e2e

package builder

import (
	"cardshop/internal/domain/inventory"
	sqlc "cardshop/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type InventoryBuilder struct {
	ID         uuid.UUID
	Kind       inventory.Kind
	Name       string
	PriceCents int64
	Stock      int
	Status     inventory.Status
	IsActive   bool
}

func NewInventoryBuilder() *InventoryBuilder {
	return &InventoryBuilder{
		ID:         uuid.New(),
		Kind:       inventory.Bulk{},
		Name:       "Lightning Bolt",
		PriceCents: 150,
		Stock:      5,
		Status:     inventory.StatusActive,
		IsActive:   true,
	}
}

func NewSingleBuilder() *InventoryBuilder {
	return NewInventoryBuilder().With(func(b *InventoryBuilder) {
		b.Kind = inventory.Single{}
		b.Name = "Black Lotus (Alpha)"
		b.PriceCents = 2500000
		b.Stock = 1
	})
}

func (b *InventoryBuilder) With(mutate func(*InventoryBuilder)) *InventoryBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *InventoryBuilder) BuildDomain() *inventory.Record {
	return inventory.Reconstruct(b.ID, b.Kind, b.Name, b.PriceCents, b.Stock, b.Status, b.IsActive)
}

func (b *InventoryBuilder) BuildInfra() sqlc.InventoryRecords {
	return sqlc.InventoryRecords{
		ID:         b.ID,
		Kind:       b.Kind.String(),
		Name:       b.Name,
		PriceCents: b.PriceCents,
		Stock:      int32(b.Stock),
		Status:     string(b.Status),
		IsActive:   b.IsActive,
	}
}
