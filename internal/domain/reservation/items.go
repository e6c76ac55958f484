package reservation

import (
	"errors"
	"slices"

	"github.com/google/uuid"
)

var (
	ErrEmptyItems      = errors.New("reservation must hold at least one item")
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")
	ErrInvalidItem     = errors.New("item must reference an inventory record")
	ErrTooManyItems    = errors.New("too many distinct items")
)

type Item struct {
	InventoryID uuid.UUID
	Quantity    int
}

type Items []Item

// NewItems validates a requested item list and folds repeated inventory
// ids into one line. Order of first appearance is kept.
func NewItems(raw []Item, maxDistinct int) (Items, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyItems
	}

	index := make(map[uuid.UUID]int, len(raw))
	items := make(Items, 0, len(raw))
	for _, it := range raw {
		if it.InventoryID == uuid.Nil {
			return nil, ErrInvalidItem
		}
		if it.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if i, ok := index[it.InventoryID]; ok {
			items[i].Quantity += it.Quantity
			continue
		}
		index[it.InventoryID] = len(items)
		items = append(items, it)
	}

	if maxDistinct > 0 && len(items) > maxDistinct {
		return nil, ErrTooManyItems
	}
	return items, nil
}

func (items Items) InventoryIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.InventoryID)
	}
	return ids
}

func (items Items) Quantities() map[uuid.UUID]int {
	q := make(map[uuid.UUID]int, len(items))
	for _, it := range items {
		q[it.InventoryID] += it.Quantity
	}
	return q
}

func (items Items) Contains(id uuid.UUID) bool {
	return slices.ContainsFunc(items, func(it Item) bool { return it.InventoryID == id })
}
