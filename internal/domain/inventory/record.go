package inventory

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrOutOfStock        = errors.New("out of stock")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAlreadyReserved   = errors.New("already reserved")
	ErrUnavailable       = errors.New("item unavailable")
)

type Record struct {
	id         uuid.UUID
	kind       Kind
	name       string
	priceCents int64
	stock      int
	status     Status
	isActive   bool
}

func Reconstruct(id uuid.UUID, kind Kind, name string, priceCents int64, stock int, status Status, isActive bool) *Record {
	return &Record{
		id:         id,
		kind:       kind,
		name:       name,
		priceCents: priceCents,
		stock:      stock,
		status:     status,
		isActive:   isActive,
	}
}

func (r *Record) ID() uuid.UUID     { return r.id }
func (r *Record) Kind() Kind        { return r.kind }
func (r *Record) Name() string      { return r.name }
func (r *Record) PriceCents() int64 { return r.priceCents }
func (r *Record) Stock() int        { return r.stock }
func (r *Record) Status() Status    { return r.status }
func (r *Record) IsActive() bool    { return r.isActive }

// Listed reports whether the catalog offers the record for sale at all,
// independent of holds.
func (r *Record) Listed() bool {
	return r.isActive && r.status == StatusActive
}

// Availability is the stock a new hold can still claim once other active
// holds are subtracted.
type Availability struct {
	InventoryID uuid.UUID
	Kind        Kind
	Available   int
	Held        bool
}

func (r *Record) Availability(reserved int) Availability {
	a := Availability{InventoryID: r.id, Kind: r.kind, Held: reserved > 0}
	if !r.Listed() {
		return a
	}
	a.Available = MatchKind(r.kind,
		func(Single) int {
			if reserved > 0 || r.stock <= 0 {
				return 0
			}
			return 1
		},
		func(Bulk) int {
			return max(r.stock-reserved, 0)
		},
	)
	return a
}

// CheckHold validates a request for quantity units against the stock left
// after reserved units held by other buyers.
func (r *Record) CheckHold(quantity, reserved int) error {
	if !r.Listed() {
		return ErrUnavailable
	}
	return MatchKind(r.kind,
		func(Single) error {
			if reserved > 0 {
				return ErrAlreadyReserved
			}
			if r.stock <= 0 {
				return ErrUnavailable
			}
			if quantity > 1 {
				return ErrInsufficientStock
			}
			return nil
		},
		func(Bulk) error {
			available := r.stock - reserved
			if available <= 0 {
				return ErrOutOfStock
			}
			if quantity > available {
				return ErrInsufficientStock
			}
			return nil
		},
	)
}

// Purchased returns the record as it must look after quantity units were
// sold. The store applies the same rule atomically; this is the reference.
func (r *Record) Purchased(quantity int) *Record {
	next := *r
	MatchKind(r.kind,
		func(Single) struct{} {
			next.stock = 0
			next.status = StatusSold
			next.isActive = false
			return struct{}{}
		},
		func(Bulk) struct{} {
			next.stock = max(r.stock-quantity, 0)
			if next.stock == 0 {
				next.status = StatusSold
			}
			return struct{}{}
		},
	)
	return &next
}

// Restored returns the record after quantity units came back from a
// cancelled or refunded order.
func (r *Record) Restored(quantity int) *Record {
	next := *r
	next.status = StatusActive
	next.isActive = true
	MatchKind(r.kind,
		func(Single) struct{} {
			next.stock = 1
			return struct{}{}
		},
		func(Bulk) struct{} {
			next.stock = r.stock + quantity
			return struct{}{}
		},
	)
	return &next
}
