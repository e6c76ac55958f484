package queries

import "cardshop/internal/pkg/errs"

var (
	ErrInvalidCursor       = errs.New("invalid cursor")
	ErrOrderNotFound       = errs.New("order not found")
	ErrNoActiveReservation = errs.New("no active reservation")
	ErrInvalidStatus       = errs.New("invalid status filter")
)
