package inventory

import (
	"errors"
	"fmt"
)

var ErrInvalidKind = errors.New("invalid inventory kind")

// Kind is closed over Single and Bulk. Branch on it with MatchKind so that
// both cases are always handled.
type Kind interface {
	fmt.Stringer
	isKind()
}

// Single is a one-of-a-kind card: one unit, sold on first purchase.
type Single struct{}

// Bulk is a stocked card counted by Stock.
type Bulk struct{}

func (Single) String() string { return "single" }
func (Bulk) String() string   { return "bulk" }

func (Single) isKind() {}
func (Bulk) isKind()   {}

func ParseKind(s string) (Kind, error) {
	switch s {
	case "single":
		return Single{}, nil
	case "bulk":
		return Bulk{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

func MatchKind[T any](k Kind, single func(Single) T, bulk func(Bulk) T) T {
	switch v := k.(type) {
	case Single:
		return single(v)
	case Bulk:
		return bulk(v)
	default:
		panic(fmt.Sprintf("inventory: unhandled kind %T", k))
	}
}

type Status string

const (
	StatusActive   Status = "active"
	StatusSold     Status = "sold"
	StatusInactive Status = "inactive"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusSold, StatusInactive:
		return true
	default:
		return false
	}
}
