package reservation

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrInvalidHolder = errors.New("invalid reservation holder")

// Holder identifies who owns a hold: a signed-in user or a guest cart.
type Holder struct {
	Type HolderType
	Key  string
}

func NewUserHolder(userID uuid.UUID) Holder {
	return Holder{Type: HolderUser, Key: userID.String()}
}

func NewGuestHolder(cartID uuid.UUID) Holder {
	return Holder{Type: HolderGuest, Key: cartID.String()}
}

func ParseHolder(holderType, key string) (Holder, error) {
	h := Holder{Type: HolderType(holderType), Key: key}
	if err := h.Validate(); err != nil {
		return Holder{}, err
	}
	return h, nil
}

func (h Holder) Validate() error {
	if !h.Type.IsValid() {
		return fmt.Errorf("%w: type %q", ErrInvalidHolder, h.Type)
	}
	if _, err := uuid.Parse(h.Key); err != nil {
		return fmt.Errorf("%w: key %q", ErrInvalidHolder, h.Key)
	}
	return nil
}

// UserID returns the user id for user holders.
func (h Holder) UserID() (uuid.UUID, bool) {
	if h.Type != HolderUser {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(h.Key)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (h Holder) String() string {
	return string(h.Type) + ":" + h.Key
}
