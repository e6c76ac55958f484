package order

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// minorUnitExponent is the number of decimal places in the store currency.
const minorUnitExponent = 2

type Amounts struct {
	SubtotalCents int64
	TaxCents      int64
	ShippingCents int64
	TotalCents    int64
}

func (a Amounts) Validate() error {
	if a.SubtotalCents < 0 || a.TaxCents < 0 || a.ShippingCents < 0 || a.TotalCents < 0 {
		return fmt.Errorf("%w: negative amount", ErrInvalidAmount)
	}
	return nil
}

// ParseAmount converts a decimal major-unit string such as "12.50" into
// minor units. More fractional digits than the currency has are rejected
// rather than rounded.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("%w: must be positive", ErrInvalidAmount)
	}
	minor := d.Shift(minorUnitExponent)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("%w: too many decimal places in %q", ErrInvalidAmount, s)
	}
	if minor.GreaterThan(decimal.NewFromInt(1 << 53)) {
		return 0, fmt.Errorf("%w: out of range", ErrInvalidAmount)
	}
	return minor.IntPart(), nil
}

func FormatAmount(cents int64) string {
	return decimal.New(cents, -minorUnitExponent).StringFixed(minorUnitExponent)
}
