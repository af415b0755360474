// SPDX-License-Identifier: Apache-2.0

package transformer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var errInvalidAmount = errors.New("invalid amount")

// minor currency units per major unit (cents per rand)
const minorUnitExponent = -2

// MinorToMajor converts an amount expressed in minor currency units into
// major units. An empty amount converts to zero.
func MinorToMajor(amount string) (decimal.Decimal, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q: %w", errInvalidAmount, amount, err)
	}
	return d.Shift(minorUnitExponent), nil
}
