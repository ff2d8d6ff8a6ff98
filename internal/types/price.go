// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Price is an amount in major units of Currency.
type Price struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// ParsePrice reads a decimal amount such as "499.00".
func ParsePrice(amount, currency string) (Price, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Price{}, fmt.Errorf("invalid price %q: %w", amount, err)
	}
	if d.IsNegative() {
		return Price{}, fmt.Errorf("invalid price %q: negative amount", amount)
	}
	return Price{Amount: d, Currency: currency}, nil
}

// MinorUnits converts the amount to the smallest currency unit, 499.00 is 49900.
func (p Price) MinorUnits() int64 {
	return p.Amount.Shift(2).Round(0).IntPart()
}

func (p Price) String() string {
	return p.Amount.StringFixed(2) + " " + p.Currency
}
