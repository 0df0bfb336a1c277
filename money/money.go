// Package money holds the validation rules shared by every operation that
// accepts a monetary value. Amounts are fixed-point decimals with at most
// two fractional digits.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount signals a malformed, non-positive, or over-precision value.
var ErrInvalidAmount = errors.New("invalid amount")

const maxScale = 2

// ValidateAmount checks a transfer amount: strictly positive, at most two
// fractional digits.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive: %w", ErrInvalidAmount)
	}
	return validateScale(amount)
}

// ValidateBalance checks a balance value: non-negative, at most two
// fractional digits.
func ValidateBalance(balance decimal.Decimal) error {
	if balance.IsNegative() {
		return fmt.Errorf("balance cannot be negative: %w", ErrInvalidAmount)
	}
	return validateScale(balance)
}

func validateScale(v decimal.Decimal) error {
	if v.Exponent() < -maxScale {
		return fmt.Errorf("at most %d decimal places allowed: %w", maxScale, ErrInvalidAmount)
	}
	return nil
}
