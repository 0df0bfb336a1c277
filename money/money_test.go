package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestValidateAmount(t *testing.T) {
	valid := []string{"0.01", "1", "100.50", "99999999.99"}
	for _, s := range valid {
		require.NoError(t, ValidateAmount(decimal.RequireFromString(s)), s)
	}

	invalid := []string{"0", "-100", "-0.01", "10.001", "0.005"}
	for _, s := range invalid {
		err := ValidateAmount(decimal.RequireFromString(s))
		require.ErrorIs(t, err, ErrInvalidAmount, s)
	}
}

func TestValidateBalance(t *testing.T) {
	// zero is a valid balance but not a valid amount
	require.NoError(t, ValidateBalance(decimal.Zero))
	require.NoError(t, ValidateBalance(decimal.RequireFromString("1000.00")))

	require.ErrorIs(t, ValidateBalance(decimal.RequireFromString("-1")), ErrInvalidAmount)
	require.ErrorIs(t, ValidateBalance(decimal.RequireFromString("0.001")), ErrInvalidAmount)
}
