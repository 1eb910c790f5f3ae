package big

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// MaxDecimals bounds the decimals argument of ParseUnits and FormatUnits.
const MaxDecimals = 77

var (
	ErrMalformedDecimal = errors.New("malformed decimal number")
	ErrPrecisionLoss    = errors.New("fraction exceeds token decimals")
)

// ParseUnits converts a decimal string such as "12.5" into the smallest
// denomination of a token with the given number of decimals.
// Digits beyond the token precision are rejected, never rounded.
func ParseUnits(s string, decimals uint8) (*Int, error) {
	if decimals > MaxDecimals {
		return nil, fmt.Errorf("decimals %d out of range", decimals)
	}

	s = strings.TrimSpace(s)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return nil, fmt.Errorf("%w: %q", ErrMalformedDecimal, s)
	}
	if !isDigits(whole) || !isDigits(frac) {
		return nil, fmt.Errorf("%w: %q", ErrMalformedDecimal, s)
	}

	trimmed := strings.TrimRight(frac, "0")
	if len(trimmed) > int(decimals) {
		return nil, fmt.Errorf("%w: %q has more than %d decimals", ErrPrecisionLoss, s, decimals)
	}

	digits := whole + trimmed + strings.Repeat("0", int(decimals)-len(trimmed))
	if digits == "" {
		digits = "0"
	}

	z, ok := new(Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMalformedDecimal, s)
	}
	if negative {
		z.Int.Neg(&z.Int)
	}

	return z, nil
}

// FormatUnits renders z, held in the smallest denomination, as a decimal
// string with trailing fractional zeros removed.
func (z *Int) FormatUnits(decimals uint8) string {
	if z == nil {
		return "0"
	}
	if decimals == 0 {
		return z.String()
	}

	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	abs := new(big.Int).Abs(&z.Int)
	quo, rem := new(big.Int).QuoRem(abs, unit, new(big.Int))

	sign := ""
	if z.Int.Sign() < 0 {
		sign = "-"
	}

	if rem.Sign() == 0 {
		return sign + quo.String()
	}

	frac := rem.String()
	frac = strings.Repeat("0", int(decimals)-len(frac)) + frac
	return sign + quo.String() + "." + strings.TrimRight(frac, "0")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
