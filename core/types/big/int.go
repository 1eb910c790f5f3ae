package big

import (
	"errors"
	"math/big"
)

var (
	ErrNegative    = errors.New("negative number")
	ErrNotPositive = errors.New("number is not greater than zero")
)

// Int steams math/big/Int with custom Marshall Unmarshall methods,
// which in the byte representation add quotes at the beginning and end of the number.
// Example 123 -> "123".
// Token amounts are kept in the smallest denomination, so the value is always integral.
type Int struct {
	big.Int
}

// NewInt allocates and returns a new Int set to x.
func NewInt(x int64) *Int {
	return new(Int).SetInt64(x)
}

// FromBig allocates a new Int holding a copy of x. A nil x yields nil.
func FromBig(x *big.Int) *Int {
	if x == nil {
		return nil
	}

	z := new(Int)
	z.Int.Set(x)
	return z
}

// Big returns a copy of z as *math/big.Int, the type contract bindings work with.
func (z *Int) Big() *big.Int {
	if z == nil {
		return nil
	}

	return new(big.Int).Set(&z.Int)
}

// Validate checks if the Int value is negative and returns an error if it is.
func (z *Int) Validate() error {
	if z.Int.Sign() < 0 {
		return ErrNegative
	}

	return nil
}

// ValidatePositive fails unless z is strictly greater than zero.
// A nil receiver is not positive.
func (z *Int) ValidatePositive() error {
	if z == nil || z.Int.Sign() <= 0 {
		return ErrNotPositive
	}

	return nil
}

// SetInt64 sets z to x and returns z.
func (z *Int) SetInt64(x int64) *Int {
	z.Int.SetInt64(x)
	return z
}

// SetUint64 sets z to x and returns z.
func (z *Int) SetUint64(x uint64) *Int {
	z.Int.SetUint64(x)
	return z
}

// Set sets z to x and returns z.
func (z *Int) Set(x *Int) *Int {
	z.Int.Set(arg(x))
	return z
}

// Add sets z to the sum x+y and returns z.
func (z *Int) Add(x, y *Int) *Int {
	z.Int.Add(arg(x), arg(y))
	return z
}

// Sub sets z to the difference x-y and returns z.
func (z *Int) Sub(x, y *Int) *Int {
	z.Int.Sub(arg(x), arg(y))
	return z
}

// Cmp compares x and y and returns:
//
//	-1 if x <  y
//	 0 if x == y
//	+1 if x >  y
func (z *Int) Cmp(y *Int) (r int) {
	return z.Int.Cmp(arg(y))
}

// SetString sets z to the value of s, interpreted in the given base,
// and returns z and a boolean indicating success. The entire string
// (not just a prefix) must be valid for success. If SetString fails,
// the value of z is undefined but the returned value is nil.
func (z *Int) SetString(s string, base int) (*Int, bool) {
	if _, ok := z.Int.SetString(s, base); !ok {
		return nil, false
	}
	return z, true
}

// MarshalJSON implements the json.Marshaler interface.
func (z *Int) MarshalJSON() ([]byte, error) {
	out, err := z.MarshalText()
	if err != nil {
		return out, err
	}
	return []byte("\"" + string(out) + "\""), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (z *Int) UnmarshalJSON(text []byte) error {
	// Ignore null, like in the main JSON package.
	text = unquoteIfQuoted(text)
	if string(text) == "null" {
		return nil
	}
	return z.UnmarshalText(text)
}

func unquoteIfQuoted(bytes []byte) []byte {
	if len(bytes) > 2 && bytes[0] == '"' && bytes[len(bytes)-1] == '"' {
		return bytes[1 : len(bytes)-1]
	}
	return bytes
}

func arg(x *Int) *big.Int {
	if x == nil {
		return nil
	}

	return &x.Int
}
