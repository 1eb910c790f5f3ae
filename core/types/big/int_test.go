package big

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntJSONQuoted(t *testing.T) {
	data, err := json.Marshal(NewInt(123))
	require.NoError(t, err)
	assert.Equal(t, `"123"`, string(data))

	var z Int
	require.NoError(t, json.Unmarshal([]byte(`"340282366920938463463374607431768211456"`), &z))
	expected, _ := new(big.Int).SetString("340282366920938463463374607431768211456", 10)
	assert.Equal(t, 0, z.Int.Cmp(expected))

	require.NoError(t, json.Unmarshal([]byte(`42`), &z))
	assert.Equal(t, "42", z.String())
}

func TestIntValidate(t *testing.T) {
	assert.NoError(t, NewInt(0).Validate())
	assert.ErrorIs(t, NewInt(-1).Validate(), ErrNegative)

	assert.NoError(t, NewInt(1).ValidatePositive())
	assert.ErrorIs(t, NewInt(0).ValidatePositive(), ErrNotPositive)
	assert.ErrorIs(t, NewInt(-5).ValidatePositive(), ErrNotPositive)

	var nilInt *Int
	assert.ErrorIs(t, nilInt.ValidatePositive(), ErrNotPositive)
}

func TestFromBigCopies(t *testing.T) {
	src := big.NewInt(10)
	z := FromBig(src)
	src.SetInt64(11)
	assert.Equal(t, "10", z.String())

	out := z.Big()
	out.SetInt64(12)
	assert.Equal(t, "10", z.String())

	assert.Nil(t, FromBig(nil))
}

func TestParseUnits(t *testing.T) {
	for _, tc := range []struct {
		in       string
		decimals uint8
		expected string
	}{
		{"1", 18, "1000000000000000000"},
		{"1.5", 18, "1500000000000000000"},
		{"0.000000000000000001", 18, "1"},
		{".25", 2, "25"},
		{"12.", 2, "1200"},
		{"7.10", 1, "71"},
		{"-3.5", 1, "-35"},
		{"42", 0, "42"},
	} {
		z, err := ParseUnits(tc.in, tc.decimals)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.expected, z.String(), tc.in)
	}
}

func TestParseUnitsRejects(t *testing.T) {
	_, err := ParseUnits("1.123", 2)
	assert.ErrorIs(t, err, ErrPrecisionLoss)

	for _, in := range []string{"", ".", "1e18", "0x10", "1.2.3", "abc"} {
		_, err = ParseUnits(in, 18)
		assert.ErrorIs(t, err, ErrMalformedDecimal, in)
	}

	_, err = ParseUnits("1", MaxDecimals+1)
	assert.Error(t, err)
}

func TestFormatUnits(t *testing.T) {
	z, _ := new(Int).SetString("1500000000000000000", 10)
	assert.Equal(t, "1.5", z.FormatUnits(18))
	assert.Equal(t, "0.000000000000000001", NewInt(1).FormatUnits(18))
	assert.Equal(t, "-3.5", NewInt(-35).FormatUnits(1))
	assert.Equal(t, "100", NewInt(100).FormatUnits(0))
	assert.Equal(t, "2", NewInt(200).FormatUnits(2))

	var nilInt *Int
	assert.Equal(t, "0", nilInt.FormatUnits(18))
}
