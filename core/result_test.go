package core

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult(t *testing.T) {
	ok := Success("0x3bb28ea157d178da4f4b1e194f5b9a9a6c8397a0")
	require.True(t, ok.Ok())
	require.NoError(t, ok.Err())
	require.Equal(t, "0x3bb28ea157d178da4f4b1e194f5b9a9a6c8397a0", ok.OrAbsent())

	zero := Success("")
	require.True(t, zero.Ok())

	failed := Failure[string](errors.New("header not found"))
	require.False(t, failed.Ok())
	require.Empty(t, failed.OrAbsent())
	v, err := failed.Unwrap()
	require.Error(t, err)
	require.Empty(t, v)

	require.Nil(t, Failure[[]string](errors.New("timeout")).OrAbsent())
}

func TestBoundaryPolicies(t *testing.T) {
	tx := types.NewTx(&types.LegacyTx{})
	validation := &ValidationError{Op: "addAddressToWhitelist", Address: "0x01", Err: ErrInvalidAddress}
	rejected := &TransactionError{Op: "addAddressToWhitelist", Address: "0x01", TxHash: tx.Hash(), Err: ErrReverted}

	testCases := []struct {
		name       string
		res        Result[*types.Transaction]
		raiseOk    bool
		raiseErr   error
		swallowOk  bool
		swallowErr error
	}{
		{
			name:      "success",
			res:       Success(tx),
			raiseOk:   true,
			swallowOk: true,
		},
		{
			name:       "validation failure",
			res:        Failure[*types.Transaction](validation),
			raiseErr:   validation,
			swallowErr: validation,
		},
		{
			name:     "transaction failure",
			res:      Failure[*types.Transaction](rejected),
			raiseErr: rejected,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := raise(tc.res)
			assert.Equal(t, tc.raiseOk, ok)
			assert.Equal(t, tc.raiseErr, err)

			ok, err = swallow(tc.res)
			assert.Equal(t, tc.swallowOk, ok)
			assert.Equal(t, tc.swallowErr, err)
		})
	}
}

func TestErrorMessages(t *testing.T) {
	err := &TransactionError{Op: "depositCollateral", Address: "0x3bb2", Err: ErrReverted}
	require.EqualError(t, err, "depositCollateral: transaction to 0x3bb2: transaction reverted")

	hash := common.HexToHash("0x01")
	err.TxHash = hash
	require.EqualError(t, err, "depositCollateral: transaction "+hash.Hex()+" to 0x3bb2: transaction reverted")
	require.ErrorIs(t, err, ErrReverted)

	require.EqualError(t,
		&ValidationError{Op: "settleAndClose", Address: "pool", Err: ErrInvalidAddress},
		"settleAndClose: validating pool: invalid address")
	require.EqualError(t,
		&QueryError{Op: "getAddressWhitelist", Address: "0x4bc6", Err: errors.New("timeout")},
		"getAddressWhitelist: querying 0x4bc6: timeout")
}
