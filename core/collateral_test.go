package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/anoideaopen/market/core"
	"github.com/anoideaopen/market/core/contracts"
	"github.com/anoideaopen/market/core/types/big"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepositAndWithdrawCollateral(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	g := core.New(f.chain)

	ok, err := g.DepositCollateral(ctx, collateralPoolAddress, big.NewInt(500), params(f.trader))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = g.WithdrawCollateral(ctx, collateralPoolAddress, big.NewInt(200), params(f.trader))
	require.NoError(t, err)
	require.True(t, ok)

	balance, err := g.UserAccountBalance(ctx, collateralPoolAddress, hexOf(f.trader)).Unwrap()
	require.NoError(t, err)
	require.Equal(t, int64(300), balance.Int64())
	require.Equal(t, int64(300), f.pool.Balance(f.trader.Address()).Int64())
	require.Len(t, f.chain.Sent(), 2)
}

func TestPackageFunctionsDepositAndWithdraw(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ok, err := core.DepositCollateral(ctx, f.chain, collateralPoolAddress, big.NewInt(1000), params(f.trader))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = core.WithdrawCollateral(ctx, f.chain, collateralPoolAddress, big.NewInt(1000), params(f.trader))
	require.NoError(t, err)
	require.True(t, ok)

	balance := core.GetUserAccountBalance(ctx, f.chain, collateralPoolAddress, hexOf(f.trader))
	require.NotNil(t, balance)
	require.Equal(t, int64(0), balance.Int64())
}

func TestDepositRejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	g := core.New(f.chain)

	for _, amount := range []*big.Int{nil, big.NewInt(0), big.NewInt(-5)} {
		ok, err := g.DepositCollateral(ctx, collateralPoolAddress, amount, params(f.trader))
		require.False(t, ok)

		var validationErr *core.ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.ErrorIs(t, err, core.ErrNonPositiveAmount)
	}

	ok, err := g.WithdrawCollateral(ctx, collateralPoolAddress, big.NewInt(0), params(f.trader))
	require.False(t, ok)
	require.ErrorIs(t, err, core.ErrNonPositiveAmount)
	require.Empty(t, f.chain.Sent())
}

func TestUnresolvablePoolFailsBeforeSending(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name    string
		pool    string
		wantErr error
	}{
		{
			name:    "malformed address",
			pool:    "0x3bb28ea157d178da",
			wantErr: core.ErrInvalidAddress,
		},
		{
			name:    "not an address",
			pool:    "collateral pool",
			wantErr: core.ErrInvalidAddress,
		},
		{
			name:    "no contract deployed",
			pool:    unknownAddress,
			wantErr: contracts.ErrNoCode,
		},
		{
			name:    "registry instead of pool",
			pool:    registryContractAddress,
			wantErr: contracts.ErrInterfaceMismatch,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)

			ok, err := core.DepositCollateral(ctx, f.chain, tc.pool, big.NewInt(10), params(f.trader))
			require.False(t, ok)

			var validationErr *core.ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, "depositCollateral", validationErr.Op)
			require.ErrorIs(t, err, tc.wantErr)

			ok, err = core.SettleAndClose(ctx, f.chain, tc.pool, params(f.trader))
			require.False(t, ok)
			require.ErrorIs(t, err, tc.wantErr)

			require.Empty(t, f.chain.Sent())
		})
	}
}

func TestTransactionWithoutSigner(t *testing.T) {
	f := newFixture(t)

	ok, err := core.DepositCollateral(context.Background(), f.chain, collateralPoolAddress, big.NewInt(10), core.TxParams{})
	require.False(t, ok)
	require.ErrorIs(t, err, core.ErrNoSigner)

	var validationErr *core.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestWithdrawMoreThanBalanceRaises(t *testing.T) {
	f := newFixture(t)

	ok, err := core.WithdrawCollateral(context.Background(), f.chain, collateralPoolAddress, big.NewInt(1), params(f.trader))
	require.False(t, ok)

	var txErr *core.TransactionError
	require.ErrorAs(t, err, &txErr)
	require.Equal(t, "withdrawCollateral", txErr.Op)
	require.Empty(t, f.chain.Sent())
}

func TestDepositRejectedByNode(t *testing.T) {
	f := newFixture(t)
	rejected := errors.New("insufficient funds for gas * price + value")
	f.chain.RejectSends(rejected)

	ok, err := core.DepositCollateral(context.Background(), f.chain, collateralPoolAddress, big.NewInt(10), params(f.trader))
	require.False(t, ok)
	require.ErrorIs(t, err, rejected)

	var txErr *core.TransactionError
	require.ErrorAs(t, err, &txErr)
	assert.NotEqual(t, common.Hash{}, txErr.TxHash)
	assert.Contains(t, err.Error(), txErr.TxHash.Hex())
}

func TestSettleAndClose(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	g := core.New(f.chain)

	_, err := g.DepositCollateral(ctx, collateralPoolAddress, big.NewInt(700), params(f.trader))
	require.NoError(t, err)

	ok, err := g.SettleAndClose(ctx, collateralPoolAddress, params(f.trader))
	require.False(t, ok)
	var txErr *core.TransactionError
	require.ErrorAs(t, err, &txErr)

	f.pool.Settle()
	ok, err = g.SettleAndClose(ctx, collateralPoolAddress, params(f.trader))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(0), f.pool.Balance(f.trader.Address()).Int64())
}

func TestGetUserAccountBalanceNeverFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.pool.SetBalance(f.trader.Address(), big.NewInt(42).Big())

	require.Equal(t, int64(42), core.GetUserAccountBalance(ctx, f.chain, collateralPoolAddress, hexOf(f.trader)).Int64())

	t.Run("node fails calls", func(t *testing.T) {
		f.chain.FailCalls(errors.New("connection reset by peer"))
		defer f.chain.FailCalls(nil)

		require.NotPanics(t, func() {
			require.Nil(t, core.GetUserAccountBalance(ctx, f.chain, collateralPoolAddress, hexOf(f.trader)))
		})

		res := core.New(f.chain).UserAccountBalance(ctx, collateralPoolAddress, hexOf(f.trader))
		require.False(t, res.Ok())
		var queryErr *core.QueryError
		require.ErrorAs(t, res.Err(), &queryErr)
	})

	t.Run("node fails validation", func(t *testing.T) {
		f.chain.FailCode(errors.New("connection refused"))
		defer f.chain.FailCode(nil)

		require.Nil(t, core.GetUserAccountBalance(ctx, f.chain, collateralPoolAddress, hexOf(f.trader)))
	})

	t.Run("malformed user", func(t *testing.T) {
		res := core.New(f.chain).UserAccountBalance(ctx, collateralPoolAddress, "trader")
		require.ErrorIs(t, res.Err(), core.ErrInvalidAddress)
		require.Nil(t, res.OrAbsent())
	})

	t.Run("unknown user has a zero balance", func(t *testing.T) {
		res := core.New(f.chain).UserAccountBalance(ctx, collateralPoolAddress, unknownAddress)
		require.True(t, res.Ok())
		require.Equal(t, int64(0), res.OrAbsent().Int64())
	})
}
