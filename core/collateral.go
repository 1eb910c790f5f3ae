package core

import (
	"context"

	"github.com/anoideaopen/market/core/contracts"
	"github.com/anoideaopen/market/core/types/big"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const (
	opDepositCollateral  = "depositCollateral"
	opWithdrawCollateral = "withdrawCollateral"
	opSettleAndClose     = "settleAndClose"
	opAccountBalance     = "getUserAccountBalance"
)

func positive(amount *big.Int) func() error {
	return func() error {
		if amount.ValidatePositive() != nil {
			return ErrNonPositiveAmount
		}
		return nil
	}
}

// DepositCollateral deposits amount base units of the collateral token into
// the pool for trading. It returns true once the transaction was accepted.
func (g *Gateway) DepositCollateral(ctx context.Context, pool string, amount *big.Int, params TxParams) (bool, error) {
	return raise(g.transact(ctx, writeCall{
		op:      opDepositCollateral,
		kind:    contracts.KindCollateralPool,
		address: pool,
		params:  params,
		check:   positive(amount),
		build: func(c *contracts.Contract, opts *bind.TransactOpts) (*types.Transaction, error) {
			return (&contracts.CollateralPool{Contract: c}).DepositTokensForTradingTx(opts, amount.Big())
		},
	}))
}

// WithdrawCollateral withdraws amount base units of unallocated collateral
// from the pool.
func (g *Gateway) WithdrawCollateral(ctx context.Context, pool string, amount *big.Int, params TxParams) (bool, error) {
	return raise(g.transact(ctx, writeCall{
		op:      opWithdrawCollateral,
		kind:    contracts.KindCollateralPool,
		address: pool,
		params:  params,
		check:   positive(amount),
		build: func(c *contracts.Contract, opts *bind.TransactOpts) (*types.Transaction, error) {
			return (&contracts.CollateralPool{Contract: c}).WithdrawTokensTx(opts, amount.Big())
		},
	}))
}

// SettleAndClose closes the sender's positions in a settled contract and
// returns the collateral to its balance.
func (g *Gateway) SettleAndClose(ctx context.Context, pool string, params TxParams) (bool, error) {
	return raise(g.transact(ctx, writeCall{
		op:      opSettleAndClose,
		kind:    contracts.KindCollateralPool,
		address: pool,
		params:  params,
		build: func(c *contracts.Contract, opts *bind.TransactOpts) (*types.Transaction, error) {
			return (&contracts.CollateralPool{Contract: c}).SettleAndCloseTx(opts)
		},
	}))
}

// UserAccountBalance returns the unallocated balance of user in the pool.
func (g *Gateway) UserAccountBalance(ctx context.Context, pool, user string) Result[*big.Int] {
	var account common.Address
	return query(ctx, g, readCall[*big.Int]{
		op:      opAccountBalance,
		kind:    contracts.KindCollateralPool,
		address: pool,
		check: func() (err error) {
			account, err = parseAddress(user)
			return err
		},
		read: func(c *contracts.Contract, opts *bind.CallOpts) (*big.Int, error) {
			balance, err := (&contracts.CollateralPool{Contract: c}).UserAccountBalance(opts, account)
			if err != nil {
				return nil, err
			}
			return big.FromBig(balance), nil
		},
	})
}

// DepositCollateral deposits amount into the pool through backend.
func DepositCollateral(ctx context.Context, backend Backend, pool string, amount *big.Int, params TxParams) (bool, error) {
	return oneShot(backend).DepositCollateral(ctx, pool, amount, params)
}

// WithdrawCollateral withdraws amount from the pool through backend.
func WithdrawCollateral(ctx context.Context, backend Backend, pool string, amount *big.Int, params TxParams) (bool, error) {
	return oneShot(backend).WithdrawCollateral(ctx, pool, amount, params)
}

// SettleAndClose settles the sender's positions in the pool through backend.
func SettleAndClose(ctx context.Context, backend Backend, pool string, params TxParams) (bool, error) {
	return oneShot(backend).SettleAndClose(ctx, pool, params)
}

// GetUserAccountBalance returns the unallocated balance of user in the pool,
// or nil when it could not be determined.
func GetUserAccountBalance(ctx context.Context, backend Backend, pool, user string) *big.Int {
	return oneShot(backend).UserAccountBalance(ctx, pool, user).OrAbsent()
}

// oneShot returns a gateway for a single call: nothing is cached.
func oneShot(backend Backend) *Gateway {
	return New(backend, WithCache(0))
}
