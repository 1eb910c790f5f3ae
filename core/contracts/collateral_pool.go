package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const (
	methodDepositTokensForTrading = "depositTokensForTrading"
	methodWithdrawTokens          = "withdrawTokens"
	methodSettleAndClose          = "settleAndClose"
	methodGetUserAccountBalance   = "getUserAccountBalance"
)

// CollateralPool holds the collateral deposited for trading a derivative contract.
type CollateralPool struct {
	*Contract
}

// NewCollateralPool validates the pool deployed at address and binds it to backend.
func NewCollateralPool(ctx context.Context, address common.Address, backend bind.ContractBackend) (*CollateralPool, error) {
	c, err := Resolve(ctx, backend, Reference{Kind: KindCollateralPool, Address: address})
	if err != nil {
		return nil, err
	}
	return &CollateralPool{Contract: c}, nil
}

// UserAccountBalance returns the unallocated token balance of user.
func (p *CollateralPool) UserAccountBalance(opts *bind.CallOpts, user common.Address) (*big.Int, error) {
	out, err := p.call(opts, methodGetUserAccountBalance, user)
	if err != nil {
		return nil, err
	}
	balance, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("calling %s on %s: unexpected result type %T",
			methodGetUserAccountBalance, p.Reference, out[0])
	}
	return balance, nil
}

// DepositTokensForTradingTx builds the deposit transaction.
// The ERC20 allowance must be approved beforehand.
func (p *CollateralPool) DepositTokensForTradingTx(opts *bind.TransactOpts, amount *big.Int) (*types.Transaction, error) {
	return p.transact(opts, methodDepositTokensForTrading, amount)
}

// WithdrawTokensTx builds the withdrawal transaction.
func (p *CollateralPool) WithdrawTokensTx(opts *bind.TransactOpts, amount *big.Int) (*types.Transaction, error) {
	return p.transact(opts, methodWithdrawTokens, amount)
}

// SettleAndCloseTx builds the transaction closing all positions of the sender
// after settlement and withdrawing its collateral.
func (p *CollateralPool) SettleAndCloseTx(opts *bind.TransactOpts) (*types.Transaction, error) {
	return p.transact(opts, methodSettleAndClose)
}
