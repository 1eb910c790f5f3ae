package core

import (
	"context"

	"github.com/anoideaopen/market/core/contracts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

const (
	opCollateralPoolAddress  = "getCollateralPoolContractAddress"
	opCollateralTokenAddress = "getCollateralTokenAddress"
	opContractName           = "getContractName"
	opIsSettled              = "isSettled"
)

// CollateralPoolAddress returns the address of the pool holding the
// collateral of the derivative contract, as lowercase hex.
func (g *Gateway) CollateralPoolAddress(ctx context.Context, contract string) Result[string] {
	return query(ctx, g, readCall[string]{
		op:      opCollateralPoolAddress,
		kind:    contracts.KindDerivativeContract,
		address: contract,
		read: func(c *contracts.Contract, opts *bind.CallOpts) (string, error) {
			pool, err := (&contracts.MarketContract{Contract: c}).CollateralPoolAddress(opts)
			if err != nil {
				return "", err
			}
			return hexAddress(pool), nil
		},
	})
}

// CollateralTokenAddress returns the ERC20 token the contract is collateralized with.
func (g *Gateway) CollateralTokenAddress(ctx context.Context, contract string) Result[string] {
	return query(ctx, g, readCall[string]{
		op:      opCollateralTokenAddress,
		kind:    contracts.KindDerivativeContract,
		address: contract,
		read: func(c *contracts.Contract, opts *bind.CallOpts) (string, error) {
			token, err := (&contracts.MarketContract{Contract: c}).CollateralTokenAddress(opts)
			if err != nil {
				return "", err
			}
			return hexAddress(token), nil
		},
	})
}

// ContractName returns the name the derivative contract was deployed with.
func (g *Gateway) ContractName(ctx context.Context, contract string) Result[string] {
	return query(ctx, g, readCall[string]{
		op:      opContractName,
		kind:    contracts.KindDerivativeContract,
		address: contract,
		read: func(c *contracts.Contract, opts *bind.CallOpts) (string, error) {
			return (&contracts.MarketContract{Contract: c}).ContractName(opts)
		},
	})
}

// IsSettled reports whether the contract reached settlement, after which
// SettleAndClose can be called on its pool.
func (g *Gateway) IsSettled(ctx context.Context, contract string) Result[bool] {
	return query(ctx, g, readCall[bool]{
		op:      opIsSettled,
		kind:    contracts.KindDerivativeContract,
		address: contract,
		read: func(c *contracts.Contract, opts *bind.CallOpts) (bool, error) {
			return (&contracts.MarketContract{Contract: c}).IsSettled(opts)
		},
	})
}

// GetCollateralPoolContractAddress returns the pool of the derivative
// contract through backend, or "" when it could not be read.
func GetCollateralPoolContractAddress(ctx context.Context, backend Backend, contract string) string {
	return oneShot(backend).CollateralPoolAddress(ctx, contract).OrAbsent()
}
