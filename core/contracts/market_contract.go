package contracts

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

const (
	methodCollateralPoolAddress  = "MARKET_COLLATERAL_POOL_ADDRESS"
	methodCollateralTokenAddress = "COLLATERAL_TOKEN_ADDRESS"
	methodContractName           = "CONTRACT_NAME"
	methodIsSettled              = "isSettled"
)

// MarketContract is a derivative contract, one tradable position template.
type MarketContract struct {
	*Contract
}

// NewMarketContract validates the derivative contract deployed at address and binds it to backend.
func NewMarketContract(ctx context.Context, address common.Address, backend bind.ContractBackend) (*MarketContract, error) {
	c, err := Resolve(ctx, backend, Reference{Kind: KindDerivativeContract, Address: address})
	if err != nil {
		return nil, err
	}
	return &MarketContract{Contract: c}, nil
}

// CollateralPoolAddress returns the pool holding the contract's collateral.
func (m *MarketContract) CollateralPoolAddress(opts *bind.CallOpts) (common.Address, error) {
	return m.callAddress(opts, methodCollateralPoolAddress)
}

// CollateralTokenAddress returns the ERC20 collateral token.
func (m *MarketContract) CollateralTokenAddress(opts *bind.CallOpts) (common.Address, error) {
	return m.callAddress(opts, methodCollateralTokenAddress)
}

// ContractName returns the name the contract was deployed with.
func (m *MarketContract) ContractName(opts *bind.CallOpts) (string, error) {
	out, err := m.call(opts, methodContractName)
	if err != nil {
		return "", err
	}
	name, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("calling %s on %s: unexpected result type %T",
			methodContractName, m.Reference, out[0])
	}
	return name, nil
}

// IsSettled reports whether the contract reached settlement.
func (m *MarketContract) IsSettled(opts *bind.CallOpts) (bool, error) {
	return m.callBool(opts, methodIsSettled)
}
