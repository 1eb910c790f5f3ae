package contracts

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const (
	methodAddAddressToWhiteList = "addAddressToWhiteList"
	methodGetAddressWhiteList   = "getAddressWhiteList"
	methodIsAddressWhiteListed  = "isAddressWhiteListed"
)

// ContractRegistry tracks the derivative contracts authorized for trading.
type ContractRegistry struct {
	*Contract
}

// NewContractRegistry validates the registry deployed at address and binds it to backend.
func NewContractRegistry(ctx context.Context, address common.Address, backend bind.ContractBackend) (*ContractRegistry, error) {
	c, err := Resolve(ctx, backend, Reference{Kind: KindContractRegistry, Address: address})
	if err != nil {
		return nil, err
	}
	return &ContractRegistry{Contract: c}, nil
}

// AddressWhiteList returns the whitelisted contract addresses in registry order.
func (r *ContractRegistry) AddressWhiteList(opts *bind.CallOpts) ([]common.Address, error) {
	out, err := r.call(opts, methodGetAddressWhiteList)
	if err != nil {
		return nil, err
	}
	list, ok := out[0].([]common.Address)
	if !ok {
		return nil, fmt.Errorf("calling %s on %s: unexpected result type %T",
			methodGetAddressWhiteList, r.Reference, out[0])
	}
	return list, nil
}

// IsAddressWhiteListed reports whether contract is on the whitelist.
func (r *ContractRegistry) IsAddressWhiteListed(opts *bind.CallOpts, contract common.Address) (bool, error) {
	return r.callBool(opts, methodIsAddressWhiteListed, contract)
}

// AddAddressToWhiteListTx builds the transaction authorizing contract.
// Only the registry owner may send it.
func (r *ContractRegistry) AddAddressToWhiteListTx(opts *bind.TransactOpts, contract common.Address) (*types.Transaction, error) {
	return r.transact(opts, methodAddAddressToWhiteList, contract)
}
