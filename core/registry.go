package core

import (
	"context"

	"github.com/anoideaopen/market/core/contracts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const (
	opAddToWhitelist   = "addAddressToWhitelist"
	opAddressWhitelist = "getAddressWhitelist"
	opIsWhitelisted    = "isAddressWhitelisted"
)

// AddAddressToWhitelist asks the registry to whitelist contract. Only the
// registry owner may do so. A transaction the node or the registry rejects
// is reported as false with a nil error; malformed input and a registry that
// fails validation are still returned as *ValidationError.
func (g *Gateway) AddAddressToWhitelist(ctx context.Context, registry, contract string, params TxParams) (bool, error) {
	var target common.Address
	return swallow(g.transact(ctx, writeCall{
		op:      opAddToWhitelist,
		kind:    contracts.KindContractRegistry,
		address: registry,
		params:  params,
		check: func() (err error) {
			target, err = parseAddress(contract)
			return err
		},
		build: func(c *contracts.Contract, opts *bind.TransactOpts) (*types.Transaction, error) {
			return (&contracts.ContractRegistry{Contract: c}).AddAddressToWhiteListTx(opts, target)
		},
	}))
}

// AddressWhitelist returns the whitelisted contract addresses in registry
// order, as lowercase hex.
func (g *Gateway) AddressWhitelist(ctx context.Context, registry string) Result[[]string] {
	return query(ctx, g, readCall[[]string]{
		op:      opAddressWhitelist,
		kind:    contracts.KindContractRegistry,
		address: registry,
		read: func(c *contracts.Contract, opts *bind.CallOpts) ([]string, error) {
			list, err := (&contracts.ContractRegistry{Contract: c}).AddressWhiteList(opts)
			if err != nil {
				return nil, err
			}

			out := make([]string, 0, len(list))
			for _, a := range list {
				out = append(out, hexAddress(a))
			}
			return out, nil
		},
	})
}

// IsAddressWhitelisted reports whether registry lists contract.
func (g *Gateway) IsAddressWhitelisted(ctx context.Context, registry, contract string) Result[bool] {
	var target common.Address
	return query(ctx, g, readCall[bool]{
		op:      opIsWhitelisted,
		kind:    contracts.KindContractRegistry,
		address: registry,
		check: func() (err error) {
			target, err = parseAddress(contract)
			return err
		},
		read: func(c *contracts.Contract, opts *bind.CallOpts) (bool, error) {
			return (&contracts.ContractRegistry{Contract: c}).IsAddressWhiteListed(opts, target)
		},
	})
}

// AddAddressToWhitelist whitelists contract in registry through backend.
func AddAddressToWhitelist(ctx context.Context, backend Backend, registry, contract string, params TxParams) (bool, error) {
	return oneShot(backend).AddAddressToWhitelist(ctx, registry, contract, params)
}

// GetAddressWhitelist returns the whitelist of registry, or nil when it
// could not be read.
func GetAddressWhitelist(ctx context.Context, backend Backend, registry string) []string {
	return oneShot(backend).AddressWhitelist(ctx, registry).OrAbsent()
}
