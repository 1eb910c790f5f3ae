package core

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	mathbig "math/big"

	"github.com/anoideaopen/market/core/types/big"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// TxParams configures one transaction. Every field left at its zero value
// falls back to the gateway default, and then to what the node suggests.
type TxParams struct {
	From   common.Address
	Signer bind.SignerFn
	// GasLimit of 0 asks the node to estimate.
	GasLimit uint64
	// GasPrice in wei; nil asks the node to suggest.
	GasPrice *big.Int
	// Nonce of nil uses the pending nonce of From.
	Nonce *uint64
}

// KeyedParams returns parameters signing with key for the given chain.
func KeyedParams(key *ecdsa.PrivateKey, chainID *mathbig.Int) (TxParams, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return TxParams{}, err
	}
	return TxParams{From: opts.From, Signer: opts.Signer}, nil
}

// withDefaults fills the unset fields of p from defaults. The default signer
// is only borrowed for the default sender.
func (p TxParams) withDefaults(defaults TxParams) TxParams {
	if p.Signer == nil {
		if p.From == (common.Address{}) {
			p.From = defaults.From
		}
		if p.From == defaults.From {
			p.Signer = defaults.Signer
		}
	}
	if p.GasLimit == 0 {
		p.GasLimit = defaults.GasLimit
	}
	if p.GasPrice == nil {
		p.GasPrice = defaults.GasPrice
	}
	return p
}

// transactOpts converts p into binding options that build and sign the
// transaction without broadcasting it.
func (p TxParams) transactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	if p.Signer == nil {
		if p.From != (common.Address{}) {
			return nil, fmt.Errorf("sending from %s: %w", p.From.Hex(), ErrNoSigner)
		}
		return nil, ErrNoSigner
	}
	if p.GasPrice != nil {
		if err := p.GasPrice.Validate(); err != nil {
			return nil, err
		}
	}

	opts := &bind.TransactOpts{
		From:     p.From,
		Signer:   p.Signer,
		GasLimit: p.GasLimit,
		GasPrice: p.GasPrice.Big(),
		Context:  ctx,
		NoSend:   true,
	}
	if p.Nonce != nil {
		opts.Nonce = new(mathbig.Int).SetUint64(*p.Nonce)
	}

	return opts, nil
}
