package mock

import (
	"crypto/ecdsa"

	"github.com/anoideaopen/market/keys/eth"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

// Wallet is a funded account able to sign transactions for the mock chain.
type Wallet struct {
	chain      *Chain
	privateKey *ecdsa.PrivateKey
}

// NewWallet creates a wallet with a fresh secp256k1 key
func (c *Chain) NewWallet() *Wallet {
	key, err := eth.NewKey()
	require.NoError(c.t, err)
	return &Wallet{chain: c, privateKey: key}
}

// NewWalletFromHexKey creates a wallet from a hex encoded private key
func (c *Chain) NewWalletFromHexKey(key string) *Wallet {
	privateKey, err := eth.PrivateKeyFromHex(key)
	require.NoError(c.t, err)
	return &Wallet{chain: c, privateKey: privateKey}
}

// Address returns the wallet account address
func (w *Wallet) Address() common.Address {
	return eth.Address(w.privateKey)
}

// PrivateKey returns the wallet signing key
func (w *Wallet) PrivateKey() *ecdsa.PrivateKey {
	return w.privateKey
}

// Signer returns a signer accepted by the mock chain
func (w *Wallet) Signer() bind.SignerFn {
	opts, err := bind.NewKeyedTransactorWithChainID(w.privateKey, ChainID)
	require.NoError(w.chain.t, err)
	return opts.Signer
}
