package order

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/anoideaopen/market/keys/eth"
	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrInvalidRecoveryID = errors.New("recovery id must be 27 or 28")
	ErrMakerMismatch     = errors.New("order is not signed by its maker")
)

// ECSignature is an ECDSA signature split the way contracts take it.
type ECSignature struct {
	// V is the recovery id, 27 or 28.
	V uint8       `json:"v"`
	R common.Hash `json:"r"`
	S common.Hash `json:"s"`
}

// Bytes returns the 65 byte R || S || V form.
func (s ECSignature) Bytes() []byte {
	out := make([]byte, 0, 2*common.HashLength+1)
	out = append(out, s.R.Bytes()...)
	out = append(out, s.S.Bytes()...)
	return append(out, s.V)
}

// SignatureFromBytes splits a 65 byte R || S || V signature.
func SignatureFromBytes(sig []byte) (ECSignature, error) {
	if len(sig) != 2*common.HashLength+1 {
		return ECSignature{}, eth.ErrSignatureLength
	}

	v := sig[2*common.HashLength]
	if v < 27 {
		v += 27
	}
	if v != 27 && v != 28 {
		return ECSignature{}, ErrInvalidRecoveryID
	}

	return ECSignature{
		V: v,
		R: common.BytesToHash(sig[:common.HashLength]),
		S: common.BytesToHash(sig[common.HashLength : 2*common.HashLength]),
	}, nil
}

// SignedOrder is an order together with its maker's signature.
type SignedOrder struct {
	Order
	ECSignature ECSignature `json:"ecSignature"`
}

// Sign signs the Ethereum text hash of o.Hash() with key. The maker of the
// order must be the address of key.
func Sign(o Order, key *ecdsa.PrivateKey) (*SignedOrder, error) {
	if signer := eth.Address(key); signer != o.Maker {
		return nil, fmt.Errorf("signing with %s: %w", signer.Hex(), ErrMakerMismatch)
	}

	hash := o.Hash()
	sig, err := eth.Sign(eth.Hash(hash.Bytes()), key)
	if err != nil {
		return nil, err
	}

	ecSignature, err := SignatureFromBytes(sig)
	if err != nil {
		return nil, err
	}

	return &SignedOrder{Order: o, ECSignature: ecSignature}, nil
}

// Signer recovers the address that signed the order.
func (o *SignedOrder) Signer() (common.Address, error) {
	hash := o.Hash()
	return eth.Recover(eth.Hash(hash.Bytes()), o.ECSignature.Bytes())
}

// Verify checks that the order was signed by its maker.
func (o *SignedOrder) Verify() error {
	signer, err := o.Signer()
	if err != nil {
		return err
	}
	if signer != o.Maker {
		return fmt.Errorf("recovered %s, maker %s: %w", signer.Hex(), o.Maker.Hex(), ErrMakerMismatch)
	}
	return nil
}
