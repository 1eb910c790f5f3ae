package eth

import (
	"crypto/ecdsa"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	signatureLength = 64
	recoveryBits    = 27
)

var ErrSignatureLength = errors.New("signature must be 65 bytes long")

// Sign calculates an ECDSA signature using Ethereum crypto functions.
// The recovery id in the last byte is shifted to 27/28.
func Sign(digest []byte, privateKey *ecdsa.PrivateKey) ([]byte, error) {
	signature, err := crypto.Sign(digest, privateKey)
	if err != nil {
		return nil, err
	}
	if len(signature) == signatureLength+1 {
		signature[signatureLength] += recoveryBits
	}
	return signature, nil
}

// Verify checks that the given public key created signature over digest
// using Ethereum crypto functions
func Verify(publicKey, digest, signature []byte) bool {
	if len(signature) > signatureLength {
		signature = signature[:signatureLength]
	}
	return crypto.VerifySignature(publicKey, digest, signature)
}

// Recover returns the address of the key that produced signature over digest.
// Both 0/1 and 27/28 recovery ids are accepted.
func Recover(digest, signature []byte) (common.Address, error) {
	if len(signature) != signatureLength+1 {
		return common.Address{}, ErrSignatureLength
	}

	sig := make([]byte, len(signature))
	copy(sig, signature)
	if sig[signatureLength] >= recoveryBits {
		sig[signatureLength] -= recoveryBits
	}

	publicKey, err := crypto.SigToPub(digest, sig)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*publicKey), nil
}
