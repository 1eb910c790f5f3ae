package eth

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// NewKey generates new secp256k1 key using Ethereum crypto functions
func NewKey() (*ecdsa.PrivateKey, error) {
	return crypto.GenerateKey()
}

// PublicKeyBytes returns bytes representation of secp256p1 public key
func PublicKeyBytes(publicKey *ecdsa.PublicKey) []byte {
	return crypto.FromECDSAPub(publicKey)
}

// PrivateKeyFromBytes creates a secp256k1 private key from its bytes representation
func PrivateKeyFromBytes(bytes []byte) (*ecdsa.PrivateKey, error) {
	return crypto.ToECDSA(bytes)
}

// PrivateKeyFromHex parses a hex encoded secp256k1 private key, with or without 0x prefix.
func PrivateKeyFromHex(s string) (*ecdsa.PrivateKey, error) {
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return crypto.HexToECDSA(s)
}

// Address derives the account address controlled by privateKey.
func Address(privateKey *ecdsa.PrivateKey) common.Address {
	return crypto.PubkeyToAddress(privateKey.PublicKey)
}
