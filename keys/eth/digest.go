package eth

import (
	"github.com/ethereum/go-ethereum/accounts"
	"golang.org/x/crypto/sha3"
)

// Hash calculates a hash for given message using Ethereum crypto functions.
// The message is prefixed with "\x19Ethereum Signed Message:\n" and its length.
func Hash(message []byte) []byte {
	return accounts.TextHash(message)
}

// Keccak256 returns the legacy Keccak-256 digest Ethereum uses for hashing.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}
