// Package order holds the off-chain order types traded against derivative
// contracts and computes the order hash the contracts verify.
package order

import (
	mathbig "math/big"

	"github.com/anoideaopen/market/core/types/big"
	"github.com/anoideaopen/market/keys/eth"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

// Order is an unsigned offer to trade OrderQty of a derivative contract at
// Price. A positive quantity buys, a negative one sells.
type Order struct {
	ContractAddress     common.Address `json:"contractAddress"`
	ExpirationTimestamp *big.Int       `json:"expirationTimestamp"`
	FeeRecipient        common.Address `json:"feeRecipient"`
	Maker               common.Address `json:"maker"`
	MakerFee            *big.Int       `json:"makerFee"`
	OrderQty            *big.Int       `json:"orderQty"`
	Price               *big.Int       `json:"price"`
	RemainingQty        *big.Int       `json:"remainingQty"`
	Salt                *big.Int       `json:"salt"`
	// Taker is the zero address when anyone may fill the order.
	Taker    common.Address `json:"taker"`
	TakerFee *big.Int       `json:"takerFee"`
}

// Hash returns the Keccak-256 of the tightly packed order fields in the
// layout the contracts hash them. RemainingQty is not part of the hash.
// Unset amounts count as zero.
func (o *Order) Hash() common.Hash {
	return common.BytesToHash(eth.Keccak256(
		o.ContractAddress.Bytes(),
		o.Maker.Bytes(),
		o.Taker.Bytes(),
		o.FeeRecipient.Bytes(),
		word(o.MakerFee),
		word(o.TakerFee),
		word(o.Price),
		word(o.ExpirationTimestamp),
		word(o.Salt),
		word(o.OrderQty),
	))
}

// IsExpired reports whether the order expired at unix time now.
func (o *Order) IsExpired(now int64) bool {
	if o.ExpirationTimestamp == nil {
		return false
	}
	return o.ExpirationTimestamp.Cmp(big.NewInt(now)) <= 0
}

// word encodes x as a 256-bit two's complement EVM word.
func word(x *big.Int) []byte {
	if x == nil {
		return make([]byte, common.HashLength)
	}
	return math.U256Bytes(new(mathbig.Int).Set(&x.Int))
}
