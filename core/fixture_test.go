package core_test

import (
	"strings"
	"testing"

	"github.com/anoideaopen/market/core"
	"github.com/anoideaopen/market/mock"
	"github.com/ethereum/go-ethereum/common"
)

// Addresses of the public test deployment.
const (
	marketContractAddress   = "0x0c6b44155a305bd611492ba3165fbfa6e59681b3"
	collateralPoolAddress   = "0x3bb28ea157d178da4f4b1e194f5b9a9a6c8397a0"
	registryContractAddress = "0x4bc60737323fd065d99c726ca2c0fad0d1077a60"
	collateralTokenAddress  = "0x01b8d8dd2e5c1e4b1a4fc3fdcc1c24ff2ea40ddc"
	unknownAddress          = "0x9a2f1c0e55d0b8bb3c7f9a4b7e2d26c1f3a0e4d5"
)

type fixture struct {
	chain    *mock.Chain
	pool     *mock.CollateralPool
	registry *mock.ContractRegistry
	market   *mock.MarketContract
	owner    *mock.Wallet
	trader   *mock.Wallet
}

// newFixture replays the public test deployment on a mock chain: the market
// contract is whitelisted and bound to its collateral pool.
func newFixture(t *testing.T) *fixture {
	chain := mock.NewChain(t)
	owner := chain.NewWallet()

	return &fixture{
		chain:    chain,
		pool:     chain.NewCollateralPool(common.HexToAddress(collateralPoolAddress)),
		registry: chain.NewContractRegistry(common.HexToAddress(registryContractAddress), owner.Address(), common.HexToAddress(marketContractAddress)),
		market: chain.NewMarketContract(
			common.HexToAddress(marketContractAddress),
			common.HexToAddress(collateralPoolAddress),
			common.HexToAddress(collateralTokenAddress),
			"ETHXBT-1525967165",
		),
		owner:  owner,
		trader: chain.NewWallet(),
	}
}

func params(w *mock.Wallet) core.TxParams {
	return core.TxParams{From: w.Address(), Signer: w.Signer()}
}

func hexOf(w *mock.Wallet) string {
	return strings.ToLower(w.Address().Hex())
}
