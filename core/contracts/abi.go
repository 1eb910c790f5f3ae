package contracts

import "github.com/ethereum/go-ethereum/accounts/abi/bind"

// CollateralPoolMetaData contains the ABI of the deployed MarketCollateralPool
// methods used by this package.
var CollateralPoolMetaData = &bind.MetaData{
	ABI: `[
	{"type":"function","name":"depositTokensForTrading","stateMutability":"nonpayable",
	 "inputs":[{"name":"depositAmount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"withdrawTokens","stateMutability":"nonpayable",
	 "inputs":[{"name":"withdrawAmount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"settleAndClose","stateMutability":"nonpayable",
	 "inputs":[],"outputs":[]},
	{"type":"function","name":"getUserAccountBalance","stateMutability":"view",
	 "inputs":[{"name":"userAddress","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
]`,
}

// ContractRegistryMetaData contains the ABI of the MarketContractRegistry whitelist.
var ContractRegistryMetaData = &bind.MetaData{
	ABI: `[
	{"type":"function","name":"addAddressToWhiteList","stateMutability":"nonpayable",
	 "inputs":[{"name":"contractAddress","type":"address"}],"outputs":[]},
	{"type":"function","name":"getAddressWhiteList","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"address[]"}]},
	{"type":"function","name":"isAddressWhiteListed","stateMutability":"view",
	 "inputs":[{"name":"contractAddress","type":"address"}],"outputs":[{"name":"","type":"bool"}]}
]`,
}

// MarketContractMetaData contains the ABI of the derivative MarketContract accessors.
var MarketContractMetaData = &bind.MetaData{
	ABI: `[
	{"type":"function","name":"MARKET_COLLATERAL_POOL_ADDRESS","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"COLLATERAL_TOKEN_ADDRESS","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"CONTRACT_NAME","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"isSettled","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"bool"}]}
]`,
}
