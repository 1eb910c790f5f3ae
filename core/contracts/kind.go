package contracts

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// Kind tags the interface a deployed contract is expected to implement.
type Kind int

const (
	KindUnknown Kind = iota
	KindCollateralPool
	KindContractRegistry
	KindDerivativeContract
)

func (k Kind) String() string {
	switch k {
	case KindCollateralPool:
		return "CollateralPool"
	case KindContractRegistry:
		return "ContractRegistry"
	case KindDerivativeContract:
		return "DerivativeContract"
	case KindUnknown:
		fallthrough
	default:
		return "Unknown"
	}
}

type kindSpec struct {
	meta *bind.MetaData
	// methods the deployed bytecode must dispatch
	required []string
}

var kinds = map[Kind]kindSpec{
	KindCollateralPool: {
		meta: CollateralPoolMetaData,
		required: []string{
			methodDepositTokensForTrading,
			methodWithdrawTokens,
			methodSettleAndClose,
			methodGetUserAccountBalance,
		},
	},
	KindContractRegistry: {
		meta: ContractRegistryMetaData,
		required: []string{
			methodAddAddressToWhiteList,
			methodGetAddressWhiteList,
			methodIsAddressWhiteListed,
		},
	},
	KindDerivativeContract: {
		meta: MarketContractMetaData,
		required: []string{
			methodCollateralPoolAddress,
			methodCollateralTokenAddress,
			methodContractName,
			methodIsSettled,
		},
	},
}

// ABI returns the parsed ABI of the kind.
func (k Kind) ABI() (*abi.ABI, error) {
	spec, ok := kinds[k]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return spec.meta.GetAbi()
}

// Selectors returns the 4-byte method ids the kind requires, in declaration order.
func (k Kind) Selectors() ([][]byte, error) {
	parsed, err := k.ABI()
	if err != nil {
		return nil, err
	}

	spec := kinds[k]
	ids := make([][]byte, 0, len(spec.required))
	for _, name := range spec.required {
		method, ok := parsed.Methods[name]
		if !ok {
			return nil, fmt.Errorf("method %s missing from %s abi", name, k)
		}
		ids = append(ids, method.ID)
	}
	return ids, nil
}

// Reference identifies a deployed contract by kind and address.
type Reference struct {
	Kind    Kind
	Address common.Address
}

func (r Reference) String() string {
	return r.Kind.String() + "@" + r.Address.Hex()
}
