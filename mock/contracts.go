package mock

import (
	"errors"
	"math/big"

	"github.com/anoideaopen/market/core/contracts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

// Simulated contract errors
var (
	ErrZeroAmount          = errors.New("amount must be greater than zero")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNotSettled          = errors.New("contract not settled")
	ErrNotOwner            = errors.New("sender is not the owner")
	ErrAlreadyWhitelisted  = errors.New("address already whitelisted")
)

// CollateralPool simulates MarketCollateralPool bookkeeping of unallocated balances.
type CollateralPool struct {
	chain    *Chain
	Address  common.Address
	balances map[common.Address]*big.Int
	settled  bool
}

// NewCollateralPool deploys a simulated collateral pool at address.
func (c *Chain) NewCollateralPool(address common.Address) *CollateralPool {
	parsed, err := contracts.CollateralPoolMetaData.GetAbi()
	require.NoError(c.t, err)

	p := &CollateralPool{
		chain:    c,
		Address:  address,
		balances: make(map[common.Address]*big.Int),
	}
	c.Deploy(address, parsed, map[string]Handler{
		"depositTokensForTrading": p.deposit,
		"withdrawTokens":          p.withdraw,
		"settleAndClose":          p.settleAndClose,
		"getUserAccountBalance":   p.balanceOf,
	})
	return p
}

// Balance returns the unallocated balance of user.
func (p *CollateralPool) Balance(user common.Address) *big.Int {
	p.chain.mu.Lock()
	defer p.chain.mu.Unlock()
	return new(big.Int).Set(p.balance(user))
}

// SetBalance overrides the unallocated balance of user.
func (p *CollateralPool) SetBalance(user common.Address, amount *big.Int) {
	p.chain.mu.Lock()
	defer p.chain.mu.Unlock()
	p.balances[user] = new(big.Int).Set(amount)
}

// Settle marks the underlying contract as settled.
func (p *CollateralPool) Settle() {
	p.chain.mu.Lock()
	defer p.chain.mu.Unlock()
	p.settled = true
}

func (p *CollateralPool) balance(user common.Address) *big.Int {
	if b, ok := p.balances[user]; ok {
		return b
	}
	return new(big.Int)
}

func (p *CollateralPool) deposit(call Call) ([]interface{}, error) {
	amount := call.Args[0].(*big.Int)
	if amount.Sign() <= 0 {
		return nil, ErrZeroAmount
	}
	if call.Commit {
		p.balances[call.Sender] = new(big.Int).Add(p.balance(call.Sender), amount)
	}
	return nil, nil
}

func (p *CollateralPool) withdraw(call Call) ([]interface{}, error) {
	amount := call.Args[0].(*big.Int)
	if amount.Sign() <= 0 {
		return nil, ErrZeroAmount
	}
	current := p.balance(call.Sender)
	if current.Cmp(amount) < 0 {
		return nil, ErrInsufficientBalance
	}
	if call.Commit {
		p.balances[call.Sender] = new(big.Int).Sub(current, amount)
	}
	return nil, nil
}

func (p *CollateralPool) settleAndClose(call Call) ([]interface{}, error) {
	if !p.settled {
		return nil, ErrNotSettled
	}
	if call.Commit {
		delete(p.balances, call.Sender)
	}
	return nil, nil
}

func (p *CollateralPool) balanceOf(call Call) ([]interface{}, error) {
	user := call.Args[0].(common.Address)
	return []interface{}{new(big.Int).Set(p.balance(user))}, nil
}

// ContractRegistry simulates the owner-managed whitelist of derivative contracts.
type ContractRegistry struct {
	chain     *Chain
	Address   common.Address
	Owner     common.Address
	whitelist []common.Address
}

// NewContractRegistry deploys a simulated registry owned by owner.
func (c *Chain) NewContractRegistry(address, owner common.Address, whitelist ...common.Address) *ContractRegistry {
	parsed, err := contracts.ContractRegistryMetaData.GetAbi()
	require.NoError(c.t, err)

	r := &ContractRegistry{
		chain:     c,
		Address:   address,
		Owner:     owner,
		whitelist: append([]common.Address(nil), whitelist...),
	}
	c.Deploy(address, parsed, map[string]Handler{
		"addAddressToWhiteList": r.add,
		"getAddressWhiteList":   r.list,
		"isAddressWhiteListed":  r.contains,
	})
	return r
}

// Whitelist returns the registry contents in insertion order.
func (r *ContractRegistry) Whitelist() []common.Address {
	r.chain.mu.Lock()
	defer r.chain.mu.Unlock()
	return append([]common.Address(nil), r.whitelist...)
}

func (r *ContractRegistry) has(address common.Address) bool {
	for _, a := range r.whitelist {
		if a == address {
			return true
		}
	}
	return false
}

func (r *ContractRegistry) add(call Call) ([]interface{}, error) {
	if call.Sender != r.Owner {
		return nil, ErrNotOwner
	}
	address := call.Args[0].(common.Address)
	if r.has(address) {
		return nil, ErrAlreadyWhitelisted
	}
	if call.Commit {
		r.whitelist = append(r.whitelist, address)
	}
	return nil, nil
}

func (r *ContractRegistry) list(Call) ([]interface{}, error) {
	return []interface{}{append([]common.Address{}, r.whitelist...)}, nil
}

func (r *ContractRegistry) contains(call Call) ([]interface{}, error) {
	return []interface{}{r.has(call.Args[0].(common.Address))}, nil
}

// MarketContract simulates the accessors of a derivative contract.
type MarketContract struct {
	chain           *Chain
	Address         common.Address
	Name            string
	CollateralPool  common.Address
	CollateralToken common.Address
	settled         bool
}

// NewMarketContract deploys a simulated derivative contract bound to pool.
func (c *Chain) NewMarketContract(address, pool, token common.Address, name string) *MarketContract {
	parsed, err := contracts.MarketContractMetaData.GetAbi()
	require.NoError(c.t, err)

	m := &MarketContract{
		chain:           c,
		Address:         address,
		Name:            name,
		CollateralPool:  pool,
		CollateralToken: token,
	}
	c.Deploy(address, parsed, map[string]Handler{
		"MARKET_COLLATERAL_POOL_ADDRESS": func(Call) ([]interface{}, error) {
			return []interface{}{m.CollateralPool}, nil
		},
		"COLLATERAL_TOKEN_ADDRESS": func(Call) ([]interface{}, error) {
			return []interface{}{m.CollateralToken}, nil
		},
		"CONTRACT_NAME": func(Call) ([]interface{}, error) {
			return []interface{}{m.Name}, nil
		},
		"isSettled": func(Call) ([]interface{}, error) {
			return []interface{}{m.settled}, nil
		},
	})
	return m
}

// Settle marks the contract as settled.
func (m *MarketContract) Settle() {
	m.chain.mu.Lock()
	defer m.chain.mu.Unlock()
	m.settled = true
}
