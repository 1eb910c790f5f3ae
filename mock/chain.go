package mock

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sync"
	"testing"

	"github.com/anoideaopen/market/core/logger"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const (
	opPush4 = 0x63

	defaultGasLimit = 250_000
	defaultGasPrice = 1_000_000_000
)

// ChainID is the chain id the simulated node signs and verifies transactions with.
var ChainID = big.NewInt(1337)

var ErrUnsupported = errors.New("not supported by the mock chain")

// Call is one invocation of a simulated contract method.
type Call struct {
	// Sender is the zero address for eth_call requests without From.
	Sender common.Address
	Args   []interface{}
	// Commit is set only when a mined transaction executes the method.
	// Handlers must not change state otherwise.
	Commit bool
}

// Handler executes one contract method. A returned error reverts the call
// or the transaction.
type Handler func(call Call) ([]interface{}, error)

type deployed struct {
	abi      *abi.ABI
	code     []byte
	handlers map[string]Handler
}

// Chain is an in-process node answering the JSON-RPC subset contract bindings use.
// Contracts are simulated by Go handlers keyed by ABI method name.
type Chain struct {
	t *testing.T

	mu        sync.Mutex
	contracts map[common.Address]*deployed
	nonces    map[common.Address]uint64
	receipts  map[common.Hash]*types.Receipt
	sent      []*types.Transaction
	block     uint64

	codeErr error
	callErr error
	sendErr error

	codeCalls int
	callCalls int

	log *logrus.Entry
}

// NewChain creates an empty simulated node. The LOG environment variable
// sets the level of the sdk logger, error by default.
func NewChain(t *testing.T) *Chain {
	lvl := logrus.ErrorLevel
	var err error
	if level, ok := os.LookupEnv("LOG"); ok {
		lvl, err = logrus.ParseLevel(level)
		require.NoError(t, err)
	}
	sdk := logger.Logger()
	sdk.Logger.SetLevel(lvl)

	return &Chain{
		log:       sdk.WithField("component", "mock chain"),
		t:         t,
		contracts: make(map[common.Address]*deployed),
		nonces:    make(map[common.Address]uint64),
		receipts:  make(map[common.Hash]*types.Receipt),
		block:     1,
	}
}

// Deploy installs a simulated contract at address. Its code dispatches every
// method of parsed, so it passes interface validation.
func (c *Chain) Deploy(address common.Address, parsed *abi.ABI, handlers map[string]Handler) {
	code := []byte{0x60, 0x80, 0x60, 0x40, 0x52}
	for _, method := range parsed.Methods {
		code = append(code, opPush4)
		code = append(code, method.ID...)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.contracts[address] = &deployed{abi: parsed, code: code, handlers: handlers}
}

// DeployCode installs raw code without any handlers.
func (c *Chain) DeployCode(address common.Address, code []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contracts[address] = &deployed{code: code}
}

// Destroy removes the contract at address, as a self-destruct would.
func (c *Chain) Destroy(address common.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.contracts, address)
}

// FailCode makes every CodeAt request fail with err; nil restores it.
func (c *Chain) FailCode(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.codeErr = err
}

// FailCalls makes every eth_call fail with err; nil restores it.
func (c *Chain) FailCalls(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callErr = err
}

// RejectSends makes the node refuse every transaction with err; nil restores it.
func (c *Chain) RejectSends(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sendErr = err
}

// Sent returns the transactions accepted by the node in order.
func (c *Chain) Sent() []*types.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*types.Transaction(nil), c.sent...)
}

// CodeCalls returns how many times contract code was requested.
func (c *Chain) CodeCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.codeCalls
}

// CallCalls returns how many eth_call requests were served.
func (c *Chain) CallCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.callCalls
}

// Receipt returns the receipt of a sent transaction.
func (c *Chain) Receipt(hash common.Hash) *types.Receipt {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.receipts[hash]
}

// CodeAt implements bind.ContractCaller.
func (c *Chain) CodeAt(_ context.Context, contract common.Address, _ *big.Int) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.codeCalls++
	if c.codeErr != nil {
		return nil, c.codeErr
	}
	if d, ok := c.contracts[contract]; ok {
		return d.code, nil
	}
	return nil, nil
}

// CallContract implements bind.ContractCaller.
func (c *Chain) CallContract(ctx context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.callCalls++
	if c.callErr != nil {
		return nil, c.callErr
	}
	if call.To == nil {
		return nil, fmt.Errorf("call without recipient: %w", ErrUnsupported)
	}

	d, ok := c.contracts[*call.To]
	if !ok {
		// a node answers calls to empty accounts with empty output
		return nil, nil
	}

	return c.execute(d, Call{Sender: call.From}, call.Data)
}

// HeaderByNumber implements bind.ContractTransactor. The chain predates
// EIP-1559, so bindings build legacy transactions.
func (c *Chain) HeaderByNumber(_ context.Context, _ *big.Int) (*types.Header, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &types.Header{Number: new(big.Int).SetUint64(c.block)}, nil
}

// PendingCodeAt implements bind.ContractTransactor. It is not counted by CodeCalls.
func (c *Chain) PendingCodeAt(_ context.Context, account common.Address) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.codeErr != nil {
		return nil, c.codeErr
	}
	if d, ok := c.contracts[account]; ok {
		return d.code, nil
	}
	return nil, nil
}

// PendingNonceAt implements bind.ContractTransactor.
func (c *Chain) PendingNonceAt(_ context.Context, account common.Address) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nonces[account], nil
}

// SuggestGasPrice implements bind.ContractTransactor.
func (c *Chain) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(defaultGasPrice), nil
}

// SuggestGasTipCap implements bind.ContractTransactor.
func (c *Chain) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(defaultGasPrice), nil
}

// EstimateGas implements bind.ContractTransactor. Like a real node it
// dry-runs the call and refuses to estimate one that reverts.
func (c *Chain) EstimateGas(_ context.Context, call ethereum.CallMsg) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if call.To == nil {
		return 0, fmt.Errorf("contract creation: %w", ErrUnsupported)
	}
	if d, ok := c.contracts[*call.To]; ok {
		if _, err := c.execute(d, Call{Sender: call.From}, call.Data); err != nil {
			return 0, err
		}
	}
	return defaultGasLimit, nil
}

// SendTransaction implements bind.ContractTransactor. The transaction is
// mined immediately; a handler error produces a failed receipt.
func (c *Chain) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sender, err := types.Sender(types.LatestSignerForChainID(ChainID), tx)
	if err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sendErr != nil {
		return c.sendErr
	}
	if tx.Nonce() != c.nonces[sender] {
		return fmt.Errorf("nonce too low: have %d, want %d", tx.Nonce(), c.nonces[sender])
	}
	if tx.To() == nil {
		return fmt.Errorf("contract creation: %w", ErrUnsupported)
	}

	status := types.ReceiptStatusSuccessful
	d, ok := c.contracts[*tx.To()]
	if !ok {
		status = types.ReceiptStatusFailed
	} else if _, err = c.execute(d, Call{Sender: sender, Commit: true}, tx.Data()); err != nil {
		c.log.WithError(err).WithField("tx", tx.Hash().Hex()).Debug("transaction reverted")
		status = types.ReceiptStatusFailed
	}

	c.nonces[sender]++
	c.block++
	c.sent = append(c.sent, tx)
	c.receipts[tx.Hash()] = &types.Receipt{
		Type:              tx.Type(),
		Status:            status,
		CumulativeGasUsed: tx.Gas(),
		TxHash:            tx.Hash(),
		GasUsed:           tx.Gas(),
		BlockNumber:       new(big.Int).SetUint64(c.block),
	}

	return nil
}

// TransactionReceipt implements bind.DeployBackend.
func (c *Chain) TransactionReceipt(_ context.Context, txHash common.Hash) (*types.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	receipt, ok := c.receipts[txHash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return receipt, nil
}

// FilterLogs implements bind.ContractFilterer. The simulated contracts emit no logs.
func (c *Chain) FilterLogs(context.Context, ethereum.FilterQuery) ([]types.Log, error) {
	return nil, nil
}

// SubscribeFilterLogs implements bind.ContractFilterer.
func (c *Chain) SubscribeFilterLogs(context.Context, ethereum.FilterQuery, chan<- types.Log) (ethereum.Subscription, error) {
	return nil, ErrUnsupported
}

// execute runs the handler addressed by data. The caller holds c.mu.
func (c *Chain) execute(d *deployed, call Call, data []byte) ([]byte, error) {
	if d.abi == nil {
		return nil, errors.New("execution reverted")
	}
	if len(data) < 4 {
		return nil, errors.New("execution reverted: missing selector")
	}

	method, err := d.abi.MethodById(data[:4])
	if err != nil {
		return nil, fmt.Errorf("execution reverted: %w", err)
	}

	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, fmt.Errorf("execution reverted: %w", err)
	}

	handler, ok := d.handlers[method.Name]
	if !ok {
		return nil, fmt.Errorf("execution reverted: %s not simulated", method.Name)
	}

	call.Args = args
	out, err := handler(call)
	if err != nil {
		return nil, fmt.Errorf("execution reverted: %w", err)
	}

	return method.Outputs.Pack(out...)
}
