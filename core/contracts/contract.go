package contracts

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// opPush4 is the EVM opcode a solidity dispatcher uses to load a method selector.
const opPush4 = 0x63

var (
	// ErrNoCode is returned when no contract is deployed at the address.
	ErrNoCode = bind.ErrNoCode
	// ErrInterfaceMismatch is returned when the deployed code does not
	// dispatch a method the contract kind requires.
	ErrInterfaceMismatch = errors.New("contract does not implement the expected interface")
	ErrUnknownKind       = errors.New("unknown contract kind")
)

// Contract is a validated handle to a deployed contract.
// It is safe for concurrent use.
type Contract struct {
	Reference
	bound *bind.BoundContract
}

// Validate checks that code is deployed at ref.Address and that it dispatches
// every selector of ref.Kind.
func Validate(ctx context.Context, caller bind.ContractCaller, ref Reference) error {
	selectors, err := ref.Kind.Selectors()
	if err != nil {
		return err
	}

	code, err := caller.CodeAt(ctx, ref.Address, nil)
	if err != nil {
		return fmt.Errorf("fetching code of %s: %w", ref, err)
	}
	if len(code) == 0 {
		return fmt.Errorf("%s: %w", ref, ErrNoCode)
	}

	for _, id := range selectors {
		if !bytes.Contains(code, append([]byte{opPush4}, id...)) {
			return fmt.Errorf("%s does not dispatch 0x%x: %w", ref, id, ErrInterfaceMismatch)
		}
	}

	return nil
}

// Resolve validates ref against the chain and binds it to backend.
func Resolve(ctx context.Context, backend bind.ContractBackend, ref Reference) (*Contract, error) {
	if err := Validate(ctx, backend, ref); err != nil {
		return nil, err
	}

	parsed, err := ref.Kind.ABI()
	if err != nil {
		return nil, err
	}

	return &Contract{
		Reference: ref,
		bound:     bind.NewBoundContract(ref.Address, *parsed, backend, backend, backend),
	}, nil
}

// IsStale reports whether err means the handle no longer matches the chain
// and must be resolved again.
func IsStale(err error) bool {
	return errors.Is(err, ErrNoCode) || errors.Is(err, ErrInterfaceMismatch)
}

func (c *Contract) call(opts *bind.CallOpts, method string, params ...interface{}) ([]interface{}, error) {
	var out []interface{}
	if err := c.bound.Call(opts, &out, method, params...); err != nil {
		return nil, fmt.Errorf("calling %s on %s: %w", method, c.Reference, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("calling %s on %s: empty result", method, c.Reference)
	}
	return out, nil
}

func (c *Contract) transact(opts *bind.TransactOpts, method string, params ...interface{}) (*types.Transaction, error) {
	tx, err := c.bound.Transact(opts, method, params...)
	if err != nil {
		return nil, fmt.Errorf("building %s on %s: %w", method, c.Reference, err)
	}
	return tx, nil
}

func (c *Contract) callAddress(opts *bind.CallOpts, method string, params ...interface{}) (common.Address, error) {
	out, err := c.call(opts, method, params...)
	if err != nil {
		return common.Address{}, err
	}
	addr, ok := out[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("calling %s on %s: unexpected result type %T", method, c.Reference, out[0])
	}
	return addr, nil
}

func (c *Contract) callBool(opts *bind.CallOpts, method string, params ...interface{}) (bool, error) {
	out, err := c.call(opts, method, params...)
	if err != nil {
		return false, err
	}
	v, ok := out[0].(bool)
	if !ok {
		return false, fmt.Errorf("calling %s on %s: unexpected result type %T", method, c.Reference, out[0])
	}
	return v, nil
}
