package core

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Input and outcome errors wrapped by ValidationError and TransactionError.
var (
	ErrInvalidAddress    = errors.New("invalid address")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	ErrNoSigner          = errors.New("transaction parameters carry no signer")
	ErrReverted          = errors.New("transaction reverted")
	ErrEndpointEmpty     = errors.New("node endpoint is empty")
)

// ValidationError is returned when a call is refused before anything is sent:
// malformed input, or a contract reference that failed validation.
type ValidationError struct {
	Op      string
	Address string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: validating %s: %v", e.Op, e.Address, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// TransactionError is returned when a state-changing call could not be built,
// was rejected by the node, or reverted on chain.
type TransactionError struct {
	Op      string
	Address string
	// TxHash is zero when the transaction never reached the node.
	TxHash common.Hash
	Err    error
}

func (e *TransactionError) Error() string {
	if e.TxHash == (common.Hash{}) {
		return fmt.Sprintf("%s: transaction to %s: %v", e.Op, e.Address, e.Err)
	}
	return fmt.Sprintf("%s: transaction %s to %s: %v", e.Op, e.TxHash.Hex(), e.Address, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// QueryError is the failure of a read-only call.
type QueryError struct {
	Op      string
	Address string
	Err     error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: querying %s: %v", e.Op, e.Address, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
