// Package core is a client for the MARKET Protocol contracts: the collateral
// pool, the contract registry whitelist and the derivative contracts.
//
// Every operation resolves and validates its target contract, issues exactly
// one remote call and normalizes the outcome. Queries never fail: they return
// an absent value and log the reason. Transactions report failures as
// *ValidationError or *TransactionError, except AddAddressToWhitelist which
// reports a rejected send as false.
//
// The package-level functions open no shared state and resolve the contract
// on every call. A Gateway keeps its backend and a cache of validated
// contract handles, and is safe for concurrent use.
package core

import (
	"context"
	"errors"
	"strings"

	"github.com/anoideaopen/market/core/config"
	"github.com/anoideaopen/market/core/contracts"
	"github.com/anoideaopen/market/core/logger"
	"github.com/anoideaopen/market/core/telemetry"
	"github.com/anoideaopen/market/version"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const spanPrefix = "market/"

// Gateway issues contract calls through one backend.
type Gateway struct {
	backend   Backend
	log       logrus.FieldLogger
	tracer    trace.Tracer
	handles   *handleCache
	defaults  TxParams
	waitMined bool
	provider  shutdowner
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger replaces the sdk logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(g *Gateway) {
		g.log = log
	}
}

// WithTracerProvider starts spans from tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(g *Gateway) {
		g.tracer = telemetry.Tracer(tp)
	}
}

// withProvider starts spans from a provider the gateway owns and shuts down
// on Close.
func withProvider(tp trace.TracerProvider) Option {
	return func(g *Gateway) {
		g.tracer = telemetry.Tracer(tp)
		if s, ok := tp.(shutdowner); ok {
			g.provider = s
		}
	}
}

// WithCache sets how many validated contract handles are kept. 0 disables
// the cache and every call validates its contract again.
func WithCache(size int) Option {
	return func(g *Gateway) {
		g.handles = newHandleCache(size)
	}
}

// WithDefaults sets the parameters unset TxParams fields fall back to.
func WithDefaults(params TxParams) Option {
	return func(g *Gateway) {
		g.defaults = params
	}
}

// WithWaitMined makes transactions wait for their receipt, so that a revert
// is reported as ErrReverted.
func WithWaitMined(wait bool) Option {
	return func(g *Gateway) {
		g.waitMined = wait
	}
}

// New returns a gateway issuing calls through backend.
func New(backend Backend, opts ...Option) *Gateway {
	g := &Gateway{
		backend: backend,
		log:     logger.Logger(),
		handles: newHandleCache(config.DefaultCacheSize),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.tracer == nil {
		g.tracer = telemetry.Tracer(nil)
	}
	g.log = g.log.WithField("sdk", version.SDK())

	return g
}

// Close flushes and shuts down the trace provider the gateway owns, then
// closes the backend when it can be closed.
func (g *Gateway) Close() error {
	var err error
	if g.provider != nil {
		err = g.provider.Shutdown(context.Background())
	}
	if c, ok := g.backend.(interface{ Close() }); ok {
		c.Close()
	}
	return err
}

// Forget drops the cached handle of the contract at address, if any.
func (g *Gateway) Forget(kind contracts.Kind, address string) bool {
	addr, err := parseAddress(address)
	if err != nil {
		return false
	}
	return g.handles.forget(contracts.Reference{Kind: kind, Address: addr})
}

// call carries the span and log context of one operation.
type call struct {
	span trace.Span
	log  logrus.FieldLogger
}

func (g *Gateway) begin(
	ctx context.Context,
	op string,
	methodType telemetry.MethodTypeNum,
	kind contracts.Kind,
	address string,
) (context.Context, *call) {
	attrs := append(telemetry.Contract(contracts.Reference{Kind: kind, Address: common.HexToAddress(address)}),
		telemetry.MethodType(methodType))
	ctx, span := g.tracer.Start(ctx, spanPrefix+op, trace.WithAttributes(attrs...))

	return ctx, &call{
		span: span,
		log: g.log.WithFields(logrus.Fields{
			"op":          op,
			"contract":    kind.String(),
			"address":     address,
			"method_type": methodType.String(),
			"call_id":     uuid.NewString(),
		}),
	}
}

func (c *call) sent(tx *types.Transaction) {
	c.span.SetAttributes(telemetry.TxHash(tx.Hash().Hex()))
	c.log = c.log.WithField("tx", tx.Hash().Hex())
}

func (c *call) end(err error) {
	defer c.span.End()

	if err != nil {
		c.span.RecordError(err)
		c.span.SetStatus(codes.Error, err.Error())
		c.log.WithError(err).Error("call failed")
		return
	}
	c.log.Debug("call completed")
}

// resolve returns a validated handle of the contract at address, from the
// cache when possible.
func (g *Gateway) resolve(ctx context.Context, op string, kind contracts.Kind, address string) (*contracts.Contract, error) {
	addr, err := parseAddress(address)
	if err != nil {
		return nil, &ValidationError{Op: op, Address: address, Err: err}
	}

	ref := contracts.Reference{Kind: kind, Address: addr}
	if handle, ok := g.handles.get(ref); ok {
		return handle, nil
	}

	handle, err := contracts.Resolve(ctx, g.backend, ref)
	if err != nil {
		return nil, &ValidationError{Op: op, Address: address, Err: err}
	}

	g.handles.add(ref, handle)
	return handle, nil
}

// invalidate drops the handle of ref when err shows it no longer matches the chain.
func (g *Gateway) invalidate(ref contracts.Reference, err error) {
	if contracts.IsStale(err) && g.handles.forget(ref) {
		g.log.WithField("address", ref.Address.Hex()).Debug("dropped stale contract handle")
	}
}

// readCall is one query-class call.
type readCall[T any] struct {
	op      string
	kind    contracts.Kind
	address string
	// check validates the remaining arguments before anything is sent
	check func() error
	read  func(*contracts.Contract, *bind.CallOpts) (T, error)
}

func query[T any](ctx context.Context, g *Gateway, q readCall[T]) (res Result[T]) {
	ctx, c := g.begin(ctx, q.op, telemetry.MethodQuery, q.kind, q.address)
	defer func() { c.end(res.Err()) }()

	if q.check != nil {
		if err := q.check(); err != nil {
			return Failure[T](&ValidationError{Op: q.op, Address: q.address, Err: err})
		}
	}

	handle, err := g.resolve(ctx, q.op, q.kind, q.address)
	if err != nil {
		return Failure[T](err)
	}

	value, err := q.read(handle, &bind.CallOpts{Context: ctx})
	if err != nil {
		g.invalidate(handle.Reference, err)
		return Failure[T](&QueryError{Op: q.op, Address: q.address, Err: err})
	}

	return Success(value)
}

// writeCall is one transaction-class call.
type writeCall struct {
	op      string
	kind    contracts.Kind
	address string
	params  TxParams
	// check validates the remaining arguments before anything is sent
	check func() error
	build func(*contracts.Contract, *bind.TransactOpts) (*types.Transaction, error)
}

func (g *Gateway) transact(ctx context.Context, w writeCall) (res Result[*types.Transaction]) {
	ctx, c := g.begin(ctx, w.op, telemetry.MethodTx, w.kind, w.address)
	defer func() { c.end(res.Err()) }()

	if w.check != nil {
		if err := w.check(); err != nil {
			return Failure[*types.Transaction](&ValidationError{Op: w.op, Address: w.address, Err: err})
		}
	}

	handle, err := g.resolve(ctx, w.op, w.kind, w.address)
	if err != nil {
		return Failure[*types.Transaction](err)
	}

	opts, err := w.params.withDefaults(g.defaults).transactOpts(ctx)
	if err != nil {
		return Failure[*types.Transaction](&ValidationError{Op: w.op, Address: w.address, Err: err})
	}

	tx, err := w.build(handle, opts)
	if err != nil {
		g.invalidate(handle.Reference, err)
		return Failure[*types.Transaction](&TransactionError{Op: w.op, Address: w.address, Err: err})
	}
	c.sent(tx)

	if err = g.backend.SendTransaction(ctx, tx); err != nil {
		return Failure[*types.Transaction](&TransactionError{Op: w.op, Address: w.address, TxHash: tx.Hash(), Err: err})
	}

	if g.waitMined {
		receipt, err := bind.WaitMined(ctx, g.backend, tx)
		if err != nil {
			return Failure[*types.Transaction](&TransactionError{Op: w.op, Address: w.address, TxHash: tx.Hash(), Err: err})
		}
		if receipt.Status == types.ReceiptStatusFailed {
			return Failure[*types.Transaction](&TransactionError{Op: w.op, Address: w.address, TxHash: tx.Hash(), Err: ErrReverted})
		}
	}

	return Success(tx)
}

// raise propagates every failure of a transaction to the caller.
func raise(res Result[*types.Transaction]) (bool, error) {
	if err := res.Err(); err != nil {
		return false, err
	}
	return true, nil
}

// swallow reports a failed send as false. Failures before anything was
// sent still propagate as *ValidationError.
func swallow(res Result[*types.Transaction]) (bool, error) {
	err := res.Err()
	if err == nil {
		return true, nil
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return false, err
	}
	return false, nil
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, ErrInvalidAddress
	}
	return common.HexToAddress(s), nil
}

// hexAddress renders an address the way the registry fixtures list them.
func hexAddress(a common.Address) string {
	return strings.ToLower(a.Hex())
}
