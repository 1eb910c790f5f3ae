package core

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	mathbig "math/big"

	"github.com/anoideaopen/market/core/config"
	"github.com/anoideaopen/market/core/telemetry"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.opentelemetry.io/otel/trace"
)

// Backend is the node connection every call is issued against.
// *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// Dial connects to the node at rawurl. Timeouts are those of the transport
// and of ctx; the sdk adds none.
func Dial(ctx context.Context, rawurl string) (*ethclient.Client, error) {
	if rawurl == "" {
		return nil, ErrEndpointEmpty
	}

	client, err := ethclient.DialContext(ctx, rawurl)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", rawurl, err)
	}
	return client, nil
}

// NewFromConfig dials the configured node and returns a gateway using the
// configured chain defaults. With a nil key the gateway can only query, unless
// the caller passes signers in TxParams. A configured collector installs a
// trace provider that Close shuts down.
func NewFromConfig(ctx context.Context, cfg *config.Config, key *ecdsa.PrivateKey, opts ...Option) (*Gateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var tp trace.TracerProvider
	if cfg.Telemetry.Collector != nil {
		var err error
		if tp, err = telemetry.InstallTraceProvider(ctx, cfg.Telemetry.Collector, cfg.Telemetry.ServiceName); err != nil {
			return nil, fmt.Errorf("installing trace provider: %w", err)
		}
	}

	client, defaults, err := connect(ctx, cfg, key)
	if err != nil {
		if s, ok := tp.(shutdowner); ok {
			_ = s.Shutdown(ctx)
		}
		return nil, err
	}

	base := []Option{
		WithDefaults(defaults),
		WithCache(cfg.HandleCacheSize()),
		WithWaitMined(cfg.WaitMined),
	}
	if tp != nil {
		base = append(base, withProvider(tp))
	}
	return New(client, append(base, opts...)...), nil
}

// connect dials the configured node and builds the configured defaults.
func connect(ctx context.Context, cfg *config.Config, key *ecdsa.PrivateKey) (*ethclient.Client, TxParams, error) {
	client, err := Dial(ctx, cfg.Endpoint)
	if err != nil {
		return nil, TxParams{}, err
	}

	gasPrice, err := cfg.GasPriceWei()
	if err != nil {
		client.Close()
		return nil, TxParams{}, err
	}
	defaults := TxParams{GasLimit: cfg.GasLimit, GasPrice: gasPrice}

	if key != nil {
		chainID := new(mathbig.Int).SetUint64(cfg.ChainID)
		if cfg.ChainID == 0 {
			if chainID, err = client.ChainID(ctx); err != nil {
				client.Close()
				return nil, TxParams{}, fmt.Errorf("fetching chain id: %w", err)
			}
		}

		keyed, err := KeyedParams(key, chainID)
		if err != nil {
			client.Close()
			return nil, TxParams{}, err
		}
		defaults.From, defaults.Signer = keyed.From, keyed.Signer
	}

	return client, defaults, nil
}
