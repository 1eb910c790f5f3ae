package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/anoideaopen/market/core/telemetry"
	"github.com/anoideaopen/market/core/types/big"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the file configuration.
const (
	EnvEndpoint = "MARKET_RPC_ENDPOINT"
	EnvChainID  = "MARKET_CHAIN_ID"
)

// DefaultCacheSize is the number of validated contract handles a gateway keeps.
const DefaultCacheSize = 128

var ErrCfgBytesEmpty = errors.New("config bytes is empty")

// validation specific errors
var (
	ErrEndpointEmpty    = errors.New("'endpoint' is empty")
	ErrCacheSizeInvalid = errors.New("'cacheSize' must not be negative")
	ErrGasPriceInvalid  = errors.New("'gasPrice' must be a non-negative integer amount of wei")
)

// Config describes how the sdk reaches the node and the chain level
// defaults every transaction starts from.
type Config struct {
	// Endpoint is the node JSON-RPC URL (http, ws or ipc path).
	Endpoint string `yaml:"endpoint"`
	// ChainID is used to sign transactions; 0 asks the node.
	ChainID uint64 `yaml:"chainId"`
	// GasLimit of 0 lets the node estimate.
	GasLimit uint64 `yaml:"gasLimit"`
	// GasPrice in wei; empty lets the node suggest.
	GasPrice string `yaml:"gasPrice"`
	// CacheSize of 0 disables the contract handle cache.
	CacheSize *int `yaml:"cacheSize"`
	// WaitMined makes transactions wait for their receipt.
	WaitMined bool `yaml:"waitMined"`

	Telemetry Telemetry `yaml:"telemetry"`
}

type Telemetry struct {
	Collector   *telemetry.CollectorEndpoint `yaml:"collector"`
	ServiceName string                       `yaml:"serviceName"`
}

// FromBytes parses the provided byte slice containing YAML-encoded configuration,
// applies environment overrides and validates the result.
func FromBytes(cfgBytes []byte) (*Config, error) {
	if len(cfgBytes) == 0 {
		return nil, ErrCfgBytesEmpty
	}

	cfg := new(Config)
	if err := yaml.Unmarshal(cfgBytes, cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	cfgBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading raw config: %w", err)
	}

	return FromBytes(cfgBytes)
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return ErrEndpointEmpty
	}

	if c.CacheSize != nil && *c.CacheSize < 0 {
		return ErrCacheSizeInvalid
	}

	if _, err := c.GasPriceWei(); err != nil {
		return err
	}

	return nil
}

// GasPriceWei returns the default gas price, nil when unset.
func (c *Config) GasPriceWei() (*big.Int, error) {
	if c.GasPrice == "" {
		return nil, nil
	}

	price, ok := new(big.Int).SetString(c.GasPrice, 10)
	if !ok || price.Validate() != nil {
		return nil, fmt.Errorf("%w: %q", ErrGasPriceInvalid, c.GasPrice)
	}

	return price, nil
}

// HandleCacheSize returns the configured cache size, DefaultCacheSize when unset.
func (c *Config) HandleCacheSize() int {
	if c.CacheSize == nil {
		return DefaultCacheSize
	}
	return *c.CacheSize
}

func (c *Config) applyEnv() error {
	if endpoint, ok := os.LookupEnv(EnvEndpoint); ok && endpoint != "" {
		c.Endpoint = endpoint
	}

	if chainID, ok := os.LookupEnv(EnvChainID); ok && chainID != "" {
		id, err := strconv.ParseUint(chainID, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvChainID, err)
		}
		c.ChainID = id
	}

	return nil
}
