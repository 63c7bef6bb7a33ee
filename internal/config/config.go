/*
Package config loads walletctl configuration: RPC endpoint of the Neo node,
private keys of the accounts to work with and the Wallet contract address.

Configuration is read from a YAML file, then environment variables override
it:

	WALLET_RPC        RPC endpoint
	WALLET_CONTRACT   contract address (LE hex, Neo address or NNS domain)
	WALLET_SECRET0..N private keys (WIF or hex), index 0 is the owner
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"gopkg.in/yaml.v3"
)

const (
	envRPC      = "WALLET_RPC"
	envContract = "WALLET_CONTRACT"
	envSecret   = "WALLET_SECRET"

	defaultEndpoint       = "http://localhost:30333"
	defaultDialTimeout    = 15 * time.Second
	defaultRequestTimeout = 15 * time.Second
	defaultWaitTimeout    = time.Minute
)

// ErrNoKeys is returned when no private keys are configured.
var ErrNoKeys = errors.New("no private keys configured")

// RPC groups parameters of the connection to the Neo node.
type RPC struct {
	Endpoint       string        `yaml:"endpoint"`
	DialTimeout    time.Duration `yaml:"dial_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// WaitTimeout limits waiting for transaction inclusion.
	WaitTimeout time.Duration `yaml:"wait_timeout"`
}

// Deploy groups contract deployment parameters.
type Deploy struct {
	// Source is a directory with contract sources to compile.
	Source string `yaml:"source"`
	// NEF and Manifest are paths to prebuilt contract files, they take
	// precedence over Source.
	NEF      string `yaml:"nef"`
	Manifest string `yaml:"manifest"`
	// Salt makes every deployment of the same contract produce a new
	// address.
	Salt bool `yaml:"salt"`
}

// Config is a walletctl configuration.
type Config struct {
	RPC      RPC      `yaml:"rpc"`
	Keys     []string `yaml:"keys"`
	Contract string   `yaml:"contract"`
	Deploy   Deploy   `yaml:"deploy"`
}

// Default returns configuration with default values.
func Default() *Config {
	return &Config{
		RPC: RPC{
			Endpoint:       defaultEndpoint,
			DialTimeout:    defaultDialTimeout,
			RequestTimeout: defaultRequestTimeout,
			WaitTimeout:    defaultWaitTimeout,
		},
		Deploy: Deploy{
			Source: "contracts/wallet",
			Salt:   true,
		},
	}
}

// Load reads configuration from the YAML file at path and applies
// environment overrides. Empty path means defaults only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		err = yaml.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv(os.LookupEnv)

	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(envRPC); ok && v != "" {
		c.RPC.Endpoint = v
	}

	if v, ok := lookup(envContract); ok && v != "" {
		c.Contract = v
	}

	var secrets []string
	for i := 0; ; i++ {
		v, ok := lookup(envSecret + strconv.Itoa(i))
		if !ok || v == "" {
			break
		}
		secrets = append(secrets, v)
	}

	if len(secrets) > 0 {
		c.Keys = secrets
	}
}

// Accounts returns accounts for all configured private keys in the same
// order. The first one is the owner.
func (c *Config) Accounts() ([]*wallet.Account, error) {
	if len(c.Keys) == 0 {
		return nil, ErrNoKeys
	}

	res := make([]*wallet.Account, len(c.Keys))
	for i := range c.Keys {
		pk, err := ParsePrivateKey(c.Keys[i])
		if err != nil {
			return nil, fmt.Errorf("key #%d: %w", i, err)
		}

		res[i] = wallet.NewAccountFromPrivateKey(pk)
	}

	return res, nil
}

// ParsePrivateKey decodes private key given either in WIF or in hex.
func ParsePrivateKey(s string) (*keys.PrivateKey, error) {
	pk, errWIF := keys.NewPrivateKeyFromWIF(s)
	if errWIF == nil {
		return pk, nil
	}

	pk, errHex := keys.NewPrivateKeyFromHex(s)
	if errHex == nil {
		return pk, nil
	}

	return nil, fmt.Errorf("neither WIF (%w) nor hex (%w)", errWIF, errHex)
}
