package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/encoding/fixedn"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-wallet-contract/deploy"
	"github.com/nspcc-dev/neo-wallet-contract/internal/config"
	"github.com/nspcc-dev/neo-wallet-contract/rpc/nns"
	"github.com/nspcc-dev/neo-wallet-contract/rpc/wallet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// gasDecimals is the precision of native GAS.
const gasDecimals = 8

// app holds state shared by all commands.
type app struct {
	cfgPath string
	verbose bool
	keyIdx  int

	cfg *config.Config
	log *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := new(app)

	root := &cobra.Command{
		Use:   "walletctl",
		Short: "Wallet contract management tool",
		Long: `walletctl deploys Wallet contract to a Neo network and invokes its methods.

Accounts are loaded from private keys given in the configuration file or in
WALLET_SECRET0..N environment variables, the first one is the wallet owner.
Amounts are given in GAS fractions (1 GAS = 100000000).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error

			a.cfg, err = config.Load(a.cfgPath)
			if err != nil {
				return err
			}

			a.log, err = newLogger(a.verbose)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "", "path to YAML configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "print debug logs")
	root.PersistentFlags().IntVarP(&a.keyIdx, "key", "k", 0, "index of the configured key to sign transactions with")

	root.AddCommand(
		newDeployCommand(a),
		newInitBalanceCommand(a),
		newReadBalanceCommand(a),
		newDepositCommand(a),
		newSendCommand(a),
		newBalancesCommand(a),
		newAddressCommand(a),
	)

	return root
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	c := zap.NewProductionConfig()
	c.Encoding = "console"
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return c.Build()
}

// dial opens connection to the configured RPC endpoint.
func (a *app) dial(ctx context.Context) (*rpcclient.Client, error) {
	c, err := rpcclient.New(ctx, a.cfg.RPC.Endpoint, rpcclient.Options{
		DialTimeout:    a.cfg.RPC.DialTimeout,
		RequestTimeout: a.cfg.RPC.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	err = c.Init()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("init RPC client: %w", err)
	}

	a.log.Debug("connected to RPC endpoint", zap.String("endpoint", a.cfg.RPC.Endpoint))

	return c, nil
}

// actor returns actor signing with the key selected by --key flag.
func (a *app) actor(c *rpcclient.Client) (*actor.Actor, error) {
	accs, err := a.cfg.Accounts()
	if err != nil {
		return nil, err
	}

	if a.keyIdx < 0 || a.keyIdx >= len(accs) {
		return nil, fmt.Errorf("key index %d is out of range [0:%d)", a.keyIdx, len(accs))
	}

	act, err := actor.NewSimple(c, accs[a.keyIdx])
	if err != nil {
		return nil, fmt.Errorf("init actor: %w", err)
	}

	return act, nil
}

// contractHash resolves configured Wallet contract address. It can be
// specified as LE hex script hash, Neo address or NNS domain name.
func (a *app) contractHash(c *rpcclient.Client) (util.Uint160, error) {
	s := a.cfg.Contract
	if s == "" {
		return util.Uint160{}, errors.New("missing contract address, set it in the config or WALLET_CONTRACT")
	}

	h, err := nns.AddressFromRecord(s)
	if err == nil {
		return h, nil
	}

	nnsHash, err := nns.InferHash(c)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("infer NNS contract hash: %w", err)
	}

	h, err = nns.NewReader(invoker.New(c, nil), nnsHash).ResolveContract(s)
	if err != nil {
		return util.Uint160{}, err
	}

	a.log.Debug("contract address resolved through NNS",
		zap.String("domain", s), zap.Stringer("address", h))

	return h, nil
}

// wait waits for the transaction sent by act within configured timeout and
// checks it has been successfully executed.
func (a *app) wait(ctx context.Context, act *actor.Actor, h util.Uint256, vub uint32, err error) (*state.AppExecResult, error) {
	err = wallet.ParseError(err)
	if err != nil {
		return nil, fmt.Errorf("send transaction: %w", err)
	}

	a.log.Info("transaction sent, waiting for acceptance...", zap.Stringer("tx", h), zap.Uint32("vub", vub))

	ctx, cancel := context.WithTimeout(ctx, a.cfg.RPC.WaitTimeout)
	defer cancel()

	res, err := deploy.Wait(ctx, act, h, vub, nil)
	if err != nil {
		return nil, err
	}

	err = wallet.CheckExecution(res)
	if err != nil {
		return res, err
	}

	a.log.Info("transaction successfully executed", zap.Stringer("tx", h))

	return res, nil
}

func parseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q, expected integer number of GAS fractions", s)
	}

	return v, nil
}

func formatGAS(v *big.Int) string {
	return fixedn.ToString(v, gasDecimals) + " GAS"
}
