package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/gas"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-wallet-contract/contracts"
	"github.com/nspcc-dev/neo-wallet-contract/deploy"
	"github.com/nspcc-dev/neo-wallet-contract/rpc/nns"
	"github.com/nspcc-dev/neo-wallet-contract/rpc/wallet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newDeployCommand(a *app) *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy Wallet contract",
		Long: `Deploy Wallet contract compiled from the configured sources or read from
prebuilt NEF and manifest files. Unless salt is disabled in the configuration,
every deployment gets a new contract address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var prm deploy.Prm

			if owner != "" {
				h, err := nns.AddressFromRecord(owner)
				if err != nil {
					return fmt.Errorf("invalid owner %q: %w", owner, err)
				}
				prm.Owner = h
			}

			ctr, err := loadContract(a)
			if err != nil {
				return err
			}

			c, err := a.dial(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			act, err := a.actor(c)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.RPC.WaitTimeout)
			defer cancel()

			prm.Logger = a.log
			prm.Actor = act
			prm.Contract = ctr
			prm.Salt = a.cfg.Deploy.Salt

			res, err := deploy.Deploy(ctx, prm)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Contract: %s\n", res.Hash.StringLE())
			fmt.Fprintf(w, "Address:  %s\n", address.Uint160ToString(res.Hash))
			fmt.Fprintf(w, "Name:     %s\n", res.Name)
			fmt.Fprintf(w, "Tx:       %s\n", res.TxHash.StringLE())

			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "wallet owner (address or LE hex), signer by default")

	return cmd
}

func loadContract(a *app) (contracts.Contract, error) {
	d := a.cfg.Deploy
	if d.NEF != "" || d.Manifest != "" {
		a.log.Info("reading contract files", zap.String("nef", d.NEF), zap.String("manifest", d.Manifest))
		return contracts.ReadFiles(d.NEF, d.Manifest)
	}

	a.log.Info("compiling contract", zap.String("source", d.Source))

	return contracts.Compile(d.Source)
}

func newInitBalanceCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init-balance VALUE",
		Short: "Overwrite tracked balance of the wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			c, err := a.dial(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			act, err := a.actor(c)
			if err != nil {
				return err
			}

			h, err := a.contractHash(c)
			if err != nil {
				return err
			}

			txH, vub, err := wallet.New(act, h).InitializeBalance(v)
			_, err = a.wait(cmd.Context(), act, txH, vub, err)
			if err != nil {
				return fmt.Errorf("initialize balance: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Balance initialized: %s\n", formatGAS(v))

			return nil
		},
	}
}

func newReadBalanceCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "read-balance",
		Short: "Print tracked balance of the wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.dial(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			h, err := a.contractHash(c)
			if err != nil {
				return err
			}

			v, err := wallet.NewReader(invoker.New(c, nil), h).ReadBalance()
			if err != nil {
				return fmt.Errorf("read balance: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), v.String())

			return nil
		},
	}
}

func newDepositCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "deposit AMOUNT",
		Short: "Transfer GAS to the wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			c, err := a.dial(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			act, err := a.actor(c)
			if err != nil {
				return err
			}

			h, err := a.contractHash(c)
			if err != nil {
				return err
			}

			txH, vub, err := wallet.New(act, h).Deposit(v)
			_, err = a.wait(cmd.Context(), act, txH, vub, err)
			if err != nil {
				return fmt.Errorf("deposit: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deposited %s\n", formatGAS(v))

			return nil
		},
	}
}

func newSendCommand(a *app) *cobra.Command {
	var (
		to       string
		contract string
		identity bool
	)

	cmd := &cobra.Command{
		Use:   "send AMOUNT",
		Short: "Withdraw GAS from the wallet",
		Long: `Withdraw GAS from the wallet to an address (--to) or to a deployed contract
(--contract). Only the wallet owner can withdraw. Addresses are sent as plain
script hashes unless --identity is given, contracts are always sent as
identities.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			var (
				rcpt util.Uint160
				iden *wallet.Identity
			)
			switch {
			case contract != "":
				rcpt, err = nns.AddressFromRecord(contract)
				if err != nil {
					return fmt.Errorf("invalid contract %q: %w", contract, err)
				}
				id := wallet.ContractIdentity(rcpt)
				iden = &id
			case to != "":
				rcpt, err = nns.AddressFromRecord(to)
				if err != nil {
					return fmt.Errorf("invalid recipient %q: %w", to, err)
				}
				if identity {
					id := wallet.AddressIdentity(rcpt)
					iden = &id
				}
			default:
				return errors.New("recipient is not specified")
			}

			c, err := a.dial(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			act, err := a.actor(c)
			if err != nil {
				return err
			}

			h, err := a.contractHash(c)
			if err != nil {
				return err
			}

			w := wallet.New(act, h)

			txH, vub, err := sendFunds(w, v, rcpt, iden)
			res, err := a.wait(cmd.Context(), act, txH, vub, err)
			if err != nil {
				return fmt.Errorf("send funds: %w", err)
			}

			a.log.Debug("withdrawal accepted", zap.Stringer("tx", res.Container))

			fmt.Fprintf(cmd.OutOrStdout(), "Sent %s to %s\n", formatGAS(v), address.Uint160ToString(rcpt))

			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "recipient address (Neo address or LE hex)")
	cmd.Flags().StringVar(&contract, "contract", "", "recipient contract (Neo address or LE hex)")
	cmd.Flags().BoolVar(&identity, "identity", false, "send to the address as an identity")
	cmd.MarkFlagsMutuallyExclusive("to", "contract")
	cmd.MarkFlagsOneRequired("to", "contract")

	return cmd
}

func sendFunds(w *wallet.Contract, amount *big.Int, to util.Uint160, iden *wallet.Identity) (util.Uint256, uint32, error) {
	if iden != nil {
		return w.SendFundsIden(amount, *iden)
	}

	return w.SendFundsAddr(amount, to)
}

func newBalancesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Print GAS balances of configured accounts and the wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			accs, err := a.cfg.Accounts()
			if err != nil {
				return err
			}

			c, err := a.dial(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			inv := invoker.New(c, nil)
			g := gas.NewReader(inv)
			out := cmd.OutOrStdout()

			for i := range accs {
				h := accs[i].ScriptHash()

				v, err := g.BalanceOf(h)
				if err != nil {
					return fmt.Errorf("GAS balance of %s: %w", accs[i].Address, err)
				}

				fmt.Fprintf(out, "%d %s %s\n", i, accs[i].Address, formatGAS(v))
			}

			if a.cfg.Contract == "" {
				return nil
			}

			h, err := a.contractHash(c)
			if err != nil {
				return err
			}

			return printWallet(out, wallet.NewReader(inv, h))
		},
	}
}

func printWallet(w io.Writer, r *wallet.ContractReader) error {
	tracked, err := r.ReadBalance()
	if err != nil {
		return fmt.Errorf("read balance: %w", err)
	}

	held, err := r.HeldFunds()
	if err != nil {
		return fmt.Errorf("held funds: %w", err)
	}

	owner, err := r.Owner()
	if err != nil {
		return fmt.Errorf("owner: %w", err)
	}

	fmt.Fprintf(w, "wallet %s\n", address.Uint160ToString(r.Hash()))
	fmt.Fprintf(w, "  owner:   %s\n", address.Uint160ToString(owner))
	fmt.Fprintf(w, "  tracked: %s\n", formatGAS(tracked))
	fmt.Fprintf(w, "  held:    %s\n", formatGAS(held))

	return nil
}

func newAddressCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print address forms of configured accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			accs, err := a.cfg.Accounts()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i := range accs {
				h := accs[i].ScriptHash()
				fmt.Fprintf(out, "%d %s LE:%s BE:%s\n", i, accs[i].Address, h.StringLE(), h.StringBE())
			}

			return nil
		},
	}
}
