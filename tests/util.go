package tests

import (
	"crypto/rand"
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

const (
	walletPath    = "../contracts/wallet"
	gasrecvPath   = "../internal/testcontracts/gasrecv"
	versionedPath = "../internal/testcontracts/versioned"
)

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

func randomHash(t testing.TB) util.Uint160 {
	var h util.Uint160
	_, err := rand.Read(h[:])
	require.NoError(t, err)
	return h
}

// walletEnv is a chain with a freshly deployed Wallet contract.
type walletEnv struct {
	e *neotest.Executor

	hash  util.Uint160
	owner neotest.Signer

	// wallet is signed by the owner.
	wallet *neotest.ContractInvoker
}

// newWalletEnv deploys Wallet contract owned by a new account holding
// 100 GAS.
func newWalletEnv(t *testing.T) walletEnv {
	e := newExecutor(t)
	owner := e.NewAccount(t)

	c := neotest.CompileFile(t, e.CommitteeHash, walletPath, path.Join(walletPath, "config.yml"))
	e.DeployContract(t, c, owner.ScriptHash())

	return walletEnv{
		e:      e,
		hash:   c.Hash,
		owner:  owner,
		wallet: e.CommitteeInvoker(c.Hash).WithSigners(owner),
	}
}

// as returns Wallet invoker signed by s.
func (w walletEnv) as(s neotest.Signer) *neotest.ContractInvoker {
	return w.wallet.WithSigners(s)
}

// gas returns GAS invoker signed by s.
func (w walletEnv) gas(t testing.TB, s neotest.Signer) *neotest.ContractInvoker {
	return w.e.NewInvoker(w.e.NativeHash(t, nativenames.Gas), s)
}

// deposit transfers amount of GAS from s to the wallet.
func (w walletEnv) deposit(t testing.TB, s neotest.Signer, amount int64) util.Uint256 {
	return w.gas(t, s).Invoke(t, true, "transfer", s.ScriptHash(), w.hash, amount, nil)
}

func (w walletEnv) checkBalances(t testing.TB, tracked, held int64) {
	w.wallet.Invoke(t, tracked, "readBalance")
	w.wallet.Invoke(t, held, "heldFunds")
}
