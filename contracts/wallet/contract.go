package wallet

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/neo-wallet-contract/common"
	"github.com/nspcc-dev/neo-wallet-contract/contracts/wallet/walletconst"
)

// Identity is a withdrawal recipient that may be either a plain address or a
// deployed contract.
type Identity struct {
	// Kind is walletconst.IdentityAddress or walletconst.IdentityContract.
	Kind int
	// Hash is the script hash of the account or the contract.
	Hash interop.Hash160
}

const (
	ownerKey   = 'o'
	balanceKey = 'b'
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()

	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	var owner interop.Hash160
	if data != nil {
		owner = data.(interop.Hash160)
	}

	if len(owner) == 0 {
		owner = runtime.GetScriptContainer().Sender
	}

	if len(owner) != interop.Hash160Len {
		panic("incorrect length of owner script hash")
	}

	storage.Put(ctx, ownerKey, owner)

	runtime.Log("wallet contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the contract owner.
func Update(nefFile, manifest []byte, data any) {
	common.CheckOwnerWitness(getOwner(storage.GetReadOnlyContext()))

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("wallet contract updated")
}

// InitializeBalance sets tracked balance to the given value and returns it.
// Funds held by the contract account are not touched.
//
// It produces BalanceInitialized notification.
func InitializeBalance(value int) int {
	if value < 0 {
		panic(walletconst.ErrNegativeValue)
	}

	ctx := storage.GetContext()
	storage.Put(ctx, balanceKey, value)

	runtime.Notify(walletconst.BalanceInitializedEvent, value)

	return value
}

// ReadBalance returns tracked balance of the wallet.
func ReadBalance() int {
	return getBalance(storage.GetReadOnlyContext())
}

// HeldFunds returns the amount of GAS actually held by the contract account.
// It may differ from ReadBalance since the tracked balance can be
// reinitialized at any time.
func HeldFunds() int {
	return gas.BalanceOf(runtime.GetExecutingScriptHash())
}

// Owner returns the account allowed to withdraw funds.
func Owner() interop.Hash160 {
	return getOwner(storage.GetReadOnlyContext())
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// Anyone can deposit funds, every received amount is added to the tracked
// balance.
//
// It produces FundsReceived notification.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(gas.Hash) {
		panic(walletconst.ErrInvalidAsset)
	}

	checkAmount(amount)

	ctx := storage.GetContext()
	storage.Put(ctx, balanceKey, getBalance(ctx)+amount)

	runtime.Notify(walletconst.FundsReceivedEvent, from, amount)
}

// SendFundsAddr transfers the given amount of GAS from the contract account
// to the address. It can be invoked only by the owner.
//
// It produces FundsSent notification.
func SendFundsAddr(amount int, to interop.Hash160) {
	ctx := storage.GetContext()

	checkWithdrawer(ctx)
	checkAmount(amount)

	if len(to) != interop.Hash160Len {
		panic(walletconst.ErrInvalidRecipient)
	}

	withdraw(ctx, amount, to)
}

// SendFundsIden transfers the given amount of GAS from the contract account
// to the identity. Contract identities must refer to a deployed contract.
// It can be invoked only by the owner.
//
// It produces FundsSent notification.
func SendFundsIden(amount int, to Identity) {
	ctx := storage.GetContext()

	checkWithdrawer(ctx)
	checkAmount(amount)

	if len(to.Hash) != interop.Hash160Len {
		panic(walletconst.ErrInvalidRecipient)
	}

	switch to.Kind {
	case walletconst.IdentityAddress:
	case walletconst.IdentityContract:
		if management.GetContract(to.Hash) == nil {
			panic(walletconst.ErrUnknownContract)
		}
	default:
		panic(walletconst.ErrInvalidRecipient)
	}

	withdraw(ctx, amount, to.Hash)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// checkWithdrawer aborts unless the owner has witnessed the invocation.
func checkWithdrawer(ctx storage.Context) {
	common.CheckOwnerWitness(getOwner(ctx))
}

func checkAmount(amount int) {
	if amount <= 0 {
		panic(walletconst.ErrZeroAmount)
	}
}

func withdraw(ctx storage.Context, amount int, to interop.Hash160) {
	self := runtime.GetExecutingScriptHash()
	if to.Equals(self) {
		panic(walletconst.ErrInvalidRecipient)
	}

	if gas.BalanceOf(self) < amount {
		panic(walletconst.ErrInsufficientFunds)
	}

	// tracked balance is advisory and may be lower than held funds
	tracked := getBalance(ctx)
	if tracked < amount {
		tracked = 0
	} else {
		tracked -= amount
	}
	storage.Put(ctx, balanceKey, tracked)

	if !gas.Transfer(self, to, amount, nil) {
		panic("failed to transfer funds, aborting")
	}

	runtime.Log("funds have been transferred")
	runtime.Notify(walletconst.FundsSentEvent, to, amount)
}

func getBalance(ctx storage.Context) int {
	balance := storage.Get(ctx, balanceKey)
	if balance != nil {
		return balance.(int)
	}

	return 0
}

func getOwner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, ownerKey).(interop.Hash160)
}
