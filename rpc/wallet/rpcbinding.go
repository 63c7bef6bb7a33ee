// Package wallet contains RPC wrappers for Wallet contract.
package wallet

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/gas"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-wallet-contract/contracts/wallet/walletconst"
)

// Identity is a withdrawal recipient accepted by `sendFundsIden` method.
type Identity struct {
	Kind int64
	Hash util.Uint160
}

// AddressIdentity returns Identity of a plain account.
func AddressIdentity(h util.Uint160) Identity {
	return Identity{Kind: walletconst.IdentityAddress, Hash: h}
}

// ContractIdentity returns Identity of a deployed contract.
func ContractIdentity(h util.Uint160) Identity {
	return Identity{Kind: walletconst.IdentityContract, Hash: h}
}

func (i Identity) param() []any {
	return []any{i.Kind, i.Hash}
}

// BalanceInitializedEvent represents "BalanceInitialized" event emitted by the contract.
type BalanceInitializedEvent struct {
	Value *big.Int
}

// FundsReceivedEvent represents "FundsReceived" event emitted by the contract.
type FundsReceivedEvent struct {
	From   util.Uint160
	Amount *big.Int
}

// FundsSentEvent represents "FundsSent" event emitted by the contract.
type FundsSentEvent struct {
	To     util.Uint160
	Amount *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
	Sender() util.Uint160
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Hash returns address of the contract.
func (c *ContractReader) Hash() util.Uint160 {
	return c.hash
}

// ReadBalance invokes `readBalance` method of contract.
func (c *ContractReader) ReadBalance() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "readBalance"))
}

// HeldFunds invokes `heldFunds` method of contract.
func (c *ContractReader) HeldFunds() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "heldFunds"))
}

// Owner invokes `owner` method of contract.
func (c *ContractReader) Owner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "owner"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// InitializeBalance creates a transaction invoking `initializeBalance` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) InitializeBalance(value *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "initializeBalance", value)
}

// InitializeBalanceTransaction creates a transaction invoking `initializeBalance` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) InitializeBalanceTransaction(value *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "initializeBalance", value)
}

// InitializeBalanceUnsigned creates a transaction invoking `initializeBalance` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) InitializeBalanceUnsigned(value *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "initializeBalance", nil, value)
}

// Deposit creates a transaction transferring the given amount of GAS from the
// actor's account to the contract. This is how `onNEP17Payment` method is
// reached. This transaction is signed and immediately sent to the network.
func (c *Contract) Deposit(amount *big.Int) (util.Uint256, uint32, error) {
	return gas.New(c.actor).Transfer(c.actor.Sender(), c.hash, amount, nil)
}

// DepositTransaction is like Deposit, but the transaction is signed and
// returned to the caller instead of being sent.
func (c *Contract) DepositTransaction(amount *big.Int) (*transaction.Transaction, error) {
	return gas.New(c.actor).TransferTransaction(c.actor.Sender(), c.hash, amount, nil)
}

// DepositUnsigned is like Deposit, but the transaction is not signed.
func (c *Contract) DepositUnsigned(amount *big.Int) (*transaction.Transaction, error) {
	return gas.New(c.actor).TransferUnsigned(c.actor.Sender(), c.hash, amount, nil)
}

// SendFundsAddr creates a transaction invoking `sendFundsAddr` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SendFundsAddr(amount *big.Int, to util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "sendFundsAddr", amount, to)
}

// SendFundsAddrTransaction creates a transaction invoking `sendFundsAddr` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SendFundsAddrTransaction(amount *big.Int, to util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "sendFundsAddr", amount, to)
}

// SendFundsAddrUnsigned creates a transaction invoking `sendFundsAddr` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SendFundsAddrUnsigned(amount *big.Int, to util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "sendFundsAddr", nil, amount, to)
}

// SendFundsIden creates a transaction invoking `sendFundsIden` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SendFundsIden(amount *big.Int, to Identity) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "sendFundsIden", amount, to.param())
}

// SendFundsIdenTransaction creates a transaction invoking `sendFundsIden` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SendFundsIdenTransaction(amount *big.Int, to Identity) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "sendFundsIden", amount, to.param())
}

// SendFundsIdenUnsigned creates a transaction invoking `sendFundsIden` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SendFundsIdenUnsigned(amount *big.Int, to Identity) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "sendFundsIden", nil, amount, to.param())
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nefFile []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nefFile, manifest, data)
}

// BalanceInitializedEventsFromApplicationLog retrieves a set of all emitted events
// with "BalanceInitialized" name from the provided [result.ApplicationLog].
func BalanceInitializedEventsFromApplicationLog(log *result.ApplicationLog) ([]*BalanceInitializedEvent, error) {
	var res []*BalanceInitializedEvent
	err := eventsFromApplicationLog(log, walletconst.BalanceInitializedEvent, func(item *stackitem.Array) error {
		event := new(BalanceInitializedEvent)
		if err := event.FromStackItem(item); err != nil {
			return err
		}
		res = append(res, event)
		return nil
	})
	return res, err
}

// FromStackItem converts provided [stackitem.Array] to BalanceInitializedEvent or
// returns an error if it's not possible to do to so.
func (e *BalanceInitializedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 1)
	if err != nil {
		return err
	}

	e.Value, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field Value: %w", err)
	}

	return nil
}

// FundsReceivedEventsFromApplicationLog retrieves a set of all emitted events
// with "FundsReceived" name from the provided [result.ApplicationLog].
func FundsReceivedEventsFromApplicationLog(log *result.ApplicationLog) ([]*FundsReceivedEvent, error) {
	var res []*FundsReceivedEvent
	err := eventsFromApplicationLog(log, walletconst.FundsReceivedEvent, func(item *stackitem.Array) error {
		event := new(FundsReceivedEvent)
		if err := event.FromStackItem(item); err != nil {
			return err
		}
		res = append(res, event)
		return nil
	})
	return res, err
}

// FromStackItem converts provided [stackitem.Array] to FundsReceivedEvent or
// returns an error if it's not possible to do to so.
func (e *FundsReceivedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 2)
	if err != nil {
		return err
	}

	e.From, err = itemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field From: %w", err)
	}

	e.Amount, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// FundsSentEventsFromApplicationLog retrieves a set of all emitted events
// with "FundsSent" name from the provided [result.ApplicationLog].
func FundsSentEventsFromApplicationLog(log *result.ApplicationLog) ([]*FundsSentEvent, error) {
	var res []*FundsSentEvent
	err := eventsFromApplicationLog(log, walletconst.FundsSentEvent, func(item *stackitem.Array) error {
		event := new(FundsSentEvent)
		if err := event.FromStackItem(item); err != nil {
			return err
		}
		res = append(res, event)
		return nil
	})
	return res, err
}

// FromStackItem converts provided [stackitem.Array] to FundsSentEvent or
// returns an error if it's not possible to do to so.
func (e *FundsSentEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 2)
	if err != nil {
		return err
	}

	e.To, err = itemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field To: %w", err)
	}

	e.Amount, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

func eventsFromApplicationLog(log *result.ApplicationLog, name string, f func(*stackitem.Array) error) error {
	if log == nil {
		return errors.New("nil application log")
	}

	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != name {
				continue
			}
			err := f(e.Item)
			if err != nil {
				return fmt.Errorf("failed to deserialize %s event from stackitem (execution #%d, event #%d): %w", name, i, j, err)
			}
		}
	}

	return nil
}

func eventFields(item *stackitem.Array, n int) ([]stackitem.Item, error) {
	if item == nil {
		return nil, errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return nil, errors.New("not an array")
	}
	if len(arr) != n {
		return nil, errors.New("wrong number of structure elements")
	}
	return arr, nil
}

func itemToUint160(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	return util.Uint160DecodeBytesBE(b)
}
