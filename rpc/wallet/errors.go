package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-wallet-contract/contracts/wallet/walletconst"
)

// Errors corresponding to the Wallet contract failures. Use [errors.Is] to
// check errors returned by [ParseError] and [CheckExecution].
var (
	ErrZeroAmount        = errors.New(walletconst.ErrZeroAmount)
	ErrInvalidAsset      = errors.New(walletconst.ErrInvalidAsset)
	ErrInsufficientFunds = errors.New(walletconst.ErrInsufficientFunds)
	ErrUnauthorized      = errors.New(walletconst.ErrUnauthorized)
	ErrUnknownContract   = errors.New(walletconst.ErrUnknownContract)
	ErrInvalidRecipient  = errors.New(walletconst.ErrInvalidRecipient)
	ErrNegativeValue     = errors.New(walletconst.ErrNegativeValue)
)

var contractErrors = []error{
	ErrZeroAmount,
	ErrInvalidAsset,
	ErrInsufficientFunds,
	ErrUnauthorized,
	ErrUnknownContract,
	ErrInvalidRecipient,
	ErrNegativeValue,
}

// ParseError recognizes the Wallet contract failure in err. Errors of the
// test invocation performed by actors before sending a transaction contain
// the fault exception, so err may come from any sending method. If the
// failure is recognized, the result wraps both the corresponding ErrX and
// err. Otherwise err is returned as is.
func ParseError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	for _, e := range contractErrors {
		if strings.Contains(msg, e.Error()) {
			return fmt.Errorf("%w: %w", e, err)
		}
	}

	return err
}

// CheckExecution returns an error if the persisted transaction execution did
// not end in HALT state. Contract failures are recognized with ParseError.
func CheckExecution(res *state.AppExecResult) error {
	if res == nil {
		return errors.New("nil execution result")
	}

	if res.VMState != vmstate.Halt {
		return ParseError(fmt.Errorf("transaction %s failed (%s state): %s",
			res.Container.StringLE(), res.VMState, res.FaultException))
	}

	return nil
}
