package wallet

import (
	"errors"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-wallet-contract/contracts/wallet/walletconst"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	require.NoError(t, ParseError(nil))

	other := errors.New("some RPC error")
	require.Equal(t, other, ParseError(other))

	for _, tc := range []struct {
		msg string
		exp error
	}{
		{walletconst.ErrZeroAmount, ErrZeroAmount},
		{walletconst.ErrInvalidAsset, ErrInvalidAsset},
		{walletconst.ErrInsufficientFunds, ErrInsufficientFunds},
		{walletconst.ErrUnauthorized, ErrUnauthorized},
		{walletconst.ErrUnknownContract, ErrUnknownContract},
		{walletconst.ErrInvalidRecipient, ErrInvalidRecipient},
		{walletconst.ErrNegativeValue, ErrNegativeValue},
	} {
		src := errors.New(`script failed (FAULT state) due to an error: at instruction 42 (THROW): unhandled exception: "` + tc.msg + `"`)
		err := ParseError(src)
		require.ErrorIs(t, err, tc.exp, tc.msg)
		require.ErrorIs(t, err, src, tc.msg)

		for _, e := range contractErrors {
			if e != tc.exp {
				require.NotErrorIs(t, err, e, tc.msg)
			}
		}
	}
}

func TestCheckExecution(t *testing.T) {
	require.Error(t, CheckExecution(nil))

	res := &state.AppExecResult{
		Container: util.Uint256{1, 2, 3},
		Execution: state.Execution{VMState: vmstate.Halt},
	}
	require.NoError(t, CheckExecution(res))

	res.VMState = vmstate.Fault
	res.FaultException = `at instruction 7 (THROW): unhandled exception: "insufficient funds"`
	err := CheckExecution(res)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	res.FaultException = "ABORT"
	err = CheckExecution(res)
	require.Error(t, err)
	for _, e := range contractErrors {
		require.NotErrorIs(t, err, e)
	}
}
