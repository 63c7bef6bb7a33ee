package wallet

import (
	"errors"
	"math/big"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/gas"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-wallet-contract/contracts/wallet/walletconst"
	"github.com/stretchr/testify/require"
)

type call struct {
	contract util.Uint160
	method   string
	params   []any
}

type testAct struct {
	err    error
	res    *result.Invoke
	sender util.Uint160
	calls  []call
	runs   [][]byte
}

func (t *testAct) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	t.calls = append(t.calls, call{contract, operation, params})
	return t.res, t.err
}
func (t *testAct) MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error) {
	t.calls = append(t.calls, call{contract, method, params})
	return new(transaction.Transaction), t.err
}
func (t *testAct) MakeRun(script []byte) (*transaction.Transaction, error) {
	t.runs = append(t.runs, script)
	return new(transaction.Transaction), t.err
}
func (t *testAct) MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error) {
	t.calls = append(t.calls, call{contract, method, params})
	return new(transaction.Transaction), t.err
}
func (t *testAct) MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error) {
	t.runs = append(t.runs, script)
	return new(transaction.Transaction), t.err
}
func (t *testAct) SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error) {
	t.calls = append(t.calls, call{contract, method, params})
	return util.Uint256{1}, 42, t.err
}
func (t *testAct) SendRun(script []byte) (util.Uint256, uint32, error) {
	t.runs = append(t.runs, script)
	return util.Uint256{2}, 43, t.err
}
func (t *testAct) Sender() util.Uint160 {
	return t.sender
}

func TestReader(t *testing.T) {
	ta := new(testAct)
	h := util.Uint160{1, 2, 3}
	r := NewReader(ta, h)
	require.Equal(t, h, r.Hash())

	ta.err = errors.New("boom")
	_, err := r.ReadBalance()
	require.Error(t, err)
	_, err = r.HeldFunds()
	require.Error(t, err)
	_, err = r.Owner()
	require.Error(t, err)

	ta.err = nil
	ta.res = &result.Invoke{
		State: "HALT",
		Stack: []stackitem.Item{stackitem.Make(1_000_005)},
	}
	b, err := r.ReadBalance()
	require.NoError(t, err)
	require.EqualValues(t, 1_000_005, b.Int64())

	b, err = r.HeldFunds()
	require.NoError(t, err)
	require.EqualValues(t, 1_000_005, b.Int64())

	owner := util.Uint160{9, 8, 7}
	ta.res = &result.Invoke{
		State: "HALT",
		Stack: []stackitem.Item{stackitem.Make(owner.BytesBE())},
	}
	o, err := r.Owner()
	require.NoError(t, err)
	require.Equal(t, owner, o)

	ta.res = &result.Invoke{
		State:          "FAULT",
		FaultException: "some",
	}
	_, err = r.Version()
	require.Error(t, err)

	require.Equal(t, []string{"readBalance", "heldFunds", "owner", "readBalance", "heldFunds", "owner", "version"}, methods(ta.calls))
}

func TestWriter(t *testing.T) {
	var (
		ta = &testAct{sender: util.Uint160{5}}
		h  = util.Uint160{1, 2, 3}
		c  = New(ta, h)
		to = util.Uint160{4, 5, 6}
	)

	txH, vub, err := c.InitializeBalance(big.NewInt(0))
	require.NoError(t, err)
	require.Equal(t, util.Uint256{1}, txH)
	require.EqualValues(t, 42, vub)

	_, _, err = c.SendFundsAddr(big.NewInt(1_000_000), to)
	require.NoError(t, err)

	_, _, err = c.SendFundsIden(big.NewInt(10), ContractIdentity(to))
	require.NoError(t, err)

	_, err = c.SendFundsIdenUnsigned(big.NewInt(10), AddressIdentity(to))
	require.NoError(t, err)

	_, err = c.UpdateTransaction([]byte{1}, []byte{2}, nil)
	require.NoError(t, err)

	require.Equal(t, []string{"initializeBalance", "sendFundsAddr", "sendFundsIden", "sendFundsIden", "update"}, methods(ta.calls))
	for _, cl := range ta.calls {
		require.Equal(t, h, cl.contract)
	}

	require.Equal(t, []any{big.NewInt(1_000_000), to}, ta.calls[1].params)
	require.Equal(t, []any{big.NewInt(10), []any{int64(walletconst.IdentityContract), to}}, ta.calls[2].params)
	require.Equal(t, []any{big.NewInt(10), []any{int64(walletconst.IdentityAddress), to}}, ta.calls[3].params)

	ta.err = errors.New("boom")
	_, _, err = c.SendFundsAddr(big.NewInt(1), to)
	require.Error(t, err)
}

func TestDeposit(t *testing.T) {
	var (
		ta = &testAct{sender: util.Uint160{5}}
		h  = util.Uint160{1, 2, 3}
		c  = New(ta, h)
	)

	txH, vub, err := c.Deposit(big.NewInt(1_000_005))
	require.NoError(t, err)
	require.Equal(t, util.Uint256{2}, txH)
	require.EqualValues(t, 43, vub)

	_, err = c.DepositUnsigned(big.NewInt(1))
	require.NoError(t, err)

	// deposit is a GAS transfer, the script is built by the NEP-17 wrapper
	exp, err := gas.New(ta).TransferUnsigned(ta.sender, h, big.NewInt(1), nil)
	require.NoError(t, err)
	require.NotNil(t, exp)
	require.Len(t, ta.runs, 3)
	require.Equal(t, ta.runs[1], ta.runs[2])
	require.Empty(t, ta.calls)
}

func TestEventsFromApplicationLog(t *testing.T) {
	_, err := FundsSentEventsFromApplicationLog(nil)
	require.Error(t, err)

	to := util.Uint160{1, 2, 3}
	log := &result.ApplicationLog{
		Executions: []state.Execution{{
			Events: []state.NotificationEvent{
				{
					Name: walletconst.FundsSentEvent,
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make(to.BytesBE()),
						stackitem.Make(1_000_000),
					}),
				},
				{
					Name: "Transfer",
					Item: stackitem.NewArray([]stackitem.Item{}),
				},
				{
					Name: walletconst.FundsReceivedEvent,
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make(to.BytesBE()),
						stackitem.Make(5),
					}),
				},
				{
					Name: walletconst.BalanceInitializedEvent,
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make(0),
					}),
				},
			},
		}},
	}

	sent, err := FundsSentEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	require.Equal(t, to, sent[0].To)
	require.EqualValues(t, 1_000_000, sent[0].Amount.Int64())

	received, err := FundsReceivedEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, received, 1)
	require.Equal(t, to, received[0].From)
	require.EqualValues(t, 5, received[0].Amount.Int64())

	inits, err := BalanceInitializedEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, inits, 1)
	require.Zero(t, inits[0].Value.Sign())

	log.Executions[0].Events[0].Item = stackitem.NewArray([]stackitem.Item{stackitem.Make(1)})
	_, err = FundsSentEventsFromApplicationLog(log)
	require.Error(t, err)
}

func methods(calls []call) []string {
	res := make([]string, len(calls))
	for i := range calls {
		res[i] = calls[i].method
	}
	return res
}
