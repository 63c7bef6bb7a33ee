/*
Package deploy deploys Wallet contract to a Neo network.
*/
package deploy

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-wallet-contract/contracts"
	"github.com/nspcc-dev/neo-wallet-contract/rpc/wallet"
	"go.uber.org/zap"
)

// Actor groups functions needed to send deployment transaction to the
// blockchain and wait for its inclusion. [actor.Actor] implements it.
type Actor interface {
	management.Actor

	// Sender returns the account paying for the deployment, it becomes a
	// part of the contract address.
	Sender() util.Uint160

	// WaitAny waits until one of the transactions is accepted or vub block
	// is persisted and returns execution result of the accepted one.
	WaitAny(ctx context.Context, vub uint32, hashes ...util.Uint256) (*state.AppExecResult, error)
}

// Prm groups parameters of the Wallet contract deployment.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Sends and signs deployment transaction (must be unlocked).
	Actor Actor

	// Compiled contract to be deployed.
	Contract contracts.Contract

	// Account allowed to withdraw funds. Zero value means the Actor's
	// sender.
	Owner util.Uint160

	// Salt flag adds unique suffix to the contract name, so the same
	// contract can be deployed by the same sender more than once.
	Salt bool
}

// Result describes deployed contract.
type Result struct {
	// Contract address.
	Hash util.Uint160
	// Name from the deployed manifest, including salt.
	Name string
	// Deployment transaction.
	TxHash util.Uint256
}

// Deploy deploys the contract described by prm and waits for the deployment
// transaction to be successfully executed.
//
// Deploy stops waiting for the transaction when ctx is done, the transaction
// itself may still be accepted in this case.
func Deploy(ctx context.Context, prm Prm) (Result, error) {
	var res Result

	if prm.Logger == nil {
		prm.Logger = zap.NewNop()
	}

	nefFile := prm.Contract.NEF
	m := prm.Contract.Manifest
	if prm.Salt {
		m.Name = SaltedName(m.Name, uuid.New())
	}

	res.Name = m.Name
	res.Hash = state.CreateContractHash(prm.Actor.Sender(), nefFile.Checksum, m.Name)

	var data any
	if !prm.Owner.Equals(util.Uint160{}) {
		data = prm.Owner
	}

	prm.Logger.Info("sending contract deployment transaction...",
		zap.String("name", m.Name), zap.Stringer("address", res.Hash))

	txHash, vub, err := management.New(prm.Actor).Deploy(&nefFile, &m, data)
	aer, err := Wait(ctx, prm.Actor, txHash, vub, err)
	if err != nil {
		return res, fmt.Errorf("deploy contract: %w", err)
	}

	res.TxHash = aer.Container

	err = wallet.CheckExecution(aer)
	if err != nil {
		return res, fmt.Errorf("deploy contract: %w", err)
	}

	prm.Logger.Info("contract successfully deployed",
		zap.Stringer("address", res.Hash), zap.Stringer("tx", res.TxHash))

	return res, nil
}

// SaltedName returns contract name made unique by salt.
func SaltedName(name string, salt uuid.UUID) string {
	return name + "-" + salt.String()
}

// Wait waits for the transaction sent by the actor and returns its execution
// result. err is an error of sending, it is returned as is. Waiting stops
// when ctx is done.
func Wait(ctx context.Context, a Actor, h util.Uint256, vub uint32, err error) (*state.AppExecResult, error) {
	if err != nil {
		return nil, err
	}

	aer, err := a.WaitAny(ctx, vub, h)
	if err != nil {
		return nil, fmt.Errorf("wait for transaction %s: %w", h.StringLE(), err)
	}

	if aer == nil {
		return nil, errors.New("missing execution result")
	}

	return aer, nil
}
