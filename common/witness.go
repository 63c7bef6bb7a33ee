package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-wallet-contract/contracts/wallet/walletconst"
)

// CheckOwnerWitness checks witness of the passed owner. It panics with
// walletconst.ErrUnauthorized message on fail.
func CheckOwnerWitness(owner []byte) {
	checkWitnessWithPanic(owner, walletconst.ErrUnauthorized)
}

func checkWitnessWithPanic(caller []byte, panicMsg string) {
	if !runtime.CheckWitness(caller) {
		panic(panicMsg)
	}
}
