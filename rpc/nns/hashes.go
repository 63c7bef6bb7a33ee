package nns

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// ID is the NNS contract ID in networks deploying NNS first, it always gets
// an ID of 1 there.
const ID = 1

// TXT is a TXT record type of NNS.
var TXT = big.NewInt(16)

// ContractStateGetter is the interface required for contract state resolution
// using a known contract ID.
type ContractStateGetter interface {
	GetContractStateByID(int32) (*state.Contract, error)
}

// InferHash simplifies resolving NNS contract hash in existing networks.
// It assumes that NNS follows [ID] assignment assumptions which likely won't
// be the case for any network not deploying NNS first.
func InferHash(sg ContractStateGetter) (util.Uint160, error) {
	c, err := sg.GetContractStateByID(ID)
	if err != nil {
		return util.Uint160{}, err
	}

	return c.Hash, nil
}

// AddressFromRecord extracts [util.Uint160] hash from the string which can be
// either LE hex-encoded script hash or Neo address.
func AddressFromRecord(s string) (util.Uint160, error) {
	h, errH := util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
	if errH == nil {
		return h, nil
	}

	h, errA := address.StringToUint160(s)
	if errA == nil {
		return h, nil
	}

	return util.Uint160{}, errors.Join(errH, errA)
}

// AddressFromRecords extracts the first valid [util.Uint160] hash from the
// list of TXT records.
func AddressFromRecords(strs []string) (util.Uint160, error) {
	for i := range strs {
		h, err := AddressFromRecord(strs[i])
		if err == nil {
			return h, nil
		}
	}

	return util.Uint160{}, fmt.Errorf("no valid address in %d record(s)", len(strs))
}
