/*
Package nns resolves contract addresses registered in the Neo Name Service.

Deployed Wallet contracts can be registered under a domain, e.g.
"wallet.neo", with a TXT record holding the contract address, clients then
use the domain instead of the raw script hash.
*/
package nns

import (
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Invoker is used by ContractReader to call NNS methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// ContractReader implements safe NNS methods required for address resolution.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// NewReader creates an instance of ContractReader using provided NNS contract
// hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// Resolve invokes `resolve` method of contract for TXT records of name.
func (c *ContractReader) Resolve(name string) ([]string, error) {
	return unwrap.ArrayOfUTF8Strings(c.invoker.Call(c.hash, "resolve", name, TXT))
}

// ResolveContract resolves contract address registered under the given
// domain name.
func (c *ContractReader) ResolveContract(name string) (util.Uint160, error) {
	strs, err := c.Resolve(name)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("resolve %s: %w", name, err)
	}

	h, err := AddressFromRecords(strs)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("resolve %s: %w", name, err)
	}

	return h, nil
}
