/*
Package contracts provides access to compiled Wallet contract: it either
compiles contract sources with the neo-go compiler or reads prebuilt NEF and
manifest files.
*/
package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nspcc-dev/neo-go/cli/smartcontract"
	"github.com/nspcc-dev/neo-go/pkg/compiler"
	"github.com/nspcc-dev/neo-go/pkg/config"
	nio "github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
)

const (
	// WalletDir is a directory of the Wallet contract sources relative to
	// the repository root.
	WalletDir = "contracts/wallet"

	configName   = "config.yml"
	nefName      = "contract.nef"
	manifestName = "manifest.json"

	// nef.NewFile() cares about version a lot.
	devCompilerVersion = "0.102.0-dev"
)

// Contract groups information about Neo contract ready to be deployed.
type Contract struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

var (
	// ErrInvalidNEF is returned when NEF file can not be decoded.
	ErrInvalidNEF = errors.New("invalid NEF")
	// ErrInvalidManifest is returned when manifest file can not be decoded.
	ErrInvalidManifest = errors.New("invalid manifest")
)

// Compile compiles Go contract located in dir. Manifest is created from the
// compiler debug info and config.yml file located in the same directory.
func Compile(dir string) (Contract, error) {
	var c Contract

	if config.Version == "" {
		config.Version = devCompilerVersion
	}

	ne, di, err := compiler.CompileWithOptions(dir, nil, nil)
	if err != nil {
		return c, fmt.Errorf("compile %s: %w", dir, err)
	}

	conf, err := smartcontract.ParseContractConfig(filepath.Join(dir, configName))
	if err != nil {
		return c, fmt.Errorf("parse contract config: %w", err)
	}

	o := &compiler.Options{}
	o.Name = conf.Name
	o.ContractEvents = conf.Events
	o.ContractSupportedStandards = conf.SupportedStandards
	o.Permissions = make([]manifest.Permission, len(conf.Permissions))
	for i := range conf.Permissions {
		o.Permissions[i] = manifest.Permission(conf.Permissions[i])
	}
	o.SafeMethods = conf.SafeMethods

	m, err := compiler.CreateManifest(di, o)
	if err != nil {
		return c, fmt.Errorf("create manifest: %w", err)
	}

	c.NEF = *ne
	c.Manifest = *m

	return c, nil
}

// Read reads contract.nef and manifest.json files located in dir of the
// given file system.
func Read(_fs fs.FS, dir string) (Contract, error) {
	// fs.FS uses "/" even on Windows, so filepath.Join() is not applicable.
	fNEF, err := _fs.Open(dir + "/" + nefName)
	if err != nil {
		return Contract{}, fmt.Errorf("open NEF: %w", err)
	}
	defer fNEF.Close()

	fManifest, err := _fs.Open(dir + "/" + manifestName)
	if err != nil {
		return Contract{}, fmt.Errorf("open manifest: %w", err)
	}
	defer fManifest.Close()

	return decode(fNEF, fManifest)
}

// ReadFiles is like Read but accepts paths of NEF and manifest files
// produced by `neo-go contract compile`.
func ReadFiles(nefPath, manifestPath string) (Contract, error) {
	fNEF, err := os.Open(nefPath)
	if err != nil {
		return Contract{}, fmt.Errorf("open NEF: %w", err)
	}
	defer fNEF.Close()

	fManifest, err := os.Open(manifestPath)
	if err != nil {
		return Contract{}, fmt.Errorf("open manifest: %w", err)
	}
	defer fManifest.Close()

	return decode(fNEF, fManifest)
}

func decode(rNEF, rManifest io.Reader) (Contract, error) {
	var c Contract

	bReader := nio.NewBinReaderFromIO(rNEF)
	c.NEF.DecodeBinary(bReader)
	if bReader.Err != nil {
		return c, fmt.Errorf("%w: %w", ErrInvalidNEF, bReader.Err)
	}

	err := json.NewDecoder(rManifest).Decode(&c.Manifest)
	if err != nil {
		return c, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	return c, nil
}
