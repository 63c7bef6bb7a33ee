package tests

import (
	"os"
	"path"
	"strconv"
	"strings"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-wallet-contract/common"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	data, err := os.ReadFile("../VERSION")
	require.NoError(t, err)

	v := strings.TrimPrefix(string(data), "v")
	parts := strings.Split(strings.TrimSpace(v), ".")
	require.Len(t, parts, 3)

	var ver [3]int
	for i := range parts {
		ver[i], err = strconv.Atoi(parts[i])
		require.NoError(t, err)
	}

	require.Equal(t, common.Version, ver[0]*1_000_000+ver[1]*1_000+ver[2],
		"version from common package is different from the one in VERSION file")
	require.Less(t, common.PrevVersion, common.Version)
}

func TestCheckVersion(t *testing.T) {
	e := newExecutor(t)

	c := neotest.CompileFile(t, e.CommitteeHash, versionedPath, path.Join(versionedPath, "config.yml"))
	e.DeployContract(t, c, nil)

	inv := e.CommitteeInvoker(c.Hash)

	inv.Invoke(t, stackitem.Null{}, "checkVersion", common.PrevVersion)
	inv.Invoke(t, stackitem.Null{}, "checkVersion", common.Version+1)
	inv.InvokeFail(t, common.ErrVersionMismatch, "checkVersion", common.PrevVersion-1)
	inv.InvokeFail(t, common.ErrVersionMismatch, "checkVersion", 0)
	inv.InvokeFail(t, common.ErrAlreadyUpdated, "checkVersion", common.Version)

	inv.Invoke(t, []any{common.Version}, "appendVersion", nil)
	inv.Invoke(t, []any{"data", 42, common.Version}, "appendVersion", []any{"data", 42})
}
