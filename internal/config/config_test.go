package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, defaultDialTimeout, cfg.RPC.DialTimeout)
	require.Equal(t, "contracts/wallet", cfg.Deploy.Source)
	require.True(t, cfg.Deploy.Salt)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
rpc:
  endpoint: http://node:30333
  request_timeout: 3s
keys:
  - "0102"
contract: NfgHwwTi3wHAS8aFAN243C5vGbkYDpqLHP
deploy:
  nef: wallet.nef
  manifest: wallet.manifest.json
  salt: false
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://node:30333", cfg.RPC.Endpoint)
	require.Equal(t, 3*time.Second, cfg.RPC.RequestTimeout)
	require.Equal(t, defaultDialTimeout, cfg.RPC.DialTimeout)
	require.Equal(t, []string{"0102"}, cfg.Keys)
	require.Equal(t, "NfgHwwTi3wHAS8aFAN243C5vGbkYDpqLHP", cfg.Contract)
	require.Equal(t, "wallet.nef", cfg.Deploy.NEF)
	require.False(t, cfg.Deploy.Salt)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("rpc: [not a map"), 0o600))
	_, err = Load(path)
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"WALLET_RPC":      "http://env:30333",
		"WALLET_CONTRACT": "wallet.neo",
		"WALLET_SECRET0":  "aa",
		"WALLET_SECRET1":  "bb",
		"WALLET_SECRET3":  "skipped after a gap",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	cfg.Keys = []string{"from file"}
	cfg.applyEnv(lookup)

	require.Equal(t, "http://env:30333", cfg.RPC.Endpoint)
	require.Equal(t, "wallet.neo", cfg.Contract)
	require.Equal(t, []string{"aa", "bb"}, cfg.Keys)

	cfg = Default()
	cfg.Keys = []string{"from file"}
	cfg.applyEnv(func(string) (string, bool) { return "", false })
	require.Equal(t, []string{"from file"}, cfg.Keys)
	require.Equal(t, defaultEndpoint, cfg.RPC.Endpoint)
}

func TestAccounts(t *testing.T) {
	cfg := Default()
	_, err := cfg.Accounts()
	require.ErrorIs(t, err, ErrNoKeys)

	k1, err := keys.NewPrivateKey()
	require.NoError(t, err)
	k2, err := keys.NewPrivateKey()
	require.NoError(t, err)

	cfg.Keys = []string{k1.WIF(), k2.String()}
	accs, err := cfg.Accounts()
	require.NoError(t, err)
	require.Len(t, accs, 2)
	require.Equal(t, k1.GetScriptHash(), accs[0].ScriptHash())
	require.Equal(t, k2.GetScriptHash(), accs[1].ScriptHash())

	cfg.Keys = append(cfg.Keys, "garbage")
	_, err = cfg.Accounts()
	require.Error(t, err)
}
