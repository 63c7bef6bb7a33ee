package versioned

import "github.com/nspcc-dev/neo-wallet-contract/common"

func CheckVersion(from int) {
	common.CheckVersion(from)
}

func AppendVersion(data any) []any {
	return common.AppendVersion(data)
}
