package common

import "github.com/nspcc-dev/neo-go/pkg/interop/native/std"

// Version numbers are encoded as major*1_000_000 + minor*1_000 + patch.
const (
	major = 0
	minor = 2
	patch = 0

	// Oldest version the contract can be updated from.
	prevMajor = 0
	prevMinor = 1
	prevPatch = 0

	// Version is the version of the contract code.
	Version = major*1_000_000 + minor*1_000 + patch

	// PrevVersion is the oldest version Update accepts.
	PrevVersion = prevMajor*1_000_000 + prevMinor*1_000 + prevPatch

	// ErrVersionMismatch is thrown by CheckVersion when the deployed
	// contract is older than PrevVersion.
	ErrVersionMismatch = "previous version mismatch"

	// ErrAlreadyUpdated is thrown by CheckVersion when the deployed
	// contract is of Version already.
	ErrAlreadyUpdated = "contract is already of the latest version"
)

// CheckVersion panics unless the contract of version from can be updated to
// Version.
func CheckVersion(from int) {
	switch {
	case from < PrevVersion:
		panic(ErrVersionMismatch + ": expected >=" + std.Itoa(PrevVersion, 10))
	case from == Version:
		panic(ErrAlreadyUpdated + ": " + std.Itoa(Version, 10))
	}
}

// AppendVersion returns update data passed to `_deploy` of the new contract
// code: data items (if any) followed by Version.
func AppendVersion(data any) []any {
	if data == nil {
		return []any{Version}
	}
	return append(data.([]any), Version)
}
