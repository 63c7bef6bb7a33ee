/*
Package walletconst contains constants shared by the Wallet contract and its
off-chain clients: failure messages, identity kinds and notification names.
*/
package walletconst

// Failure messages the contract aborts with. Clients match fault exceptions
// against them, so they must stay unique substrings of each other.
const (
	// ErrZeroAmount is thrown when a deposit or a withdrawal amount is not
	// positive.
	ErrZeroAmount = "zero amount"
	// ErrInvalidAsset is thrown when something other than GAS is sent to the
	// contract.
	ErrInvalidAsset = "invalid asset"
	// ErrInsufficientFunds is thrown when a withdrawal exceeds GAS actually
	// held by the contract.
	ErrInsufficientFunds = "insufficient funds"
	// ErrUnauthorized is thrown when a privileged method is called without
	// the owner's witness.
	ErrUnauthorized = "unauthorized"
	// ErrUnknownContract is thrown when a contract identity does not resolve
	// to a deployed contract.
	ErrUnknownContract = "unknown contract"
	// ErrInvalidRecipient is thrown when a recipient is not a 20-byte script
	// hash or has an unknown identity kind.
	ErrInvalidRecipient = "invalid recipient"
	// ErrNegativeValue is thrown by initializeBalance on a negative counter
	// value.
	ErrNegativeValue = "negative value"
)

// Identity kinds accepted by sendFundsIden.
const (
	IdentityAddress  = 0
	IdentityContract = 1
)

// Notification names.
const (
	BalanceInitializedEvent = "BalanceInitialized"
	FundsReceivedEvent      = "FundsReceived"
	FundsSentEvent          = "FundsSent"
)
