/*
Package wallet implements Wallet contract: a single-owner GAS wallet with a
tracked balance counter.

Anyone can deposit GAS to the contract with a regular NEP-17 transfer, every
deposit increases the tracked balance. Only the owner fixed at deployment can
withdraw GAS, either to a plain address or to an identity that may refer to a
deployed contract. Withdrawals are limited by GAS actually held by the contract
account and decrease the tracked balance down to zero. The tracked balance can
be reinitialized to any value at any time, it is bookkeeping only and does not
limit withdrawals.

The contract is deployed with optional data argument: 20-byte script hash of
the owner. If it is omitted, the sender of the deploying transaction becomes
the owner.

# Contract notifications

BalanceInitialized notification. It is produced when the tracked balance is
set by initializeBalance method.

	BalanceInitialized:
	  - name: value
	    type: Integer

FundsReceived notification. It is produced on every accepted deposit.

	FundsReceived:
	  - name: from
	    type: Hash160
	  - name: amount
	    type: Integer

FundsSent notification. It is produced on every withdrawal along with the
GAS Transfer notification crediting the recipient.

	FundsSent:
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package wallet

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'o' -> interop.Hash160
   owner of the wallet
 - 'b' -> int
   tracked balance in GAS fractions
*/
