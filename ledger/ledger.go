// Package ledger provides the gateway's view of the external asset ledger:
// an async submit/await interface for mint transactions plus a read-only
// supply query.
package ledger

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Call is a bounded-quantity mint operation against the asset contract.
type Call struct {
	// Recipient is the address the tokens are minted to.
	Recipient common.Address

	// Quantity is the number of tokens to mint.
	Quantity *big.Int
}

// Pending is the handle for a submitted, not yet confirmed transaction.
type Pending struct {
	// Hash identifies the submitted transaction.
	Hash common.Hash

	tx *types.Transaction
}

// Receipt describes a confirmed transaction.
type Receipt struct {
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
}

// Ledger is the gateway's contract with the external asset ledger.
// Submission and confirmation are split so the caller controls how long it
// waits; neither call retries on failure.
type Ledger interface {
	// Submit signs and broadcasts a mint call, returning a handle for the
	// pending transaction.
	Submit(ctx context.Context, call Call) (*Pending, error)

	// AwaitConfirmation blocks until the pending transaction is mined,
	// returning its receipt. A reverted transaction is an error.
	AwaitConfirmation(ctx context.Context, pending *Pending) (*Receipt, error)

	// TotalSupply reads the current total minted count. Reads do not touch
	// the signing identity and need no serialization.
	TotalSupply(ctx context.Context) (*big.Int, error)
}
