package mintgate

import "errors"

// Gateway error taxonomy. Handlers map these to HTTP status codes at the
// router boundary; everything underneath wraps them with %w.

var (
	// ErrPaymentRequired indicates no resolvable payer: the attestation
	// header was absent or malformed. No ledger interaction is attempted.
	ErrPaymentRequired = errors.New("payment required")

	// ErrInvalidQuantity indicates a mint quantity outside the allowed bounds.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrMintFailed indicates the ledger rejected or timed out during a mint.
	ErrMintFailed = errors.New("mint failed")

	// ErrReadFailed indicates a ledger read error on a supply query.
	ErrReadFailed = errors.New("supply read failed")

	// ErrQueueFull indicates the signer submission queue is at capacity.
	ErrQueueFull = errors.New("submission queue full")

	// ErrSequencerClosed indicates the sequencer is no longer accepting work.
	ErrSequencerClosed = errors.New("sequencer closed")

	// ErrMalformedHeader indicates the X-Payment header could not be decoded.
	ErrMalformedHeader = errors.New("malformed payment header")

	// ErrInvalidAmount indicates a price quote that does not convert cleanly
	// to atomic token units.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrFacilitatorUnavailable indicates the facilitator service is unreachable.
	ErrFacilitatorUnavailable = errors.New("facilitator unavailable")

	// ErrVerificationFailed indicates payment verification failed.
	ErrVerificationFailed = errors.New("verification failed")

	// ErrSettlementFailed indicates payment settlement failed.
	ErrSettlementFailed = errors.New("settlement failed")
)
