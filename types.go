// Package mintgate defines the shared wire and domain types for the
// x402-metered NFT mint gateway.
package mintgate

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Quantity bounds for the variable-quantity mint route.
const (
	MinQuantity = 1
	MaxQuantity = 20
)

// PaymentRequirement represents a single payment option advertised in a 402 response.
type PaymentRequirement struct {
	// Scheme is the payment scheme identifier (e.g., "exact").
	Scheme string `json:"scheme"`

	// Network is the blockchain network identifier (e.g., "base").
	Network string `json:"network"`

	// MaxAmountRequired is the payment amount in atomic units (e.g., wei).
	MaxAmountRequired string `json:"maxAmountRequired"`

	// Asset is the token contract address the payment is denominated in.
	Asset string `json:"asset"`

	// PayTo is the recipient address for the payment.
	PayTo string `json:"payTo"`

	// Resource is the URL of the protected resource.
	Resource string `json:"resource"`

	// Description is an optional human-readable payment description.
	Description string `json:"description"`

	// MimeType is the content type of the protected resource.
	MimeType string `json:"mimeType"`

	// MaxTimeoutSeconds is the validity period for the payment authorization.
	MaxTimeoutSeconds int `json:"maxTimeoutSeconds"`
}

// PaymentRequirementsResponse is the complete 402 response body.
type PaymentRequirementsResponse struct {
	// X402Version is the protocol version (currently 1).
	X402Version int `json:"x402Version"`

	// Error is a human-readable error message.
	Error string `json:"error"`

	// Accepts is an array of payment options the server will accept.
	Accepts []PaymentRequirement `json:"accepts"`
}

// PaymentPayload is the decoded form of the X-Payment attestation header:
// a signed payment the client attached to the request.
type PaymentPayload struct {
	// X402Version is the protocol version (currently 1).
	X402Version int `json:"x402Version"`

	// Scheme is the payment scheme identifier (e.g., "exact").
	Scheme string `json:"scheme"`

	// Network is the blockchain network identifier.
	Network string `json:"network"`

	// Payload contains the EVM-specific signed payment data.
	Payload EVMPayload `json:"payload"`
}

// EVMPayload represents an EVM payment with EIP-3009 authorization.
type EVMPayload struct {
	// Signature is the hex-encoded ECDSA signature.
	Signature string `json:"signature"`

	// Authorization contains the EIP-3009 transferWithAuthorization parameters.
	Authorization EVMAuthorization `json:"authorization"`
}

// EVMAuthorization represents EIP-3009 transferWithAuthorization parameters.
// Only From is consumed by this gateway; the remaining fields travel through
// to the facilitator untouched.
type EVMAuthorization struct {
	// From is the payer's address.
	From string `json:"from"`

	// To is the recipient's address.
	To string `json:"to"`

	// Value is the payment amount in atomic units (wei).
	Value string `json:"value"`

	// ValidAfter is the unix timestamp after which the authorization is valid.
	ValidAfter string `json:"validAfter"`

	// ValidBefore is the unix timestamp before which the authorization is valid.
	ValidBefore string `json:"validBefore"`

	// Nonce is a unique 32-byte hex string to prevent replay attacks.
	Nonce string `json:"nonce"`
}

// VerifyResponse is the facilitator's answer to a verification request.
type VerifyResponse struct {
	IsValid       bool   `json:"isValid"`
	InvalidReason string `json:"invalidReason,omitempty"`
	Payer         string `json:"payer"`
}

// SettlementResponse is the facilitator's answer after payment settlement.
type SettlementResponse struct {
	// Success indicates whether the payment was successfully settled.
	Success bool `json:"success"`

	// ErrorReason provides details if the payment failed.
	ErrorReason string `json:"errorReason,omitempty"`

	// Transaction is the blockchain transaction hash of the settlement.
	Transaction string `json:"transaction,omitempty"`

	// Network is the blockchain network where the payment was settled.
	Network string `json:"network"`

	// Payer is the address that made the payment.
	Payer string `json:"payer"`
}

// MintResult is returned to the caller after a confirmed mint.
type MintResult struct {
	// MintedTo is the address the tokens were minted to (the payer).
	MintedTo string `json:"mintedTo"`

	// Quantity is the number of tokens minted.
	Quantity int `json:"quantity"`

	// TxHash is the hash of the confirmed ledger transaction.
	TxHash string `json:"txHash"`

	// Message is a human-readable confirmation.
	Message string `json:"message"`
}

// SupplySnapshot reports the ledger's total minted count at query time.
// It is read fresh on every query and never cached.
type SupplySnapshot struct {
	// Minted is the total supply as a decimal string.
	Minted string `json:"minted"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

// AmountToAtomic converts a decimal currency amount to atomic token units.
// For example, 0.5 with 6 decimals becomes 500000.
func AmountToAtomic(amount decimal.Decimal, decimals int) (*big.Int, error) {
	shifted := amount.Shift(int32(decimals))
	if !shifted.IsInteger() {
		return nil, ErrInvalidAmount
	}
	return shifted.BigInt(), nil
}
