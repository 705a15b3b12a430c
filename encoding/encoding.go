// Package encoding decodes x402 payment attestations carried in HTTP headers.
// It handles the base64 and JSON layers and payer identity extraction.
package encoding

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mintgate/mintgate"
)

// DecodePayment converts a base64-encoded JSON string to a PaymentPayload.
//
// Returns an error if base64 decoding or JSON unmarshaling fails.
func DecodePayment(encoded string) (mintgate.PaymentPayload, error) {
	var payment mintgate.PaymentPayload

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return payment, fmt.Errorf("%w: invalid base64: %v", mintgate.ErrMalformedHeader, err)
	}

	if err := json.Unmarshal(decoded, &payment); err != nil {
		return payment, fmt.Errorf("%w: invalid JSON: %v", mintgate.ErrMalformedHeader, err)
	}

	return payment, nil
}

// EncodePayment converts a PaymentPayload to a base64-encoded JSON string,
// the format carried in X-Payment headers.
func EncodePayment(payment mintgate.PaymentPayload) (string, error) {
	paymentJSON, err := json.Marshal(payment)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payment: %w", err)
	}
	return base64.StdEncoding.EncodeToString(paymentJSON), nil
}

// EncodeSettlement converts a SettlementResponse to a base64-encoded JSON
// string for the X-Payment-Response header.
func EncodeSettlement(settlement mintgate.SettlementResponse) (string, error) {
	settlementJSON, err := json.Marshal(settlement)
	if err != nil {
		return "", fmt.Errorf("failed to marshal settlement: %w", err)
	}
	return base64.StdEncoding.EncodeToString(settlementJSON), nil
}

// PayerFromHeader extracts the payer address from a raw X-Payment header
// value. An absent header yields an empty string, as does any malformed
// header: invalid base64, invalid JSON, or a missing
// payload.authorization.from field. Malformed input is never an error to the
// caller; the empty result is exactly the signal used to reject the request
// with a payment-required failure. The address case is preserved as sent.
func PayerFromHeader(raw string) string {
	if raw == "" {
		return ""
	}

	payment, err := DecodePayment(raw)
	if err != nil {
		slog.Default().Warn("failed to parse x-payment header", "error", err)
		return ""
	}

	return payment.Payload.Authorization.From
}
