// Package paygate implements the x402 payment gate in front of the gateway's
// handlers: it advertises per-route payment requirements, verifies the
// X-Payment attestation with a facilitator service, and settles the payment
// before a handler runs.
package paygate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mintgate/mintgate"
)

// FacilitatorClient talks to an x402 facilitator service.
type FacilitatorClient struct {
	BaseURL string
	Client  *http.Client

	// VerifyTimeout bounds verify calls; SettleTimeout is longer because
	// settlement executes a blockchain transaction.
	VerifyTimeout time.Duration
	SettleTimeout time.Duration
}

// NewFacilitatorClient creates a facilitator client with default timeouts.
func NewFacilitatorClient(baseURL string) *FacilitatorClient {
	return &FacilitatorClient{
		BaseURL:       baseURL,
		Client:        &http.Client{},
		VerifyTimeout: 5 * time.Second,
		SettleTimeout: 60 * time.Second,
	}
}

// facilitatorRequest is the payload sent to /verify and /settle.
type facilitatorRequest struct {
	X402Version         int                         `json:"x402Version"`
	PaymentPayload      mintgate.PaymentPayload     `json:"paymentPayload"`
	PaymentRequirements mintgate.PaymentRequirement `json:"paymentRequirements"`
}

// Verify checks a payment authorization without executing the transaction.
func (c *FacilitatorClient) Verify(ctx context.Context, payment mintgate.PaymentPayload, requirement mintgate.PaymentRequirement) (*mintgate.VerifyResponse, error) {
	var verifyResp mintgate.VerifyResponse
	if err := c.post(ctx, "/verify", c.VerifyTimeout, payment, requirement, &verifyResp); err != nil {
		return nil, err
	}
	return &verifyResp, nil
}

// Settle executes a verified payment on the blockchain.
func (c *FacilitatorClient) Settle(ctx context.Context, payment mintgate.PaymentPayload, requirement mintgate.PaymentRequirement) (*mintgate.SettlementResponse, error) {
	var settlementResp mintgate.SettlementResponse
	if err := c.post(ctx, "/settle", c.SettleTimeout, payment, requirement, &settlementResp); err != nil {
		return nil, err
	}
	return &settlementResp, nil
}

func (c *FacilitatorClient) post(ctx context.Context, path string, timeout time.Duration, payment mintgate.PaymentPayload, requirement mintgate.PaymentRequirement, out any) error {
	data, err := json.Marshal(facilitatorRequest{
		X402Version:         1,
		PaymentPayload:      payment,
		PaymentRequirements: requirement,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", mintgate.ErrFacilitatorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		switch path {
		case "/settle":
			return fmt.Errorf("%w: status %d", mintgate.ErrSettlementFailed, resp.StatusCode)
		default:
			return fmt.Errorf("%w: status %d", mintgate.ErrVerificationFailed, resp.StatusCode)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
