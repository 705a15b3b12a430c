// Package config loads the gateway's environment configuration. Absence of
// any required credential or address is a startup error; the process must not
// begin serving without a complete configuration.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Config holds the process configuration. The default payment asset is USDC
// on Base.
type Config struct {
	// FacilitatorURL is the x402 facilitator endpoint used to verify and
	// settle payments.
	FacilitatorURL string `env:"FACILITATOR_URL" validate:"required,url"`

	// PayTo is the address route payments are made out to.
	PayTo string `env:"ADDRESS" validate:"required,len=42,startswith=0x"`

	// PrivateKey is the hex-encoded signing identity for ledger writes.
	PrivateKey string `env:"SERVER_PRIVATE_KEY" validate:"required"`

	// RPCURL is the ledger RPC endpoint.
	RPCURL string `env:"RPC_URL" validate:"required"`

	// ContractAddress is the NFT contract the gateway mints against.
	ContractAddress string `env:"NFT_CONTRACT_ADDRESS" validate:"required,len=42,startswith=0x"`

	// PaymentAsset is the token payments are denominated in.
	PaymentAsset string `env:"PAYMENT_ASSET" envDefault:"0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913" validate:"required,len=42,startswith=0x"`

	// PaymentAssetDecimals is the payment token's decimal count.
	PaymentAssetDecimals int `env:"PAYMENT_ASSET_DECIMALS" envDefault:"6" validate:"gte=0,lte=18"`

	// Port is the HTTP listening port.
	Port int `env:"PORT" envDefault:"4021" validate:"gt=0,lte=65535"`

	// QueueDepth bounds the signer submission queue.
	QueueDepth int `env:"MINT_QUEUE_DEPTH" envDefault:"64" validate:"gt=0"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
