package mintgate

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RoutePrice is one entry of the static route pricing table: the price quote
// and network the payment gate enforces for a (method, path) pair. Entries
// are defined at process start and never mutated.
type RoutePrice struct {
	Method      string
	Path        string
	Price       decimal.Decimal
	Network     string
	Description string
}

// DefaultRoutes returns the gateway's pricing table.
func DefaultRoutes() []RoutePrice {
	return []RoutePrice{
		{
			Method:      "GET",
			Path:        "/api/mint",
			Price:       decimal.RequireFromString("0.5"),
			Network:     "base",
			Description: "Mint 1 x402y00ts!",
		},
		{
			Method:      "GET",
			Path:        "/api/mint-10",
			Price:       decimal.RequireFromString("5"),
			Network:     "base",
			Description: "Mint 10 x402y00ts!",
		},
		{
			Method:      "GET",
			Path:        "/api/mint-20",
			Price:       decimal.RequireFromString("10"),
			Network:     "base",
			Description: "Mint 20 x402y00ts!",
		},
		{
			Method:  "GET",
			Path:    "/minted",
			Price:   decimal.RequireFromString("0.01"),
			Network: "base",
		},
	}
}

// Requirement builds the payment requirement the gate advertises for this
// route: the price quote converted to atomic units of the payment asset.
func (r RoutePrice) Requirement(payTo, asset string, assetDecimals int) (PaymentRequirement, error) {
	amount, err := AmountToAtomic(r.Price, assetDecimals)
	if err != nil {
		return PaymentRequirement{}, fmt.Errorf("route %s %s: %w", r.Method, r.Path, err)
	}
	return PaymentRequirement{
		Scheme:            "exact",
		Network:           r.Network,
		MaxAmountRequired: amount.String(),
		Asset:             asset,
		PayTo:             payTo,
		Description:       r.Description,
		MaxTimeoutSeconds: 60,
	}, nil
}
