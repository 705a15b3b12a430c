package mintgate

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultRoutes_PriceTiers(t *testing.T) {
	routes := DefaultRoutes()
	if len(routes) != 4 {
		t.Fatalf("Expected 4 priced routes, got %d", len(routes))
	}

	expected := map[string]string{
		"/api/mint":    "0.5",
		"/api/mint-10": "5",
		"/api/mint-20": "10",
		"/minted":      "0.01",
	}

	for _, route := range routes {
		want, ok := expected[route.Path]
		if !ok {
			t.Errorf("Unexpected route %s", route.Path)
			continue
		}
		if !route.Price.Equal(decimal.RequireFromString(want)) {
			t.Errorf("Route %s: expected price %s, got %s", route.Path, want, route.Price)
		}
		if route.Method != "GET" {
			t.Errorf("Route %s: expected GET, got %s", route.Path, route.Method)
		}
		if route.Network != "base" {
			t.Errorf("Route %s: expected network base, got %s", route.Path, route.Network)
		}
		// Only the mint tiers carry a description; /minted advertises none
		// and relies on the gate's per-path fallback.
		if route.Path == "/minted" && route.Description != "" {
			t.Errorf("Expected no description for /minted, got %q", route.Description)
		}
	}
}

func TestRoutePrice_Requirement(t *testing.T) {
	route := RoutePrice{
		Method:      "GET",
		Path:        "/api/mint",
		Price:       decimal.RequireFromString("0.5"),
		Network:     "base",
		Description: "Mint 1 x402y00ts!",
	}

	req, err := route.Requirement(
		"0x209693Bc6afc0C5328bA36FaF03C514EF312287C",
		"0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
		6,
	)
	if err != nil {
		t.Fatalf("Requirement failed: %v", err)
	}

	// $0.50 in 6-decimal atomic units.
	if req.MaxAmountRequired != "500000" {
		t.Errorf("Expected 500000 atomic units, got %s", req.MaxAmountRequired)
	}
	if req.Scheme != "exact" {
		t.Errorf("Expected scheme exact, got %s", req.Scheme)
	}
	if req.Description != "Mint 1 x402y00ts!" {
		t.Errorf("Unexpected description %q", req.Description)
	}
}

func TestAmountToAtomic(t *testing.T) {
	tests := []struct {
		amount   string
		decimals int
		want     string
		wantErr  bool
	}{
		{"0.5", 6, "500000", false},
		{"10", 6, "10000000", false},
		{"0.01", 6, "10000", false},
		{"1.5", 0, "", true}, // does not divide into whole atomic units
		{"0.0000001", 6, "", true},
	}

	for _, tt := range tests {
		got, err := AmountToAtomic(decimal.RequireFromString(tt.amount), tt.decimals)
		if tt.wantErr {
			if err == nil {
				t.Errorf("AmountToAtomic(%s, %d): expected error", tt.amount, tt.decimals)
			}
			continue
		}
		if err != nil {
			t.Errorf("AmountToAtomic(%s, %d): %v", tt.amount, tt.decimals, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("AmountToAtomic(%s, %d): expected %s, got %s", tt.amount, tt.decimals, tt.want, got)
		}
	}
}
