package ledger

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

func TestNFTABI_Parses(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(nftABI))
	if err != nil {
		t.Fatalf("Failed to parse contract ABI: %v", err)
	}

	if _, ok := parsed.Methods["mintTo"]; !ok {
		t.Error("Expected mintTo method in ABI")
	}
	if _, ok := parsed.Methods["totalSupply"]; !ok {
		t.Error("Expected totalSupply method in ABI")
	}
}

func TestNFTABI_PackMintTo(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(nftABI))
	if err != nil {
		t.Fatalf("Failed to parse contract ABI: %v", err)
	}

	recipient := common.HexToAddress("0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb0")
	data, err := parsed.Pack("mintTo", recipient, big.NewInt(5))
	if err != nil {
		t.Fatalf("Failed to pack mintTo: %v", err)
	}

	// 4-byte selector + two 32-byte words.
	if len(data) != 4+32+32 {
		t.Errorf("Expected 68 bytes of calldata, got %d", len(data))
	}
}
