package mint

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mintgate/mintgate"
	"github.com/mintgate/mintgate/ledger"
	"github.com/mintgate/mintgate/sequencer"
)

const testPayer = "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb0"

// countingLedger counts calls and lets tests force failures.
type countingLedger struct {
	mu           sync.Mutex
	submitCalls  int
	supplyCalls  int
	submitErr    error
	confirmErr   error
	supplyErr    error
	supply       *big.Int
	lastQuantity *big.Int
}

func (c *countingLedger) Submit(ctx context.Context, call ledger.Call) (*ledger.Pending, error) {
	c.mu.Lock()
	c.submitCalls++
	c.lastQuantity = call.Quantity
	c.mu.Unlock()
	if c.submitErr != nil {
		return nil, c.submitErr
	}
	return &ledger.Pending{Hash: common.HexToHash("0xabc")}, nil
}

func (c *countingLedger) AwaitConfirmation(ctx context.Context, pending *ledger.Pending) (*ledger.Receipt, error) {
	if c.confirmErr != nil {
		return nil, c.confirmErr
	}
	return &ledger.Receipt{TxHash: pending.Hash, BlockNumber: 10, GasUsed: 21000}, nil
}

func (c *countingLedger) TotalSupply(ctx context.Context) (*big.Int, error) {
	c.mu.Lock()
	c.supplyCalls++
	c.mu.Unlock()
	if c.supplyErr != nil {
		return nil, c.supplyErr
	}
	return c.supply, nil
}

func newTestService(t *testing.T, l *countingLedger) *Service {
	t.Helper()
	seq := sequencer.New(l)
	t.Cleanup(seq.Close)
	return NewService(seq, l, nil)
}

func TestMint_Success(t *testing.T) {
	stub := &countingLedger{}
	svc := newTestService(t, stub)

	result, err := svc.Mint(context.Background(), testPayer, 5)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	if result.MintedTo != testPayer {
		t.Errorf("Expected mintedTo %s, got %s", testPayer, result.MintedTo)
	}
	if result.Quantity != 5 {
		t.Errorf("Expected quantity 5, got %d", result.Quantity)
	}
	if result.TxHash != common.HexToHash("0xabc").Hex() {
		t.Errorf("Unexpected txHash %s", result.TxHash)
	}
	if result.Message != "Successfully minted 5 NFT(s)" {
		t.Errorf("Unexpected message %q", result.Message)
	}
	if stub.lastQuantity.Int64() != 5 {
		t.Errorf("Expected ledger call quantity 5, got %d", stub.lastQuantity.Int64())
	}
}

func TestMint_QuantityBounds(t *testing.T) {
	stub := &countingLedger{}
	svc := newTestService(t, stub)

	for _, quantity := range []int{0, -1, 21, 25, 100} {
		_, err := svc.Mint(context.Background(), testPayer, quantity)
		if !errors.Is(err, mintgate.ErrInvalidQuantity) {
			t.Errorf("Quantity %d: expected ErrInvalidQuantity, got %v", quantity, err)
		}
	}

	if stub.submitCalls != 0 {
		t.Errorf("Expected no ledger calls for out-of-bounds quantities, got %d", stub.submitCalls)
	}
}

func TestMint_BoundaryQuantities(t *testing.T) {
	stub := &countingLedger{}
	svc := newTestService(t, stub)

	for _, quantity := range []int{1, 20} {
		if _, err := svc.Mint(context.Background(), testPayer, quantity); err != nil {
			t.Errorf("Quantity %d: expected success, got %v", quantity, err)
		}
	}
}

func TestMint_AbsentPayer(t *testing.T) {
	stub := &countingLedger{}
	svc := newTestService(t, stub)

	_, err := svc.Mint(context.Background(), "", 3)
	if !errors.Is(err, mintgate.ErrPaymentRequired) {
		t.Fatalf("Expected ErrPaymentRequired, got %v", err)
	}

	// Payer gate wins even when the quantity is also invalid.
	_, err = svc.Mint(context.Background(), "", 25)
	if !errors.Is(err, mintgate.ErrPaymentRequired) {
		t.Fatalf("Expected ErrPaymentRequired for absent payer with bad quantity, got %v", err)
	}

	if stub.submitCalls != 0 {
		t.Errorf("Expected no ledger calls without a payer, got %d", stub.submitCalls)
	}
}

func TestMint_LedgerFailure(t *testing.T) {
	stub := &countingLedger{submitErr: errors.New("execution reverted")}
	svc := newTestService(t, stub)

	_, err := svc.Mint(context.Background(), testPayer, 2)
	if !errors.Is(err, mintgate.ErrMintFailed) {
		t.Fatalf("Expected ErrMintFailed, got %v", err)
	}
}

func TestMint_ConfirmationFailure(t *testing.T) {
	stub := &countingLedger{confirmErr: errors.New("transaction reverted")}
	svc := newTestService(t, stub)

	_, err := svc.Mint(context.Background(), testPayer, 2)
	if !errors.Is(err, mintgate.ErrMintFailed) {
		t.Fatalf("Expected ErrMintFailed, got %v", err)
	}
}

func TestMintFixed_SkipsBoundsCheck(t *testing.T) {
	stub := &countingLedger{}
	svc := newTestService(t, stub)

	result, err := svc.MintFixed(context.Background(), testPayer, 20)
	if err != nil {
		t.Fatalf("MintFixed failed: %v", err)
	}
	if result.Message != "Successfully minted 20 NFTs" {
		t.Errorf("Unexpected message %q", result.Message)
	}

	if _, err := svc.MintFixed(context.Background(), "", 10); !errors.Is(err, mintgate.ErrPaymentRequired) {
		t.Errorf("Expected ErrPaymentRequired, got %v", err)
	}
}

func TestTotalMinted(t *testing.T) {
	stub := &countingLedger{supply: big.NewInt(42)}
	svc := newTestService(t, stub)

	snapshot, err := svc.TotalMinted(context.Background(), testPayer)
	if err != nil {
		t.Fatalf("TotalMinted failed: %v", err)
	}
	if snapshot.Minted != "42" {
		t.Errorf("Expected minted \"42\", got %q", snapshot.Minted)
	}
	if snapshot.Message != "Total NFTs minted so far" {
		t.Errorf("Unexpected message %q", snapshot.Message)
	}
}

func TestTotalMinted_AbsentPayer(t *testing.T) {
	stub := &countingLedger{supply: big.NewInt(1)}
	svc := newTestService(t, stub)

	if _, err := svc.TotalMinted(context.Background(), ""); !errors.Is(err, mintgate.ErrPaymentRequired) {
		t.Fatalf("Expected ErrPaymentRequired, got %v", err)
	}
	if stub.supplyCalls != 0 {
		t.Errorf("Expected no ledger reads without a payer, got %d", stub.supplyCalls)
	}
}

func TestTotalMinted_ReadFailure(t *testing.T) {
	stub := &countingLedger{supplyErr: errors.New("connection refused")}
	svc := newTestService(t, stub)

	if _, err := svc.TotalMinted(context.Background(), testPayer); !errors.Is(err, mintgate.ErrReadFailed) {
		t.Fatalf("Expected ErrReadFailed, got %v", err)
	}
}
