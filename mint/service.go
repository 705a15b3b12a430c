// Package mint implements the gateway's write and read operations against
// the asset ledger: bounded-quantity mints serialized through the sequencer,
// and uncached supply queries straight off the ledger.
package mint

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mintgate/mintgate"
	"github.com/mintgate/mintgate/ledger"
	"github.com/mintgate/mintgate/sequencer"
)

// Service orchestrates mint and supply operations for verified payers.
type Service struct {
	seq    *sequencer.Sequencer
	ledger ledger.Ledger
	log    *slog.Logger
}

// NewService creates a mint service. Writes go through seq; reads go
// directly to l.
func NewService(seq *sequencer.Sequencer, l ledger.Ledger, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{seq: seq, ledger: l, log: log}
}

// Mint validates the requested quantity, submits a mintTo call for the payer
// and blocks until the ledger confirms or fails it. An empty payer fails with
// ErrPaymentRequired and an out-of-bounds quantity with ErrInvalidQuantity,
// both before any ledger interaction.
func (s *Service) Mint(ctx context.Context, payer string, quantity int) (*mintgate.MintResult, error) {
	if payer == "" {
		return nil, mintgate.ErrPaymentRequired
	}
	if quantity < mintgate.MinQuantity || quantity > mintgate.MaxQuantity {
		return nil, fmt.Errorf("%w: %d not in [%d,%d]",
			mintgate.ErrInvalidQuantity, quantity, mintgate.MinQuantity, mintgate.MaxQuantity)
	}
	result, err := s.mint(ctx, payer, quantity)
	if err != nil {
		return nil, err
	}
	result.Message = fmt.Sprintf("Successfully minted %d NFT(s)", quantity)
	return result, nil
}

// MintFixed mints a fixed quantity hardcoded at the call site, skipping the
// bounds check but otherwise behaving like Mint.
func (s *Service) MintFixed(ctx context.Context, payer string, quantity int) (*mintgate.MintResult, error) {
	result, err := s.mint(ctx, payer, quantity)
	if err != nil {
		return nil, err
	}
	result.Message = fmt.Sprintf("Successfully minted %d NFTs", quantity)
	return result, nil
}

func (s *Service) mint(ctx context.Context, payer string, quantity int) (*mintgate.MintResult, error) {
	if payer == "" {
		return nil, mintgate.ErrPaymentRequired
	}

	result, err := s.seq.Enqueue(ledger.Call{
		Recipient: common.HexToAddress(payer),
		Quantity:  big.NewInt(int64(quantity)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mintgate.ErrMintFailed, err)
	}

	s.log.Info("mint enqueued", "payer", payer, "quantity", quantity)

	// The outcome channel, not ctx, decides when this returns: a client
	// disconnect must not abandon a submission that may still commit.
	outcome := <-result
	if outcome.Err != nil {
		return nil, fmt.Errorf("%w: %v", mintgate.ErrMintFailed, outcome.Err)
	}

	return &mintgate.MintResult{
		MintedTo: payer,
		Quantity: quantity,
		TxHash:   outcome.Receipt.TxHash.Hex(),
	}, nil
}

// TotalMinted reads the ledger's current total supply. The payer gate still
// applies, but the payer identity is not otherwise used. The value is read
// fresh on every call.
func (s *Service) TotalMinted(ctx context.Context, payer string) (*mintgate.SupplySnapshot, error) {
	if payer == "" {
		return nil, mintgate.ErrPaymentRequired
	}

	supply, err := s.ledger.TotalSupply(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mintgate.ErrReadFailed, err)
	}

	return &mintgate.SupplySnapshot{
		Minted:  supply.String(),
		Message: "Total NFTs minted so far",
	}, nil
}
