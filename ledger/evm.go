package ledger

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// nftABI covers the two contract entry points the gateway uses.
const nftABI = `[
	{"type":"function","name":"mintTo","stateMutability":"nonpayable","inputs":[{"name":"recipient","type":"address"},{"name":"quantity","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

// Client is the go-ethereum backed Ledger implementation. It holds the
// gateway's single signing identity; callers must serialize Submit calls
// (see the sequencer package) because the chain assigns this identity's
// transactions strictly sequential nonces.
type Client struct {
	eth      *ethclient.Client
	contract *bind.BoundContract
	key      *ecdsa.PrivateKey
	address  common.Address
	chainID  *big.Int
}

// Dial connects to the ledger RPC endpoint and binds the asset contract.
// The private key is the hex-encoded signing identity credential.
func Dial(ctx context.Context, rpcURL, contractAddr, privateKeyHex string) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("ledger rpc dial: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("invalid signing key: %w", err)
	}

	chainID, err := eth.ChainID(ctx)
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("fetch chain id: %w", err)
	}

	parsed, err := abi.JSON(strings.NewReader(nftABI))
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("parse contract abi: %w", err)
	}

	return &Client{
		eth:      eth,
		contract: bind.NewBoundContract(common.HexToAddress(contractAddr), parsed, eth, eth, eth),
		key:      key,
		address:  crypto.PubkeyToAddress(key.PublicKey),
		chainID:  chainID,
	}, nil
}

// Address returns the signing identity's address.
func (c *Client) Address() common.Address {
	return c.address
}

// Close releases the underlying RPC connection.
func (c *Client) Close() {
	c.eth.Close()
}

// Submit signs and broadcasts a mintTo transaction.
func (c *Client) Submit(ctx context.Context, call Call) (*Pending, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(c.key, c.chainID)
	if err != nil {
		return nil, fmt.Errorf("build transactor: %w", err)
	}
	opts.Context = ctx

	tx, err := c.contract.Transact(opts, "mintTo", call.Recipient, call.Quantity)
	if err != nil {
		return nil, fmt.Errorf("submit mintTo: %w", err)
	}

	return &Pending{Hash: tx.Hash(), tx: tx}, nil
}

// AwaitConfirmation blocks until the transaction is mined. A receipt with
// failed status is reported as an error; the transaction consumed its nonce
// either way.
func (c *Client) AwaitConfirmation(ctx context.Context, pending *Pending) (*Receipt, error) {
	receipt, err := bind.WaitMined(ctx, c.eth, pending.tx)
	if err != nil {
		return nil, fmt.Errorf("await confirmation of %s: %w", pending.Hash, err)
	}
	if receipt.Status == 0 {
		return nil, fmt.Errorf("transaction %s reverted", pending.Hash)
	}

	return &Receipt{
		TxHash:      receipt.TxHash,
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
	}, nil
}

// TotalSupply reads the contract's total minted count.
func (c *Client) TotalSupply(ctx context.Context) (*big.Int, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "totalSupply"); err != nil {
		return nil, fmt.Errorf("read totalSupply: %w", err)
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("unexpected totalSupply output length %d", len(out))
	}
	supply, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected totalSupply output type %T", out[0])
	}
	return supply, nil
}
