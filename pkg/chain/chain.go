// Package chain reads transaction receipts from an Ethereum-compatible
// JSON-RPC endpoint. Consensus and confirmation are the node's business;
// this package only reports what the node says about one transaction.
package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/params"
)

// Receipt is the settled view of a chain transaction. Amount is denominated
// in ether, as reported by the node.
type Receipt struct {
	Success bool    `json:"success"`
	From    string  `json:"from"`
	To      string  `json:"to"`
	Amount  float64 `json:"amount"`
	GasUsed uint64  `json:"gas_used"`
}

// Verifier looks up a transaction receipt by hash. Implementations return an
// error when the transaction is unknown, unmined, or the lookup itself fails.
type Verifier interface {
	VerifyTransaction(ctx context.Context, txHash string) (*Receipt, error)
}

// Client is a Verifier backed by an ethclient connection.
type Client struct {
	eth *ethclient.Client
}

var _ Verifier = (*Client)(nil)

// Dial connects to the JSON-RPC endpoint.
func Dial(ctx context.Context, rpcURL string) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial chain rpc: %w", err)
	}
	return &Client{eth: eth}, nil
}

// Close releases the underlying RPC connection.
func (c *Client) Close() {
	if c != nil && c.eth != nil {
		c.eth.Close()
	}
}

// VerifyTransaction fetches the transaction and its receipt and reports the
// node's view of it.
func (c *Client) VerifyTransaction(ctx context.Context, txHash string) (*Receipt, error) {
	hash := common.HexToHash(txHash)

	tx, pending, err := c.eth.TransactionByHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("transaction lookup: %w", err)
	}
	if pending {
		return nil, fmt.Errorf("transaction %s not yet mined", txHash)
	}

	receipt, err := c.eth.TransactionReceipt(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("receipt lookup: %w", err)
	}

	chainID, err := c.eth.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("chain id: %w", err)
	}
	from, err := types.Sender(types.LatestSignerForChainID(chainID), tx)
	if err != nil {
		return nil, fmt.Errorf("recover sender: %w", err)
	}

	to := ""
	if tx.To() != nil {
		to = tx.To().Hex()
	}

	return &Receipt{
		Success: receipt.Status == types.ReceiptStatusSuccessful,
		From:    from.Hex(),
		To:      to,
		Amount:  weiToEther(tx.Value()),
		GasUsed: receipt.GasUsed,
	}, nil
}

func weiToEther(wei *big.Int) float64 {
	if wei == nil {
		return 0
	}
	f, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(params.Ether)).Float64()
	return f
}
