package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Client wraps go-ethereum RPC and provides the account-state reads the
// audit pipeline needs: bytecode, balance, and nonce.
type Client struct {
	rpcClient *rpc.Client
	ethClient *ethclient.Client
}

// NewClient creates a new chain client from the RPC URL.
func NewClient(ctx context.Context, rpcURL string) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		rpcClient: rpcClient,
		ethClient: ethclient.NewClient(rpcClient),
	}, nil
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// GetChainID returns the chain ID.
func (c *Client) GetChainID(ctx context.Context) (*big.Int, error) {
	return c.ethClient.ChainID(ctx)
}

// Code returns the deployed bytecode at the address as a 0x-prefixed hex
// string. A contract-free address yields "0x".
func (c *Client) Code(ctx context.Context, address common.Address) (string, error) {
	code, err := c.ethClient.CodeAt(ctx, address, nil)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(code), nil
}

// Balance returns the native-unit balance of the address in wei.
func (c *Client) Balance(ctx context.Context, address common.Address) (*big.Int, error) {
	return c.ethClient.BalanceAt(ctx, address, nil)
}

// TransactionCount returns the nonce of the address at the latest block.
func (c *Client) TransactionCount(ctx context.Context, address common.Address) (uint64, error) {
	return c.ethClient.NonceAt(ctx, address, nil)
}
