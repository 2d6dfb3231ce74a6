package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	"contractScope/internal/model"
)

// ErrNotFound marks a lookup the explorer answered but had no data for.
var ErrNotFound = errors.New("explorer: no data found")

// ErrABIParse marks a verified contract whose ABI payload failed to parse.
// The accompanying VerificationInfo still carries the source and name.
var ErrABIParse = errors.New("explorer: abi parse failed")

// unverifiedSourceMarker is the payload etherscan-style APIs return in the
// SourceCode field for contracts without a verification record.
const unverifiedSourceMarker = "{{}}"

// Client talks to an etherscan-compatible block explorer HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds an explorer client for the given API base URL.
// The API key may be empty; rate limits are then the anonymous tier's.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// envelope is the outer etherscan response shape for module endpoints.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// proxyEnvelope is the outer shape for module=proxy JSON-RPC passthrough.
type proxyEnvelope struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) get(ctx context.Context, params url.Values, out interface{}) error {
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}

	endpoint := c.baseURL + "/api?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("explorer request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read explorer response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("explorer status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse explorer response: %w", err)
	}
	return nil
}

type creationResult struct {
	ContractAddress string `json:"contractAddress"`
	ContractCreator string `json:"contractCreator"`
	TxHash          string `json:"txHash"`
}

// ContractCreation resolves the creator address and creation transaction
// hash for a contract. Returns ErrNotFound when the explorer has no record.
func (c *Client) ContractCreation(ctx context.Context, address common.Address) (creator, txHash string, err error) {
	params := url.Values{}
	params.Set("module", "contract")
	params.Set("action", "getcontractcreation")
	params.Set("contractaddresses", address.Hex())

	var env envelope
	if err := c.get(ctx, params, &env); err != nil {
		return "", "", err
	}
	if env.Status != "1" {
		return "", "", fmt.Errorf("%w: %s", ErrNotFound, env.Message)
	}

	var results []creationResult
	if err := json.Unmarshal(env.Result, &results); err != nil {
		return "", "", fmt.Errorf("parse creation result: %w", err)
	}
	if len(results) == 0 {
		return "", "", ErrNotFound
	}
	return results[0].ContractCreator, results[0].TxHash, nil
}

// TransactionBlockNumber returns the block number a transaction was mined in.
func (c *Client) TransactionBlockNumber(ctx context.Context, txHash string) (uint64, error) {
	params := url.Values{}
	params.Set("module", "proxy")
	params.Set("action", "eth_getTransactionByHash")
	params.Set("txhash", txHash)

	var env proxyEnvelope
	if err := c.get(ctx, params, &env); err != nil {
		return 0, err
	}
	if env.Error != nil {
		return 0, fmt.Errorf("explorer proxy error: %s", env.Error.Message)
	}

	var tx struct {
		BlockNumber string `json:"blockNumber"`
	}
	if len(env.Result) == 0 || string(env.Result) == "null" {
		return 0, ErrNotFound
	}
	if err := json.Unmarshal(env.Result, &tx); err != nil {
		return 0, fmt.Errorf("parse transaction result: %w", err)
	}
	if tx.BlockNumber == "" {
		return 0, ErrNotFound
	}

	blockNumber, err := hexutil.DecodeUint64(tx.BlockNumber)
	if err != nil {
		return 0, fmt.Errorf("decode block number %q: %w", tx.BlockNumber, err)
	}
	return blockNumber, nil
}

// BlockTimestamp returns the UNIX timestamp of a block.
func (c *Client) BlockTimestamp(ctx context.Context, blockNumber uint64) (uint64, error) {
	params := url.Values{}
	params.Set("module", "proxy")
	params.Set("action", "eth_getBlockByNumber")
	params.Set("tag", hexutil.EncodeUint64(blockNumber))
	params.Set("boolean", "false")

	var env proxyEnvelope
	if err := c.get(ctx, params, &env); err != nil {
		return 0, err
	}
	if env.Error != nil {
		return 0, fmt.Errorf("explorer proxy error: %s", env.Error.Message)
	}
	if len(env.Result) == 0 || string(env.Result) == "null" {
		return 0, ErrNotFound
	}

	var block struct {
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(env.Result, &block); err != nil {
		return 0, fmt.Errorf("parse block result: %w", err)
	}
	if block.Timestamp == "" {
		return 0, ErrNotFound
	}

	ts, err := hexutil.DecodeUint64(block.Timestamp)
	if err != nil {
		return 0, fmt.Errorf("decode block timestamp %q: %w", block.Timestamp, err)
	}
	return ts, nil
}

// sourceCodeResult mirrors the getsourcecode result entry.
type sourceCodeResult struct {
	SourceCode      string `json:"SourceCode"`
	ABI             string `json:"ABI"`
	ContractName    string `json:"ContractName"`
	CompilerVersion string `json:"CompilerVersion"`
}

// SourceAndABI fetches the verification record for a contract. A contract
// counts as verified only when the source payload is present, is not the
// empty-object marker, and has non-trivial length. When the ABI payload of
// a verified contract fails to parse, the returned VerificationInfo still
// carries the source and name and the error wraps ErrABIParse.
func (c *Client) SourceAndABI(ctx context.Context, address common.Address) (model.VerificationInfo, error) {
	params := url.Values{}
	params.Set("module", "contract")
	params.Set("action", "getsourcecode")
	params.Set("address", address.Hex())

	var env envelope
	if err := c.get(ctx, params, &env); err != nil {
		return model.VerificationInfo{}, err
	}
	if env.Status != "1" {
		return model.VerificationInfo{}, fmt.Errorf("%w: %s", ErrNotFound, env.Message)
	}

	var results []sourceCodeResult
	if err := json.Unmarshal(env.Result, &results); err != nil {
		return model.VerificationInfo{}, fmt.Errorf("parse source result: %w", err)
	}
	if len(results) == 0 {
		return model.VerificationInfo{}, ErrNotFound
	}

	entry := results[0]
	if entry.SourceCode == "" || entry.SourceCode == unverifiedSourceMarker || len(entry.SourceCode) <= 2 {
		return model.VerificationInfo{IsVerified: false}, nil
	}

	info := model.VerificationInfo{
		IsVerified:      true,
		ContractName:    entry.ContractName,
		CompilerVersion: entry.CompilerVersion,
		SourceCode:      entry.SourceCode,
	}

	var abiEntries []model.ABIEntry
	if err := json.Unmarshal([]byte(entry.ABI), &abiEntries); err != nil {
		c.logger.Warn("abi payload did not parse",
			zap.String("address", address.Hex()),
			zap.Error(err),
		)
		return info, fmt.Errorf("%w: %v", ErrABIParse, err)
	}
	info.ABI = abiEntries

	return info, nil
}
