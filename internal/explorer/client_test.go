package explorer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

var testAddress = common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	client := NewClient(server.URL, "test-key", 5*time.Second, nil)
	return client, server.Close
}

func TestContractCreation(t *testing.T) {
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("module") != "contract" || q.Get("action") != "getcontractcreation" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		if q.Get("apikey") != "test-key" {
			t.Fatalf("api key not passed")
		}
		w.Write([]byte(`{"status":"1","message":"OK","result":[{"contractAddress":"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed","contractCreator":"0x1111111111111111111111111111111111111111","txHash":"0xfeedface"}]}`))
	})
	defer done()

	creator, txHash, err := client.ContractCreation(context.Background(), testAddress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creator != "0x1111111111111111111111111111111111111111" || txHash != "0xfeedface" {
		t.Fatalf("unexpected creation info: %s %s", creator, txHash)
	}
}

func TestContractCreationNotFound(t *testing.T) {
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"0","message":"No data found","result":[]}`))
	})
	defer done()

	_, _, err := client.ContractCreation(context.Background(), testAddress)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTransactionBlockNumber(t *testing.T) {
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("action") != "eth_getTransactionByHash" || q.Get("txhash") != "0xfeedface" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"hash":"0xfeedface","blockNumber":"0x10"}}`))
	})
	defer done()

	blockNumber, err := client.TransactionBlockNumber(context.Background(), "0xfeedface")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blockNumber != 16 {
		t.Fatalf("unexpected block number: %d", blockNumber)
	}
}

func TestTransactionBlockNumberPending(t *testing.T) {
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"hash":"0xfeedface","blockNumber":""}}`))
	})
	defer done()

	if _, err := client.TransactionBlockNumber(context.Background(), "0xfeedface"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for pending transaction, got %v", err)
	}
}

func TestBlockTimestamp(t *testing.T) {
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("action") != "eth_getBlockByNumber" || q.Get("tag") != "0x10" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"number":"0x10","timestamp":"0x65533bc0"}}`))
	})
	defer done()

	ts, err := client.BlockTimestamp(context.Background(), 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts != 0x65533bc0 {
		t.Fatalf("unexpected timestamp: %d", ts)
	}
}

func TestSourceAndABIVerified(t *testing.T) {
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("action") != "getsourcecode" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"status":"1","message":"OK","result":[{"SourceCode":"contract Token { }","ABI":"[{\"type\":\"function\",\"name\":\"totalSupply\",\"inputs\":[],\"outputs\":[{\"name\":\"\",\"type\":\"uint256\"}],\"stateMutability\":\"view\"}]","ContractName":"Token","CompilerVersion":"v0.8.19"}]}`))
	})
	defer done()

	info, err := client.SourceAndABI(context.Background(), testAddress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !info.IsVerified || info.ContractName != "Token" {
		t.Fatalf("unexpected verification info: %+v", info)
	}
	if len(info.ABI) != 1 || info.ABI[0].Name != "totalSupply" || info.ABI[0].Type != "function" {
		t.Fatalf("unexpected abi: %+v", info.ABI)
	}
	if _, ok := info.FunctionNames()["totalSupply"]; !ok {
		t.Fatalf("function name set missing totalSupply")
	}
}

func TestSourceAndABIUnverified(t *testing.T) {
	cases := []string{
		`{"status":"1","message":"OK","result":[{"SourceCode":"","ABI":"Contract source code not verified","ContractName":""}]}`,
		`{"status":"1","message":"OK","result":[{"SourceCode":"{{}}","ABI":"","ContractName":""}]}`,
	}

	for _, payload := range cases {
		body := payload
		client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})

		info, err := client.SourceAndABI(context.Background(), testAddress)
		done()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if info.IsVerified {
			t.Fatalf("payload should count as unverified: %s", body)
		}
	}
}

func TestSourceAndABIParseFailure(t *testing.T) {
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"1","message":"OK","result":[{"SourceCode":"contract Opaque { }","ABI":"not json","ContractName":"Opaque"}]}`))
	})
	defer done()

	info, err := client.SourceAndABI(context.Background(), testAddress)
	if !errors.Is(err, ErrABIParse) {
		t.Fatalf("expected ErrABIParse, got %v", err)
	}
	if !info.IsVerified || info.ContractName != "Opaque" || info.SourceCode == "" {
		t.Fatalf("parse failure should keep the verification record: %+v", info)
	}
	if info.ABI != nil {
		t.Fatalf("abi must be absent on parse failure")
	}
}

func TestGetRejectsHTTPError(t *testing.T) {
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	defer done()

	if _, _, err := client.ContractCreation(context.Background(), testAddress); err == nil {
		t.Fatalf("expected error for non-200 response")
	}
}

func TestEndpointForChain(t *testing.T) {
	endpoint, err := EndpointForChain("Ethereum")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if endpoint != "https://api.etherscan.io" {
		t.Fatalf("unexpected endpoint: %s", endpoint)
	}

	if _, err := EndpointForChain("dogecoin"); err == nil {
		t.Fatalf("expected error for unknown chain")
	}
}
