package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      uint64      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// JSONRPCClient speaks JSON-RPC 2.0 over HTTP against a blockchain
// node.
type JSONRPCClient struct {
	Endpoint string
	Client   HTTPClient

	nextID uint64
}

func NewJSONRPCClient(endpoint string, client HTTPClient) *JSONRPCClient {
	return &JSONRPCClient{Endpoint: endpoint, Client: client}
}

func (c *JSONRPCClient) Call(ctx context.Context, method string, params interface{}, result interface{}) error {
	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      atomic.AddUint64(&c.nextID, 1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rpc %s: unexpected status %d", method, resp.StatusCode)
	}

	var parsed rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("rpc %s: %w", method, err)
	}
	if parsed.Error != nil {
		return fmt.Errorf("rpc %s: %s (code %d)", method, parsed.Error.Message, parsed.Error.Code)
	}
	if result == nil || len(parsed.Result) == 0 {
		return nil
	}
	return json.Unmarshal(parsed.Result, result)
}
