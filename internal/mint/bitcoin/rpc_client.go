package bitcoin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
)

type rawRequester interface {
	RawRequestAsync(method string, params []json.RawMessage) rpcclient.FutureRawResult
}

// RPCClient wraps btc rpcclient with metrics instrumentation and maps node
// failures onto the model error taxonomy.
type RPCClient struct {
	client     rawRequester
	rpcMetrics RPCMetrics
}

// NewRPCClient constructs an instrumented RPC client.
func NewRPCClient(client *rpcclient.Client, rpcMetrics RPCMetrics) *RPCClient {
	return &RPCClient{
		client:     client,
		rpcMetrics: rpcMetrics,
	}
}

type rawResult struct {
	result json.RawMessage
	err    error
}

// Call sends method with params and returns the raw result. ctx bounds the
// wait for the response; the request itself is not aborted.
func (r *RPCClient) Call(ctx context.Context, method string, params ...any) (result json.RawMessage, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe(method, err, started)
	}()

	raw := make([]json.RawMessage, 0, len(params))
	for _, p := range params {
		b, merr := json.Marshal(p)
		if merr != nil {
			return nil, fmt.Errorf("%s: marshal params: %w", method, merr)
		}
		raw = append(raw, b)
	}

	future := r.client.RawRequestAsync(method, raw)
	done := make(chan rawResult, 1)
	go func() {
		res, err := future.Receive()
		done <- rawResult{result: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w: %w", method, model.ErrTransport, ctx.Err())
	case res := <-done:
		if res.err != nil {
			return nil, classifyError(method, res.err)
		}
		return res.result, nil
	}
}

// classifyError maps "no such block/transaction" answers to ErrNotFound and
// everything else the node or the connection reports to ErrTransport.
func classifyError(method string, err error) error {
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		switch rpcErr.Code {
		case btcjson.ErrRPCInvalidAddressOrKey, btcjson.ErrRPCInvalidParameter:
			return fmt.Errorf("%s: %w: %w", method, model.ErrNotFound, err)
		}
	}
	return fmt.Errorf("%s: %w: %w", method, model.ErrTransport, err)
}

func decodeResult[T any](method string, raw json.RawMessage) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("%s: decode result: %w: %w", method, model.ErrProtocol, err)
	}
	return v, nil
}
