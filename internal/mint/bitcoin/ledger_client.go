package bitcoin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
	"github.com/goodnatureofminers/mintwatch-backend/pkg/safe"
	"github.com/goodnatureofminers/mintwatch-backend/pkg/workerpool"
	"go.uber.org/zap"
)

const (
	// getblock verbosity 3 reports prevouts inline. Nodes that reject it
	// are asked for verbosity 2 and prevouts are resolved separately.
	blockVerbosity       = 3
	legacyBlockVerbosity = 2
	// getrawtransaction verbosity 2 reports prevouts on recent nodes and is
	// read as plain verbose by older ones.
	txVerbosity = 2

	defaultFetchConcurrency = 8
)

type caller interface {
	Call(ctx context.Context, method string, params ...any) (json.RawMessage, error)
}

// LedgerConfig configures a LedgerClient.
type LedgerConfig struct {
	Network          model.Network
	PrevoutCacheSize int
	// FetchConcurrency bounds in-flight requests of one GetTransactionsBatch.
	FetchConcurrency int
}

// LedgerClient reads blocks, the mempool, and transactions from bitcoind
// and normalizes them into model types.
type LedgerClient struct {
	rpc         caller
	decoder     *scriptDecoder
	prevouts    *prevoutResolver
	concurrency int
	logger      *zap.Logger

	// verbosity is the getblock verbosity the node accepts.
	verbosity atomic.Int32
}

// NewLedgerClient constructs a LedgerClient on top of an instrumented RPC client.
func NewLedgerClient(cfg LedgerConfig, rpc *RPCClient, logger *zap.Logger) (*LedgerClient, error) {
	decoder, err := newScriptDecoder(cfg.Network)
	if err != nil {
		return nil, err
	}
	concurrency := cfg.FetchConcurrency
	if concurrency <= 0 {
		concurrency = defaultFetchConcurrency
	}
	c := &LedgerClient{
		rpc:         rpc,
		decoder:     decoder,
		concurrency: concurrency,
		logger:      logger.Named("ledger_client").With(zap.String("network", string(cfg.Network))),
	}
	c.verbosity.Store(blockVerbosity)
	c.prevouts, err = newPrevoutResolver(c, cfg.PrevoutCacheSize, rpc.rpcMetrics, c.logger)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetHeight returns the height of the chain tip.
func (c *LedgerClient) GetHeight(ctx context.Context) (uint64, error) {
	raw, err := c.rpc.Call(ctx, "getblockcount")
	if err != nil {
		return 0, err
	}
	count, err := decodeResult[int64]("getblockcount", raw)
	if err != nil {
		return 0, err
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w: %w", model.ErrProtocol, err)
	}
	return height, nil
}

// GetBlockByHeight fetches and normalizes the block at height. Transactions
// the node reports in a malformed shape are logged and left out.
func (c *LedgerClient) GetBlockByHeight(ctx context.Context, height uint64) (*model.Block, error) {
	h, err := safe.Int64(height)
	if err != nil {
		return nil, fmt.Errorf("block height %d: %w", height, model.ErrNotFound)
	}
	raw, err := c.rpc.Call(ctx, "getblockhash", h)
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	hash, err := decodeResult[string]("getblockhash", raw)
	if err != nil {
		return nil, err
	}
	if _, err := chainhash.NewHashFromStr(hash); err != nil {
		return nil, fmt.Errorf("block hash at height %d: %w: %w", height, model.ErrProtocol, err)
	}

	raw, err = c.getBlock(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}
	src, err := decodeResult[rpcBlock]("getblock", raw)
	if err != nil {
		return nil, err
	}
	if src.Hash != hash {
		return nil, fmt.Errorf("block %s: node answered with %q: %w", hash, src.Hash, model.ErrProtocol)
	}

	block := &model.Block{
		Height:       height,
		Hash:         src.Hash,
		Time:         time.Unix(src.Time, 0).UTC(),
		Transactions: make([]model.Transaction, 0, len(src.Tx)),
	}
	for _, rtx := range src.Tx {
		tx, err := c.convertTransaction(rtx)
		if err != nil {
			c.logger.Warn("skipping malformed block transaction",
				zap.Uint64("height", height), zap.String("txid", rtx.Txid), zap.Error(err))
			continue
		}
		if err := c.completePrevouts(ctx, &tx); err != nil {
			return nil, fmt.Errorf("block %d: %w", height, err)
		}
		block.Transactions = append(block.Transactions, tx)
	}
	return block, nil
}

// getBlock asks for the block with inline prevouts and falls back to the
// legacy verbosity for good once the node rejects the parameter.
func (c *LedgerClient) getBlock(ctx context.Context, hash string) (json.RawMessage, error) {
	verbosity := c.verbosity.Load()
	raw, err := c.rpc.Call(ctx, "getblock", hash, verbosity)
	if err == nil || verbosity == legacyBlockVerbosity {
		return raw, err
	}
	var rpcErr *btcjson.RPCError
	if !errors.As(err, &rpcErr) || rpcErr.Code != btcjson.ErrRPCInvalidParameter {
		return nil, err
	}
	if c.verbosity.CompareAndSwap(verbosity, legacyBlockVerbosity) {
		c.logger.Warn("node rejects getblock verbosity 3, resolving prevouts per transaction",
			zap.String("block", hash), zap.Error(err))
	}
	return c.rpc.Call(ctx, "getblock", hash, legacyBlockVerbosity)
}

// GetMempoolSnapshot lists the mempool. Without verbose only ids are
// returned and every entry has an unknown fee.
func (c *LedgerClient) GetMempoolSnapshot(ctx context.Context, verbose bool) (model.MempoolSnapshot, error) {
	raw, err := c.rpc.Call(ctx, "getrawmempool", verbose)
	if err != nil {
		return nil, err
	}

	if !verbose {
		ids, err := decodeResult[[]string]("getrawmempool", raw)
		if err != nil {
			return nil, err
		}
		snapshot := make(model.MempoolSnapshot, len(ids))
		for _, id := range ids {
			snapshot[id] = model.MempoolEntry{TxID: id}
		}
		return snapshot, nil
	}

	entries, err := decodeResult[map[string]rpcMempoolEntry]("getrawmempool", raw)
	if err != nil {
		return nil, err
	}
	snapshot := make(model.MempoolSnapshot, len(entries))
	for id, e := range entries {
		snapshot[id] = c.convertMempoolEntry(id, e)
	}
	return snapshot, nil
}

func (c *LedgerClient) convertMempoolEntry(id string, e rpcMempoolEntry) model.MempoolEntry {
	entry := model.MempoolEntry{TxID: id}
	if v, err := safe.Uint32(e.Vsize); err == nil {
		entry.VSize = v
	}
	if v, err := safe.Uint32(e.Size); err == nil {
		entry.Size = v
	}
	if v, err := safe.Uint32(e.Weight); err == nil {
		entry.Weight = v
	}
	if fee, ok := e.baseFee(); ok {
		if sats, err := BtcToSatoshis(fee); err == nil {
			entry.Fee = sats
			entry.FeeKnown = true
		}
	}
	return entry
}

// GetTransaction fetches one transaction with its prevouts resolved where possible.
func (c *LedgerClient) GetTransaction(ctx context.Context, txid string) (*model.Transaction, error) {
	src, err := c.rawTransaction(ctx, txid, txVerbosity)
	if err != nil {
		return nil, err
	}
	tx, err := c.convertTransaction(src)
	if err != nil {
		return nil, err
	}
	if err := c.completePrevouts(ctx, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetTransactionsBatch fetches ids concurrently. Ids the node no longer
// knows or reports malformed are absent from the result. An error is
// returned only when nothing could be fetched because of a transport failure.
func (c *LedgerClient) GetTransactionsBatch(ctx context.Context, ids []string) (map[string]model.Transaction, error) {
	var (
		mu     sync.Mutex
		result = make(map[string]model.Transaction, len(ids))
	)
	err := workerpool.Process(ctx, c.concurrency, ids, func(ctx context.Context, id string) error {
		tx, err := c.GetTransaction(ctx, id)
		switch {
		case errors.Is(err, model.ErrNotFound):
			return nil
		case errors.Is(err, model.ErrProtocol):
			c.logger.Warn("skipping malformed transaction", zap.String("txid", id), zap.Error(err))
			return nil
		case err != nil:
			return err
		}
		mu.Lock()
		result[id] = *tx
		mu.Unlock()
		return nil
	})
	if err != nil && len(result) == 0 {
		return nil, err
	}
	if err != nil {
		c.logger.Debug("partial transaction batch", zap.Int("requested", len(ids)), zap.Int("fetched", len(result)), zap.Error(err))
	}
	return result, nil
}

func (c *LedgerClient) rawTransaction(ctx context.Context, txid string, verbosity int) (rpcTransaction, error) {
	raw, err := c.rpc.Call(ctx, "getrawtransaction", txid, verbosity)
	if err != nil {
		return rpcTransaction{}, fmt.Errorf("get transaction %s: %w", txid, err)
	}
	return decodeResult[rpcTransaction]("getrawtransaction", raw)
}

func (c *LedgerClient) completePrevouts(ctx context.Context, tx *model.Transaction) error {
	if !hasDataCarrier(*tx) || !needsPrevouts(*tx) {
		return nil
	}
	return c.prevouts.Resolve(ctx, tx)
}
