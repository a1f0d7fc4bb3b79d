package bitcoin

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// DefaultPrevoutCacheSize bounds the previous output cache.
const DefaultPrevoutCacheSize = 50_000

type outpoint struct {
	txid string
	vout uint32
}

type prevout struct {
	value   uint64
	address string
}

// prevoutResolver fills in spent output values the node did not report by
// fetching the parent transactions. Parent outputs are cached.
type prevoutResolver struct {
	client  *LedgerClient
	cache   *lru.Cache[outpoint, prevout]
	metrics RPCMetrics
	logger  *zap.Logger
}

func newPrevoutResolver(client *LedgerClient, size int, metrics RPCMetrics, logger *zap.Logger) (*prevoutResolver, error) {
	if size <= 0 {
		size = DefaultPrevoutCacheSize
	}
	cache, err := lru.New[outpoint, prevout](size)
	if err != nil {
		return nil, fmt.Errorf("create prevout cache: %w", err)
	}
	return &prevoutResolver{client: client, cache: cache, metrics: metrics, logger: logger}, nil
}

// Resolve fills missing input values of tx in place. A parent the node
// cannot find leaves its inputs unknown; transport failures are returned.
func (r *prevoutResolver) Resolve(ctx context.Context, tx *model.Transaction) error {
	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		if in.IsCoinbase || in.PrevValueKnown {
			continue
		}
		key := outpoint{txid: in.PrevTxID, vout: in.PrevVout}
		p, ok := r.cache.Get(key)
		r.metrics.ObservePrevoutCache(ok)
		if !ok {
			if err := r.load(ctx, in.PrevTxID); err != nil {
				return fmt.Errorf("resolve prevout %s:%d: %w", in.PrevTxID, in.PrevVout, err)
			}
			if p, ok = r.cache.Get(key); !ok {
				continue
			}
		}
		in.PrevValue = p.value
		in.PrevValueKnown = true
		if in.Address == "" {
			in.Address = p.address
		}
	}
	return nil
}

func (r *prevoutResolver) load(ctx context.Context, txid string) error {
	parent, err := r.client.rawTransaction(ctx, txid, 1)
	switch {
	case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrProtocol):
		r.logger.Debug("parent transaction unavailable", zap.String("txid", txid), zap.Error(err))
		return nil
	case err != nil:
		return err
	}

	for _, vout := range parent.Vout {
		value, err := BtcToSatoshis(vout.Value)
		if err != nil {
			continue
		}
		var address string
		if addrs, err := r.client.decoder.addresses(vout.ScriptPubKey); err == nil && len(addrs) > 0 {
			address = addrs[0]
		}
		r.cache.Add(outpoint{txid: txid, vout: vout.N}, prevout{value: value, address: address})
	}
	return nil
}
