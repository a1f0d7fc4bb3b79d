package scanner

import (
	"context"
	"time"

	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/events"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// LedgerClient is the read access the scanners need from a ledger node.
	// Failures wrap model.ErrTransport, model.ErrProtocol, or model.ErrNotFound.
	LedgerClient interface {
		GetHeight(ctx context.Context) (uint64, error)
		GetBlockByHeight(ctx context.Context, height uint64) (*model.Block, error)
		GetMempoolSnapshot(ctx context.Context, verbose bool) (model.MempoolSnapshot, error)
		GetTransaction(ctx context.Context, txid string) (*model.Transaction, error)
		// GetTransactionsBatch returns the transactions it could fetch; missing ids are absent.
		GetTransactionsBatch(ctx context.Context, ids []string) (map[string]model.Transaction, error)
	}
	Publisher interface {
		Publish(e events.Event) int
	}
	BlockScannerMetrics interface {
		ObserveCycle(err error, heights int, started time.Time)
		ObserveHeight(err error, height uint64, mints int, started time.Time)
		SetLastProcessedHeight(height uint64)
		ObserveRetry(operation string)
	}
	MempoolScannerMetrics interface {
		ObserveCycle(err error, started time.Time)
		ObservePrefilter(snapshot, selected int)
		ObserveBatch(err error, size int, started time.Time)
		ObserveRetry(operation string)
		ObserveCandidates(found int)
	}
)
