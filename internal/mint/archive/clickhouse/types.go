package clickhouse

import (
	"context"
	"time"

	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, network model.Network, rows int, err error, started time.Time)
	}
	// Conn is the part of a ClickHouse connection the repository uses.
	Conn interface {
		PrepareBatch(ctx context.Context, query string) (Batch, error)
		Close() error
	}
	Batch interface {
		Append(v ...any) error
		Send() error
		Abort() error
	}
	// CandidateWriter persists archived candidate rows.
	CandidateWriter interface {
		InsertCandidates(ctx context.Context, rows []CandidateRow) error
	}
)
