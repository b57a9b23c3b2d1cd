package repository

import (
	"context"
	"time"

	"github.com/diillson/commerce-analytics-go/internal/domain/entity"
)

// SQLEngine is an embedded, in-memory analytical SQL engine holding one
// `transactions` table.
type SQLEngine interface {
	LoadTransactions(ctx context.Context, txs []entity.Transaction) (int64, error)
	Query(ctx context.Context, query string) (*entity.Table, error)
	RFMSegments(ctx context.Context, asOf time.Time) ([]entity.RFMSegmentSummary, error)
	Close() error
}

// SQLEngineFactory abre uma nova conexão com o engine.
type SQLEngineFactory func() (SQLEngine, error)
