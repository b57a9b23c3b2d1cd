package sqlengine

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/diillson/commerce-analytics-go/internal/domain/entity"
	"github.com/diillson/commerce-analytics-go/internal/domain/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const loadBatchSize = 500

// transactionRow é o esquema da tabela transactions no engine.
type transactionRow struct {
	OrderID         string  `gorm:"column:order_id"`
	CustomerID      string  `gorm:"column:customer_id;index"`
	OrderDate       string  `gorm:"column:order_date"`
	OrderAmount     float64 `gorm:"column:order_amount"`
	ProductCategory string  `gorm:"column:product_category"`
}

func (transactionRow) TableName() string {
	return "transactions"
}

type rfmSegmentRow struct {
	CustomerSegment string  `gorm:"column:customer_segment"`
	CustomerCount   int     `gorm:"column:customer_count"`
	SegmentPct      float64 `gorm:"column:segment_pct"`
	AvgRecencyDays  float64 `gorm:"column:avg_recency_days"`
	AvgFrequency    float64 `gorm:"column:avg_frequency"`
	AvgMonetary     float64 `gorm:"column:avg_monetary"`
	AvgOrderValue   float64 `gorm:"column:avg_order_value"`
}

// SQLiteEngine implementa o SQLEngine com SQLite em memória via GORM.
type SQLiteEngine struct {
	db *gorm.DB
}

// Open abre um banco SQLite em memória com uma única conexão, para que
// todas as consultas vejam a mesma base.
func Open() (repository.SQLEngine, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&transactionRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to create transactions table: %w", err)
	}

	return &SQLiteEngine{db: db}, nil
}

// LoadTransactions insere as transações na tabela e devolve a contagem de linhas.
func (e *SQLiteEngine) LoadTransactions(ctx context.Context, txs []entity.Transaction) (int64, error) {
	rows := make([]transactionRow, len(txs))
	for i, tx := range txs {
		rows[i] = transactionRow{
			OrderID:         tx.OrderID,
			CustomerID:      tx.CustomerID,
			OrderDate:       tx.OrderDate.Format("2006-01-02"),
			OrderAmount:     tx.OrderAmount,
			ProductCategory: tx.ProductCategory,
		}
	}

	db := e.db.WithContext(ctx)
	if len(rows) > 0 {
		if err := db.CreateInBatches(rows, loadBatchSize).Error; err != nil {
			return 0, fmt.Errorf("failed to load transactions: %w", err)
		}
	}

	var count int64
	if err := db.Model(&transactionRow{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// Query executa uma consulta arbitrária e devolve o resultado como tabela
// (colunas dinâmicas).
func (e *SQLiteEngine) Query(ctx context.Context, query string) (*entity.Table, error) {
	rows, err := e.db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	table := entity.NewTable("query", cols...)
	for rows.Next() {
		values := make([]interface{}, len(cols))
		pointers := make([]interface{}, len(cols))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}

		cells := make([]string, len(cols))
		for i, v := range values {
			cells[i] = formatValue(v)
		}
		table.Append(cells...)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return table, nil
}

// RFMSegments runs the RFM segmentation in SQL for the given reference date.
func (e *SQLiteEngine) RFMSegments(ctx context.Context, asOf time.Time) ([]entity.RFMSegmentSummary, error) {
	var rows []rfmSegmentRow
	err := e.db.WithContext(ctx).
		Raw(QueryRFMSegments, sql.Named("as_of", asOf.Format("2006-01-02"))).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("RFM query failed: %w", err)
	}

	out := make([]entity.RFMSegmentSummary, len(rows))
	for i, r := range rows {
		out[i] = entity.RFMSegmentSummary{
			Segment:        r.CustomerSegment,
			CustomerCount:  r.CustomerCount,
			SegmentPct:     r.SegmentPct,
			AvgRecencyDays: r.AvgRecencyDays,
			AvgFrequency:   r.AvgFrequency,
			AvgMonetary:    r.AvgMonetary,
			AvgOrderValue:  r.AvgOrderValue,
		}
	}
	return out, nil
}

// Close fecha a conexão; a base em memória é descartada.
func (e *SQLiteEngine) Close() error {
	sqlDB, err := e.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return fmt.Sprint(val)
	}
}
