package repository

import "github.com/diillson/commerce-analytics-go/internal/domain/entity"

// DatasetRepository reads the input CSVs and writes result tables.
type DatasetRepository interface {
	Exists(path string) bool
	LoadTransactions(path string) ([]entity.Transaction, error)
	LoadSales(path string) ([]entity.SalesRecord, error)
	WriteTable(path string, table *entity.Table) (string, error)
}
