package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/diillson/commerce-analytics-go/internal/domain/entity"
	"github.com/diillson/commerce-analytics-go/internal/domain/repository"
	"github.com/diillson/commerce-analytics-go/internal/shared/types"
)

// dateLayouts aceitos na leitura das colunas de data.
var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339}

// CSVRepositoryImpl implementa o DatasetRepository sobre arquivos CSV.
type CSVRepositoryImpl struct{}

// NewCSVRepository cria uma nova implementação do DatasetRepository.
func NewCSVRepository() repository.DatasetRepository {
	return &CSVRepositoryImpl{}
}

// Exists informa se o arquivo existe e não é um diretório.
func (r *CSVRepositoryImpl) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LoadTransactions lê sample_transactions.csv.
func (r *CSVRepositoryImpl) LoadTransactions(path string) ([]entity.Transaction, error) {
	var txs []entity.Transaction
	err := readCSV(path, entity.TransactionColumns, func(line int, get func(string) string) error {
		date, err := parseDate(get("order_date"))
		if err != nil {
			return fmt.Errorf("line %d: order_date: %w", line, err)
		}
		amount, err := strconv.ParseFloat(get("order_amount"), 64)
		if err != nil {
			return fmt.Errorf("line %d: order_amount: %w", line, err)
		}
		txs = append(txs, entity.Transaction{
			OrderID:         get("order_id"),
			CustomerID:      get("customer_id"),
			OrderDate:       date,
			OrderAmount:     amount,
			ProductCategory: get("product_category"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txs, nil
}

// LoadSales lê sales_history.csv.
func (r *CSVRepositoryImpl) LoadSales(path string) ([]entity.SalesRecord, error) {
	var records []entity.SalesRecord
	err := readCSV(path, entity.SalesColumns, func(line int, get func(string) string) error {
		date, err := parseDate(get("date"))
		if err != nil {
			return fmt.Errorf("line %d: date: %w", line, err)
		}
		amount, err := strconv.ParseFloat(get("sales_amount"), 64)
		if err != nil {
			return fmt.Errorf("line %d: sales_amount: %w", line, err)
		}
		units, err := strconv.Atoi(get("units_sold"))
		if err != nil {
			return fmt.Errorf("line %d: units_sold: %w", line, err)
		}
		records = append(records, entity.SalesRecord{
			Date:        date,
			Category:    get("category"),
			SalesAmount: amount,
			UnitsSold:   units,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// WriteTable grava a tabela em path (sobrescrevendo) e devolve o caminho absoluto.
func (r *CSVRepositoryImpl) WriteTable(path string, table *entity.Table) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", filepath.Dir(path), err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(table.Columns); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}
	if err := writer.WriteAll(table.Rows); err != nil {
		return "", fmt.Errorf("error writing CSV records: %w", err)
	}

	return filepath.Abs(path)
}

func readCSV(path string, required []string, row func(line int, get func(string) string) error) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", types.ErrInputNotFound, path)
		}
		return fmt.Errorf("error opening %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: %s", types.ErrEmptyDataset, path)
		}
		return fmt.Errorf("error reading CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("%s: missing column %q", path, col)
		}
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return fmt.Errorf("%s: line %d: %w", path, line, err)
		}
		get := func(col string) string {
			return strings.TrimSpace(record[index[col]])
		}
		if err := row(line, get); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
