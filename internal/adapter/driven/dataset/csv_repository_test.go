package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diillson/commerce-analytics-go/internal/domain/entity"
	"github.com/diillson/commerce-analytics-go/internal/shared/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTransactions(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tx.csv",
		"order_id,customer_id,order_date,order_amount,product_category\n"+
			"00001,CUST001,2025-01-03,8103,Books\n"+
			"00002,CUST002,2025-02-10,1500.5,Food\n")

	repo := NewCSVRepository()
	txs, err := repo.LoadTransactions(path)
	if err != nil {
		t.Fatalf("LoadTransactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("rows: want=2 got=%d", len(txs))
	}
	if txs[0].OrderID != "00001" || txs[0].OrderAmount != 8103 || txs[0].OrderDate.Format("2006-01-02") != "2025-01-03" {
		t.Fatalf("row 0: got %+v", txs[0])
	}
	if txs[1].OrderAmount != 1500.5 || txs[1].ProductCategory != "Food" {
		t.Fatalf("row 1: got %+v", txs[1])
	}
}

func TestLoadTransactionsColumnOrderIndependent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tx.csv",
		"product_category,order_amount,order_date,customer_id,order_id\n"+
			"Books,10,2025-01-03,CUST001,00001\n")

	txs, err := NewCSVRepository().LoadTransactions(path)
	if err != nil {
		t.Fatalf("LoadTransactions: %v", err)
	}
	if txs[0].CustomerID != "CUST001" || txs[0].OrderAmount != 10 {
		t.Fatalf("row 0: got %+v", txs[0])
	}
}

func TestLoadTransactionsErrors(t *testing.T) {
	dir := t.TempDir()
	repo := NewCSVRepository()

	if _, err := repo.LoadTransactions(filepath.Join(dir, "missing.csv")); !errors.Is(err, types.ErrInputNotFound) {
		t.Fatalf("missing file: expected ErrInputNotFound, got %v", err)
	}

	bad := writeFile(t, dir, "bad.csv",
		"order_id,customer_id,order_date,order_amount,product_category\n"+
			"00001,CUST001,2025-01-03,abc,Books\n")
	_, err := repo.LoadTransactions(bad)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("bad amount: expected line number in error, got %v", err)
	}

	noCol := writeFile(t, dir, "nocol.csv", "order_id,customer_id\n1,2\n")
	if _, err := repo.LoadTransactions(noCol); err == nil || !strings.Contains(err.Error(), "missing column") {
		t.Fatalf("missing column: got %v", err)
	}
}

func TestWriteTableRoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo := NewCSVRepository()

	table := entity.NewTable("sales_history", entity.SalesColumns...)
	table.Append("2023-01-01", "Books", "12345", "7")

	path, err := repo.WriteTable(filepath.Join(dir, "nested", "sales.csv"), table)
	if err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	if !repo.Exists(path) {
		t.Fatalf("Exists: expected %s to exist", path)
	}

	records, err := repo.LoadSales(path)
	if err != nil {
		t.Fatalf("LoadSales: %v", err)
	}
	if len(records) != 1 || records[0].SalesAmount != 12345 || records[0].UnitsSold != 7 {
		t.Fatalf("records: got %+v", records)
	}
}
