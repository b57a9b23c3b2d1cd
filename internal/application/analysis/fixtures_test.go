package analysis

import (
	"testing"
	"time"

	"github.com/diillson/commerce-analytics-go/internal/domain/entity"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func tx(t *testing.T, orderID, customerID, date string, amount float64) entity.Transaction {
	t.Helper()
	return entity.Transaction{
		OrderID:         orderID,
		CustomerID:      customerID,
		OrderDate:       day(t, date),
		OrderAmount:     amount,
		ProductCategory: "Books",
	}
}

func approx(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-6
}
