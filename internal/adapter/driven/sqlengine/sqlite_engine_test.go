package sqlengine

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/diillson/commerce-analytics-go/internal/application/analysis"
	"github.com/diillson/commerce-analytics-go/internal/domain/entity"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func fixture(t *testing.T) []entity.Transaction {
	rows := []struct {
		order, customer, date string
		amount                float64
	}{
		{"a1", "A", "2025-12-30", 100},
		{"b1", "B", "2025-12-10", 200},
		{"b2", "B", "2025-12-20", 200},
		{"c1", "C", "2025-11-10", 300},
		{"c2", "C", "2025-11-20", 300},
		{"c3", "C", "2025-11-30", 300},
		{"d1", "D", "2025-10-01", 400},
		{"d2", "D", "2025-10-11", 400},
		{"d3", "D", "2025-10-21", 400},
		{"d4", "D", "2025-10-31", 400},
		{"e1", "E", "2025-03-01", 1000},
		{"e2", "E", "2025-04-01", 1000},
		{"e3", "E", "2025-05-01", 1000},
		{"e4", "E", "2025-06-01", 1000},
		{"e5", "E", "2025-07-01", 1000},
		{"f1", "F", "2025-12-31", 50},
		{"g1", "G", "2025-09-15", 700},
	}
	out := make([]entity.Transaction, len(rows))
	for i, r := range rows {
		out[i] = entity.Transaction{
			OrderID:         r.order,
			CustomerID:      r.customer,
			OrderDate:       mustDate(t, r.date),
			OrderAmount:     r.amount,
			ProductCategory: "Books",
		}
	}
	return out
}

func openLoaded(t *testing.T) *SQLiteEngine {
	t.Helper()
	engine, err := Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = engine.Close() })

	n, err := engine.LoadTransactions(context.Background(), fixture(t))
	if err != nil {
		t.Fatalf("LoadTransactions: %v", err)
	}
	if n != 17 {
		t.Fatalf("loaded rows: want=17 got=%d", n)
	}
	return engine.(*SQLiteEngine)
}

const topCustomersQuery = `
SELECT customer_id, COUNT(*) AS order_count, SUM(order_amount) AS total_spent
FROM transactions
GROUP BY customer_id
ORDER BY total_spent DESC
LIMIT 10`

func TestQueryTopCustomers(t *testing.T) {
	engine := openLoaded(t)

	table, err := engine.Query(context.Background(), topCustomersQuery)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	wantCols := []string{"customer_id", "order_count", "total_spent"}
	if len(table.Columns) != len(wantCols) {
		t.Fatalf("columns: want=%v got=%v", wantCols, table.Columns)
	}
	for i, c := range wantCols {
		if table.Columns[i] != c {
			t.Fatalf("column %d: want=%s got=%s", i, c, table.Columns[i])
		}
	}
	if len(table.Rows) != 7 {
		t.Fatalf("rows: want=7 got=%d", len(table.Rows))
	}
	first := table.Rows[0]
	if first[0] != "E" || first[1] != "5" || first[2] != "5000" {
		t.Fatalf("first row: want=[E 5 5000] got=%v", first)
	}
}

func TestQueryInvalidSQL(t *testing.T) {
	engine := openLoaded(t)
	if _, err := engine.Query(context.Background(), "SELECT * FROM missing_table"); err == nil {
		t.Fatalf("expected error for unknown table")
	}
}

func TestRFMSegmentsMatchesInMemory(t *testing.T) {
	engine := openLoaded(t)
	asOf := mustDate(t, "2025-12-31")

	got, err := engine.RFMSegments(context.Background(), asOf)
	if err != nil {
		t.Fatalf("RFMSegments: %v", err)
	}

	scores, err := analysis.CustomerRFMScores(fixture(t), asOf)
	if err != nil {
		t.Fatalf("CustomerRFMScores: %v", err)
	}
	want := analysis.SummarizeRFM(scores)

	if len(got) != len(want) {
		t.Fatalf("segments: want=%d got=%d (%v)", len(want), len(got), got)
	}
	near := func(a, b float64) bool { return math.Abs(a-b) < 0.01 }
	for i := range want {
		w, g := want[i], got[i]
		if w.Segment != g.Segment || w.CustomerCount != g.CustomerCount {
			t.Fatalf("row %d: want=%+v got=%+v", i, w, g)
		}
		if !near(w.SegmentPct, g.SegmentPct) || !near(w.AvgRecencyDays, g.AvgRecencyDays) ||
			!near(w.AvgFrequency, g.AvgFrequency) || !near(w.AvgMonetary, g.AvgMonetary) ||
			!near(w.AvgOrderValue, g.AvgOrderValue) {
			t.Fatalf("row %d metrics: want=%+v got=%+v", i, w, g)
		}
	}
}

func TestLoadEmpty(t *testing.T) {
	engine, err := Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer engine.Close()

	n, err := engine.LoadTransactions(context.Background(), nil)
	if err != nil {
		t.Fatalf("LoadTransactions: %v", err)
	}
	if n != 0 {
		t.Fatalf("rows: want=0 got=%d", n)
	}
}
