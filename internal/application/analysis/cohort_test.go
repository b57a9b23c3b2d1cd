package analysis

import (
	"errors"
	"testing"

	"github.com/diillson/commerce-analytics-go/internal/domain/entity"
	"github.com/diillson/commerce-analytics-go/internal/shared/types"
)

func cohortFixture(t *testing.T) []entity.Transaction {
	return []entity.Transaction{
		tx(t, "1", "C1", "2025-01-05", 100),
		tx(t, "2", "C2", "2025-01-20", 100),
		tx(t, "3", "C3", "2025-02-03", 100),
		tx(t, "4", "C1", "2025-02-10", 100),
		tx(t, "5", "C3", "2025-03-15", 100),
		tx(t, "6", "C1", "2025-04-01", 100),
	}
}

func TestCohortsCells(t *testing.T) {
	result, err := Cohorts(cohortFixture(t))
	if err != nil {
		t.Fatalf("Cohorts: %v", err)
	}

	want := []struct {
		cohort string
		offset int
		active int
		size   int
		rate   float64
	}{
		{"2025-01", 0, 2, 2, 100},
		{"2025-01", 1, 1, 2, 50},
		{"2025-01", 3, 1, 2, 50},
		{"2025-02", 0, 1, 1, 100},
		{"2025-02", 1, 1, 1, 100},
	}
	if len(result.Cells) != len(want) {
		t.Fatalf("cells: want=%d got=%d", len(want), len(result.Cells))
	}
	for i, w := range want {
		c := result.Cells[i]
		if c.CohortMonth.String() != w.cohort || c.MonthSinceFirst != w.offset ||
			c.ActiveCustomers != w.active || c.CohortCustomers != w.size || c.RetentionRate != w.rate {
			t.Fatalf("cell %d: want=%+v got=%+v", i, w, c)
		}
	}
}

func TestCohortsPivotAndSummary(t *testing.T) {
	result, err := Cohorts(cohortFixture(t))
	if err != nil {
		t.Fatalf("Cohorts: %v", err)
	}

	p := result.Pivot
	if len(p.Offsets) != 3 || p.Offsets[0] != 0 || p.Offsets[1] != 1 || p.Offsets[2] != 3 {
		t.Fatalf("offsets: got %v", p.Offsets)
	}
	if p.HasOffset(2) {
		t.Fatalf("offset 2 never observed, should not be a pivot column")
	}
	if got := p.Column(3); got[0] != 50 || got[1] != 0 {
		t.Fatalf("column 3: got %v", got)
	}

	if got := result.AverageRetention[1]; got != 75 {
		t.Fatalf("avg 1-month: want=75 got=%v", got)
	}
	if got := result.AverageRetention[3]; got != 25 {
		t.Fatalf("avg 3-month: want=25 got=%v", got)
	}
	if _, ok := result.AverageRetention[6]; ok {
		t.Fatalf("6-month average should be absent")
	}

	if len(result.TopCohorts) != 2 {
		t.Fatalf("top cohorts: want=2 got=%d", len(result.TopCohorts))
	}
	if result.TopCohorts[0].CohortMonth.String() != "2025-01" || result.TopCohorts[0].Retention != 50 {
		t.Fatalf("top cohort: got %+v", result.TopCohorts[0])
	}
}

func TestCohortsRetentionBounded(t *testing.T) {
	result, err := Cohorts(GenerateTransactions(DefaultTransactionGenOptions()))
	if err != nil {
		t.Fatalf("Cohorts: %v", err)
	}
	for _, c := range result.Cells {
		if c.RetentionRate < 0 || c.RetentionRate > 100 {
			t.Fatalf("retention out of bounds: %+v", c)
		}
		if c.MonthSinceFirst == 0 && c.RetentionRate != 100 {
			t.Fatalf("month 0 retention must be 100, got %+v", c)
		}
	}
}

func TestCohortsEmpty(t *testing.T) {
	if _, err := Cohorts(nil); !errors.Is(err, types.ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
}
