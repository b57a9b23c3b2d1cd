package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/diillson/commerce-analytics-go/internal/adapter/driven/dataset"
	"github.com/diillson/commerce-analytics-go/internal/domain/entity"
)

func TestRunAllWithCSVFiles(t *testing.T) {
	h := newHarness()
	h.engine.segments = []entity.RFMSegmentSummary{{Segment: entity.RFMLost, CustomerCount: 1, SegmentPct: 100}}
	h.uc.datasetRepo = dataset.NewCSVRepository()

	dir := t.TempDir()
	args := testArgs()
	args.DataDir = filepath.Join(dir, "data")
	args.ChartDir = filepath.Join(dir, "docs", "screenshots")

	if err := h.uc.RunAll(context.Background(), args); err != nil {
		t.Fatalf("RunAll: %v", err)
	}

	repo := dataset.NewCSVRepository()
	for _, name := range []string{
		TransactionsFile, SalesHistoryFile, RFMResultsFile, CohortResultsFile,
		CohortPivotFile, LTVResultsFile, LTVSegmentsFile, ForecastResultFile,
	} {
		if !repo.Exists(filepath.Join(args.DataDir, name)) {
			t.Fatalf("%s was not written", name)
		}
	}
	if len(h.chart.paths) != 1 {
		t.Fatalf("chart renders: want=1 got=%d", len(h.chart.paths))
	}
	if !h.console.contains("All analyses completed") {
		t.Fatalf("missing completion line")
	}
}

func TestRunAllStopsOnCancel(t *testing.T) {
	h := newHarness()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.uc.RunAll(ctx, testArgs())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled got=%v", err)
	}
	if len(h.data.written) != 0 {
		t.Fatalf("no step should run after cancellation")
	}
}
