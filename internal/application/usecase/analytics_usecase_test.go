package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/diillson/commerce-analytics-go/internal/application/analysis"
	"github.com/diillson/commerce-analytics-go/internal/domain/entity"
	"github.com/diillson/commerce-analytics-go/internal/shared/types"
)

func testArgs() *types.CLIArgs {
	asOf := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &types.CLIArgs{
		DataDir:  "data",
		ChartDir: "docs/screenshots",
		AsOf:     &asOf,
		Seed:     analysis.DefaultSeed,
	}
}

func sampleTransactions() []entity.Transaction {
	return analysis.GenerateTransactions(analysis.DefaultTransactionGenOptions())
}

func TestRunRFMMissingInput(t *testing.T) {
	h := newHarness()

	err := h.uc.RunRFM(context.Background(), testArgs())
	if !errors.Is(err, types.ErrInputNotFound) {
		t.Fatalf("want ErrInputNotFound got=%v", err)
	}
	if !h.console.contains("Error: data/sample_transactions.csv not found") {
		t.Fatalf("missing error line: %v", h.console.lines)
	}
	if !h.console.contains("Run: commerce-analytics generate transactions") {
		t.Fatalf("missing hint line: %v", h.console.lines)
	}
	if h.engine.loaded != 0 || len(h.data.written) != 0 {
		t.Fatalf("nothing should run after a failed existence check")
	}
}

func TestRunRFMUnknownEngine(t *testing.T) {
	h := newHarness()
	args := testArgs()
	args.Engine = "duckdb"

	if err := h.uc.RunRFM(context.Background(), args); !errors.Is(err, types.ErrUnknownEngine) {
		t.Fatalf("want ErrUnknownEngine got=%v", err)
	}
}

func TestRunRFMWithSQLEngine(t *testing.T) {
	h := newHarness()
	h.data.txs = sampleTransactions()
	h.engine.segments = []entity.RFMSegmentSummary{
		{Segment: entity.RFMChampions, CustomerCount: 20, SegmentPct: 20, AvgMonetary: 90000},
		{Segment: entity.RFMLost, CustomerCount: 80, SegmentPct: 80, AvgMonetary: 10000},
	}
	args := testArgs()

	if err := h.uc.RunRFM(context.Background(), args); err != nil {
		t.Fatalf("RunRFM: %v", err)
	}
	if h.engine.loaded != 500 {
		t.Fatalf("loaded: want=500 got=%d", h.engine.loaded)
	}
	if !h.engine.asOf.Equal(*args.AsOf) {
		t.Fatalf("as-of: want=%v got=%v", *args.AsOf, h.engine.asOf)
	}
	if !h.engine.closed {
		t.Fatalf("engine should be closed")
	}
	table, ok := h.data.written[RFMResultsFile]
	if !ok || len(table.Rows) != 2 || table.Rows[0][0] != entity.RFMChampions {
		t.Fatalf("unexpected results table: %+v", table)
	}
	if _, ok := h.data.written[RFMScoresFile]; ok {
		t.Fatalf("sql engine should not write per-customer scores")
	}
	if !h.console.contains("Loaded 500 transactions") {
		t.Fatalf("missing load line: %v", h.console.lines)
	}
}

func TestRunRFMInMemory(t *testing.T) {
	h := newHarness()
	h.data.txs = sampleTransactions()
	args := testArgs()
	args.Engine = "memory"

	if err := h.uc.RunRFM(context.Background(), args); err != nil {
		t.Fatalf("RunRFM: %v", err)
	}
	summary := h.data.written[RFMResultsFile]
	scores := h.data.written[RFMScoresFile]
	if summary == nil || scores == nil {
		t.Fatalf("expected both result files, got %v", h.data.written)
	}

	total := 0
	for _, rec := range summary.Records() {
		n, err := strconv.Atoi(rec["customer_count"])
		if err != nil {
			t.Fatalf("customer_count: %v", err)
		}
		total += n
	}
	if total != len(scores.Rows) {
		t.Fatalf("segment counts: want=%d got=%d", len(scores.Rows), total)
	}
}

func TestRunQueryDefaultAndOutput(t *testing.T) {
	h := newHarness()
	h.data.txs = sampleTransactions()
	args := testArgs()
	args.QueryOutput = "out/top.csv"

	if err := h.uc.RunQuery(context.Background(), args); err != nil {
		t.Fatalf("RunQuery: %v", err)
	}
	if len(h.engine.queries) != 1 || h.engine.queries[0] != DefaultQuery {
		t.Fatalf("expected default query, got %v", h.engine.queries)
	}
	if _, ok := h.data.written["top.csv"]; !ok {
		t.Fatalf("query output not written")
	}

	args.SQL = "  SELECT 1  "
	args.QueryOutput = ""
	if err := h.uc.RunQuery(context.Background(), args); err != nil {
		t.Fatalf("RunQuery: %v", err)
	}
	if h.engine.queries[1] != "SELECT 1" {
		t.Fatalf("query: want=%q got=%q", "SELECT 1", h.engine.queries[1])
	}
}

func TestRunGenerate(t *testing.T) {
	h := newHarness()
	args := testArgs()

	if err := h.uc.RunGenerateTransactions(context.Background(), args); err != nil {
		t.Fatalf("RunGenerateTransactions: %v", err)
	}
	if err := h.uc.RunGenerateSales(context.Background(), args); err != nil {
		t.Fatalf("RunGenerateSales: %v", err)
	}

	if got := len(h.data.written[TransactionsFile].Rows); got != 500 {
		t.Fatalf("transactions: want=500 got=%d", got)
	}
	if got := len(h.data.written[SalesHistoryFile].Rows); got != 180 {
		t.Fatalf("sales records: want=180 got=%d", got)
	}
	if !h.console.contains("Generated 500 orders for") {
		t.Fatalf("missing summary: %v", h.console.lines)
	}
	if !h.console.contains("Date range: 2023-01-01 to") {
		t.Fatalf("missing sales date range: %v", h.console.lines)
	}
}

func TestRunCohortAndLTV(t *testing.T) {
	h := newHarness()
	h.data.txs = sampleTransactions()
	args := testArgs()

	if err := h.uc.RunCohort(context.Background(), args); err != nil {
		t.Fatalf("RunCohort: %v", err)
	}
	if err := h.uc.RunLTV(context.Background(), args); err != nil {
		t.Fatalf("RunLTV: %v", err)
	}

	for _, name := range []string{CohortResultsFile, CohortPivotFile, LTVResultsFile, LTVSegmentsFile} {
		if _, ok := h.data.written[name]; !ok {
			t.Fatalf("%s not written", name)
		}
	}
	if got := len(h.data.written[LTVResultsFile].Rows); got == 0 || got > 100 {
		t.Fatalf("ltv customers: got=%d", got)
	}
	if !h.console.contains("Average 1-month retention:") {
		t.Fatalf("missing retention summary: %v", h.console.lines)
	}
	if !h.console.contains("12-Month Total LTV: ¥") {
		t.Fatalf("missing LTV totals: %v", h.console.lines)
	}
}

func TestRunForecast(t *testing.T) {
	h := newHarness()
	h.data.sales = analysis.GenerateSales(analysis.DefaultSalesGenOptions())
	args := testArgs()

	if err := h.uc.RunForecast(context.Background(), args); err != nil {
		t.Fatalf("RunForecast: %v", err)
	}
	if len(h.chart.paths) != 1 || !strings.HasSuffix(h.chart.paths[0], "docs/screenshots/sales_forecast.png") {
		t.Fatalf("chart path: got=%v", h.chart.paths)
	}
	table := h.data.written[ForecastResultFile]
	if table == nil || len(table.Columns) != 7 {
		t.Fatalf("unexpected forecast table: %+v", table)
	}
	if h.console.bars != len(table.Rows) {
		t.Fatalf("trend bars: want=%d got=%d", len(table.Rows), h.console.bars)
	}
	if !h.console.contains("Model: Linear Regression") {
		t.Fatalf("missing model line: %v", h.console.lines)
	}
}

func TestRunForecastMissingInput(t *testing.T) {
	h := newHarness()
	err := h.uc.RunForecast(context.Background(), testArgs())
	if !errors.Is(err, types.ErrInputNotFound) {
		t.Fatalf("want ErrInputNotFound got=%v", err)
	}
	if !h.console.contains("Run: commerce-analytics generate sales") {
		t.Fatalf("missing hint: %v", h.console.lines)
	}
}

func TestExportAndPublish(t *testing.T) {
	h := newHarness()
	h.data.txs = sampleTransactions()
	args := testArgs()
	args.ReportName = "weekly"
	args.ReportType = []string{"json", "pdf", "xml"}
	args.ReportDir = "reports"
	args.S3Bucket = "analytics"
	args.S3Prefix = "runs"

	if err := h.uc.RunCohort(context.Background(), args); err != nil {
		t.Fatalf("RunCohort: %v", err)
	}

	want := []string{"json:weekly_cohort", "pdf:weekly_cohort"}
	if strings.Join(h.export.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("export calls: want=%v got=%v", want, h.export.calls)
	}
	if !h.console.contains("ERROR Failed to export report to PDF") {
		t.Fatalf("pdf failure should be reported: %v", h.console.lines)
	}
	if !h.console.contains("WARN Unsupported report type: xml") {
		t.Fatalf("unsupported type should be reported: %v", h.console.lines)
	}

	// dois CSVs de resultado + o JSON exportado
	if len(h.publish.paths) != 3 {
		t.Fatalf("published: want=3 got=%v", h.publish.paths)
	}
	if h.publish.target.Bucket != "analytics" || h.publish.target.Prefix != "runs" {
		t.Fatalf("target: got=%+v", h.publish.target)
	}
	if !h.console.contains("OK Published: s3://analytics/weekly_cohort.json") {
		t.Fatalf("missing publish line: %v", h.console.lines)
	}
}
