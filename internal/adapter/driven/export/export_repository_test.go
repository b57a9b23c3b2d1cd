package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/diillson/commerce-analytics-go/internal/domain/entity"
)

func sampleReport() entity.Report {
	segments := entity.NewTable("LTV Segments", "ltv_segment", "customer_count")
	segments.Append("Gold", "12")
	segments.Append("Silver", "[green]30[/]")

	churn := entity.NewTable("churn_matrix", "ltv_segment", "Active", "High Risk")
	churn.Append("Gold", "10", "2")

	report := entity.Report{
		RunID:       "run-1",
		Name:        "ltv",
		Title:       "Customer Lifetime Value",
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	report.AddTable("Segment summary", segments)
	report.AddLines("Totals", "Total predicted 12m: ¥1,234,567")
	report.AddTable("Churn risk", churn)
	return report
}

func TestExportReportToCSV(t *testing.T) {
	dir := t.TempDir()
	repo := NewExportRepository()

	paths, err := repo.ExportReportToCSV(sampleReport(), "ltv", dir)
	if err != nil {
		t.Fatalf("ExportReportToCSV: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("files: want=2 got=%d", len(paths))
	}
	if !strings.HasPrefix(filepath.Base(paths[0]), "ltv_ltv_segments_") {
		t.Fatalf("unexpected file name: %s", paths[0])
	}

	f, err := os.Open(paths[0])
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records: want=3 got=%d", len(records))
	}
	if records[2][1] != "30" {
		t.Fatalf("rich tags should be stripped: got=%q", records[2][1])
	}
}

func TestExportReportToJSON(t *testing.T) {
	dir := t.TempDir()
	repo := NewExportRepository()

	path, err := repo.ExportReportToJSON(sampleReport(), "ltv", dir)
	if err != nil {
		t.Fatalf("ExportReportToJSON: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var decoded jsonReport
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.RunID != "run-1" || len(decoded.Sections) != 3 {
		t.Fatalf("unexpected report: %+v", decoded)
	}
	first := decoded.Sections[0]
	if first.Table != "LTV Segments" || len(first.Records) != 2 {
		t.Fatalf("unexpected table section: %+v", first)
	}
	if first.Records[0]["ltv_segment"] != "Gold" {
		t.Fatalf("record: want=Gold got=%q", first.Records[0]["ltv_segment"])
	}
	if len(decoded.Sections[1].Lines) != 1 {
		t.Fatalf("lines section: %+v", decoded.Sections[1])
	}
}

func TestExportReportToPDF(t *testing.T) {
	dir := t.TempDir()
	repo := NewExportRepository()

	report := sampleReport()
	big := entity.NewTable("big", "a", "b")
	for i := 0; i < pdfMaxRows+5; i++ {
		big.Append("x", "y")
	}
	report.AddTable("Big table", big)

	path, err := repo.ExportReportToPDF(report, "ltv", dir)
	if err != nil {
		t.Fatalf("ExportReportToPDF: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(raw), "%PDF") {
		t.Fatalf("output is not a PDF")
	}
}

func TestSlugAndCleanRichTags(t *testing.T) {
	if got := slug("LTV Segments / 12m"); got != "ltv_segments_12m" {
		t.Fatalf("slug: want=ltv_segments_12m got=%s", got)
	}
	if got := slug("!!!"); got != "table" {
		t.Fatalf("slug fallback: want=table got=%s", got)
	}
	if got := cleanRichTags("[bold]ok[/] \x1b[31mred\x1b[0m"); got != "ok red" {
		t.Fatalf("cleanRichTags: got=%q", got)
	}
}
