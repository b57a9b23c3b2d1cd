package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/diillson/commerce-analytics-go/internal/domain/entity"
	"github.com/diillson/commerce-analytics-go/internal/domain/repository"
	"github.com/diillson/commerce-analytics-go/internal/shared/types"
	"github.com/google/uuid"
)

// Nomes fixos dos arquivos de entrada e saída dentro do diretório de dados.
const (
	TransactionsFile   = "sample_transactions.csv"
	SalesHistoryFile   = "sales_history.csv"
	RFMResultsFile     = "rfm_duckdb_results.csv"
	RFMScoresFile      = "rfm_customer_scores.csv"
	CohortResultsFile  = "cohort_retention_analysis_results.csv"
	CohortPivotFile    = "cohort_retention_pivot.csv"
	LTVResultsFile     = "ltv_analysis_results.csv"
	LTVSegmentsFile    = "ltv_segment_summary.csv"
	ForecastResultFile = "sales_forecast_results.csv"
	ForecastChartFile  = "sales_forecast.png"
)

const (
	hintGenerateTransactions = "Run: commerce-analytics generate transactions"
	hintGenerateSales        = "Run: commerce-analytics generate sales"
)

// sampleRows é quantas linhas mostrar nas amostras dos geradores.
const sampleRows = 10

// AnalyticsUseCase orchestrates every analysis: read the input CSV, run the
// pipeline, print the report, write the result files, then optionally export
// and publish what was produced.
type AnalyticsUseCase struct {
	datasetRepo repository.DatasetRepository
	openEngine  repository.SQLEngineFactory
	chartRepo   repository.ChartRepository
	exportRepo  repository.ExportRepository
	publishRepo repository.PublishRepository
	console     types.ConsoleInterface

	now      func() time.Time
	newRunID func() string
}

// NewAnalyticsUseCase creates a new analytics use case.
func NewAnalyticsUseCase(
	datasetRepo repository.DatasetRepository,
	openEngine repository.SQLEngineFactory,
	chartRepo repository.ChartRepository,
	exportRepo repository.ExportRepository,
	publishRepo repository.PublishRepository,
	console types.ConsoleInterface,
) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		datasetRepo: datasetRepo,
		openEngine:  openEngine,
		chartRepo:   chartRepo,
		exportRepo:  exportRepo,
		publishRepo: publishRepo,
		console:     console,
		now:         time.Now,
		newRunID:    func() string { return uuid.NewString() },
	}
}

// run agrupa o relatório e os artefatos gerados por um comando.
type run struct {
	report    entity.Report
	artifacts []string
}

func (uc *AnalyticsUseCase) newRun(name, title string) *run {
	return &run{
		report: entity.Report{
			RunID:       uc.newRunID(),
			Name:        name,
			Title:       title,
			GeneratedAt: uc.now(),
		},
	}
}

func dataPath(args *types.CLIArgs, name string) string {
	return filepath.Join(args.DataDir, name)
}

// requireInput implements the single existence check every analysis does
// before touching its input.
func (uc *AnalyticsUseCase) requireInput(path, hint string) error {
	if uc.datasetRepo.Exists(path) {
		return nil
	}
	uc.console.Println(fmt.Sprintf("Error: %s not found", path))
	uc.console.Println(hint)
	return fmt.Errorf("%w: %s", types.ErrInputNotFound, path)
}

func (uc *AnalyticsUseCase) loadTransactions(args *types.CLIArgs) ([]entity.Transaction, error) {
	path := dataPath(args, TransactionsFile)
	if err := uc.requireInput(path, hintGenerateTransactions); err != nil {
		return nil, err
	}
	txs, err := uc.datasetRepo.LoadTransactions(path)
	if err != nil {
		return nil, fmt.Errorf("error loading transactions: %w", err)
	}
	return txs, nil
}

func (uc *AnalyticsUseCase) loadSales(args *types.CLIArgs) ([]entity.SalesRecord, error) {
	path := dataPath(args, SalesHistoryFile)
	if err := uc.requireInput(path, hintGenerateSales); err != nil {
		return nil, err
	}
	records, err := uc.datasetRepo.LoadSales(path)
	if err != nil {
		return nil, fmt.Errorf("error loading sales history: %w", err)
	}
	return records, nil
}

// writeTable grava a tabela e registra o artefato no run.
func (uc *AnalyticsUseCase) writeTable(r *run, path string, table *entity.Table) (string, error) {
	out, err := uc.datasetRepo.WriteTable(path, table)
	if err != nil {
		return "", fmt.Errorf("error writing %s: %w", path, err)
	}
	r.artifacts = append(r.artifacts, out)
	return out, nil
}

// printTable renderiza uma entity.Table com as tabelas do console.
func (uc *AnalyticsUseCase) printTable(table *entity.Table, limit int) {
	t := uc.console.CreateTable()
	for _, col := range table.Columns {
		t.AddColumn(col)
	}
	for i, row := range table.Rows {
		if limit > 0 && i >= limit {
			break
		}
		cells := make([]interface{}, len(row))
		for j, c := range row {
			cells[j] = c
		}
		t.AddRow(cells...)
	}
	uc.console.Println(t.Render())
}

// finish exporta o relatório (se pedido) e publica os artefatos no S3 (se
// configurado). Falhas de exportação são apenas reportadas, como no
// dashboard; falhas de publicação interrompem o comando.
func (uc *AnalyticsUseCase) finish(ctx context.Context, args *types.CLIArgs, r *run) error {
	if args.ReportName != "" && len(args.ReportType) > 0 && len(r.report.Sections) > 0 {
		reportDir := args.ReportDir
		if reportDir == "" {
			reportDir = args.DataDir
		}
		baseName := fmt.Sprintf("%s_%s", args.ReportName, r.report.Name)

		for _, reportType := range args.ReportType {
			switch reportType {
			case "csv":
				csvPaths, err := uc.exportRepo.ExportReportToCSV(r.report, baseName, reportDir)
				if err != nil {
					uc.console.LogError("Failed to export report to CSV: %s", err)
					continue
				}
				for _, p := range csvPaths {
					uc.console.LogSuccess("Successfully exported report to CSV: %s", p)
				}
				r.artifacts = append(r.artifacts, csvPaths...)
			case "json":
				jsonPath, err := uc.exportRepo.ExportReportToJSON(r.report, baseName, reportDir)
				if err != nil {
					uc.console.LogError("Failed to export report to JSON: %s", err)
					continue
				}
				uc.console.LogSuccess("Successfully exported report to JSON: %s", jsonPath)
				r.artifacts = append(r.artifacts, jsonPath)
			case "pdf":
				pdfPath, err := uc.exportRepo.ExportReportToPDF(r.report, baseName, reportDir)
				if err != nil {
					uc.console.LogError("Failed to export report to PDF: %s", err)
					continue
				}
				uc.console.LogSuccess("Successfully exported report to PDF: %s", pdfPath)
				r.artifacts = append(r.artifacts, pdfPath)
			default:
				uc.console.LogWarning("Unsupported report type: %s", reportType)
			}
		}
	}

	if args.S3Bucket == "" || len(r.artifacts) == 0 {
		return nil
	}
	return uc.publish(ctx, args, r.artifacts)
}

func (uc *AnalyticsUseCase) publish(ctx context.Context, args *types.CLIArgs, paths []string) error {
	target := repository.PublishTarget{
		Bucket:  args.S3Bucket,
		Prefix:  args.S3Prefix,
		Profile: args.AWSProfile,
		Region:  args.AWSRegion,
	}

	identity, err := uc.publishRepo.CallerIdentity(ctx, target)
	if err != nil {
		return fmt.Errorf("error checking AWS credentials: %w", err)
	}
	uc.console.LogInfo("Publishing %d artifacts as %s", len(paths), identity)

	status := uc.console.Status(fmt.Sprintf("Uploading to s3://%s...", target.Bucket))
	uris, err := uc.publishRepo.Publish(ctx, target, paths)
	status.Stop()
	if err != nil {
		return fmt.Errorf("error publishing artifacts: %w", err)
	}

	for _, uri := range uris {
		uc.console.LogSuccess("Published: %s", uri)
	}
	return nil
}
