package repository

import "github.com/diillson/commerce-analytics-go/internal/domain/entity"

// ExportRepository exporta relatórios de análise para arquivos com timestamp.
type ExportRepository interface {
	ExportReportToCSV(report entity.Report, filename, outputDir string) ([]string, error)
	ExportReportToJSON(report entity.Report, filename, outputDir string) (string, error)
	ExportReportToPDF(report entity.Report, filename, outputDir string) (string, error)
}
