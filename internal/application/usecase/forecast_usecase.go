package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/diillson/commerce-analytics-go/internal/application/analysis"
	"github.com/diillson/commerce-analytics-go/internal/shared/types"
	"github.com/diillson/commerce-analytics-go/pkg/console"
)

// RunForecast fits the linear sales model, prints the metrics and writes the
// results CSV and the forecast chart.
func (uc *AnalyticsUseCase) RunForecast(ctx context.Context, args *types.CLIArgs) error {
	records, err := uc.loadSales(args)
	if err != nil {
		return err
	}

	result, err := analysis.Forecast(records)
	if err != nil {
		return err
	}
	r := uc.newRun("forecast", "Sales Forecast")

	train, test := result.Train, result.Test
	lines := []string{
		fmt.Sprintf("Model: %s", result.Model),
		fmt.Sprintf("Training Period: %s to %s", train[0].Month, train[len(train)-1].Month),
		fmt.Sprintf("Test Period: %s to %s", test[0].Month, test[len(test)-1].Month),
	}
	metrics := []string{
		fmt.Sprintf("MAE:  %s", console.FormatYen(result.Metrics.MAE)),
		fmt.Sprintf("RMSE: %s", console.FormatYen(result.Metrics.RMSE)),
		fmt.Sprintf("MAPE: %.2f%%", result.Metrics.MAPE),
	}

	uc.console.Header("SALES FORECAST MODEL RESULTS")
	for _, line := range lines {
		uc.console.Println(line)
	}
	uc.console.Println("\nMetrics:")
	for _, line := range metrics {
		uc.console.Println("  " + line)
	}

	monthly := make([]types.MonthlyValue, 0, len(train)+len(test))
	for _, m := range result.All() {
		monthly = append(monthly, types.MonthlyValue{Month: m.Month.String(), Value: m.SalesAmount})
	}
	uc.console.DisplayTrendBars("Monthly Sales", monthly)

	chartPath, err := uc.chartRepo.RenderForecastChart(result, filepath.Join(args.ChartDir, ForecastChartFile))
	if err != nil {
		return fmt.Errorf("error rendering forecast chart: %w", err)
	}
	r.artifacts = append(r.artifacts, chartPath)
	uc.console.LogSuccess("Chart saved: %s", chartPath)

	table := analysis.ForecastTable(result)
	path, err := uc.writeTable(r, dataPath(args, ForecastResultFile), table)
	if err != nil {
		return err
	}
	uc.console.LogSuccess("Results saved: %s", path)

	r.report.AddLines("Model", lines...)
	r.report.AddLines("Metrics", metrics...)
	r.report.AddTable("Actual vs predicted", table)
	return uc.finish(ctx, args, r)
}
