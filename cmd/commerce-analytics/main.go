package main

import (
	"fmt"
	"os"

	"github.com/diillson/commerce-analytics-go/internal/adapter/driven/aws"
	"github.com/diillson/commerce-analytics-go/internal/adapter/driven/chart"
	"github.com/diillson/commerce-analytics-go/internal/adapter/driven/config"
	"github.com/diillson/commerce-analytics-go/internal/adapter/driven/dataset"
	"github.com/diillson/commerce-analytics-go/internal/adapter/driven/export"
	"github.com/diillson/commerce-analytics-go/internal/adapter/driven/sqlengine"
	"github.com/diillson/commerce-analytics-go/internal/adapter/driving/cli"
	"github.com/diillson/commerce-analytics-go/internal/application/usecase"
	"github.com/diillson/commerce-analytics-go/pkg/console"
	"github.com/diillson/commerce-analytics-go/pkg/version"
)

func main() {
	// Inicializa os repositórios
	configRepo := config.NewConfigRepository()
	datasetRepo := dataset.NewCSVRepository()
	exportRepo := export.NewExportRepository()
	publishRepo := aws.NewS3Publisher()
	consoleImpl := console.NewConsole()

	chartRepo, err := chart.NewGGChartRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version, configRepo)

	// Inicializa o caso de uso
	analyticsUseCase := usecase.NewAnalyticsUseCase(
		datasetRepo,
		sqlengine.Open,
		chartRepo,
		exportRepo,
		publishRepo,
		consoleImpl,
	)

	// Define o caso de uso no aplicativo CLI
	app.SetAnalyticsUseCase(analyticsUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
