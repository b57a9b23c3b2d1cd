package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/diillson/commerce-analytics-go/internal/application/analysis"
	"github.com/diillson/commerce-analytics-go/internal/application/usecase"
	"github.com/diillson/commerce-analytics-go/internal/domain/repository"
	"github.com/diillson/commerce-analytics-go/internal/shared/types"
	"github.com/diillson/commerce-analytics-go/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	analytics  *usecase.AnalyticsUseCase
	configRepo repository.ConfigRepository
	version    string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, configRepo repository.ConfigRepository) *CLIApp {
	app := &CLIApp{
		version:    versionStr,
		configRepo: configRepo,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:           "commerce-analytics",
		Short:         "Commerce analytics toolkit: cohorts, LTV, RFM and sales forecast",
		Version:       formattedVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{printf "Commerce Analytics version: %s\n" .Version}}`)

	// Flags comuns a todos os subcomandos
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "data", "Directory holding the input and result CSV files")
	rootCmd.PersistentFlags().String("chart-dir", "docs/screenshots", "Directory where charts are saved")
	rootCmd.PersistentFlags().String("as-of", "", "Reference date for recency and churn (YYYY-MM-DD, default: today)")
	rootCmd.PersistentFlags().Uint64("seed", analysis.DefaultSeed, "Random seed for the data generators")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Base name for exported reports (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"json"}, "Specify report types: csv, json, pdf")
	rootCmd.PersistentFlags().String("report-dir", "", "Directory to save exported reports (default: data dir)")
	rootCmd.PersistentFlags().String("s3-bucket", "", "Upload every generated artifact to this S3 bucket")
	rootCmd.PersistentFlags().String("s3-prefix", "", "Key prefix for uploaded artifacts")
	rootCmd.PersistentFlags().String("aws-profile", "", "AWS profile used for uploads")
	rootCmd.PersistentFlags().String("aws-region", "", "AWS region used for uploads")
	rootCmd.PersistentFlags().Bool("no-banner", false, "Do not display the welcome banner")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate synthetic input datasets",
	}
	generateCmd.AddCommand(
		&cobra.Command{
			Use:   "transactions",
			Short: "Generate data/sample_transactions.csv",
			Args:  cobra.NoArgs,
			RunE:  app.run(func(uc *usecase.AnalyticsUseCase) runFunc { return uc.RunGenerateTransactions }),
		},
		&cobra.Command{
			Use:   "sales",
			Short: "Generate data/sales_history.csv",
			Args:  cobra.NoArgs,
			RunE:  app.run(func(uc *usecase.AnalyticsUseCase) runFunc { return uc.RunGenerateSales }),
		},
	)

	queryCmd := &cobra.Command{
		Use:   "query",
		Short: "Run a SQL query over the transactions table",
		Args:  cobra.NoArgs,
		RunE:  app.run(func(uc *usecase.AnalyticsUseCase) runFunc { return uc.RunQuery }),
	}
	queryCmd.Flags().String("sql", "", "Query to run (default: top 10 customers by total spent)")
	queryCmd.Flags().String("out", "", "Save the query result to this CSV file")

	rfmCmd := &cobra.Command{
		Use:   "rfm",
		Short: "RFM segmentation of customers",
		Args:  cobra.NoArgs,
		RunE:  app.run(func(uc *usecase.AnalyticsUseCase) runFunc { return uc.RunRFM }),
	}
	rfmCmd.Flags().String("engine", types.EngineSQL, "RFM engine: sql or memory")

	allCmd := &cobra.Command{
		Use:   "all",
		Short: "Generate the datasets and run every analysis",
		Args:  cobra.NoArgs,
		RunE:  app.run(func(uc *usecase.AnalyticsUseCase) runFunc { return uc.RunAll }),
	}
	allCmd.Flags().String("engine", types.EngineSQL, "RFM engine: sql or memory")

	rootCmd.AddCommand(
		generateCmd,
		queryCmd,
		rfmCmd,
		&cobra.Command{
			Use:   "cohort",
			Short: "Monthly cohort retention analysis",
			Args:  cobra.NoArgs,
			RunE:  app.run(func(uc *usecase.AnalyticsUseCase) runFunc { return uc.RunCohort }),
		},
		&cobra.Command{
			Use:   "ltv",
			Short: "Customer lifetime value, segments and churn risk",
			Args:  cobra.NoArgs,
			RunE:  app.run(func(uc *usecase.AnalyticsUseCase) runFunc { return uc.RunLTV }),
		},
		&cobra.Command{
			Use:   "forecast",
			Short: "Linear sales forecast with chart",
			Args:  cobra.NoArgs,
			RunE:  app.run(func(uc *usecase.AnalyticsUseCase) runFunc { return uc.RunForecast }),
		},
		allCmd,
	)

	app.rootCmd = rootCmd
	return app
}

type runFunc func(context.Context, *types.CLIArgs) error

// run adapta um método do use case para RunE. O use case é resolvido na
// execução porque é injetado depois da construção dos comandos.
func (app *CLIApp) run(pick func(*usecase.AnalyticsUseCase) runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cliArgs, err := app.parseArgs(cmd)
		if err != nil {
			return err
		}

		if !cliArgs.NoBanner {
			displayWelcomeBanner()
			go version.CheckLatestVersion(app.version)
		}

		return pick(app.analytics)(cmd.Context(), cliArgs)
	}
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return app.rootCmd.ExecuteContext(ctx)
}

// parseArgs lê as flags do comando e mescla com o arquivo de configuração:
// flag explícita > arquivo > default da flag.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()

	configFile, _ := flags.GetString("config-file")
	dataDir, _ := flags.GetString("data-dir")
	chartDir, _ := flags.GetString("chart-dir")
	asOf, _ := flags.GetString("as-of")
	seed, _ := flags.GetUint64("seed")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	reportDir, _ := flags.GetString("report-dir")
	s3Bucket, _ := flags.GetString("s3-bucket")
	s3Prefix, _ := flags.GetString("s3-prefix")
	awsProfile, _ := flags.GetString("aws-profile")
	awsRegion, _ := flags.GetString("aws-region")
	noBanner, _ := flags.GetBool("no-banner")

	// flags locais: só existem em alguns subcomandos
	engine, _ := flags.GetString("engine")
	sql, _ := flags.GetString("sql")
	out, _ := flags.GetString("out")

	if configFile != "" {
		if app.configRepo == nil {
			return nil, fmt.Errorf("config file given but no config loader is configured")
		}
		cfg, err := app.configRepo.LoadConfigFile(configFile)
		if err != nil {
			return nil, err
		}

		mergeString(flags, "data-dir", &dataDir, cfg.DataDir)
		mergeString(flags, "chart-dir", &chartDir, cfg.ChartDir)
		mergeString(flags, "as-of", &asOf, cfg.AsOf)
		mergeString(flags, "report-name", &reportName, cfg.ReportName)
		mergeString(flags, "report-dir", &reportDir, cfg.ReportDir)
		mergeString(flags, "s3-bucket", &s3Bucket, cfg.S3Bucket)
		mergeString(flags, "s3-prefix", &s3Prefix, cfg.S3Prefix)
		mergeString(flags, "aws-profile", &awsProfile, cfg.AWSProfile)
		mergeString(flags, "aws-region", &awsRegion, cfg.AWSRegion)
		if flags.Lookup("engine") != nil {
			mergeString(flags, "engine", &engine, cfg.Engine)
		}
		if !flags.Changed("seed") && cfg.Seed != 0 {
			seed = cfg.Seed
		}
		if !flags.Changed("report-type") && len(cfg.ReportType) > 0 {
			reportType = cfg.ReportType
		}
	}

	for i, t := range reportType {
		reportType[i] = strings.ToLower(strings.TrimSpace(t))
	}

	args := &types.CLIArgs{
		ConfigFile:  configFile,
		DataDir:     dataDir,
		ChartDir:    chartDir,
		Seed:        seed,
		ReportName:  reportName,
		ReportType:  reportType,
		ReportDir:   reportDir,
		S3Bucket:    s3Bucket,
		S3Prefix:    s3Prefix,
		AWSProfile:  awsProfile,
		AWSRegion:   awsRegion,
		NoBanner:    noBanner,
		Engine:      strings.ToLower(engine),
		SQL:         sql,
		QueryOutput: out,
	}

	if asOf != "" {
		t, err := time.Parse("2006-01-02", asOf)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", types.ErrInvalidAsOf, asOf)
		}
		args.AsOf = &t
	}

	return args, nil
}

func mergeString(flags *pflag.FlagSet, name string, dst *string, fromFile string) {
	if !flags.Changed(name) && fromFile != "" {
		*dst = fromFile
	}
}

// SetAnalyticsUseCase sets the analytics use case for the CLI app.
func (app *CLIApp) SetAnalyticsUseCase(useCase *usecase.AnalyticsUseCase) {
	app.analytics = useCase
}
