package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/diillson/commerce-analytics-go/internal/application/analysis"
	"github.com/diillson/commerce-analytics-go/internal/domain/entity"
	"github.com/diillson/commerce-analytics-go/internal/shared/types"
)

// RunRFM segments customers by recency, frequency and monetary value, using
// the embedded SQL engine or the in-process implementation.
func (uc *AnalyticsUseCase) RunRFM(ctx context.Context, args *types.CLIArgs) error {
	engineName := strings.ToLower(strings.TrimSpace(args.Engine))
	if engineName == "" {
		engineName = types.EngineSQL
	}
	if engineName != types.EngineSQL && engineName != types.EngineMemory {
		return fmt.Errorf("%w: %s", types.ErrUnknownEngine, args.Engine)
	}

	// Checagem única de existência antes de qualquer outra saída
	if err := uc.requireInput(dataPath(args, TransactionsFile), hintGenerateTransactions); err != nil {
		return err
	}

	asOf := args.AsOfOrNow()
	r := uc.newRun("rfm", "RFM Segmentation")

	var (
		segments []entity.RFMSegmentSummary
		err      error
	)
	if engineName == types.EngineSQL {
		uc.console.Header("SQL RFM Analysis")
		segments, err = uc.rfmWithSQL(ctx, args)
	} else {
		uc.console.Header("In-memory RFM Analysis")
		segments, err = uc.rfmInMemory(r, args)
	}
	if err != nil {
		return err
	}
	uc.console.Println("   ✓ Analysis complete")

	table := analysis.RFMSegmentsTable(segments)
	uc.console.Header("RESULTS")
	uc.printTable(table, 0)

	path, err := uc.writeTable(r, dataPath(args, RFMResultsFile), table)
	if err != nil {
		return err
	}
	uc.console.LogSuccess("Saved to: %s", path)

	r.report.AddLines("Parameters",
		fmt.Sprintf("Engine: %s", engineName),
		fmt.Sprintf("As of: %s", asOf.Format("2006-01-02")))
	r.report.AddTable("Segments", table)

	uc.console.Header("Complete!")
	return uc.finish(ctx, args, r)
}

func (uc *AnalyticsUseCase) rfmWithSQL(ctx context.Context, args *types.CLIArgs) ([]entity.RFMSegmentSummary, error) {
	uc.console.Println("\n1. Connecting to SQL engine...")
	engine, err := uc.openEngine()
	if err != nil {
		return nil, fmt.Errorf("error opening SQL engine: %w", err)
	}
	defer engine.Close()
	uc.console.Println("   ✓ Connected")

	uc.console.Println("\n2. Loading data...")
	txs, err := uc.datasetRepo.LoadTransactions(dataPath(args, TransactionsFile))
	if err != nil {
		return nil, fmt.Errorf("error loading transactions: %w", err)
	}
	count, err := engine.LoadTransactions(ctx, txs)
	if err != nil {
		return nil, err
	}
	uc.console.Println(fmt.Sprintf("   ✓ Loaded %d transactions", count))

	uc.console.Println("\n3. Running RFM analysis...")
	segments, err := engine.RFMSegments(ctx, args.AsOfOrNow())
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, types.ErrEmptyDataset
	}
	return segments, nil
}

func (uc *AnalyticsUseCase) rfmInMemory(r *run, args *types.CLIArgs) ([]entity.RFMSegmentSummary, error) {
	uc.console.Println("\n1. Loading data...")
	txs, err := uc.datasetRepo.LoadTransactions(dataPath(args, TransactionsFile))
	if err != nil {
		return nil, fmt.Errorf("error loading transactions: %w", err)
	}
	uc.console.Println(fmt.Sprintf("   ✓ Loaded %d transactions", len(txs)))

	uc.console.Println("\n2. Running RFM analysis...")
	customers, err := analysis.CustomerRFMScores(txs, args.AsOfOrNow())
	if err != nil {
		return nil, err
	}

	scores := analysis.RFMCustomersTable(customers)
	path, err := uc.writeTable(r, dataPath(args, RFMScoresFile), scores)
	if err != nil {
		return nil, err
	}
	uc.console.LogSuccess("Customer scores saved to: %s", path)
	r.report.AddTable("Customer scores", scores)

	return analysis.SummarizeRFM(customers), nil
}
