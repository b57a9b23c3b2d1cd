package usecase

import (
	"context"
	"fmt"

	"github.com/diillson/commerce-analytics-go/internal/application/analysis"
	"github.com/diillson/commerce-analytics-go/internal/shared/types"
)

// RunGenerateTransactions writes the synthetic order fixture.
func (uc *AnalyticsUseCase) RunGenerateTransactions(ctx context.Context, args *types.CLIArgs) error {
	r := uc.newRun("sample_transactions", "Synthetic Transactions")

	opts := analysis.DefaultTransactionGenOptions()
	opts.Seed = args.Seed
	txs := analysis.GenerateTransactions(opts)

	table := analysis.TransactionsTable(txs)
	path, err := uc.writeTable(r, dataPath(args, TransactionsFile), table)
	if err != nil {
		return err
	}

	customers := make(map[string]struct{})
	for _, tx := range txs {
		customers[tx.CustomerID] = struct{}{}
	}

	summary := []string{
		fmt.Sprintf("Generated %d orders for %d customers.", len(txs), len(customers)),
	}
	if len(txs) > 0 {
		summary = append(summary, fmt.Sprintf("Date range: %s to %s",
			txs[0].OrderDate.Format("2006-01-02"), txs[len(txs)-1].OrderDate.Format("2006-01-02")))
	}

	uc.console.LogSuccess("%s", summary[0])
	for _, line := range summary[1:] {
		uc.console.Println(line)
	}
	uc.console.Println("\nSample:")
	uc.printTable(table, sampleRows)
	uc.console.LogSuccess("Saved to: %s", path)

	r.report.AddLines("Summary", summary...)
	r.report.AddTable("Transactions", table)
	return uc.finish(ctx, args, r)
}

// RunGenerateSales writes the synthetic monthly sales history.
func (uc *AnalyticsUseCase) RunGenerateSales(ctx context.Context, args *types.CLIArgs) error {
	r := uc.newRun("sales_history", "Synthetic Sales History")

	opts := analysis.DefaultSalesGenOptions()
	opts.Seed = args.Seed
	records := analysis.GenerateSales(opts)

	table := analysis.SalesTable(records)
	path, err := uc.writeTable(r, dataPath(args, SalesHistoryFile), table)
	if err != nil {
		return err
	}

	summary := []string{fmt.Sprintf("Generated %d records", len(records))}
	if len(records) > 0 {
		summary = append(summary, fmt.Sprintf("Date range: %s to %s",
			records[0].Date.Format("2006-01-02"), records[len(records)-1].Date.Format("2006-01-02")))
	}

	uc.console.LogSuccess("%s", summary[0])
	for _, line := range summary[1:] {
		uc.console.Println(line)
	}
	uc.console.Println("\nSample:")
	uc.printTable(table, sampleRows)
	uc.console.LogSuccess("Saved to: %s", path)

	r.report.AddLines("Summary", summary...)
	r.report.AddTable("Sales history", table)
	return uc.finish(ctx, args, r)
}
