package usecase

import (
	"context"
	"fmt"

	"github.com/diillson/commerce-analytics-go/internal/application/analysis"
	"github.com/diillson/commerce-analytics-go/internal/shared/types"
	"github.com/diillson/commerce-analytics-go/pkg/console"
)

// RunLTV scores customer lifetime value, LTV segments and churn risk.
func (uc *AnalyticsUseCase) RunLTV(ctx context.Context, args *types.CLIArgs) error {
	txs, err := uc.loadTransactions(args)
	if err != nil {
		return err
	}

	result, err := analysis.LifetimeValue(txs, args.AsOfOrNow())
	if err != nil {
		return err
	}
	r := uc.newRun("ltv", "Customer Lifetime Value (LTV) Analysis")

	segments := analysis.LTVSegmentsTable(result.Segments)
	uc.console.Header("CUSTOMER LIFETIME VALUE (LTV) ANALYSIS")
	uc.console.Println("\nSegment Summary:")
	uc.printTable(segments, 0)

	top := analysis.TopCustomersTable(result.TopCustomers)
	uc.console.Header(fmt.Sprintf("TOP %d CUSTOMERS BY PREDICTED LTV (12 months)", analysis.TopCustomerCount))
	uc.printTable(top, 0)

	churn := analysis.ChurnTable(result.Churn)
	uc.console.Header("CHURN RISK ANALYSIS")
	uc.printTable(churn, 0)

	totals := []string{
		fmt.Sprintf("12-Month Total LTV: %s", console.FormatYen(result.Total12m)),
		fmt.Sprintf("24-Month Total LTV: %s", console.FormatYen(result.Total24m)),
		fmt.Sprintf("Average LTV per Customer (12m): %s", console.FormatYen(result.AvgPerCustomer)),
	}
	uc.console.Header("TOTAL PREDICTED VALUE")
	for _, line := range totals {
		uc.console.Println(line)
	}

	detailedPath, err := uc.writeTable(r, dataPath(args, LTVResultsFile), analysis.LTVCustomersTable(result.Customers))
	if err != nil {
		return err
	}
	summaryPath, err := uc.writeTable(r, dataPath(args, LTVSegmentsFile), segments)
	if err != nil {
		return err
	}

	uc.console.Header("✓ Results saved to:")
	uc.console.Println(fmt.Sprintf("  - %s (detailed)", detailedPath))
	uc.console.Println(fmt.Sprintf("  - %s (summary)", summaryPath))

	r.report.AddTable("Segment summary", segments)
	r.report.AddTable("Top customers by predicted LTV (12 months)", top)
	r.report.AddTable("Churn risk", churn)
	r.report.AddLines("Total predicted value", totals...)
	return uc.finish(ctx, args, r)
}
