package usecase

import (
	"context"
	"fmt"

	"github.com/diillson/commerce-analytics-go/internal/application/analysis"
	"github.com/diillson/commerce-analytics-go/internal/shared/types"
)

// RunCohort computes monthly cohort retention.
func (uc *AnalyticsUseCase) RunCohort(ctx context.Context, args *types.CLIArgs) error {
	txs, err := uc.loadTransactions(args)
	if err != nil {
		return err
	}

	result, err := analysis.Cohorts(txs)
	if err != nil {
		return err
	}
	r := uc.newRun("cohort", "Cohort Retention Analysis")

	pivot := analysis.CohortPivotTable(result.Pivot)
	uc.console.Header("Cohort Retention Analysis")
	uc.console.Println("\nRetention Rate by Cohort (%):")
	uc.printTable(pivot, 0)

	var summary []string
	for _, offset := range analysis.SummaryOffsets {
		avg, ok := result.AverageRetention[offset]
		if !ok {
			continue
		}
		summary = append(summary, fmt.Sprintf("Average %d-month retention: %.2f%%", offset, avg))
	}
	uc.console.Header("Summary Statistics")
	for _, line := range summary {
		uc.console.Println(line)
	}

	var top []string
	for _, c := range result.TopCohorts {
		top = append(top, fmt.Sprintf(" %s: %.2f%%", c.CohortMonth, c.Retention))
	}
	uc.console.Header("Top Performing Cohorts")
	if len(top) > 0 {
		uc.console.Println(fmt.Sprintf("\nTop %d Cohorts by %d-Month Retention:", analysis.TopCohortCount, analysis.RankingOffset))
		for _, line := range top {
			uc.console.Println(line)
		}
	} else {
		uc.console.LogWarning("No cohort has %d months of history yet", analysis.RankingOffset)
	}

	detailed := analysis.CohortCellsTable(result.Cells)
	detailedPath, err := uc.writeTable(r, dataPath(args, CohortResultsFile), detailed)
	if err != nil {
		return err
	}
	pivotPath, err := uc.writeTable(r, dataPath(args, CohortPivotFile), pivot)
	if err != nil {
		return err
	}

	uc.console.Header("✓ Results saved to:")
	uc.console.Println(fmt.Sprintf("  - %s (detailed)", detailedPath))
	uc.console.Println(fmt.Sprintf("  - %s (pivot table)", pivotPath))

	r.report.AddTable("Retention rate by cohort (%)", pivot)
	r.report.AddLines("Summary statistics", summary...)
	r.report.AddLines(fmt.Sprintf("Top cohorts by %d-month retention", analysis.RankingOffset), top...)
	r.report.AddTable("Detailed retention", detailed)
	return uc.finish(ctx, args, r)
}
