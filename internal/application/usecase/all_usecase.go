package usecase

import (
	"context"
	"fmt"

	"github.com/diillson/commerce-analytics-go/internal/shared/types"
)

type step struct {
	name string
	run  func(context.Context, *types.CLIArgs) error
}

// RunAll executa o pipeline completo, parando no primeiro erro.
func (uc *AnalyticsUseCase) RunAll(ctx context.Context, args *types.CLIArgs) error {
	steps := []step{
		{"generate transactions", uc.RunGenerateTransactions},
		{"generate sales", uc.RunGenerateSales},
		{"query", uc.RunQuery},
		{"rfm", uc.RunRFM},
		{"cohort", uc.RunCohort},
		{"ltv", uc.RunLTV},
		{"forecast", uc.RunForecast},
	}

	for i, s := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		uc.console.LogInfo("[%d/%d] %s", i+1, len(steps), s.name)
		if err := s.run(ctx, args); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}

	uc.console.LogSuccess("All analyses completed")
	return nil
}
