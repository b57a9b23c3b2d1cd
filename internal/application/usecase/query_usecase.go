package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/diillson/commerce-analytics-go/internal/shared/types"
)

// DefaultQuery lista os 10 clientes com maior gasto total.
const DefaultQuery = `SELECT customer_id, COUNT(*) AS order_count, SUM(order_amount) AS total_spent
FROM transactions
GROUP BY customer_id
ORDER BY total_spent DESC
LIMIT 10`

// RunQuery loads the transactions into the embedded SQL engine and runs one
// query against the `transactions` table.
func (uc *AnalyticsUseCase) RunQuery(ctx context.Context, args *types.CLIArgs) error {
	txs, err := uc.loadTransactions(args)
	if err != nil {
		return err
	}

	engine, err := uc.openEngine()
	if err != nil {
		return fmt.Errorf("error opening SQL engine: %w", err)
	}
	defer engine.Close()

	if _, err := engine.LoadTransactions(ctx, txs); err != nil {
		return err
	}

	query := strings.TrimSpace(args.SQL)
	if query == "" {
		query = DefaultQuery
	}

	table, err := engine.Query(ctx, query)
	if err != nil {
		return err
	}

	r := uc.newRun("query", "Ad hoc Query")
	uc.printTable(table, 0)
	uc.console.LogInfo("%d rows", len(table.Rows))

	if args.QueryOutput != "" {
		table.Name = "query_results"
		path, err := uc.writeTable(r, args.QueryOutput, table)
		if err != nil {
			return err
		}
		uc.console.LogSuccess("Saved to: %s", path)
	}

	r.report.AddLines("Query", query)
	r.report.AddTable("Results", table)
	return uc.finish(ctx, args, r)
}
