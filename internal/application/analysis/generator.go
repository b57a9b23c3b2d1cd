package analysis

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/diillson/commerce-analytics-go/internal/domain/entity"
)

// DefaultSeed é a semente usada quando nenhuma é informada.
const DefaultSeed uint64 = 42

// TransactionGenOptions parametriza o gerador de pedidos sintéticos.
type TransactionGenOptions struct {
	Seed      uint64
	Customers int
	Orders    int
	Start     time.Time
	DaySpan   int
}

// DefaultTransactionGenOptions returns the fixture shape used by the sample dataset.
func DefaultTransactionGenOptions() TransactionGenOptions {
	return TransactionGenOptions{
		Seed:      DefaultSeed,
		Customers: 100,
		Orders:    500,
		Start:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		DaySpan:   365,
	}
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// GenerateTransactions sorteia pedidos com valores log-normais e devolve as
// linhas ordenadas por data (ordenação estável).
func GenerateTransactions(opts TransactionGenOptions) []entity.Transaction {
	r := newRand(opts.Seed)

	customerIDs := make([]string, opts.Customers)
	for i := range customerIDs {
		customerIDs[i] = fmt.Sprintf("CUST%03d", i+1)
	}

	orders := make([]entity.Transaction, 0, opts.Orders)
	for i := 0; i < opts.Orders; i++ {
		customerID := customerIDs[r.IntN(len(customerIDs))]
		daysAgo := r.IntN(opts.DaySpan)
		amount := math.Trunc(math.Exp(9 + 0.8*r.NormFloat64()))
		category := entity.Categories[r.IntN(len(entity.Categories))]

		orders = append(orders, entity.Transaction{
			OrderID:         fmt.Sprintf("0%04d", i+1),
			CustomerID:      customerID,
			OrderDate:       opts.Start.AddDate(0, 0, daysAgo),
			OrderAmount:     amount,
			ProductCategory: category,
		})
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderDate.Before(orders[j].OrderDate)
	})
	return orders
}

// SalesGenOptions parametriza o gerador de histórico de vendas.
type SalesGenOptions struct {
	Seed   uint64
	Months int
	Start  time.Time
}

// DefaultSalesGenOptions returns three years of 30-day periods starting 2023-01-01.
func DefaultSalesGenOptions() SalesGenOptions {
	return SalesGenOptions{
		Seed:   DefaultSeed,
		Months: 36,
		Start:  time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// GenerateSales builds trend + seasonality + noise series split across categories.
func GenerateSales(opts SalesGenOptions) []entity.SalesRecord {
	r := newRand(opts.Seed)
	n := opts.Months

	trend := linspace(100000, 150000, n)
	phase := linspace(0, 6*math.Pi, n)
	base := make([]float64, n)
	for i := 0; i < n; i++ {
		base[i] = trend[i] + 20000*math.Sin(phase[i]) + r.NormFloat64()*5000
	}

	records := make([]entity.SalesRecord, 0, n*len(entity.Categories))
	for i := 0; i < n; i++ {
		date := opts.Start.AddDate(0, 0, 30*i)
		for k, category := range entity.Categories {
			s := base[i] * (0.15 + 0.2*float64(k)/float64(len(entity.Categories)))
			s += r.NormFloat64() * s * 0.1

			divisor := 1000 + r.Float64()*4000
			records = append(records, entity.SalesRecord{
				Date:        date,
				Category:    category,
				SalesAmount: math.Trunc(s),
				UnitsSold:   int(s / divisor),
			})
		}
	}
	return records
}

func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}
