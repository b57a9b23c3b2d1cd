package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/diillson/commerce-analytics-go/internal/domain/entity"
	"github.com/diillson/commerce-analytics-go/internal/shared/types"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// TestMonths é o tamanho do conjunto de teste (últimos meses da série).
const TestMonths = 6

// ModelName identifies the fitted model in reports.
const ModelName = "Linear Regression"

// featureCount = intercepto + month_num + month + quarter
const featureCount = 4

// MinTrainMonths é o mínimo de meses de treino para ajustar o modelo.
const MinTrainMonths = 6

// MonthlySalesSeries soma sales_amount por mês do calendário, em ordem cronológica.
func MonthlySalesSeries(records []entity.SalesRecord) []entity.MonthlySales {
	totals := make(map[entity.Month]float64)
	for _, r := range records {
		totals[entity.MonthOf(r.Date)] += r.SalesAmount
	}

	months := make([]entity.Month, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	series := make([]entity.MonthlySales, len(months))
	for i, m := range months {
		series[i] = entity.MonthlySales{
			Month:       m,
			SalesAmount: totals[m],
			MonthNum:    i,
			MonthOfYear: int(m.Month),
			Quarter:     m.Quarter(),
		}
	}
	return series
}

func features(row entity.MonthlySales) []float64 {
	return []float64{1, float64(row.MonthNum), float64(row.MonthOfYear), float64(row.Quarter)}
}

// Forecast fits an OLS model on all but the last TestMonths months and
// evaluates it on the held-out months.
func Forecast(records []entity.SalesRecord) (entity.ForecastResult, error) {
	if len(records) == 0 {
		return entity.ForecastResult{}, types.ErrEmptyDataset
	}

	series := MonthlySalesSeries(records)
	trainLen := len(series) - TestMonths
	if trainLen < MinTrainMonths {
		return entity.ForecastResult{}, fmt.Errorf("%w: %d months available, need at least %d",
			types.ErrNotEnoughHistory, len(series), MinTrainMonths+TestMonths)
	}

	train := series[:trainLen]
	test := series[trainLen:]

	X := mat.NewDense(trainLen, featureCount, nil)
	y := mat.NewVecDense(trainLen, nil)
	for i, row := range train {
		X.SetRow(i, features(row))
		y.SetVec(i, row.SalesAmount)
	}

	var beta mat.VecDense
	if err := beta.SolveVec(X, y); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return entity.ForecastResult{}, fmt.Errorf("error fitting regression: %w", err)
		}
	}
	coef := make([]float64, featureCount)
	for i := range coef {
		coef[i] = beta.AtVec(i)
	}

	predict := func(rows []entity.MonthlySales, split entity.Split) {
		for i := range rows {
			rows[i].Predicted = mat.Dot(mat.NewVecDense(featureCount, features(rows[i])), &beta)
			rows[i].Split = split
		}
	}
	predict(train, entity.SplitTrain)
	predict(test, entity.SplitTest)

	return entity.ForecastResult{
		Model:        ModelName,
		Coefficients: coef,
		Train:        train,
		Test:         test,
		Metrics:      evaluate(test),
	}, nil
}

func evaluate(rows []entity.MonthlySales) entity.ForecastMetrics {
	absErr := make([]float64, len(rows))
	sqErr := make([]float64, len(rows))
	pctErr := make([]float64, 0, len(rows))
	for i, r := range rows {
		diff := r.SalesAmount - r.Predicted
		absErr[i] = math.Abs(diff)
		sqErr[i] = diff * diff
		if r.SalesAmount != 0 {
			pctErr = append(pctErr, math.Abs(diff/r.SalesAmount))
		}
	}

	metrics := entity.ForecastMetrics{
		MAE:  stat.Mean(absErr, nil),
		RMSE: math.Sqrt(stat.Mean(sqErr, nil)),
	}
	if len(pctErr) > 0 {
		metrics.MAPE = stat.Mean(pctErr, nil) * 100
	}
	return metrics
}
