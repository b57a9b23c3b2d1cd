package entity

// Split identifies which side of the train/test split a month belongs to.
type Split string

const (
	SplitTrain Split = "train"
	SplitTest  Split = "test"
)

// MonthlySales é o total de vendas de um mês com as features do modelo.
type MonthlySales struct {
	Month       Month   `json:"month"`
	SalesAmount float64 `json:"sales_amount"`
	MonthNum    int     `json:"month_num"`
	MonthOfYear int     `json:"month_of_year"`
	Quarter     int     `json:"quarter"`
	Predicted   float64 `json:"predicted"`
	Split       Split   `json:"split"`
}

// ForecastMetrics são as métricas de erro no conjunto de teste.
type ForecastMetrics struct {
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
	MAPE float64 `json:"mape"`
}

// ForecastResult is the fitted model, its predictions and test metrics.
type ForecastResult struct {
	Model        string          `json:"model"`
	Coefficients []float64       `json:"coefficients"`
	Train        []MonthlySales  `json:"train"`
	Test         []MonthlySales  `json:"test"`
	Metrics      ForecastMetrics `json:"metrics"`
}

// All returns train followed by test rows.
func (r ForecastResult) All() []MonthlySales {
	out := make([]MonthlySales, 0, len(r.Train)+len(r.Test))
	out = append(out, r.Train...)
	return append(out, r.Test...)
}
