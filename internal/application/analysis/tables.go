package analysis

import (
	"strconv"

	"github.com/diillson/commerce-analytics-go/internal/domain/entity"
)

const dateLayout = "2006-01-02"

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// TransactionsTable renders transactions with the sample CSV header.
func TransactionsTable(txs []entity.Transaction) *entity.Table {
	t := entity.NewTable("sample_transactions", entity.TransactionColumns...)
	for _, tx := range txs {
		t.Append(tx.OrderID, tx.CustomerID, tx.OrderDate.Format(dateLayout), num(tx.OrderAmount), tx.ProductCategory)
	}
	return t
}

// SalesTable renders sales history records.
func SalesTable(records []entity.SalesRecord) *entity.Table {
	t := entity.NewTable("sales_history", entity.SalesColumns...)
	for _, r := range records {
		t.Append(r.Date.Format(dateLayout), r.Category, num(r.SalesAmount), strconv.Itoa(r.UnitsSold))
	}
	return t
}

// CohortCellsTable is the detailed cohort retention table.
func CohortCellsTable(cells []entity.CohortCell) *entity.Table {
	t := entity.NewTable("cohort_retention_analysis_results",
		"cohort_month", "month_since_first", "active_customers", "cohort_customers", "retention_rate")
	for _, c := range cells {
		t.Append(c.CohortMonth.String(), strconv.Itoa(c.MonthSinceFirst),
			strconv.Itoa(c.ActiveCustomers), strconv.Itoa(c.CohortCustomers), num(c.RetentionRate))
	}
	return t
}

// CohortPivotTable renders the cohort x month retention matrix.
func CohortPivotTable(p entity.CohortPivot) *entity.Table {
	columns := []string{"cohort_month"}
	for _, o := range p.Offsets {
		columns = append(columns, strconv.Itoa(o))
	}
	t := entity.NewTable("cohort_retention_pivot", columns...)
	for i, m := range p.Cohorts {
		row := []string{m.String()}
		for _, v := range p.Values[i] {
			row = append(row, num(v))
		}
		t.Append(row...)
	}
	return t
}

// LTVCustomersTable is the detailed per-customer LTV table.
func LTVCustomersTable(customers []entity.CustomerLTV) *entity.Table {
	t := entity.NewTable("ltv_analysis_results",
		"customer_id", "first_purchase", "last_purchase", "total_orders", "total_revenue",
		"avg_order_value", "lifespan_days", "lifespan_months", "purchase_frequency",
		"historical_ltv", "predicted_ltv_12m", "predicted_ltv_24m", "days_since_last",
		"ltv_segment", "churn_risk")
	for _, c := range customers {
		t.Append(c.CustomerID, c.FirstPurchase.Format(dateLayout), c.LastPurchase.Format(dateLayout),
			strconv.Itoa(c.TotalOrders), num(c.TotalRevenue), num(c.AvgOrderValue),
			strconv.Itoa(c.LifespanDays), num(c.LifespanMonths), num(c.PurchaseFrequency),
			num(c.HistoricalLTV), num(c.PredictedLTV12m), num(c.PredictedLTV24m),
			strconv.Itoa(c.DaysSinceLast), c.Segment, c.ChurnRisk)
	}
	return t
}

// LTVSegmentsTable is the per-segment LTV summary.
func LTVSegmentsTable(segments []entity.LTVSegmentSummary) *entity.Table {
	t := entity.NewTable("ltv_segment_summary",
		"ltv_segment", "customer_count", "avg_orders", "avg_order_value", "avg_frequency",
		"avg_lifetime_months", "avg_historical_ltv", "avg_predicted_ltv_12m",
		"total_predicted_value", "avg_days_since_last", "segment_pct")
	for _, s := range segments {
		t.Append(s.Segment, strconv.Itoa(s.CustomerCount), num(s.AvgOrders), num(s.AvgOrderValue),
			num(s.AvgFrequency), num(s.AvgLifetimeMonths), num(s.AvgHistoricalLTV),
			num(s.AvgPredictedLTV12m), num(s.TotalPredictedValue), num(s.AvgDaysSinceLast),
			num(s.SegmentPct))
	}
	return t
}

// TopCustomersTable lists the highest predicted-LTV customers.
func TopCustomersTable(customers []entity.CustomerLTV) *entity.Table {
	t := entity.NewTable("top_customers",
		"customer_id", "total_orders", "total_revenue", "predicted_ltv_12m", "ltv_segment", "churn_risk")
	for _, c := range customers {
		t.Append(c.CustomerID, strconv.Itoa(c.TotalOrders), num(c.TotalRevenue),
			strconv.FormatFloat(c.PredictedLTV12m, 'f', 2, 64), c.Segment, c.ChurnRisk)
	}
	return t
}

// ChurnTable renders the segment x churn-risk crosstab.
func ChurnTable(m entity.ChurnMatrix) *entity.Table {
	columns := append([]string{"ltv_segment"}, m.Risks...)
	t := entity.NewTable("churn_risk", columns...)
	for _, s := range m.Segments {
		row := []string{s}
		for _, c := range m.Counts[s] {
			row = append(row, strconv.Itoa(c))
		}
		t.Append(row...)
	}
	return t
}

// RFMSegmentsTable renders the RFM segment summary.
func RFMSegmentsTable(rows []entity.RFMSegmentSummary) *entity.Table {
	t := entity.NewTable("rfm_duckdb_results",
		"customer_segment", "customer_count", "segment_pct", "avg_recency_days",
		"avg_frequency", "avg_monetary", "avg_order_value")
	for _, r := range rows {
		t.Append(r.Segment, strconv.Itoa(r.CustomerCount), num(r.SegmentPct), num(r.AvgRecencyDays),
			num(r.AvgFrequency), num(r.AvgMonetary), num(r.AvgOrderValue))
	}
	return t
}

// RFMCustomersTable renders per-customer RFM scores.
func RFMCustomersTable(rows []entity.CustomerRFM) *entity.Table {
	t := entity.NewTable("rfm_customer_scores",
		"customer_id", "last_order_date", "recency_days", "frequency", "monetary",
		"avg_order_value", "r_score", "f_score", "m_score", "rfm_total", "customer_segment")
	for _, r := range rows {
		t.Append(r.CustomerID, r.LastOrderDate.Format(dateLayout), strconv.Itoa(r.RecencyDays),
			strconv.Itoa(r.Frequency), num(r.Monetary), num(r.AvgOrderValue),
			strconv.Itoa(r.RScore), strconv.Itoa(r.FScore), strconv.Itoa(r.MScore),
			strconv.Itoa(r.RFMTotal), r.Segment)
	}
	return t
}

// ForecastTable renders actuals, features and predictions for every month.
func ForecastTable(result entity.ForecastResult) *entity.Table {
	t := entity.NewTable("sales_forecast_results",
		"date", "sales_amount", "month_num", "month", "quarter", "predicted", "split")
	for _, r := range result.All() {
		t.Append(r.Month.Start().Format(dateLayout), num(r.SalesAmount), strconv.Itoa(r.MonthNum),
			strconv.Itoa(r.MonthOfYear), strconv.Itoa(r.Quarter), num(r.Predicted), string(r.Split))
	}
	return t
}
