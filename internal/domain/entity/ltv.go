package entity

import "time"

// LTV segments, highest first.
const (
	SegmentPlatinum = "Platinum"
	SegmentGold     = "Gold"
	SegmentSilver   = "Silver"
	SegmentBronze   = "Bronze"
)

// Churn risk levels.
const (
	ChurnHigh   = "High Risk"
	ChurnMedium = "Medium Risk"
	ChurnActive = "Active"
)

// CustomerLTV contains the lifetime metrics of one customer.
type CustomerLTV struct {
	CustomerID        string    `json:"customer_id"`
	FirstPurchase     time.Time `json:"first_purchase"`
	LastPurchase      time.Time `json:"last_purchase"`
	TotalOrders       int       `json:"total_orders"`
	TotalRevenue      float64   `json:"total_revenue"`
	AvgOrderValue     float64   `json:"avg_order_value"`
	LifespanDays      int       `json:"lifespan_days"`
	LifespanMonths    float64   `json:"lifespan_months"`
	PurchaseFrequency float64   `json:"purchase_frequency"`
	HistoricalLTV     float64   `json:"historical_ltv"`
	PredictedLTV12m   float64   `json:"predicted_ltv_12m"`
	PredictedLTV24m   float64   `json:"predicted_ltv_24m"`
	DaysSinceLast     int       `json:"days_since_last"`
	Segment           string    `json:"ltv_segment"`
	ChurnRisk         string    `json:"churn_risk"`
}

// LTVSegmentSummary agrega os clientes de um segmento.
type LTVSegmentSummary struct {
	Segment             string  `json:"ltv_segment"`
	CustomerCount       int     `json:"customer_count"`
	AvgOrders           float64 `json:"avg_orders"`
	AvgOrderValue       float64 `json:"avg_order_value"`
	AvgFrequency        float64 `json:"avg_frequency"`
	AvgLifetimeMonths   float64 `json:"avg_lifetime_months"`
	AvgHistoricalLTV    float64 `json:"avg_historical_ltv"`
	AvgPredictedLTV12m  float64 `json:"avg_predicted_ltv_12m"`
	TotalPredictedValue float64 `json:"total_predicted_value"`
	AvgDaysSinceLast    float64 `json:"avg_days_since_last"`
	SegmentPct          float64 `json:"segment_pct"`
}

// ChurnMatrix is a segment x churn-risk count table.
type ChurnMatrix struct {
	Segments []string         `json:"segments"`
	Risks    []string         `json:"risks"`
	Counts   map[string][]int `json:"counts"`
}

// LTVAnalysis é o resultado completo da análise de LTV.
type LTVAnalysis struct {
	AsOf           time.Time           `json:"as_of"`
	Customers      []CustomerLTV       `json:"customers"`
	Segments       []LTVSegmentSummary `json:"segments"`
	TopCustomers   []CustomerLTV       `json:"top_customers"`
	Churn          ChurnMatrix         `json:"churn"`
	Total12m       float64             `json:"total_12m"`
	Total24m       float64             `json:"total_24m"`
	AvgPerCustomer float64             `json:"avg_per_customer_12m"`
}
