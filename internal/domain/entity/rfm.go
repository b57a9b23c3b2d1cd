package entity

import "time"

// RFM segment names.
const (
	RFMChampions     = "Champions"
	RFMLoyal         = "Loyal Customers"
	RFMPromising     = "Promising"
	RFMBigSpenders   = "Big Spenders"
	RFMAtRisk        = "At Risk"
	RFMCantLoseThem  = "Cant Lose Them"
	RFMLost          = "Lost"
	RFMNeedAttention = "Need Attention"
)

// CustomerRFM holds the per-customer recency, frequency and monetary metrics and scores.
type CustomerRFM struct {
	CustomerID    string    `json:"customer_id"`
	LastOrderDate time.Time `json:"last_order_date"`
	RecencyDays   int       `json:"recency_days"`
	Frequency     int       `json:"frequency"`
	Monetary      float64   `json:"monetary"`
	AvgOrderValue float64   `json:"avg_order_value"`
	RScore        int       `json:"r_score"`
	FScore        int       `json:"f_score"`
	MScore        int       `json:"m_score"`
	RFMTotal      int       `json:"rfm_total"`
	Segment       string    `json:"customer_segment"`
}

// RFMSegmentSummary é uma linha do resultado agregado por segmento.
type RFMSegmentSummary struct {
	Segment        string  `json:"customer_segment"`
	CustomerCount  int     `json:"customer_count"`
	SegmentPct     float64 `json:"segment_pct"`
	AvgRecencyDays float64 `json:"avg_recency_days"`
	AvgFrequency   float64 `json:"avg_frequency"`
	AvgMonetary    float64 `json:"avg_monetary"`
	AvgOrderValue  float64 `json:"avg_order_value"`
}
