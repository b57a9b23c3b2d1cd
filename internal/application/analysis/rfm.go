package analysis

import (
	"sort"
	"time"

	"github.com/diillson/commerce-analytics-go/internal/domain/entity"
	"github.com/diillson/commerce-analytics-go/internal/shared/types"
)

// RFMBuckets é o número de quantis usados nas notas R, F e M.
const RFMBuckets = 5

// ClassifyRFM applies the segment decision table; the first matching rule wins.
func ClassifyRFM(r, f, m int) string {
	switch {
	case r >= 4 && f >= 4 && m >= 4:
		return entity.RFMChampions
	case r >= 3 && f >= 4:
		return entity.RFMLoyal
	case r >= 4 && f <= 2:
		return entity.RFMPromising
	case r >= 3 && m >= 4:
		return entity.RFMBigSpenders
	case r <= 2 && f >= 3:
		return entity.RFMAtRisk
	case r <= 2 && m >= 4:
		return entity.RFMCantLoseThem
	case r <= 2 && f <= 2:
		return entity.RFMLost
	default:
		return entity.RFMNeedAttention
	}
}

// CustomerRFMScores computes recency/frequency/monetary metrics and NTILE
// scores per customer. The result is sorted by customer id.
func CustomerRFMScores(txs []entity.Transaction, asOf time.Time) ([]entity.CustomerRFM, error) {
	if len(txs) == 0 {
		return nil, types.ErrEmptyDataset
	}

	aggs := make(map[string]*customerAgg)
	for _, tx := range txs {
		a, ok := aggs[tx.CustomerID]
		if !ok {
			a = &customerAgg{last: tx.OrderDate, orders: make(map[string]struct{})}
			aggs[tx.CustomerID] = a
		}
		if tx.OrderDate.After(a.last) {
			a.last = tx.OrderDate
		}
		a.orders[tx.OrderID] = struct{}{}
		a.revenue += tx.OrderAmount
		a.lines++
	}

	rows := make([]entity.CustomerRFM, 0, len(aggs))
	for id, a := range aggs {
		rows = append(rows, entity.CustomerRFM{
			CustomerID:    id,
			LastOrderDate: a.last,
			RecencyDays:   daysBetween(a.last, asOf),
			Frequency:     len(a.orders),
			Monetary:      a.revenue,
			AvgOrderValue: a.revenue / float64(a.lines),
		})
	}

	n := len(rows)
	assign := func(less func(a, b entity.CustomerRFM) bool, set func(c *entity.CustomerRFM, score int)) {
		sort.Slice(rows, func(i, j int) bool {
			if less(rows[i], rows[j]) {
				return true
			}
			if less(rows[j], rows[i]) {
				return false
			}
			return rows[i].CustomerID < rows[j].CustomerID
		})
		for i := range rows {
			set(&rows[i], ntile(i, n, RFMBuckets))
		}
	}

	// R: mais recente recebe a maior nota (ordem decrescente de recência)
	assign(func(a, b entity.CustomerRFM) bool { return a.RecencyDays > b.RecencyDays },
		func(c *entity.CustomerRFM, s int) { c.RScore = s })
	assign(func(a, b entity.CustomerRFM) bool { return a.Frequency < b.Frequency },
		func(c *entity.CustomerRFM, s int) { c.FScore = s })
	assign(func(a, b entity.CustomerRFM) bool { return a.Monetary < b.Monetary },
		func(c *entity.CustomerRFM, s int) { c.MScore = s })

	for i := range rows {
		c := &rows[i]
		c.RFMTotal = c.RScore + c.FScore + c.MScore
		c.Segment = ClassifyRFM(c.RScore, c.FScore, c.MScore)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].CustomerID < rows[j].CustomerID })
	return rows, nil
}

// SummarizeRFM groups scored customers by segment, ordered by average monetary value.
func SummarizeRFM(customers []entity.CustomerRFM) []entity.RFMSegmentSummary {
	type acc struct {
		count                     int
		recency, freq, money, aov float64
	}
	groups := make(map[string]*acc)
	for _, c := range customers {
		g, ok := groups[c.Segment]
		if !ok {
			g = &acc{}
			groups[c.Segment] = g
		}
		g.count++
		g.recency += float64(c.RecencyDays)
		g.freq += float64(c.Frequency)
		g.money += c.Monetary
		g.aov += c.AvgOrderValue
	}

	total := float64(len(customers))
	out := make([]entity.RFMSegmentSummary, 0, len(groups))
	for segment, g := range groups {
		n := float64(g.count)
		out = append(out, entity.RFMSegmentSummary{
			Segment:        segment,
			CustomerCount:  g.count,
			SegmentPct:     roundTo(n*100/total, 2),
			AvgRecencyDays: roundTo(g.recency/n, 1),
			AvgFrequency:   roundTo(g.freq/n, 1),
			AvgMonetary:    roundTo(g.money/n, 0),
			AvgOrderValue:  roundTo(g.aov/n, 0),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgMonetary != out[j].AvgMonetary {
			return out[i].AvgMonetary > out[j].AvgMonetary
		}
		return out[i].Segment < out[j].Segment
	})
	return out
}
