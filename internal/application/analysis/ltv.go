package analysis

import (
	"sort"
	"time"

	"github.com/diillson/commerce-analytics-go/internal/domain/entity"
	"github.com/diillson/commerce-analytics-go/internal/shared/types"
)

// TopCustomerCount limita a lista de melhores clientes.
const TopCustomerCount = 10

// ClassifyLTVSegment maps a 12-month predicted LTV to a segment.
func ClassifyLTVSegment(ltv float64) string {
	switch {
	case ltv >= 100000:
		return entity.SegmentPlatinum
	case ltv >= 50000:
		return entity.SegmentGold
	case ltv >= 20000:
		return entity.SegmentSilver
	default:
		return entity.SegmentBronze
	}
}

// AssessChurnRisk maps days since the last purchase to a churn risk level.
func AssessChurnRisk(days int) string {
	switch {
	case days > 180:
		return entity.ChurnHigh
	case days > 90:
		return entity.ChurnMedium
	default:
		return entity.ChurnActive
	}
}

type customerAgg struct {
	first, last time.Time
	orders      map[string]struct{}
	revenue     float64
	lines       int
}

// CustomerLifetimeValues computes per-customer LTV metrics, sorted by customer id.
func CustomerLifetimeValues(txs []entity.Transaction, asOf time.Time) []entity.CustomerLTV {
	aggs := make(map[string]*customerAgg)
	for _, tx := range txs {
		a, ok := aggs[tx.CustomerID]
		if !ok {
			a = &customerAgg{first: tx.OrderDate, last: tx.OrderDate, orders: make(map[string]struct{})}
			aggs[tx.CustomerID] = a
		}
		if tx.OrderDate.Before(a.first) {
			a.first = tx.OrderDate
		}
		if tx.OrderDate.After(a.last) {
			a.last = tx.OrderDate
		}
		a.orders[tx.OrderID] = struct{}{}
		a.revenue += tx.OrderAmount
		a.lines++
	}

	ids := make([]string, 0, len(aggs))
	for id := range aggs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	customers := make([]entity.CustomerLTV, 0, len(ids))
	for _, id := range ids {
		a := aggs[id]
		totalOrders := len(a.orders)
		aov := a.revenue / float64(a.lines)

		lifespanDays := daysBetween(a.first, a.last)
		lifespanMonths := float64(lifespanDays) / 30.0
		if lifespanMonths < 1 {
			lifespanMonths = 1
		}

		frequency := float64(totalOrders)
		if lifespanDays > 30 {
			frequency = float64(totalOrders) / lifespanMonths
		}

		predicted12 := aov * frequency * 12
		daysSinceLast := daysBetween(a.last, asOf)

		customers = append(customers, entity.CustomerLTV{
			CustomerID:        id,
			FirstPurchase:     a.first,
			LastPurchase:      a.last,
			TotalOrders:       totalOrders,
			TotalRevenue:      a.revenue,
			AvgOrderValue:     aov,
			LifespanDays:      lifespanDays,
			LifespanMonths:    lifespanMonths,
			PurchaseFrequency: frequency,
			HistoricalLTV:     a.revenue,
			PredictedLTV12m:   predicted12,
			PredictedLTV24m:   aov * frequency * 24,
			DaysSinceLast:     daysSinceLast,
			Segment:           ClassifyLTVSegment(predicted12),
			ChurnRisk:         AssessChurnRisk(daysSinceLast),
		})
	}
	return customers
}

// LifetimeValue runs the full LTV pipeline.
func LifetimeValue(txs []entity.Transaction, asOf time.Time) (entity.LTVAnalysis, error) {
	if len(txs) == 0 {
		return entity.LTVAnalysis{}, types.ErrEmptyDataset
	}

	customers := CustomerLifetimeValues(txs, asOf)

	var total12, total24 float64
	for _, c := range customers {
		total12 += c.PredictedLTV12m
		total24 += c.PredictedLTV24m
	}

	return entity.LTVAnalysis{
		AsOf:           asOf,
		Customers:      customers,
		Segments:       summarizeLTVSegments(customers),
		TopCustomers:   topByPredictedLTV(customers, TopCustomerCount),
		Churn:          churnMatrix(customers),
		Total12m:       total12,
		Total24m:       total24,
		AvgPerCustomer: total12 / float64(len(customers)),
	}, nil
}

func summarizeLTVSegments(customers []entity.CustomerLTV) []entity.LTVSegmentSummary {
	groups := make(map[string][]entity.CustomerLTV)
	for _, c := range customers {
		groups[c.Segment] = append(groups[c.Segment], c)
	}

	summaries := make([]entity.LTVSegmentSummary, 0, len(groups))
	for segment, members := range groups {
		n := float64(len(members))
		var orders, aov, freq, months, hist, pred, days float64
		for _, c := range members {
			orders += float64(c.TotalOrders)
			aov += c.AvgOrderValue
			freq += c.PurchaseFrequency
			months += c.LifespanMonths
			hist += c.HistoricalLTV
			pred += c.PredictedLTV12m
			days += float64(c.DaysSinceLast)
		}
		summaries = append(summaries, entity.LTVSegmentSummary{
			Segment:             segment,
			CustomerCount:       len(members),
			AvgOrders:           roundTo(orders/n, 2),
			AvgOrderValue:       roundTo(aov/n, 2),
			AvgFrequency:        roundTo(freq/n, 2),
			AvgLifetimeMonths:   roundTo(months/n, 2),
			AvgHistoricalLTV:    roundTo(hist/n, 2),
			AvgPredictedLTV12m:  roundTo(pred/n, 2),
			TotalPredictedValue: roundTo(pred, 2),
			AvgDaysSinceLast:    roundTo(days/n, 2),
			SegmentPct:          roundTo(n/float64(len(customers))*100, 2),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].AvgPredictedLTV12m != summaries[j].AvgPredictedLTV12m {
			return summaries[i].AvgPredictedLTV12m > summaries[j].AvgPredictedLTV12m
		}
		return summaries[i].Segment < summaries[j].Segment
	})
	return summaries
}

func topByPredictedLTV(customers []entity.CustomerLTV, limit int) []entity.CustomerLTV {
	ranked := make([]entity.CustomerLTV, len(customers))
	copy(ranked, customers)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PredictedLTV12m > ranked[j].PredictedLTV12m
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func churnMatrix(customers []entity.CustomerLTV) entity.ChurnMatrix {
	segmentSet := make(map[string]struct{})
	riskSet := make(map[string]struct{})
	for _, c := range customers {
		segmentSet[c.Segment] = struct{}{}
		riskSet[c.ChurnRisk] = struct{}{}
	}
	segments := sortedKeys(segmentSet)
	risks := sortedKeys(riskSet)

	riskIndex := make(map[string]int, len(risks))
	for i, r := range risks {
		riskIndex[r] = i
	}

	counts := make(map[string][]int, len(segments))
	for _, s := range segments {
		counts[s] = make([]int, len(risks))
	}
	for _, c := range customers {
		counts[c.Segment][riskIndex[c.ChurnRisk]]++
	}
	return entity.ChurnMatrix{Segments: segments, Risks: risks, Counts: counts}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
