package analysis

import (
	"sort"

	"github.com/diillson/commerce-analytics-go/internal/domain/entity"
	"github.com/diillson/commerce-analytics-go/internal/shared/types"
)

// SummaryOffsets são os meses reportados no resumo de retenção.
var SummaryOffsets = []int{1, 3, 6, 12}

// RankingOffset é o mês usado para ranquear as coortes.
const RankingOffset = 3

// TopCohortCount limita o ranking de coortes.
const TopCohortCount = 5

type cohortKey struct {
	cohort entity.Month
	offset int
}

// Cohorts computes retention per first-purchase month and month offset.
func Cohorts(txs []entity.Transaction) (entity.CohortAnalysis, error) {
	if len(txs) == 0 {
		return entity.CohortAnalysis{}, types.ErrEmptyDataset
	}

	// 1. Mês da primeira compra de cada cliente
	firstMonth := make(map[string]entity.Month)
	for _, tx := range txs {
		m := entity.MonthOf(tx.OrderDate)
		if cur, ok := firstMonth[tx.CustomerID]; !ok || m.Before(cur) {
			firstMonth[tx.CustomerID] = m
		}
	}

	// 2. Tamanho de cada coorte
	cohortSize := make(map[entity.Month]int)
	for _, m := range firstMonth {
		cohortSize[m]++
	}

	// 3. Clientes ativos por (coorte, meses desde a primeira compra)
	active := make(map[cohortKey]map[string]struct{})
	offsetSeen := make(map[int]struct{})
	for _, tx := range txs {
		cohort := firstMonth[tx.CustomerID]
		key := cohortKey{cohort: cohort, offset: entity.MonthOf(tx.OrderDate).Sub(cohort)}
		if active[key] == nil {
			active[key] = make(map[string]struct{})
		}
		active[key][tx.CustomerID] = struct{}{}
		offsetSeen[key.offset] = struct{}{}
	}

	cells := make([]entity.CohortCell, 0, len(active))
	for key, customers := range active {
		size := cohortSize[key.cohort]
		cells = append(cells, entity.CohortCell{
			CohortMonth:     key.cohort,
			MonthSinceFirst: key.offset,
			ActiveCustomers: len(customers),
			CohortCustomers: size,
			RetentionRate:   roundTo(float64(len(customers))/float64(size)*100, 2),
		})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].CohortMonth != cells[j].CohortMonth {
			return cells[i].CohortMonth.Before(cells[j].CohortMonth)
		}
		return cells[i].MonthSinceFirst < cells[j].MonthSinceFirst
	})

	pivot := buildPivot(cells, cohortSize, offsetSeen)

	averages := make(map[int]float64)
	for _, offset := range SummaryOffsets {
		if pivot.HasOffset(offset) {
			averages[offset] = mean(pivot.Column(offset))
		}
	}

	return entity.CohortAnalysis{
		Cells:            cells,
		Pivot:            pivot,
		AverageRetention: averages,
		TopCohorts:       topCohorts(pivot, RankingOffset, TopCohortCount),
	}, nil
}

func buildPivot(cells []entity.CohortCell, sizes map[entity.Month]int, offsets map[int]struct{}) entity.CohortPivot {
	cohorts := make([]entity.Month, 0, len(sizes))
	for m := range sizes {
		cohorts = append(cohorts, m)
	}
	sort.Slice(cohorts, func(i, j int) bool { return cohorts[i].Before(cohorts[j]) })

	offsetList := make([]int, 0, len(offsets))
	for o := range offsets {
		offsetList = append(offsetList, o)
	}
	sort.Ints(offsetList)

	row := make(map[entity.Month]int, len(cohorts))
	for i, m := range cohorts {
		row[m] = i
	}
	col := make(map[int]int, len(offsetList))
	for i, o := range offsetList {
		col[o] = i
	}

	values := make([][]float64, len(cohorts))
	for i := range values {
		values[i] = make([]float64, len(offsetList))
	}
	for _, c := range cells {
		values[row[c.CohortMonth]][col[c.MonthSinceFirst]] = c.RetentionRate
	}

	return entity.CohortPivot{Cohorts: cohorts, Offsets: offsetList, Values: values}
}

func topCohorts(pivot entity.CohortPivot, offset, limit int) []entity.CohortRanking {
	if !pivot.HasOffset(offset) {
		return nil
	}
	column := pivot.Column(offset)
	ranking := make([]entity.CohortRanking, len(pivot.Cohorts))
	for i, m := range pivot.Cohorts {
		ranking[i] = entity.CohortRanking{CohortMonth: m, Retention: column[i]}
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Retention > ranking[j].Retention
	})
	if len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking
}
