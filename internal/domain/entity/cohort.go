package entity

// CohortCell is the retention of one cohort at a given month offset.
type CohortCell struct {
	CohortMonth     Month   `json:"cohort_month"`
	MonthSinceFirst int     `json:"month_since_first"`
	ActiveCustomers int     `json:"active_customers"`
	CohortCustomers int     `json:"cohort_customers"`
	RetentionRate   float64 `json:"retention_rate"`
}

// CohortPivot é a matriz coorte x mês com taxas de retenção (células ausentes = 0).
// Offsets holds only the month offsets observed in the data, ascending.
type CohortPivot struct {
	Cohorts []Month     `json:"cohorts"`
	Offsets []int       `json:"offsets"`
	Values  [][]float64 `json:"values"`
}

func (p CohortPivot) offsetIndex(offset int) int {
	for i, o := range p.Offsets {
		if o == offset {
			return i
		}
	}
	return -1
}

// HasOffset informa se a coluna de deslocamento existe no pivot.
func (p CohortPivot) HasOffset(offset int) bool {
	return p.offsetIndex(offset) >= 0
}

// Column retorna os valores de uma coluna do pivot, na ordem das coortes.
func (p CohortPivot) Column(offset int) []float64 {
	col := make([]float64, len(p.Cohorts))
	idx := p.offsetIndex(offset)
	if idx < 0 {
		return col
	}
	for i := range p.Cohorts {
		col[i] = p.Values[i][idx]
	}
	return col
}

// CohortRanking pairs a cohort with its retention at a fixed offset.
type CohortRanking struct {
	CohortMonth Month   `json:"cohort_month"`
	Retention   float64 `json:"retention"`
}

// CohortAnalysis is the full output of the cohort retention pipeline.
type CohortAnalysis struct {
	Cells            []CohortCell    `json:"cells"`
	Pivot            CohortPivot     `json:"pivot"`
	AverageRetention map[int]float64 `json:"average_retention"`
	TopCohorts       []CohortRanking `json:"top_cohorts"`
}
