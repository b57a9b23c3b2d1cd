package entity

import "time"

// Table is a rendered, column-ordered view of an aggregate. Result CSVs, JSON
// and PDF exports are all produced from tables.
type Table struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// NewTable cria uma tabela vazia com as colunas informadas.
func NewTable(name string, columns ...string) *Table {
	return &Table{Name: name, Columns: columns, Rows: [][]string{}}
}

// Append adiciona uma linha à tabela.
func (t *Table) Append(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Records converts the rows into column-keyed maps.
func (t *Table) Records() []map[string]string {
	out := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]string, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		out = append(out, rec)
	}
	return out
}

// ReportSection is one titled block of a report: a table, free text lines, or both.
type ReportSection struct {
	Title string   `json:"title"`
	Lines []string `json:"lines,omitempty"`
	Table *Table   `json:"-"`
}

// Report agrupa as seções produzidas por uma análise para exportação.
type Report struct {
	RunID       string          `json:"run_id"`
	Name        string          `json:"name"`
	Title       string          `json:"title"`
	GeneratedAt time.Time       `json:"generated_at"`
	Sections    []ReportSection `json:"sections"`
}

// AddTable adiciona uma seção com tabela.
func (r *Report) AddTable(title string, table *Table) {
	r.Sections = append(r.Sections, ReportSection{Title: title, Table: table})
}

// AddLines adiciona uma seção de texto.
func (r *Report) AddLines(title string, lines ...string) {
	r.Sections = append(r.Sections, ReportSection{Title: title, Lines: lines})
}
