package entity

import (
	"fmt"
	"time"
)

// Month is a calendar month period (year + month), the Go analogue of a monthly period index.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf trunca uma data ao seu mês.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Index retorna um número sequencial de meses, útil para diferenças.
func (m Month) Index() int {
	return m.Year*12 + int(m.Month) - 1
}

// Sub returns the number of whole months between m and other.
func (m Month) Sub(other Month) int {
	return m.Index() - other.Index()
}

// Before compara dois meses.
func (m Month) Before(other Month) bool {
	return m.Index() < other.Index()
}

// Start retorna o primeiro dia do mês em UTC.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Quarter retorna o trimestre (1-4).
func (m Month) Quarter() int {
	return (int(m.Month)-1)/3 + 1
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// MarshalText implementa encoding.TextMarshaler.
func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
