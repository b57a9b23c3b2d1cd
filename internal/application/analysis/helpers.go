package analysis

import (
	"math"
	"time"
)

// roundTo arredonda para n casas decimais (meio para longe de zero).
func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// daysBetween returns the floor of whole days from a to b.
func daysBetween(a, b time.Time) int {
	return int(math.Floor(b.Sub(a).Hours() / 24))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// ntile reproduces SQL NTILE(buckets) for a row at position i (0-based) of n
// ordered rows: bucket sizes differ by at most one, larger buckets first.
func ntile(i, n, buckets int) int {
	q := n / buckets
	r := n % buckets
	if i < r*(q+1) {
		return i/(q+1) + 1
	}
	return r + (i-r*(q+1))/q + 1
}
