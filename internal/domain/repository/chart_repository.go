package repository

import "github.com/diillson/commerce-analytics-go/internal/domain/entity"

// ChartRepository renders charts to image files.
type ChartRepository interface {
	RenderForecastChart(result entity.ForecastResult, path string) (string, error)
}
