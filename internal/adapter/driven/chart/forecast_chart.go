package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/diillson/commerce-analytics-go/internal/domain/entity"
	"github.com/diillson/commerce-analytics-go/pkg/console"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Dimensões equivalentes a uma figura de 14x6 polegadas a 150 dpi.
const (
	Width  = 2100
	Height = 900

	marginLeft   = 190.0
	marginRight  = 60.0
	marginTop    = 100.0
	marginBottom = 140.0

	yTicks = 6
)

var (
	colorTrain     = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	colorTrainPred = color.NRGBA{R: 31, G: 119, B: 180, A: 150}
	colorTest      = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	colorTestPred  = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	colorGrid      = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	colorAxis      = color.RGBA{R: 60, G: 60, B: 60, A: 255}
)

type series struct {
	label  string
	color  color.Color
	dashed bool
	start  int
	values []float64
}

// GGChartRepository desenha gráficos PNG com fogleman/gg.
type GGChartRepository struct {
	title font.Face
	label font.Face
	tick  font.Face
}

// NewGGChartRepository carrega a fonte Go embutida nos tamanhos usados.
func NewGGChartRepository() (*GGChartRepository, error) {
	parsed, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	face := func(size float64) font.Face {
		return truetype.NewFace(parsed, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
	}
	return &GGChartRepository{
		title: face(34),
		label: face(24),
		tick:  face(18),
	}, nil
}

// RenderForecastChart plots actual vs predicted sales for both splits and
// saves the PNG at path. Returns the absolute path.
func (r *GGChartRepository) RenderForecastChart(result entity.ForecastResult, path string) (string, error) {
	all := result.All()
	if len(all) == 0 {
		return "", fmt.Errorf("nothing to plot")
	}

	trainActual := make([]float64, len(result.Train))
	trainPred := make([]float64, len(result.Train))
	for i, m := range result.Train {
		trainActual[i] = m.SalesAmount
		trainPred[i] = m.Predicted
	}
	testActual := make([]float64, len(result.Test))
	testPred := make([]float64, len(result.Test))
	for i, m := range result.Test {
		testActual[i] = m.SalesAmount
		testPred[i] = m.Predicted
	}

	lines := []series{
		{label: "Actual (Train)", color: colorTrain, values: trainActual},
		{label: "Actual (Test)", color: colorTest, start: len(trainActual), values: testActual},
		{label: "Predicted (Train)", color: colorTrainPred, dashed: true, values: trainPred},
		{label: "Predicted (Test)", color: colorTestPred, dashed: true, start: len(trainActual), values: testPred},
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range lines {
		for _, v := range s.values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.05
	lo, hi = lo-pad, hi+pad

	plotW := Width - marginLeft - marginRight
	plotH := Height - marginTop - marginBottom
	n := len(all)
	xAt := func(i int) float64 {
		if n == 1 {
			return marginLeft + plotW/2
		}
		return marginLeft + plotW*float64(i)/float64(n-1)
	}
	yAt := func(v float64) float64 {
		return marginTop + plotH*(1-(v-lo)/(hi-lo))
	}

	dc := gg.NewContext(Width, Height)
	dc.SetColor(color.White)
	dc.Clear()

	// Grade e rótulos do eixo Y
	dc.SetFontFace(r.tick)
	dc.SetLineWidth(1)
	for k := 0; k <= yTicks; k++ {
		v := lo + (hi-lo)*float64(k)/yTicks
		y := yAt(v)
		dc.SetColor(colorGrid)
		dc.DrawLine(marginLeft, y, marginLeft+plotW, y)
		dc.Stroke()
		dc.SetColor(colorAxis)
		dc.DrawStringAnchored(console.FormatNumber(v, 0), marginLeft-12, y, 1, 0.5)
	}

	// Eixo X: no máximo ~12 rótulos
	step := int(math.Ceil(float64(n) / 12))
	if step < 1 {
		step = 1
	}
	for i := 0; i < n; i += step {
		x := xAt(i)
		dc.SetColor(colorGrid)
		dc.DrawLine(x, marginTop, x, marginTop+plotH)
		dc.Stroke()
		dc.SetColor(colorAxis)
		dc.Push()
		dc.RotateAbout(gg.Radians(-45), x, marginTop+plotH+14)
		dc.DrawStringAnchored(all[i].Month.String(), x, marginTop+plotH+14, 1, 0.5)
		dc.Pop()
	}

	dc.SetColor(colorAxis)
	dc.SetLineWidth(2)
	dc.DrawRectangle(marginLeft, marginTop, plotW, plotH)
	dc.Stroke()

	for _, s := range lines {
		drawSeries(dc, s, xAt, yAt)
	}

	dc.SetFontFace(r.label)
	dc.SetColor(colorAxis)
	dc.DrawStringAnchored("Date", marginLeft+plotW/2, Height-24, 0.5, 0)
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), 40, marginTop+plotH/2)
	dc.DrawStringAnchored("Sales Amount (JPY)", 40, marginTop+plotH/2, 0.5, 0.5)
	dc.Pop()

	dc.SetFontFace(r.title)
	dc.DrawStringAnchored("Sales Forecast: Actual vs Predicted", Width/2, marginTop/2, 0.5, 0.5)

	drawLegend(dc, r.tick, lines)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}

func drawSeries(dc *gg.Context, s series, xAt func(int) float64, yAt func(float64) float64) {
	if len(s.values) == 0 {
		return
	}
	dc.SetColor(s.color)
	dc.SetLineWidth(3)
	if s.dashed {
		dc.SetDash(14, 8)
	}
	for i, v := range s.values {
		x, y := xAt(s.start+i), yAt(v)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.Stroke()
	dc.SetDash()

	for i, v := range s.values {
		dc.DrawCircle(xAt(s.start+i), yAt(v), 4)
		dc.Fill()
	}
}

func drawLegend(dc *gg.Context, face font.Face, lines []series) {
	const (
		x      = marginLeft + 24
		y      = marginTop + 20
		rowH   = 30.0
		width  = 280.0
		sample = 46.0
	)
	height := rowH*float64(len(lines)) + 16

	dc.SetRGBA(1, 1, 1, 0.9)
	dc.DrawRectangle(x, y, width, height)
	dc.Fill()
	dc.SetColor(colorGrid)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x, y, width, height)
	dc.Stroke()

	dc.SetFontFace(face)
	for i, s := range lines {
		cy := y + 8 + rowH*float64(i) + rowH/2
		dc.SetColor(s.color)
		dc.SetLineWidth(3)
		if s.dashed {
			dc.SetDash(10, 6)
		}
		dc.DrawLine(x+12, cy, x+12+sample, cy)
		dc.Stroke()
		dc.SetDash()

		dc.SetColor(colorAxis)
		dc.DrawStringAnchored(s.label, x+24+sample, cy, 0, 0.5)
	}
}
