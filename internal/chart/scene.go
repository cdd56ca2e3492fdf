// Package chart builds candlestick and line chart scenes as pure data.
// BuildScene is a pure function of (candles, options); rasterisation to
// SVG lives in svg.go so the scene can also feed other renderers.
package chart

import (
	"math"

	"trade-copilot/internal/models"
	"trade-copilot/pkg/utils"
)

// NoHover marks Options.HoverIndex as absent.
const NoHover = -1

// Layout constants. The volume band is a fixed strip above the date axis.
const (
	insetTop     = 12.0
	insetLeft    = 24.0
	axisRight    = 56.0
	dateAxisH    = 28.0
	volumeBandH  = 72.0
	panelGap     = 8.0
	maxDateTicks = 7
	priceTicks   = 5
	dimOpacity   = 0.35
)

// Palette.
const (
	colorUp     = "#22c55e"
	colorDown   = "#ef4444"
	colorSMA20  = "#3b82f6"
	colorSMA50  = "#f59e0b"
	colorSMA200 = "#a855f7"
	colorGuide  = "#94a3b8"
	colorArea   = "#22c55e33"
)

// Options parameterise a scene build.
type Options struct {
	Width      float64
	Height     float64
	View       models.ChartView
	HoverIndex int
}

// Point is an x,y pair in viewport coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Segment is a straight stroke, used for wicks and crosshair guides.
type Segment struct {
	X1, Y1, X2, Y2 float64
	Color          string
	Width          float64
	Opacity        float64
	Dashed         bool
}

// Bar is a filled rectangle with paint attributes.
type Bar struct {
	Rect    Rect
	Fill    string
	Opacity float64
	Stroke  float64
}

// Polyline is a connected stroke, used for SMA overlays and the line view.
type Polyline struct {
	Label  string
	Color  string
	Width  float64
	Points []Point
}

// Tick is one axis label.
type Tick struct {
	X, Y  float64
	Label string
}

// Tooltip is the hovered-bar info panel, clamped inside the price rect.
type Tooltip struct {
	Rect  Rect
	Lines []string
}

// Scene is a full render-ready description of the chart.
type Scene struct {
	Width, Height float64

	Empty       bool
	Placeholder string

	PriceRect  Rect
	VolumeRect Rect

	Wicks      []Segment
	Bodies     []Bar
	ClosePath  *Polyline
	AreaPath   []Point
	Overlays   []Polyline
	VolumeBars []Bar

	PriceAxis []Tick
	DateAxis  []Tick

	Crosshair []Segment
	Tooltip   *Tooltip
}

// BuildScene computes the scene for the given candles. Fewer than two
// candles yields an empty scene with a placeholder and no axes.
func BuildScene(candles []models.Candle, opts Options) Scene {
	scene := Scene{Width: opts.Width, Height: opts.Height}

	if len(candles) == 0 {
		scene.Empty = true
		scene.Placeholder = "No data"
		return scene
	}
	if len(candles) < 2 {
		scene.Empty = true
		scene.Placeholder = "Need at least 2 points"
		return scene
	}

	n := len(candles)
	hover := opts.HoverIndex
	if hover < 0 || hover >= n {
		hover = NoHover
	}

	priceRect := Rect{
		X: insetLeft,
		Y: insetTop,
		W: opts.Width - insetLeft - axisRight,
		H: opts.Height - insetTop - dateAxisH - volumeBandH - panelGap,
	}
	volumeRect := Rect{
		X: insetLeft,
		Y: priceRect.Y + priceRect.H + panelGap,
		W: priceRect.W,
		H: volumeBandH,
	}
	scene.PriceRect = priceRect
	scene.VolumeRect = volumeRect

	lo, hi := priceDomain(candles, opts.View)
	span := hi - lo
	if span <= 0 {
		span = 1
	}

	xAt := func(i int) float64 {
		return priceRect.X + float64(i)*priceRect.W/float64(n-1)
	}
	yAt := func(v float64) float64 {
		return priceRect.Y + (hi-v)/span*priceRect.H
	}

	bodyW := math.Max(2, math.Min(12, priceRect.W/float64(n)-1))

	var maxVol int64 = 1
	for _, c := range candles {
		if c.Volume > maxVol {
			maxVol = c.Volume
		}
	}

	for i, c := range candles {
		x := xAt(i)
		opacity := 1.0
		stroke := 1.0
		if hover != NoHover {
			if i == hover {
				stroke = 1.5
			} else {
				opacity = dimOpacity
			}
		}
		fill := colorDown
		if c.Bullish() {
			fill = colorUp
		}

		if opts.View == models.ViewCandlestick {
			scene.Wicks = append(scene.Wicks, Segment{
				X1: x, Y1: yAt(c.High), X2: x, Y2: yAt(c.Low),
				Color: fill, Width: stroke, Opacity: opacity,
			})
			top := yAt(math.Max(c.Open, c.Close))
			h := yAt(math.Min(c.Open, c.Close)) - top
			if h < 1 {
				h = 1
			}
			scene.Bodies = append(scene.Bodies, Bar{
				Rect:    Rect{X: x - bodyW/2, Y: top, W: bodyW, H: h},
				Fill:    fill,
				Opacity: opacity,
				Stroke:  stroke,
			})
		}

		vh := float64(c.Volume) / float64(maxVol) * volumeRect.H
		scene.VolumeBars = append(scene.VolumeBars, Bar{
			Rect: Rect{
				X: x - bodyW/2,
				Y: volumeRect.Y + volumeRect.H - vh,
				W: bodyW,
				H: vh,
			},
			Fill:    fill,
			Opacity: opacity * 0.7,
		})
	}

	if opts.View == models.ViewLine {
		line := Polyline{Color: colorUp, Width: 2}
		for i, c := range candles {
			line.Points = append(line.Points, Point{X: xAt(i), Y: yAt(c.Close)})
		}
		scene.ClosePath = &line

		area := make([]Point, 0, n+2)
		area = append(area, Point{X: xAt(0), Y: volumeRect.Y - panelGap})
		area = append(area, line.Points...)
		area = append(area, Point{X: xAt(n - 1), Y: volumeRect.Y - panelGap})
		scene.AreaPath = area
	}

	scene.Overlays = smaOverlays(candles, xAt, yAt)
	scene.PriceAxis = buildPriceAxis(priceRect, lo, hi, yAt)
	scene.DateAxis = buildDateAxis(candles, xAt, opts.Height)

	if hover != NoHover {
		scene.Crosshair = crosshairFor(candles[hover], xAt(hover), yAt, priceRect, volumeRect)
		scene.Tooltip = tooltipFor(candles[hover], xAt(hover), yAt(candles[hover].Close), priceRect)
	}

	return scene
}

// priceDomain pads the data range so bars never touch the panel edges.
// The line view scales to closes; the candlestick view to full wicks.
func priceDomain(candles []models.Candle, view models.ChartView) (lo, hi float64) {
	lo = math.Inf(1)
	hi = math.Inf(-1)
	for _, c := range candles {
		if view == models.ViewLine {
			lo = math.Min(lo, c.Close)
			hi = math.Max(hi, c.Close)
		} else {
			lo = math.Min(lo, c.Low)
			hi = math.Max(hi, c.High)
		}
	}
	return lo * 0.998, hi * 1.002
}

// HoverIndexAt maps a pointer x back to the nearest candle index, the
// inverse of the scene's x scale.
func HoverIndexAt(pointerX, width float64, n int) int {
	if n < 2 {
		return NoHover
	}
	innerW := width - insetLeft - axisRight
	if innerW <= 0 {
		return NoHover
	}
	i := int(math.Round((pointerX - insetLeft) / innerW * float64(n-1)))
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	return i
}

func smaOverlays(candles []models.Candle, xAt func(int) float64, yAt func(float64) float64) []Polyline {
	specs := []struct {
		label string
		color string
		value func(models.Candle) *float64
	}{
		{"SMA20", colorSMA20, func(c models.Candle) *float64 { return c.SMA20 }},
		{"SMA50", colorSMA50, func(c models.Candle) *float64 { return c.SMA50 }},
		{"SMA200", colorSMA200, func(c models.Candle) *float64 { return c.SMA200 }},
	}

	var overlays []Polyline
	for _, spec := range specs {
		line := Polyline{Label: spec.label, Color: spec.color, Width: 1.25}
		for i, c := range candles {
			if v := spec.value(c); v != nil {
				line.Points = append(line.Points, Point{X: xAt(i), Y: yAt(*v)})
			}
		}
		if len(line.Points) > 0 {
			overlays = append(overlays, line)
		}
	}
	return overlays
}

func buildPriceAxis(priceRect Rect, lo, hi float64, yAt func(float64) float64) []Tick {
	ticks := make([]Tick, 0, priceTicks)
	for k := 0; k < priceTicks; k++ {
		v := lo + (hi-lo)*float64(k)/float64(priceTicks-1)
		ticks = append(ticks, Tick{
			X:     priceRect.X + priceRect.W + 6,
			Y:     yAt(v),
			Label: utils.FormatAxisPrice(v),
		})
	}
	return ticks
}

func buildDateAxis(candles []models.Candle, xAt func(int) float64, height float64) []Tick {
	n := len(candles)
	count := maxDateTicks
	if n < count {
		count = n
	}

	ticks := make([]Tick, 0, count)
	for k := 0; k < count; k++ {
		idx := 0
		if count > 1 {
			idx = int(math.Round(float64(k) * float64(n-1) / float64(count-1)))
		}
		ticks = append(ticks, Tick{
			X:     xAt(idx),
			Y:     height - 8,
			Label: utils.ShortDate(candles[idx].Date),
		})
	}
	return ticks
}

func crosshairFor(c models.Candle, x float64, yAt func(float64) float64, priceRect, volumeRect Rect) []Segment {
	closeY := yAt(c.Close)
	return []Segment{
		{
			X1: x, Y1: priceRect.Y, X2: x, Y2: volumeRect.Y + volumeRect.H,
			Color: colorGuide, Width: 1, Opacity: 0.8, Dashed: true,
		},
		{
			X1: priceRect.X, Y1: closeY, X2: priceRect.X + priceRect.W, Y2: closeY,
			Color: colorGuide, Width: 1, Opacity: 0.8, Dashed: true,
		},
	}
}

func tooltipFor(c models.Candle, x, y float64, priceRect Rect) *Tooltip {
	lines := []string{
		utils.ShortDate(c.Date),
		"O " + utils.FormatPrice(c.Open) + "  H " + utils.FormatPrice(c.High),
		"L " + utils.FormatPrice(c.Low) + "  C " + utils.FormatPrice(c.Close),
		"Vol " + utils.FormatVolumeMillions(c.Volume),
	}
	if c.SMA20 != nil {
		lines = append(lines, "SMA20 "+utils.FormatOptionalPrice(c.SMA20))
	}
	if c.RSI != nil {
		lines = append(lines, "RSI "+utils.FormatOptionalPrice(c.RSI))
	}

	const lineH, padding, width = 16.0, 8.0, 150.0
	height := float64(len(lines))*lineH + padding*2

	rect := Rect{X: x + 12, Y: y - height/2, W: width, H: height}
	if rect.X+rect.W > priceRect.X+priceRect.W {
		rect.X = x - 12 - width
	}
	if rect.X < priceRect.X {
		rect.X = priceRect.X
	}
	if rect.Y < priceRect.Y {
		rect.Y = priceRect.Y
	}
	if rect.Y+rect.H > priceRect.Y+priceRect.H {
		rect.Y = priceRect.Y + priceRect.H - rect.H
	}

	return &Tooltip{Rect: rect, Lines: lines}
}
