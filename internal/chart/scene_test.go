package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-copilot/internal/models"
)

func testCandles(n int) []models.Candle {
	out := make([]models.Candle, n)
	base := 100.0
	for i := range out {
		c := base + float64(i)
		out[i] = models.Candle{
			Date:   "2026-01-02",
			Open:   c,
			High:   c + 3,
			Low:    c - 2,
			Close:  c + 1,
			Volume: int64(1000 + i*10),
		}
	}
	return out
}

func defaultOptions() Options {
	return Options{Width: 960, Height: 520, View: models.ViewCandlestick, HoverIndex: NoHover}
}

func TestEmptyInputShowsPlaceholder(t *testing.T) {
	scene := BuildScene(nil, defaultOptions())
	assert.True(t, scene.Empty)
	assert.Equal(t, "No data", scene.Placeholder)
	assert.Empty(t, scene.PriceAxis, "no axes on the placeholder")
	assert.Empty(t, scene.DateAxis)

	scene = BuildScene(testCandles(1), defaultOptions())
	assert.True(t, scene.Empty)
	assert.Equal(t, "Need at least 2 points", scene.Placeholder)
}

func TestCandlestickSceneShape(t *testing.T) {
	candles := testCandles(30)
	scene := BuildScene(candles, defaultOptions())

	require.False(t, scene.Empty)
	assert.Len(t, scene.Wicks, 30)
	assert.Len(t, scene.Bodies, 30)
	assert.Len(t, scene.VolumeBars, 30)
	assert.Nil(t, scene.ClosePath)
	assert.Len(t, scene.PriceAxis, priceTicks)
	assert.LessOrEqual(t, len(scene.DateAxis), maxDateTicks)
	assert.Nil(t, scene.Tooltip)
	assert.Empty(t, scene.Crosshair)
}

func TestLineViewReplacesBodies(t *testing.T) {
	opts := defaultOptions()
	opts.View = models.ViewLine
	scene := BuildScene(testCandles(20), opts)

	assert.Empty(t, scene.Bodies)
	assert.Empty(t, scene.Wicks)
	require.NotNil(t, scene.ClosePath)
	assert.Len(t, scene.ClosePath.Points, 20)
	assert.NotEmpty(t, scene.AreaPath)
	assert.Len(t, scene.VolumeBars, 20, "volume bars remain in line view")
}

func TestHoverDimsOtherBars(t *testing.T) {
	opts := defaultOptions()
	opts.HoverIndex = 3
	scene := BuildScene(testCandles(10), opts)

	for i, b := range scene.Bodies {
		if i == 3 {
			assert.Equal(t, 1.0, b.Opacity)
			assert.Equal(t, 1.5, b.Stroke)
		} else {
			assert.Equal(t, dimOpacity, b.Opacity)
		}
	}
	assert.Len(t, scene.Crosshair, 2)
	require.NotNil(t, scene.Tooltip)
	assert.NotEmpty(t, scene.Tooltip.Lines)
}

func TestTooltipStaysInsidePriceRect(t *testing.T) {
	opts := defaultOptions()
	opts.HoverIndex = 9
	candles := testCandles(10)
	scene := BuildScene(candles, opts)

	require.NotNil(t, scene.Tooltip)
	r := scene.Tooltip.Rect
	pr := scene.PriceRect
	assert.GreaterOrEqual(t, r.X, pr.X)
	assert.LessOrEqual(t, r.X+r.W, pr.X+pr.W+0.001)
	assert.GreaterOrEqual(t, r.Y, pr.Y)
}

func TestDojiBodyHasMinimumHeight(t *testing.T) {
	candles := testCandles(5)
	candles[2].Close = candles[2].Open
	scene := BuildScene(candles, defaultOptions())

	assert.GreaterOrEqual(t, scene.Bodies[2].Rect.H, 1.0)
}

func TestSMAOverlaysSkipNils(t *testing.T) {
	candles := testCandles(10)
	for i := 4; i < 10; i++ {
		v := candles[i].Close - 0.5
		candles[i].SMA20 = &v
	}
	scene := BuildScene(candles, defaultOptions())

	require.Len(t, scene.Overlays, 1)
	assert.Equal(t, "SMA20", scene.Overlays[0].Label)
	assert.Len(t, scene.Overlays[0].Points, 6, "nil SMA values are skipped, not zeroed")
}

func TestHoverIndexAtClamps(t *testing.T) {
	assert.Equal(t, 0, HoverIndexAt(-100, 960, 50))
	assert.Equal(t, 49, HoverIndexAt(5000, 960, 50))
	assert.Equal(t, NoHover, HoverIndexAt(300, 960, 1))
}

func TestBodyWidthWithinBounds(t *testing.T) {
	for _, n := range []int{2, 30, 260, 1000} {
		scene := BuildScene(testCandles(n), defaultOptions())
		for _, b := range scene.Bodies {
			assert.GreaterOrEqual(t, b.Rect.W, 2.0, "n=%d", n)
			assert.LessOrEqual(t, b.Rect.W, 12.0, "n=%d", n)
		}
	}
}

func TestWriteSVGSmoke(t *testing.T) {
	var buf bytes.Buffer
	opts := defaultOptions()
	opts.HoverIndex = 5
	WriteSVG(&buf, BuildScene(testCandles(40), opts))

	out := buf.String()
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<?xml"))
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "</svg>")
	assert.Contains(t, out, colorUp)
}

func TestWriteSVGPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	WriteSVG(&buf, BuildScene(nil, defaultOptions()))
	assert.Contains(t, buf.String(), "No data")
	assert.NotContains(t, buf.String(), "polyline")
}
