package chart

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"trade-copilot/internal/models"
)

// Property: the price y-domain strictly encloses every candle's range.
//
// For any non-empty set of valid candles, every low and high maps to a y
// strictly inside the padded domain, so bars never touch the panel edges.
func TestProperty_YDomainEnclosesAllCandles(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	seedGen := gen.SliceOfN(30, gen.Float64Range(50, 5000))

	properties.Property("domain encloses all lows and highs", prop.ForAll(
		func(opens []float64) bool {
			candles := make([]models.Candle, len(opens))
			for i, o := range opens {
				candles[i] = models.Candle{
					Date: "2026-01-02", Open: o, High: o * 1.02, Low: o * 0.97,
					Close: o * 1.01, Volume: 1000,
				}
			}

			lo, hi := priceDomain(candles, models.ViewCandlestick)
			for _, c := range candles {
				if !(lo < c.Low && c.High < hi) {
					return false
				}
			}
			return true
		},
		seedGen,
	))

	properties.TestingRun(t)
}

// Property: scene geometry stays inside the viewport.
//
// For any candle count and hover index, every candle body lies within the
// configured width and height.
func TestProperty_BodiesInsideViewport(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("bodies inside viewport", prop.ForAll(
		func(n int, hover int) bool {
			candles := testCandles(n)
			opts := defaultOptions()
			opts.HoverIndex = hover
			scene := BuildScene(candles, opts)
			if scene.Empty {
				return n < 2
			}
			for _, b := range scene.Bodies {
				if b.Rect.X < 0 || b.Rect.Y < 0 {
					return false
				}
				if b.Rect.X+b.Rect.W > opts.Width || b.Rect.Y+b.Rect.H > opts.Height {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 400),
		gen.IntRange(-1, 400),
	))

	properties.TestingRun(t)
}

// Property: hover mapping is total and clamped.
//
// Any pointer x maps to an index in [0, n) for n >= 2.
func TestProperty_HoverIndexAlwaysInRange(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("hover index in range", prop.ForAll(
		func(x float64, n int) bool {
			i := HoverIndexAt(x, 960, n)
			return i >= 0 && i < n
		},
		gen.Float64Range(-2000, 2000),
		gen.IntRange(2, 500),
	))

	properties.TestingRun(t)
}
