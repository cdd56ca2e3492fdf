package chart

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo/float"
)

const (
	bgColor      = "#0b1120"
	textColor    = "#cbd5e1"
	tooltipFill  = "#1e293b"
	placeholderC = "#64748b"
)

// WriteSVG rasterises a scene to SVG.
func WriteSVG(w io.Writer, scene Scene) {
	canvas := svg.New(w)
	canvas.Start(scene.Width, scene.Height)
	defer canvas.End()

	canvas.Rect(0, 0, scene.Width, scene.Height, "fill:"+bgColor)

	if scene.Empty {
		canvas.Text(scene.Width/2, scene.Height/2, scene.Placeholder,
			"fill:"+placeholderC+";font-size:14px;text-anchor:middle;font-family:sans-serif")
		return
	}

	if len(scene.AreaPath) > 0 {
		xs, ys := split(scene.AreaPath)
		canvas.Polygon(xs, ys, "fill:"+colorArea+";stroke:none")
	}

	for _, seg := range scene.Wicks {
		canvas.Line(seg.X1, seg.Y1, seg.X2, seg.Y2, strokeStyle(seg))
	}
	for _, b := range scene.Bodies {
		canvas.Rect(b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H, barStyle(b))
	}
	if scene.ClosePath != nil {
		drawPolyline(canvas, *scene.ClosePath)
	}
	for _, o := range scene.Overlays {
		drawPolyline(canvas, o)
	}
	for _, b := range scene.VolumeBars {
		canvas.Rect(b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H, barStyle(b))
	}

	for _, t := range scene.PriceAxis {
		canvas.Text(t.X, t.Y+4, t.Label,
			"fill:"+textColor+";font-size:11px;font-family:sans-serif")
	}
	for _, t := range scene.DateAxis {
		canvas.Text(t.X, t.Y, t.Label,
			"fill:"+textColor+";font-size:11px;text-anchor:middle;font-family:sans-serif")
	}

	for _, seg := range scene.Crosshair {
		canvas.Line(seg.X1, seg.Y1, seg.X2, seg.Y2, strokeStyle(seg))
	}
	if scene.Tooltip != nil {
		drawTooltip(canvas, *scene.Tooltip)
	}
}

func drawPolyline(canvas *svg.SVG, p Polyline) {
	if len(p.Points) < 2 {
		return
	}
	xs, ys := split(p.Points)
	canvas.Polyline(xs, ys, fmt.Sprintf(
		"fill:none;stroke:%s;stroke-width:%.2f;stroke-linejoin:round", p.Color, p.Width))
}

func drawTooltip(canvas *svg.SVG, t Tooltip) {
	canvas.Roundrect(t.Rect.X, t.Rect.Y, t.Rect.W, t.Rect.H, 4, 4,
		"fill:"+tooltipFill+";fill-opacity:0.95;stroke:#334155")
	for i, line := range t.Lines {
		canvas.Text(t.Rect.X+8, t.Rect.Y+18+float64(i)*16, line,
			"fill:"+textColor+";font-size:11px;font-family:monospace")
	}
}

func strokeStyle(seg Segment) string {
	style := fmt.Sprintf("stroke:%s;stroke-width:%.2f;stroke-opacity:%.2f",
		seg.Color, seg.Width, seg.Opacity)
	if seg.Dashed {
		style += ";stroke-dasharray:4 3"
	}
	return style
}

func barStyle(b Bar) string {
	return fmt.Sprintf("fill:%s;fill-opacity:%.2f", b.Fill, b.Opacity)
}

func split(points []Point) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return xs, ys
}
