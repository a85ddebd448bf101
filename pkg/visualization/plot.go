// Package visualization renders reconstructed phase curves as PNG line
// plots for quick inspection without external plotting tools.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// Plot dimensions and margins in pixels.
const (
	plotWidth  = 800
	plotHeight = 600
	plotMargin = 40
)

// Curve is a single named series to draw.
type Curve struct {
	Label string
	X     []float64
	Y     []float64
	Color color.RGBA
}

// Plotter accumulates curves sharing one coordinate frame and renders
// them into a single image.
type Plotter struct {
	curves []Curve
}

// NewPlotter creates an empty plotter.
func NewPlotter() *Plotter {
	return &Plotter{}
}

// AddCurve registers a series for drawing. Non-finite samples are
// skipped at render time.
func (p *Plotter) AddCurve(label string, xs, ys []float64, c color.RGBA) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("visualization: curve %q has %d x values but %d y values",
			label, len(xs), len(ys))
	}
	if len(xs) == 0 {
		return fmt.Errorf("visualization: curve %q is empty", label)
	}
	p.curves = append(p.curves, Curve{Label: label, X: xs, Y: ys, Color: c})
	return nil
}

// SavePlot renders all registered curves into a PNG at path. Axis
// bounds are auto-scaled to the union of all finite samples.
func (p *Plotter) SavePlot(path string) error {
	if len(p.curves) == 0 {
		return fmt.Errorf("visualization: no curves to plot")
	}

	xMin, xMax, yMin, yMax, ok := p.bounds()
	if !ok {
		return fmt.Errorf("visualization: no finite samples to plot")
	}
	if xMax == xMin {
		xMax = xMin + 1
	}
	if yMax == yMin {
		yMax = yMin + 1
	}

	img := image.NewRGBA(image.Rect(0, 0, plotWidth, plotHeight))
	fill(img, color.RGBA{255, 255, 255, 255})
	drawFrame(img)

	toPixel := func(x, y float64) (int, int) {
		px := plotMargin + int((x-xMin)/(xMax-xMin)*float64(plotWidth-2*plotMargin))
		py := plotHeight - plotMargin - int((y-yMin)/(yMax-yMin)*float64(plotHeight-2*plotMargin))
		return px, py
	}

	for _, c := range p.curves {
		var havePrev bool
		var prevX, prevY int
		for i := range c.X {
			if math.IsNaN(c.X[i]) || math.IsInf(c.X[i], 0) ||
				math.IsNaN(c.Y[i]) || math.IsInf(c.Y[i], 0) {
				havePrev = false
				continue
			}
			px, py := toPixel(c.X[i], c.Y[i])
			if havePrev {
				drawLine(img, prevX, prevY, px, py, c.Color)
			}
			havePrev = true
			prevX, prevY = px, py
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// bounds computes the joint finite extent of all curves.
func (p *Plotter) bounds() (xMin, xMax, yMin, yMax float64, ok bool) {
	xMin, yMin = math.Inf(1), math.Inf(1)
	xMax, yMax = math.Inf(-1), math.Inf(-1)
	for _, c := range p.curves {
		for i := range c.X {
			x, y := c.X[i], c.Y[i]
			if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
				continue
			}
			xMin = math.Min(xMin, x)
			xMax = math.Max(xMax, x)
			yMin = math.Min(yMin, y)
			yMax = math.Max(yMax, y)
			ok = true
		}
	}
	return xMin, xMax, yMin, yMax, ok
}

func fill(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// drawFrame draws the plot border box.
func drawFrame(img *image.RGBA) {
	frame := color.RGBA{0, 0, 0, 255}
	drawLine(img, plotMargin, plotMargin, plotWidth-plotMargin, plotMargin, frame)
	drawLine(img, plotMargin, plotHeight-plotMargin, plotWidth-plotMargin, plotHeight-plotMargin, frame)
	drawLine(img, plotMargin, plotMargin, plotMargin, plotHeight-plotMargin, frame)
	drawLine(img, plotWidth-plotMargin, plotMargin, plotWidth-plotMargin, plotHeight-plotMargin, frame)
}

// drawLine draws a line segment using Bresenham's algorithm.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		img.SetRGBA(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
