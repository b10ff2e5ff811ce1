package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/shopspring/decimal"

	"github.com/ygglist/ygglist/internal/reports"
)

const (
	chartWidth  = 640
	chartHeight = 240
	chartPad    = 32

	// pngScale upscales the raster so the exported image stays readable
	// when shared from a phone.
	pngScale = 2
)

var (
	chartLine = color.RGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff}
	chartAxis = color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
)

// ChartSVG renders the daily series as a single-line SVG chart.
func ChartSVG(daily []reports.DayPoint) []byte {
	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		chartWidth, chartHeight, chartWidth, chartHeight)
	fmt.Fprintf(buf, `<rect width="%d" height="%d" fill="#ffffff"/>`, chartWidth, chartHeight)

	// Axes.
	fmt.Fprintf(buf, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#9e9e9e"/>`,
		chartPad, chartHeight-chartPad, chartWidth-chartPad, chartHeight-chartPad)
	fmt.Fprintf(buf, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#9e9e9e"/>`,
		chartPad, chartPad, chartPad, chartHeight-chartPad)

	points := chartPoints(daily, chartWidth, chartHeight, chartPad)
	if len(points) > 0 {
		fmt.Fprint(buf, `<polyline fill="none" stroke="#2e7d32" stroke-width="2" points="`)
		for i, p := range points {
			if i > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(buf, "%.1f,%.1f", p[0], p[1])
		}
		fmt.Fprint(buf, `"/>`)
	}

	if len(daily) > 0 {
		fmt.Fprintf(buf, `<text x="%d" y="%d" font-size="10" fill="#616161">%s</text>`,
			chartPad, chartHeight-chartPad+14, daily[0].DateISO)
		fmt.Fprintf(buf, `<text x="%d" y="%d" font-size="10" fill="#616161" text-anchor="end">%s</text>`,
			chartWidth-chartPad, chartHeight-chartPad+14, daily[len(daily)-1].DateISO)
	}

	fmt.Fprint(buf, `</svg>`)
	return buf.Bytes()
}

// ChartPNG renders the same chart as a PNG raster, upscaled by pngScale.
func ChartPNG(daily []reports.DayPoint) ([]byte, error) {
	w, h, pad := chartWidth*pngScale, chartHeight*pngScale, chartPad*pngScale

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff // white background
	}

	drawLine(img, pad, h-pad, w-pad, h-pad, chartAxis)
	drawLine(img, pad, pad, pad, h-pad, chartAxis)

	points := chartPoints(daily, w, h, pad)
	for i := 1; i < len(points); i++ {
		drawLine(img,
			int(points[i-1][0]), int(points[i-1][1]),
			int(points[i][0]), int(points[i][1]), chartLine)
	}

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// chartPoints maps the series into plot coordinates. A single-point series
// is drawn centered; an all-zero series hugs the baseline.
func chartPoints(daily []reports.DayPoint, w, h, pad int) [][2]float64 {
	if len(daily) == 0 {
		return nil
	}

	max := decimal.Zero
	for _, p := range daily {
		if p.Amount.GreaterThan(max) {
			max = p.Amount
		}
	}
	maxF, _ := max.Float64()
	if maxF <= 0 {
		maxF = 1
	}

	plotW := float64(w - 2*pad)
	plotH := float64(h - 2*pad)
	step := 0.0
	if len(daily) > 1 {
		step = plotW / float64(len(daily)-1)
	}

	points := make([][2]float64, len(daily))
	for i, p := range daily {
		x := float64(pad) + step*float64(i)
		if len(daily) == 1 {
			x = float64(pad) + plotW/2
		}
		v, _ := p.Amount.Float64()
		y := float64(h-pad) - plotH*(v/maxF)
		points[i] = [2]float64{x, y}
	}
	return points
}

// drawLine paints a 1px segment with a basic DDA walk.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx, dy := float64(x1-x0), float64(y1-y0)
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		img.SetRGBA(x0, y0, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		img.SetRGBA(x0+int(math.Round(dx*t)), y0+int(math.Round(dy*t)), c)
	}
}
