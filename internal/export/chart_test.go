package export

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ygglist/ygglist/internal/reports"
)

func series(amounts ...string) []reports.DayPoint {
	out := make([]reports.DayPoint, len(amounts))
	for i, a := range amounts {
		out[i] = reports.DayPoint{
			DateISO: "2026-03-0" + string(rune('1'+i)),
			Amount:  decimal.RequireFromString(a),
		}
	}
	return out
}

func TestChartSVG(t *testing.T) {
	svg := string(ChartSVG(series("0", "25.00", "10.50")))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("Unexpected SVG prefix: %s", svg[:40])
	}
	if !strings.Contains(svg, "<polyline") {
		t.Error("Expected a polyline for a non-empty series")
	}
	if !strings.Contains(svg, "2026-03-01") || !strings.Contains(svg, "2026-03-03") {
		t.Error("Expected first and last date labels")
	}
}

func TestChartSVG_EmptySeries(t *testing.T) {
	svg := string(ChartSVG(nil))

	if strings.Contains(svg, "<polyline") {
		t.Error("Expected no polyline for an empty series")
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("Expected well-formed SVG")
	}
}

func TestChartPNG(t *testing.T) {
	data, err := ChartPNG(series("0", "25.00", "10.50"))
	if err != nil {
		t.Fatalf("ChartPNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != chartWidth*pngScale || bounds.Dy() != chartHeight*pngScale {
		t.Errorf("Bounds = %v, want %dx%d", bounds, chartWidth*pngScale, chartHeight*pngScale)
	}
}

func TestChartPNG_AllZeroSeries(t *testing.T) {
	data, err := ChartPNG(series("0", "0"))
	if err != nil {
		t.Fatalf("ChartPNG: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("Decode: %v", err)
	}
}
