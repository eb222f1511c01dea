// Package charts computes SVG geometry for the statistics page charts.
// Rendering into markup happens in the templates package; this package only
// produces coordinates and path data.
package charts

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Slice is one input value of a pie chart.
type Slice struct {
	Label string
	Value float64
	Color string
}

// Sector is a rendered pie slice.
type Sector struct {
	Label   string
	Color   string
	Value   float64
	Percent float64
	Path    string // SVG path data
	Full    bool   // the only non-zero slice; draw a circle instead of Path
}

// Pie lays out slices clockwise from 12 o'clock in a circle of radius r
// centred at (cx, cy). Zero and negative values produce no sector.
func Pie(slices []Slice, cx, cy, r float64) []Sector {
	var total float64
	for _, s := range slices {
		if s.Value > 0 {
			total += s.Value
		}
	}
	if total == 0 {
		return nil
	}

	sectors := make([]Sector, 0, len(slices))
	angle := -math.Pi / 2
	for _, s := range slices {
		if s.Value <= 0 {
			continue
		}
		frac := s.Value / total
		sweep := frac * 2 * math.Pi
		sec := Sector{
			Label:   s.Label,
			Color:   s.Color,
			Value:   s.Value,
			Percent: frac * 100,
		}
		if frac >= 1 {
			sec.Full = true
		} else {
			sec.Path = arcPath(cx, cy, r, angle, sweep)
		}
		sectors = append(sectors, sec)
		angle += sweep
	}
	return sectors
}

func arcPath(cx, cy, r, from, sweep float64) string {
	to := from + sweep
	x1, y1 := cx+r*math.Cos(from), cy+r*math.Sin(from)
	x2, y2 := cx+r*math.Cos(to), cy+r*math.Sin(to)
	large := 0
	if sweep > math.Pi {
		large = 1
	}
	return fmt.Sprintf("M %s %s L %s %s A %s %s 0 %d 1 %s %s Z",
		num(cx), num(cy), num(x1), num(y1), num(r), num(r), large, num(x2), num(y2))
}

// Point is a chart coordinate in viewBox units.
type Point struct {
	X, Y  float64
	Label string
	Value float64
}

// Line maps values onto a width x height viewBox with pad units of margin.
// The first value sits at the left edge, the last at the right edge, and the
// y axis grows downward as in SVG. Equal values draw a flat line at mid-height.
func Line(labels []string, values []float64, width, height, pad float64) []Point {
	n := len(values)
	if n == 0 {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	innerW := width - 2*pad
	innerH := height - 2*pad

	pts := make([]Point, n)
	for i, v := range values {
		x := pad + innerW/2
		if n > 1 {
			x = pad + innerW*float64(i)/float64(n-1)
		}
		y := pad + innerH/2
		if hi > lo {
			y = pad + innerH*(1-(v-lo)/(hi-lo))
		}
		var label string
		if i < len(labels) {
			label = labels[i]
		}
		pts[i] = Point{X: x, Y: y, Label: label, Value: v}
	}
	return pts
}

// Polyline formats points for an SVG polyline "points" attribute.
func Polyline(pts []Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = num(p.X) + "," + num(p.Y)
	}
	return strings.Join(parts, " ")
}

// num formats a coordinate with at most two decimals.
func num(f float64) string {
	v := math.Round(f*100) / 100
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
