package analytics

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Palette is the chart colour cycle.
var Palette = []string{"#3B82F6", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6", "#EC4899", "#14B8A6", "#F97316"}

func color(i int) string {
	return Palette[i%len(Palette)]
}

type Tick struct {
	Pos   float64
	Label string
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Series is one labelled count, the input to every chart.
type Series struct {
	Label string
	Count int
}

type LinePoint struct {
	X, Y  float64
	Label string
	Count int
}

type LineChart struct {
	Width, Height float64
	Plot          Rect
	Polyline      string
	Points        []LinePoint
	XTicks        []Tick
	YTicks        []Tick
	Empty         bool
}

const maxXLabels = 8

// NewLineChart lays out series left to right with a y axis from zero.
func NewLineChart(series []Series, width, height float64) LineChart {
	c := LineChart{
		Width:  width,
		Height: height,
		Plot:   Rect{X: 40, Y: 12, W: width - 56, H: height - 48},
		Empty:  len(series) == 0,
	}

	top, step := niceScale(maxCount(series))
	c.YTicks = yTicks(c.Plot, top, step)
	if c.Empty {
		return c
	}

	every := (len(series) + maxXLabels - 1) / maxXLabels
	coords := make([]string, 0, len(series))
	for i, s := range series {
		x := c.Plot.X + c.Plot.W/2
		if len(series) > 1 {
			x = c.Plot.X + c.Plot.W*float64(i)/float64(len(series)-1)
		}
		y := c.Plot.Bottom() - c.Plot.H*float64(s.Count)/float64(top)
		x, y = round2(x), round2(y)

		c.Points = append(c.Points, LinePoint{X: x, Y: y, Label: s.Label, Count: s.Count})
		coords = append(coords, fmt.Sprintf("%g,%g", x, y))
		if i%every == 0 {
			c.XTicks = append(c.XTicks, Tick{Pos: x, Label: shortDate(s.Label)})
		}
	}
	c.Polyline = strings.Join(coords, " ")
	return c
}

type PieSlice struct {
	Path    string
	Color   string
	Label   string
	Count   int
	Percent int
	Full    bool
}

type PieChart struct {
	Size   float64
	CX, CY float64
	R      float64
	Slices []PieSlice
}

// NewPieChart draws clockwise from twelve o'clock. Zero counts get no slice.
func NewPieChart(series []Series, size float64) PieChart {
	c := PieChart{Size: size, CX: size / 2, CY: size / 2, R: size/2 - 10}

	total := 0
	for _, s := range series {
		if s.Count > 0 {
			total += s.Count
		}
	}
	if total == 0 {
		return c
	}

	angle := -math.Pi / 2
	for i, s := range series {
		if s.Count <= 0 {
			continue
		}
		fraction := float64(s.Count) / float64(total)
		slice := PieSlice{
			Color:   color(i),
			Label:   s.Label,
			Count:   s.Count,
			Percent: int(math.Round(fraction * 100)),
		}
		if s.Count == total {
			slice.Full = true
			c.Slices = append(c.Slices, slice)
			break
		}

		end := angle + fraction*2*math.Pi
		largeArc := 0
		if fraction > 0.5 {
			largeArc = 1
		}
		x1, y1 := c.CX+c.R*math.Cos(angle), c.CY+c.R*math.Sin(angle)
		x2, y2 := c.CX+c.R*math.Cos(end), c.CY+c.R*math.Sin(end)
		slice.Path = fmt.Sprintf("M%g %g L%g %g A%g %g 0 %d 1 %g %g Z",
			round2(c.CX), round2(c.CY), round2(x1), round2(y1), round2(c.R), round2(c.R), largeArc, round2(x2), round2(y2))
		c.Slices = append(c.Slices, slice)
		angle = end
	}
	return c
}

type Bar struct {
	X, Y, W, H     float64
	Label          string
	Count          int
	LabelX, LabelY float64
}

type BarChart struct {
	Width, Height float64
	Plot          Rect
	Horizontal    bool
	Color         string
	Bars          []Bar
	Ticks         []Tick
}

const (
	barRow       = 28.0
	barLabelSize = 120.0
)

// NewHorizontalBarChart puts one row per series with the labels on the left.
// The height grows with the number of rows.
func NewHorizontalBarChart(series []Series, width float64, fill string) BarChart {
	height := 40 + barRow*float64(max(len(series), 1))
	c := BarChart{
		Width:      width,
		Height:     height,
		Plot:       Rect{X: barLabelSize, Y: 8, W: width - barLabelSize - 24, H: height - 32},
		Horizontal: true,
		Color:      fill,
	}

	top, step := niceScale(maxCount(series))
	for v := 0; v <= top; v += step {
		c.Ticks = append(c.Ticks, Tick{Pos: round2(c.Plot.X + c.Plot.W*float64(v)/float64(top)), Label: fmt.Sprint(v)})
	}
	for i, s := range series {
		y := c.Plot.Y + barRow*float64(i)
		c.Bars = append(c.Bars, Bar{
			X:      c.Plot.X,
			Y:      round2(y + 4),
			W:      round2(c.Plot.W * float64(s.Count) / float64(top)),
			H:      barRow - 8,
			Label:  s.Label,
			Count:  s.Count,
			LabelX: c.Plot.X - 6,
			LabelY: round2(y + barRow/2 + 4),
		})
	}
	return c
}

// NewColumnChart puts one column per series with rotated labels underneath.
func NewColumnChart(series []Series, width, height float64, fill string) BarChart {
	c := BarChart{
		Width:  width,
		Height: height,
		Plot:   Rect{X: 40, Y: 12, W: width - 56, H: height - 112},
		Color:  fill,
	}

	top, step := niceScale(maxCount(series))
	c.Ticks = yTicks(c.Plot, top, step)
	if len(series) == 0 {
		return c
	}

	slot := c.Plot.W / float64(len(series))
	barWidth := slot * 0.7
	for i, s := range series {
		h := c.Plot.H * float64(s.Count) / float64(top)
		x := c.Plot.X + slot*float64(i) + (slot-barWidth)/2
		c.Bars = append(c.Bars, Bar{
			X:      round2(x),
			Y:      round2(c.Plot.Bottom() - h),
			W:      round2(barWidth),
			H:      round2(h),
			Label:  s.Label,
			Count:  s.Count,
			LabelX: round2(x + barWidth/2),
			LabelY: round2(c.Plot.Bottom() + 12),
		})
	}
	return c
}

// niceScale picks an axis maximum >= maxValue that divides into about four
// round steps.
func niceScale(maxValue int) (top, step int) {
	if maxValue <= 0 {
		return 4, 1
	}
	raw := float64(maxValue) / 4
	magnitude := math.Pow(10, math.Floor(math.Log10(raw)))
	var nice float64
	switch n := raw / magnitude; {
	case n <= 1:
		nice = 1
	case n <= 2:
		nice = 2
	case n <= 5:
		nice = 5
	default:
		nice = 10
	}
	step = int(math.Max(1, nice*magnitude))
	top = (maxValue + step - 1) / step * step
	return top, step
}

func yTicks(plot Rect, top, step int) []Tick {
	var ticks []Tick
	for v := 0; v <= top; v += step {
		ticks = append(ticks, Tick{Pos: round2(plot.Bottom() - plot.H*float64(v)/float64(top)), Label: fmt.Sprint(v)})
	}
	return ticks
}

func maxCount(series []Series) int {
	m := 0
	for _, s := range series {
		if s.Count > m {
			m = s.Count
		}
	}
	return m
}

func shortDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2")
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
