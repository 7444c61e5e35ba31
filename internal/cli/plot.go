package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-biquad/measure/response"
)

const (
	curveMark = '*'
	zeroMark  = '-'

	// minSpanDB keeps nearly flat curves from filling the whole plot.
	minSpanDB = 6.0
)

var (
	curveStyle = lipgloss.NewStyle().Foreground(primaryColor)
	axisStyle  = lipgloss.NewStyle().Foreground(mutedColor)
)

// Curve lays values (in dB) out on a grid of height rows, one column per
// value, top row at maxDB and bottom row at minDB. Values outside the range
// are drawn on the nearest edge; NaN leaves the column empty. The row
// closest to 0 dB is drawn as a dashed line where no value lands.
func Curve(values []float64, height int, minDB, maxDB float64) []string {
	if height < 2 || len(values) == 0 || !(maxDB > minDB) {
		return nil
	}

	step := (maxDB - minDB) / float64(height-1)

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", len(values)))
	}

	if minDB <= 0 && maxDB >= 0 {
		zero := int(math.Round(maxDB / step))
		for c := range grid[zero] {
			grid[zero][c] = zeroMark
		}
	}

	for c, v := range values {
		if math.IsNaN(v) {
			continue
		}

		v = math.Max(minDB, math.Min(maxDB, v))
		r := int(math.Round((maxDB - v) / step))
		grid[r][c] = curveMark
	}

	lines := make([]string, height)
	for r, row := range grid {
		lines[r] = string(row)
	}

	return lines
}

// Plot renders the magnitude of points as a text curve with a dB axis and
// the frequency range underneath. The range covers every finite value,
// always includes 0 dB and spans at least 6 dB.
func Plot(points []response.Point, height int) string {
	if len(points) == 0 || height < 2 {
		return ""
	}

	values := make([]float64, len(points))
	lo, hi := 0.0, 0.0

	for i, p := range points {
		values[i] = p.MagnitudeDB
		if math.IsInf(p.MagnitudeDB, 0) || math.IsNaN(p.MagnitudeDB) {
			continue
		}

		lo = math.Min(lo, p.MagnitudeDB)
		hi = math.Max(hi, p.MagnitudeDB)
	}

	if hi-lo < minSpanDB {
		mid := (hi + lo) / 2
		lo, hi = mid-minSpanDB/2, mid+minSpanDB/2
	}

	lo, hi = math.Floor(lo), math.Ceil(hi)

	rows := Curve(values, height, lo, hi)
	step := (hi - lo) / float64(height-1)

	var sb strings.Builder

	for r, row := range rows {
		label := fmt.Sprintf("%7.1f dB │", hi-float64(r)*step)
		sb.WriteString(axisStyle.Render(label))
		sb.WriteString(curveStyle.Render(row))
		sb.WriteString("\n")
	}

	margin := strings.Repeat(" ", 11)
	first := FormatHz(points[0].Freq)
	last := FormatHz(points[len(points)-1].Freq)
	gap := max(1, len(points)-len(first)-len(last))

	sb.WriteString(axisStyle.Render(margin + "└" + strings.Repeat("─", len(points))))
	sb.WriteString("\n")
	sb.WriteString(axisStyle.Render(margin + " " + first + strings.Repeat(" ", gap) + last))
	sb.WriteString("\n")

	return sb.String()
}

// FormatHz prints a frequency compactly with three significant digits,
// switching to kHz from 1000 Hz.
func FormatHz(hz float64) string {
	if math.Round(hz) >= 1000 {
		return fmt.Sprintf("%.3gk", hz/1000)
	}

	return fmt.Sprintf("%.3g", hz)
}
