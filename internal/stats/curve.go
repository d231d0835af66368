package stats

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	minCurveWidth       = 10
	curveSeparator      = " │ "
	terminalWidthBackup = 80
)

// TerminalWidth reports the width of stdout, or 80 when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// CurveLines renders each curve as "name │ sparkline  min..max", with every
// sparkline resampled to fit totalWidth.
func CurveLines(curves []Curve, totalWidth int) []string {
	if len(curves) == 0 {
		return nil
	}
	nameWidth := 0
	rangeLabels := make([]string, len(curves))
	rangeWidth := 0
	for i, c := range curves {
		nameWidth = max(nameWidth, runewidth.StringWidth(c.Name))
		lo, hi := minMax(c.Values)
		rangeLabels[i] = fmt.Sprintf("%.1f..%.1f", lo, hi)
		rangeWidth = max(rangeWidth, len(rangeLabels[i]))
	}
	width := CurveWidthFor(totalWidth, nameWidth, rangeWidth)

	lines := make([]string, 0, len(curves))
	for i, c := range curves {
		spark := Sparkline(resample(c.Values, width))
		pad := width - runewidth.StringWidth(spark)
		lines = append(lines, fmt.Sprintf("%s%s%s%s  %s",
			runewidth.FillRight(c.Name, nameWidth),
			curveSeparator,
			spark,
			strings.Repeat(" ", max(pad, 0)),
			runewidth.FillRight(rangeLabels[i], rangeWidth),
		))
	}
	return lines
}

// CurveWidthFor computes the sparkline width left after the name column, the
// separator and the range label.
func CurveWidthFor(totalWidth, nameWidth, rangeWidth int) int {
	if totalWidth <= 0 {
		return minCurveWidth
	}
	used := nameWidth + runewidth.StringWidth(curveSeparator) + 2 + rangeWidth
	return max(totalWidth-used, minCurveWidth)
}

// resample stretches or squeezes values to exactly width points. Squeezing
// averages buckets; stretching interpolates linearly.
func resample(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	out := make([]float64, width)
	switch {
	case len(values) == width:
		copy(out, values)
	case len(values) > width:
		for i := range out {
			start := i * len(values) / width
			end := max((i+1)*len(values)/width, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case len(values) == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		for i := range out {
			pos := float64(i) * float64(len(values)-1) / float64(width-1)
			idx := int(math.Floor(pos))
			if idx >= len(values)-1 {
				out[i] = values[len(values)-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}
