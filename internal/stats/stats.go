// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/tusavi/internal/layout"
	"github.com/verte-zerg/tusavi/internal/model"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// RoundAccuracy returns placed / (placed + wrong) for a round.
func RoundAccuracy(placed, wrong int) float64 {
	den := placed + wrong
	if den <= 0 {
		return 0
	}
	return float64(placed) / float64(den)
}

// KeyAccuracy returns the share of correct drops for a key. Keys never
// dropped count as fully accurate.
func KeyAccuracy(agg model.KeyAggregate) float64 {
	total := agg.Correct + agg.Wrong
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(min(i+1, window))
	}
	return out
}

// Sparkline renders values as a single line of block characters.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := minMax(values)
	if math.Abs(hi-lo) < 1e-9 {
		return strings.Repeat(string(sparkRunes[len(sparkRunes)/2]), len(values))
	}
	var b strings.Builder
	top := float64(len(sparkRunes) - 1)
	for _, v := range values {
		idx := int(math.Round((v - lo) / (hi - lo) * top))
		idx = max(0, min(idx, len(sparkRunes)-1))
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

// Summary holds headline numbers over a set of rounds.
type Summary struct {
	Rounds       int
	AvgScore     float64
	BestScore    int
	AvgSeconds   float64
	BestSeconds  int
	AvgAccuracy  float64
	TotalWrong   int
	LatestLayout string
}

// Summarize computes a Summary. The zero Summary is returned for no rounds.
func Summarize(rounds []model.RoundAggregate) Summary {
	if len(rounds) == 0 {
		return Summary{}
	}
	s := Summary{
		Rounds:       len(rounds),
		BestScore:    rounds[0].Score,
		BestSeconds:  rounds[0].ElapsedSec,
		LatestLayout: rounds[len(rounds)-1].Layout,
	}
	var score, secs, acc float64
	for _, r := range rounds {
		score += float64(r.Score)
		secs += float64(r.ElapsedSec)
		acc += RoundAccuracy(r.Placed, r.WrongAttempts)
		s.TotalWrong += r.WrongAttempts
		s.BestScore = max(s.BestScore, r.Score)
		s.BestSeconds = min(s.BestSeconds, r.ElapsedSec)
	}
	n := float64(len(rounds))
	s.AvgScore = score / n
	s.AvgSeconds = secs / n
	s.AvgAccuracy = acc / n
	return s
}

// FormatDuration renders seconds as m:ss.
func FormatDuration(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}

// RenderSummary prints a summary block for rounds.
func RenderSummary(w io.Writer, rounds []model.RoundAggregate) error {
	if len(rounds) == 0 {
		_, err := fmt.Fprintln(w, "No rounds found.")
		return err
	}
	s := Summarize(rounds)
	lines := []string{
		"Summary",
		fmt.Sprintf("Rounds: %d", s.Rounds),
		fmt.Sprintf("Avg Score: %.1f", s.AvgScore),
		fmt.Sprintf("Best Score: %d", s.BestScore),
		fmt.Sprintf("Avg Time: %s", FormatDuration(int(math.Round(s.AvgSeconds)))),
		fmt.Sprintf("Best Time: %s", FormatDuration(s.BestSeconds)),
		fmt.Sprintf("Avg Accuracy: %.2f%%", s.AvgAccuracy*100),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Curve is a named, smoothed series ready to draw.
type Curve struct {
	Name   string
	Values []float64
}

// Curves builds the score, time and accuracy series for rounds.
func Curves(rounds []model.RoundAggregate, window int) []Curve {
	if len(rounds) == 0 {
		return nil
	}
	scores := make([]float64, len(rounds))
	secs := make([]float64, len(rounds))
	accs := make([]float64, len(rounds))
	for i, r := range rounds {
		scores[i] = float64(r.Score)
		secs[i] = float64(r.ElapsedSec)
		accs[i] = RoundAccuracy(r.Placed, r.WrongAttempts) * 100
	}
	return []Curve{
		{Name: "Score", Values: MovingAverage(scores, window)},
		{Name: "Time", Values: MovingAverage(secs, window)},
		{Name: "Accuracy", Values: MovingAverage(accs, window)},
	}
}

// RenderCurves prints one sparkline per curve fitted into totalWidth columns.
// A non-positive totalWidth uses the terminal width.
func RenderCurves(w io.Writer, rounds []model.RoundAggregate, window, totalWidth int) error {
	curves := Curves(rounds, window)
	if len(curves) == 0 {
		return nil
	}
	if totalWidth <= 0 {
		totalWidth = TerminalWidth()
	}
	if _, err := fmt.Fprintf(w, "Learning Curves (window %d)\n", max(window, 1)); err != nil {
		return err
	}
	for _, line := range CurveLines(curves, totalWidth) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// KeyRow is one line of the per-key table.
type KeyRow struct {
	Key      string
	Accuracy float64
	Correct  int
	Wrong    int
}

// KeyRows converts aggregates into rows sorted by lowest accuracy first.
func KeyRows(aggs []model.KeyAggregate) []KeyRow {
	rows := make([]KeyRow, 0, len(aggs))
	for _, agg := range aggs {
		rows = append(rows, KeyRow{
			Key:      layout.Display(agg.Key),
			Accuracy: KeyAccuracy(agg),
			Correct:  agg.Correct,
			Wrong:    agg.Wrong,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Accuracy == rows[j].Accuracy {
			if rows[i].Wrong == rows[j].Wrong {
				return rows[i].Key < rows[j].Key
			}
			return rows[i].Wrong > rows[j].Wrong
		}
		return rows[i].Accuracy < rows[j].Accuracy
	})
	return rows
}

// RenderKeyTable prints per-key aggregates.
func RenderKeyTable(w io.Writer, aggs []model.KeyAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No key stats found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Per-Key (Windowed)"); err != nil {
		return err
	}
	headers := []string{"Key", "Accuracy", "Correct", "Wrong"}
	rows := KeyRows(aggs)
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			r.Key,
			fmt.Sprintf("%.2f%%", r.Accuracy*100),
			fmt.Sprintf("%d", r.Correct),
			fmt.Sprintf("%d", r.Wrong),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, tableRows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
