package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tusavi/internal/model"
)

func sampleRounds() []model.RoundAggregate {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []model.RoundAggregate{
		{RoundID: 1, Layout: "trq", EndedAt: base, ElapsedSec: 125, Score: 400, WrongAttempts: 8, Placed: 56},
		{RoundID: 2, Layout: "trq", EndedAt: base.Add(time.Hour), ElapsedSec: 95, Score: 480, WrongAttempts: 4, Placed: 56},
		{RoundID: 3, Layout: "trq", EndedAt: base.Add(2 * time.Hour), ElapsedSec: 70, Score: 530, WrongAttempts: 0, Placed: 56},
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %.1f, got %.1f", i, want[i], got[i])
		}
	}
	if plain := MovingAverage([]float64{1, 5}, 1); plain[1] != 5 {
		t.Fatalf("window 1 should copy values, got %v", plain)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 7}); got != "▁█" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); runewidth.StringWidth(got) != 3 {
		t.Fatalf("flat sparkline should keep its length, got %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRounds())
	if s.Rounds != 3 || s.BestScore != 530 || s.BestSeconds != 70 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if s.TotalWrong != 12 {
		t.Fatalf("expected 12 wrong attempts, got %d", s.TotalWrong)
	}
	if (Summarize(nil) != Summary{}) {
		t.Fatalf("expected zero summary for no rounds")
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[int]string{0: "0:00", 5: "0:05", 65: "1:05", 600: "10:00", -3: "0:00"}
	for sec, want := range cases {
		if got := FormatDuration(sec); got != want {
			t.Fatalf("FormatDuration(%d) = %q, want %q", sec, got, want)
		}
	}
}

func TestRenderSummaryAndCurves(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, sampleRounds()); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if err := RenderCurves(&buf, sampleRounds(), 2, 60); err != nil {
		t.Fatalf("render curves: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Rounds: 3", "Best Time: 1:10", "Learning Curves", "Score", "Accuracy"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render empty summary: %v", err)
	}
	if !strings.Contains(buf.String(), "No rounds found.") {
		t.Fatalf("unexpected empty output: %q", buf.String())
	}
}

func TestCurveLinesFitWidth(t *testing.T) {
	lines := CurveLines(Curves(sampleRounds(), 1), 50)
	if len(lines) != 3 {
		t.Fatalf("expected 3 curve lines, got %d", len(lines))
	}
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w != 50 {
			t.Fatalf("expected width 50, got %d for %q", w, line)
		}
	}
}

func TestRenderKeyTableSortsWeakestFirst(t *testing.T) {
	var buf bytes.Buffer
	aggs := []model.KeyAggregate{
		{Key: "A", Correct: 5, Wrong: 0},
		{Key: "LeftShift", Correct: 1, Wrong: 3},
	}
	if err := RenderKeyTable(&buf, aggs); err != nil {
		t.Fatalf("render key table: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected title, header and 2 rows, got %q", lines)
	}
	if !strings.HasPrefix(lines[2], "Shift") {
		t.Fatalf("expected weakest key first with display label, got %q", lines[2])
	}
}
