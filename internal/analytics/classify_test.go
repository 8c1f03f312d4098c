package analytics_test

import (
	"testing"
	"time"

	"weightgoal/internal/analytics"
	"weightgoal/internal/domain"
)

func TestClassifyChange(t *testing.T) {
	tests := []struct {
		pct  float64
		want analytics.Change
	}{
		{0, analytics.ChangeStable},
		{0.2, analytics.ChangeStable},
		{-0.2, analytics.ChangeStable},
		{0.25, analytics.ChangeMildGain},
		{0.3, analytics.ChangeMildGain},
		{0.31, analytics.ChangeModerateGain},
		{0.5, analytics.ChangeModerateGain},
		{0.51, analytics.ChangeSharpGain},
		{4, analytics.ChangeSharpGain},
		{-0.25, analytics.ChangeMildLoss},
		{-0.3, analytics.ChangeMildLoss},
		{-0.4, analytics.ChangeModerateLoss},
		{-0.5, analytics.ChangeModerateLoss},
		{-0.75, analytics.ChangeGoodLoss},
		{-1, analytics.ChangeGoodLoss},
		{-1.5, analytics.ChangeNeutral},
	}
	for _, tc := range tests {
		if got := analytics.ClassifyChange(tc.pct); got != tc.want {
			t.Errorf("ClassifyChange(%v) = %s; want %s", tc.pct, got, tc.want)
		}
	}
}

func TestPercentChange(t *testing.T) {
	if got := analytics.PercentChange(80.0, 79.84); got != -0.2 {
		t.Fatalf("PercentChange(80, 79.84) = %v; want -0.2", got)
	}
	if got := analytics.PercentChange(0, 80); got != 0 {
		t.Fatalf("PercentChange from zero = %v; want 0", got)
	}
}

// series lays weights on consecutive days starting Mar 1. A non-positive
// weight leaves that day empty.
func series(weights ...float64) []analytics.DayCell {
	cells := make([]analytics.DayCell, len(weights))
	for i, w := range weights {
		cells[i] = analytics.DayCell{Date: domain.NewDate(2024, time.March, 1+i)}
		if w > 0 {
			cells[i].Weight = ptr(w)
		}
	}
	return cells
}

func changes(cells []analytics.DayCell) []analytics.Change {
	out := make([]analytics.Change, len(cells))
	for i, c := range cells {
		out[i] = c.Change
	}
	return out
}

func assertChanges(t *testing.T, got []analytics.DayCell, want ...analytics.Change) {
	t.Helper()
	g := changes(got)
	if len(g) != len(want) {
		t.Fatalf("got %d cells; want %d", len(g), len(want))
	}
	for i := range want {
		if g[i] != want[i] {
			t.Errorf("cell %d = %s; want %s (all: %v)", i, g[i], want[i], g)
		}
	}
}

func TestClassify_StableExample(t *testing.T) {
	got := analytics.Classify(series(80.0, 79.84))
	assertChanges(t, got, analytics.ChangeNeutral, analytics.ChangeStable)
	if got[0].Pct != nil {
		t.Error("first weighted cell has no prior and must carry no pct")
	}
	if got[1].Pct == nil || *got[1].Pct != -0.2 {
		t.Errorf("pct = %v; want -0.2", got[1].Pct)
	}
}

func TestClassify_SkipsGaps(t *testing.T) {
	got := analytics.Classify(series(80, -1, -1, 80.4, -1))
	assertChanges(t, got,
		analytics.ChangeNeutral, analytics.ChangeNeutral, analytics.ChangeNeutral,
		analytics.ChangeModerateGain, analytics.ChangeNeutral)
	if got[3].Pct == nil || *got[3].Pct != 0.5 {
		t.Errorf("pct = %v; want 0.5 against the last weighted day", got[3].Pct)
	}
}

func TestClassify_NoPriorIsNeutral(t *testing.T) {
	got := analytics.Classify(series(-1, -1, 79))
	assertChanges(t, got, analytics.ChangeNeutral, analytics.ChangeNeutral, analytics.ChangeNeutral)
}

func TestClassify_SharpLossStreak(t *testing.T) {
	// Three >1% drops in a row, then a stable day.
	got := analytics.Classify(series(100, 98.5, 97, 95.5, 95.4))
	assertChanges(t, got,
		analytics.ChangeNeutral,
		analytics.ChangeSharpLossStreak,
		analytics.ChangeSharpLossStreak,
		analytics.ChangeSharpLossStreak,
		analytics.ChangeStable)
}

func TestClassify_StreakNeedsThreeDays(t *testing.T) {
	got := analytics.Classify(series(100, 98.5, 97, 96.9))
	assertChanges(t, got,
		analytics.ChangeNeutral,
		analytics.ChangeNeutral,
		analytics.ChangeNeutral,
		analytics.ChangeStable)
}

func TestClassify_StreakOverridesGoodLoss(t *testing.T) {
	// Exactly -1% each day would be good-loss on its own.
	got := analytics.Classify(series(100, 99, 98.01, 97.0299))
	assertChanges(t, got,
		analytics.ChangeNeutral,
		analytics.ChangeSharpLossStreak,
		analytics.ChangeSharpLossStreak,
		analytics.ChangeSharpLossStreak)
}

func TestClassify_StreakSpansCalendarGaps(t *testing.T) {
	got := analytics.Classify(series(100, -1, 98.5, -1, 97, 95.5))
	assertChanges(t, got,
		analytics.ChangeNeutral,
		analytics.ChangeNeutral,
		analytics.ChangeSharpLossStreak,
		analytics.ChangeNeutral,
		analytics.ChangeSharpLossStreak,
		analytics.ChangeSharpLossStreak)
}

func TestClassify_NewestFirst(t *testing.T) {
	cells := series(100, 98.5, 97, 95.5, 95.4)
	forward := analytics.Classify(cells)
	backward := analytics.Classify(analytics.Reverse(cells))
	rev := analytics.Reverse(backward)
	for i := range forward {
		if forward[i].Change != rev[i].Change {
			t.Errorf("cell %d: oldest-first %s, newest-first %s", i, forward[i].Change, rev[i].Change)
		}
	}
}

func TestClassify_DoesNotMutateInput(t *testing.T) {
	cells := series(80, 79)
	_ = analytics.Classify(cells)
	if cells[1].Change != "" || cells[1].Pct != nil {
		t.Fatal("Classify modified its input")
	}
}
