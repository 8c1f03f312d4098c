package analytics_test

import (
	"math"
	"testing"

	"weightgoal/internal/analytics"
)

func TestBMI(t *testing.T) {
	got, ok := analytics.BMI(70, 175)
	if !ok || got != 22.86 {
		t.Fatalf("BMI(70, 175) = %v, %v; want 22.86, true", got, ok)
	}
	for _, tc := range []struct{ w, h float64 }{
		{0, 175}, {70, 0}, {-1, 175}, {math.NaN(), 175}, {70, math.Inf(1)},
	} {
		if _, ok := analytics.BMI(tc.w, tc.h); ok {
			t.Errorf("BMI(%v, %v) should be unavailable", tc.w, tc.h)
		}
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		bmi  float64
		want analytics.BMICategory
	}{
		{12, analytics.BMIExtremeUnderweight},
		{15.99, analytics.BMIExtremeUnderweight},
		{16.0, analytics.BMIUnderweight},
		{18.49, analytics.BMIUnderweight},
		{18.50, analytics.BMINormal},
		{24.99, analytics.BMINormal},
		{25.0, analytics.BMIOverweight},
		{30.0, analytics.BMIObese1},
		{35.0, analytics.BMIObese2},
		{39.99, analytics.BMIObese2},
		{40.0, analytics.BMIObese3},
		{62, analytics.BMIObese3},
	}
	for _, tc := range tests {
		if got := analytics.CategoryOf(tc.bmi); got != tc.want {
			t.Errorf("CategoryOf(%v) = %s; want %s", tc.bmi, got, tc.want)
		}
	}
}

func TestDefaultScaleValid(t *testing.T) {
	if err := analytics.DefaultScale.Validate(); err != nil {
		t.Fatalf("DefaultScale: %v", err)
	}
}

func TestScaleValidate_Rejects(t *testing.T) {
	tests := map[string]analytics.BMIScale{
		"empty":      {},
		"short":      {{Min: 15, Max: 25, WidthPct: 50}, {Min: 25, Max: 40, WidthPct: 40}},
		"gap":        {{Min: 15, Max: 25, WidthPct: 50}, {Min: 26, Max: 40, WidthPct: 50}},
		"inverted":   {{Min: 25, Max: 15, WidthPct: 100}},
		"zero width": {{Min: 15, Max: 25, WidthPct: 0}, {Min: 25, Max: 40, WidthPct: 100}},
	}
	for name, s := range tests {
		if err := s.Validate(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestMarkerPosition(t *testing.T) {
	const bar = 300.0
	s := analytics.DefaultScale
	tests := []struct {
		name string
		bmi  float64
		want float64
	}{
		{"below scale clamps to left inset", 10, 2},
		{"start of normal band", 18.5, 44.1},
		{"middle of normal band", 21.75, 74.4},
		{"end of last band", 45, bar - 5},
		{"beyond last band", 60, bar - 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.MarkerPosition(tc.bmi, bar); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("MarkerPosition(%v) = %v; want %v", tc.bmi, got, tc.want)
			}
		})
	}
}

func TestMarkerPosition_MonotonicAndBounded(t *testing.T) {
	const bar = 240.0
	prev := -1.0
	for b := 5.0; b <= 70; b += 0.05 {
		pos := analytics.DefaultScale.MarkerPosition(b, bar)
		if pos < prev-1e-9 {
			t.Fatalf("position decreased at bmi %.2f: %v < %v", b, pos, prev)
		}
		if pos < 2 || pos > bar-5 {
			t.Fatalf("position %v out of [2, %v] at bmi %.2f", pos, bar-5, b)
		}
		prev = pos
	}
}

func TestComputeBMI(t *testing.T) {
	r := analytics.ComputeBMI(70, 175, 0, nil)
	if r == nil {
		t.Fatal("expected a result")
	}
	if r.BMI != 22.86 || r.Category != analytics.BMINormal {
		t.Errorf("result = %+v", r)
	}
	want := analytics.DefaultScale.MarkerPosition(22.86, analytics.DefaultBarWidth)
	if r.MarkerPositionPx != want {
		t.Errorf("marker = %v; want %v", r.MarkerPositionPx, want)
	}
	if analytics.ComputeBMI(70, 0, 300, nil) != nil {
		t.Error("missing height must yield nil")
	}
}
