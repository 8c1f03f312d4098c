package analytics

import (
	"errors"
	"fmt"
	"math"
)

// BMICategory is a WHO-style BMI band.
type BMICategory string

// BMI categories, lowest band first.
const (
	BMIExtremeUnderweight BMICategory = "extreme-underweight"
	BMIUnderweight        BMICategory = "underweight"
	BMINormal             BMICategory = "normal"
	BMIOverweight         BMICategory = "overweight"
	BMIObese1             BMICategory = "obese-1"
	BMIObese2             BMICategory = "obese-2"
	BMIObese3             BMICategory = "obese-3"
)

// DefaultBarWidth is the BMI bar width in pixels when the caller gives none.
const DefaultBarWidth = 300.0

// Marker insets keep the marker inside the bar at both ends.
const (
	markerMinPx   = 2.0
	markerRightPx = 5.0
)

// BMIResult is a computed BMI and where its marker sits on the scale bar.
type BMIResult struct {
	BMI              float64     `json:"bmi"`
	Category         BMICategory `json:"category"`
	MarkerPositionPx float64     `json:"markerPositionPx"`
}

// ScaleSegment is one band of the BMI bar: the BMI range it covers and the
// share of the bar width it takes.
type ScaleSegment struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	WidthPct float64 `json:"widthPct"`
}

// BMIScale is an ordered, contiguous set of segments whose widths sum to 100.
type BMIScale []ScaleSegment

// DefaultScale is the six-band bar: underweight, normal, overweight and the
// three obesity classes. The normal band and the open-ended top band are
// drawn wider than their BMI span.
var DefaultScale = BMIScale{
	{Min: 15.0, Max: 18.5, WidthPct: 14.7},
	{Min: 18.5, Max: 25.0, WidthPct: 20.2},
	{Min: 25.0, Max: 30.0, WidthPct: 15.0},
	{Min: 30.0, Max: 35.0, WidthPct: 15.0},
	{Min: 35.0, Max: 40.0, WidthPct: 15.0},
	{Min: 40.0, Max: 45.0, WidthPct: 20.1},
}

// Validate checks that the scale is non-empty, contiguous and 100% wide.
func (s BMIScale) Validate() error {
	if len(s) == 0 {
		return errors.New("bmi scale: no segments")
	}
	var total float64
	for i, seg := range s {
		if seg.Max <= seg.Min {
			return fmt.Errorf("bmi scale: segment %d has max %.2f <= min %.2f", i, seg.Max, seg.Min)
		}
		if seg.WidthPct <= 0 {
			return fmt.Errorf("bmi scale: segment %d has non-positive width", i)
		}
		if i > 0 && seg.Min != s[i-1].Max {
			return fmt.Errorf("bmi scale: gap between segment %d and %d", i-1, i)
		}
		total += seg.WidthPct
	}
	if math.Abs(total-100) > 1e-6 {
		return fmt.Errorf("bmi scale: widths sum to %.4f, want 100", total)
	}
	return nil
}

// MarkerPosition returns the pixel offset of bmi on a bar barWidthPx wide.
// Values past the last segment pin to its end; the result is kept within
// [2, barWidthPx-5].
func (s BMIScale) MarkerPosition(bmi, barWidthPx float64) float64 {
	if len(s) == 0 || barWidthPx <= 0 {
		return markerMinPx
	}
	idx := len(s) - 1
	for i, seg := range s {
		if bmi < seg.Max {
			idx = i
			break
		}
	}

	var before float64
	for _, seg := range s[:idx] {
		before += seg.WidthPct
	}
	seg := s[idx]
	fraction := clamp((bmi-seg.Min)/(seg.Max-seg.Min), 0, 1)
	pos := before/100*barWidthPx + fraction*seg.WidthPct/100*barWidthPx

	if pos > barWidthPx-markerRightPx {
		pos = barWidthPx - markerRightPx
	}
	if pos < markerMinPx {
		pos = markerMinPx
	}
	return pos
}

// BMI returns weight / (height/100)^2 rounded to two decimals. ok is false
// when either input is missing, non-positive or not finite.
func BMI(weightKg, heightCm float64) (bmi float64, ok bool) {
	if !usable(weightKg) || !usable(heightCm) {
		return 0, false
	}
	m := heightCm / 100
	return round2(weightKg / (m * m)), true
}

func usable(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// CategoryOf returns the band bmi falls in. Lower bounds are inclusive.
func CategoryOf(bmi float64) BMICategory {
	switch {
	case bmi < 16.0:
		return BMIExtremeUnderweight
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25.0:
		return BMINormal
	case bmi < 30.0:
		return BMIOverweight
	case bmi < 35.0:
		return BMIObese1
	case bmi < 40.0:
		return BMIObese2
	default:
		return BMIObese3
	}
}

// ComputeBMI returns nil when there is not enough data to compute a BMI;
// callers must not read nil as zero.
func ComputeBMI(weightKg, heightCm, barWidthPx float64, scale BMIScale) *BMIResult {
	bmi, ok := BMI(weightKg, heightCm)
	if !ok {
		return nil
	}
	if len(scale) == 0 {
		scale = DefaultScale
	}
	if barWidthPx <= 0 {
		barWidthPx = DefaultBarWidth
	}
	return &BMIResult{
		BMI:              bmi,
		Category:         CategoryOf(bmi),
		MarkerPositionPx: scale.MarkerPosition(bmi, barWidthPx),
	}
}
