package analytics

import (
	"math"
	"sort"
)

// Change buckets a day-over-day weight change.
type Change string

// Change tags, from no signal through the loss-streak override.
const (
	ChangeNeutral         Change = "neutral"
	ChangeStable          Change = "stable"
	ChangeMildGain        Change = "mild-gain"
	ChangeModerateGain    Change = "moderate-gain"
	ChangeSharpGain       Change = "sharp-gain"
	ChangeMildLoss        Change = "mild-loss"
	ChangeModerateLoss    Change = "moderate-loss"
	ChangeGoodLoss        Change = "good-loss"
	ChangeSharpLossStreak Change = "sharp-loss-streak"
)

// streakLen weighted days in a row, each at or below streakPct, form a
// sharp loss streak.
const (
	streakLen = 3
	streakPct = -1.0
)

// PercentChange returns (cur-prev)/prev*100 rounded to 6 decimals, so that
// bucket edges such as -0.2 are hit exactly.
func PercentChange(prev, cur float64) float64 {
	if prev == 0 {
		return 0
	}
	return math.Round((cur-prev)/prev*100*1e6) / 1e6
}

// ClassifyChange buckets a single percentage change. The loss streak is not
// visible from one value; Classify applies it on top.
func ClassifyChange(pct float64) Change {
	switch {
	case pct >= -0.2 && pct <= 0.2:
		return ChangeStable
	case pct > 0 && pct <= 0.3:
		return ChangeMildGain
	case pct > 0.3 && pct <= 0.5:
		return ChangeModerateGain
	case pct > 0.5:
		return ChangeSharpGain
	case pct >= -0.3 && pct < 0:
		return ChangeMildLoss
	case pct >= -0.5 && pct < -0.3:
		return ChangeModerateLoss
	case pct >= -1 && pct < -0.5:
		return ChangeGoodLoss
	default:
		return ChangeNeutral
	}
}

// Classify returns a copy of cells with Change and Pct filled in. Each
// weighted cell is compared with the nearest earlier weighted cell, skipping
// gaps. Cells may be in either date order; the result keeps the input order.
func Classify(cells []DayCell) []DayCell {
	out := make([]DayCell, len(cells))
	copy(out, cells)

	order := make([]int, 0, len(out))
	for i := range out {
		out[i].Change = ChangeNeutral
		out[i].Pct = nil
		if out[i].Weight != nil {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return out[order[a]].Date.Before(out[order[b]].Date)
	})

	// pcts[k] is the change of the k-th weighted day; the first has none.
	pcts := make([]float64, len(order))
	sharp := make([]bool, len(order))
	for k := 1; k < len(order); k++ {
		pcts[k] = PercentChange(*out[order[k-1]].Weight, *out[order[k]].Weight)
		sharp[k] = pcts[k] <= streakPct
	}
	streak := streakMembers(sharp)

	for k, idx := range order {
		if k == 0 {
			continue
		}
		p := pcts[k]
		out[idx].Pct = &p
		if streak[k] {
			out[idx].Change = ChangeSharpLossStreak
		} else {
			out[idx].Change = ClassifyChange(p)
		}
	}
	return out
}

// streakMembers marks every position that belongs to at least one run of
// streakLen consecutive true values.
func streakMembers(sharp []bool) []bool {
	in := make([]bool, len(sharp))
	run := 0
	for k, s := range sharp {
		if !s {
			run = 0
			continue
		}
		run++
		if run >= streakLen {
			for j := k - streakLen + 1; j <= k; j++ {
				in[j] = true
			}
		}
	}
	return in
}
