package analytics

import (
	"math"

	"weightgoal/internal/domain"
)

// KcalPerKg is the energy in one kilogram of body fat.
const KcalPerKg = 7700

// FirstPhaseWaterLossKg is deducted from the first milestone before the
// calorie deficit is estimated; early loss is mostly water.
const FirstPhaseWaterLossKg = 1.5

var (
	milestoneRatios = [3]float64{0.40, 0.35, 0.25}
	milestoneLabels = [3]string{"Kickstart", "Steady progress", "Final stretch"}
)

// ProgressColor is the colour band of the progress bar.
type ProgressColor string

// Progress bar colours.
const (
	ProgressRed    ProgressColor = "red"
	ProgressYellow ProgressColor = "yellow"
	ProgressGreen  ProgressColor = "green"
)

// Milestone is one of the three sequential phases of a goal.
type Milestone struct {
	Label               string              `json:"label"`
	Ratio               float64             `json:"ratio"`
	TargetDeltaKg       float64             `json:"targetDeltaKg"`
	CumulativeTargetKg  float64             `json:"cumulativeTargetKg"`
	StartDate           domain.CalendarDate `json:"startDate"`
	EndDate             domain.CalendarDate `json:"endDate"`
	DailyCalorieDeficit int                 `json:"dailyCalorieDeficit"`
	AchievedKg          float64             `json:"achievedKg"`
	AchievedPct         float64             `json:"achievedPct"`
}

// Progress is the goal progress summary shown on the dashboard.
type Progress struct {
	InitialWeight     float64       `json:"initialWeight"`
	CurrentWeight     float64       `json:"currentWeight"`
	TotalWeightToLose float64       `json:"totalWeightToLose"`
	TotalGoalDays     int           `json:"totalGoalDays"`
	DaysSinceStart    int           `json:"daysSinceStart"`
	Milestones        [3]Milestone  `json:"milestones"`
	WeightLost        float64       `json:"weightLost"`
	ExpectedProgress  float64       `json:"expectedProgress"`
	ProgressBarColor  ProgressColor `json:"progressBarColor"`
}

// ComputeProgress evaluates goal against every entry logged for it.
// totalWeightToLose keeps its sign, so gain goals come out negative.
func ComputeProgress(entries []domain.WeightEntry, goal domain.Goal, today domain.CalendarDate) Progress {
	initial := ResolveInitialWeight(entries, goal)
	current := ResolveCurrentWeight(entries, goal)
	total := initial - goal.TargetWeight
	totalDays := max(1, goal.TargetDate.DaysSince(goal.StartDate))
	sinceStart := max(0, today.DaysSince(goal.StartDate))

	p := Progress{
		InitialWeight:     initial,
		CurrentWeight:     current,
		TotalWeightToLose: total,
		TotalGoalDays:     totalDays,
		DaysSinceStart:    sinceStart,
		Milestones:        Milestones(total, initial, current, goal.StartDate, totalDays),
		WeightLost:        initial - current,
		ExpectedProgress:  total * (float64(sinceStart) / float64(totalDays)),
	}
	p.ProgressBarColor = progressColor(p.WeightLost, p.ExpectedProgress)
	return p
}

func progressColor(lost, expected float64) ProgressColor {
	switch {
	case lost < 0.8*expected:
		return ProgressRed
	case lost < expected:
		return ProgressYellow
	default:
		return ProgressGreen
	}
}

// ResolveInitialWeight prefers the goal's explicit initial weight, then the
// earliest entry, then the goal's current weight.
func ResolveInitialWeight(entries []domain.WeightEntry, goal domain.Goal) float64 {
	if goal.InitialWeight != nil {
		return *goal.InitialWeight
	}
	if e, ok := edgeEntry(entries, true); ok {
		return e.Weight
	}
	return goal.CurrentWeight
}

// ResolveCurrentWeight returns the latest entry's weight, falling back to the
// goal's current weight.
func ResolveCurrentWeight(entries []domain.WeightEntry, goal domain.Goal) float64 {
	if e, ok := edgeEntry(entries, false); ok {
		return e.Weight
	}
	return goal.CurrentWeight
}

// edgeEntry returns the earliest- or latest-dated entry. Entries sharing the
// edge date are resolved with Supersedes.
func edgeEntry(entries []domain.WeightEntry, earliest bool) (domain.WeightEntry, bool) {
	var best domain.WeightEntry
	found := false
	for _, e := range entries {
		if !found {
			best, found = e, true
			continue
		}
		c := e.Date.Compare(best.Date)
		if earliest {
			c = -c
		}
		if c > 0 || (c == 0 && e.Supersedes(best)) {
			best = e
		}
	}
	return best, found
}

// Milestones splits a goal into three phases by fixed ratios of both weight
// and time. Achieved weight is allocated to the phases in order: a phase only
// fills once every earlier phase's cumulative target is met.
func Milestones(totalWeightToLose, initial, current float64, start domain.CalendarDate, totalDays int) [3]Milestone {
	var ms [3]Milestone
	lost := math.Max(0, initial-current)

	var cumRatio, cumKg float64
	prevEnd := start
	for i, ratio := range milestoneRatios {
		cumRatio += ratio
		delta := round1(ratio * totalWeightToLose)
		prevCum := cumKg
		cumKg = round1(cumKg + delta)

		end := start.AddDays(int(math.Round(cumRatio * float64(totalDays))))
		days := max(1, end.DaysSince(prevEnd))

		water := 0.0
		if i == 0 {
			water = FirstPhaseWaterLossKg
		}

		achieved := lost
		if i > 0 {
			achieved = math.Max(0, lost-prevCum)
		}

		ms[i] = Milestone{
			Label:               milestoneLabels[i],
			Ratio:               ratio,
			TargetDeltaKg:       delta,
			CumulativeTargetKg:  cumKg,
			StartDate:           prevEnd,
			EndDate:             end,
			DailyCalorieDeficit: int(math.Round(round1(delta-water) * KcalPerKg / float64(days))),
			AchievedKg:          achieved,
			AchievedPct:         achievedPct(achieved, delta),
		}
		prevEnd = end
	}
	return ms
}

func achievedPct(achieved, target float64) float64 {
	if target == 0 {
		return 0
	}
	return clamp(achieved/target*100, 0, 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
