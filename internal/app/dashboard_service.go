package app

import (
	"context"
	"fmt"

	"weightgoal/internal/analytics"
	"weightgoal/internal/domain"
)

// MaxDashboardDays caps the grid window a caller may request.
const MaxDashboardDays = 366

// DashboardService assembles the goal dashboard from stored entries.
type DashboardService struct {
	weights domain.WeightRepository
	goals   domain.GoalRepository
	scale   analytics.BMIScale
}

// NewDashboardService creates a DashboardService. A nil scale selects
// analytics.DefaultScale.
func NewDashboardService(wr domain.WeightRepository, gr domain.GoalRepository, scale analytics.BMIScale) (*DashboardService, error) {
	if scale == nil {
		scale = analytics.DefaultScale
	}
	if err := scale.Validate(); err != nil {
		return nil, err
	}
	return &DashboardService{weights: wr, goals: gr, scale: scale}, nil
}

// Dashboard is everything the goal dashboard renders.
type Dashboard struct {
	Today  domain.CalendarDate `json:"today"`
	Goal   domain.Goal         `json:"goal"`
	Status domain.GoalStatus   `json:"status"`
	// Cells are newest first.
	Cells      []analytics.DayCell  `json:"cells"`
	Progress   analytics.Progress   `json:"progress"`
	CurrentBMI *analytics.BMIResult `json:"currentBmi"`
	TargetBMI  *analytics.BMIResult `json:"targetBmi"`
	Scale      analytics.BMIScale   `json:"scale"`
}

// Get builds the dashboard for the user's active goal as of today. days is
// clamped to [1, MaxDashboardDays]; zero or less selects the default window.
func (s *DashboardService) Get(ctx context.Context, userID int64, days int, barWidthPx float64, today domain.CalendarDate) (*Dashboard, error) {
	if days <= 0 {
		days = analytics.DefaultWindow
	}
	if days > MaxDashboardDays {
		days = MaxDashboardDays
	}

	goal, err := s.goals.ActiveGoal(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load goal: %w", err)
	}
	if goal == nil {
		return nil, ErrNoActiveGoal
	}
	entries, err := s.weights.ListWeightEntries(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}

	cells := analytics.Classify(analytics.BuildGrid(entries, days, today, *goal))
	progress := analytics.ComputeProgress(entries, *goal, today)

	return &Dashboard{
		Today:      today,
		Goal:       *goal,
		Status:     goal.StatusOn(today),
		Cells:      analytics.Reverse(cells),
		Progress:   progress,
		CurrentBMI: analytics.ComputeBMI(progress.CurrentWeight, goal.Height, barWidthPx, s.scale),
		TargetBMI:  analytics.ComputeBMI(goal.TargetWeight, goal.Height, barWidthPx, s.scale),
		Scale:      s.scale,
	}, nil
}
