package domain

import "context"

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

// Goal statuses.
const (
	GoalActive    GoalStatus = "active"
	GoalAchieved  GoalStatus = "achieved"
	GoalDiscarded GoalStatus = "discarded"
	GoalExpired   GoalStatus = "expired"
)

// Goal describes a weight goal. InitialWeight is nil when the user never set
// one explicitly. Height is centimetres; zero means unknown.
type Goal struct {
	ID            int64        `json:"id"`
	UserID        int64        `json:"userId"`
	InitialWeight *float64     `json:"initialWeight"`
	CurrentWeight float64      `json:"currentWeight"`
	TargetWeight  float64      `json:"targetWeight"`
	Height        float64      `json:"height"`
	StartDate     CalendarDate `json:"goalCreatedAt"`
	TargetDate    CalendarDate `json:"targetDate"`
	Status        GoalStatus   `json:"status"`
}

// StatusOn returns the status as seen on today. An active goal whose target
// date has passed reads as expired.
func (g Goal) StatusOn(today CalendarDate) GoalStatus {
	if g.Status == GoalActive && !g.TargetDate.IsZero() && g.TargetDate.Before(today) {
		return GoalExpired
	}
	return g.Status
}

// Locked reports whether entries for day can no longer be edited: every day
// before the goal was created is locked, the creation day itself is not.
func (g Goal) Locked(day CalendarDate) bool {
	return day.Before(g.StartDate)
}

// GoalRepository is the port for reading goals.
type GoalRepository interface {
	ActiveGoal(ctx context.Context, userID int64) (*Goal, error)
}
