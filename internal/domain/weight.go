package domain

import (
	"context"
	"time"
)

// WeightEntry is one logged weight for a goal. Weight is always kilograms.
type WeightEntry struct {
	ID        int64        `json:"id"`
	GoalID    int64        `json:"goalId"`
	Date      CalendarDate `json:"date"`
	Weight    float64      `json:"weight"`
	Notes     string       `json:"notes"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Supersedes reports whether e wins over o when both are logged for the same
// date: the later CreatedAt wins, then the higher ID.
func (e WeightEntry) Supersedes(o WeightEntry) bool {
	if !e.CreatedAt.Equal(o.CreatedAt) {
		return e.CreatedAt.After(o.CreatedAt)
	}
	return e.ID > o.ID
}

// WeightRepository is the port for weight entry persistence.
type WeightRepository interface {
	AddWeightEntry(ctx context.Context, e WeightEntry) (int64, error)
	DeleteLatestWeightEntry(ctx context.Context, goalID int64) (bool, error)
	ListWeightEntries(ctx context.Context, goalID int64) ([]WeightEntry, error)
}
