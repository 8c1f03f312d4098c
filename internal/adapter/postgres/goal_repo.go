package postgres

import (
	"context"
	"database/sql"
	"errors"

	"weightgoal/internal/domain"
)

// ActiveGoal returns the user's newest active goal, or nil if there is none.
func (d *DB) ActiveGoal(ctx context.Context, userID int64) (*domain.Goal, error) {
	var (
		g       domain.Goal
		initial sql.NullFloat64
		status  string
	)
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, user_id, initial_weight, current_weight, target_weight, height, start_date, target_date, status FROM goals WHERE user_id=$1 AND status='active' ORDER BY id DESC LIMIT 1;",
		userID,
	).Scan(&g.ID, &g.UserID, &initial, &g.CurrentWeight, &g.TargetWeight, &g.Height, &g.StartDate, &g.TargetDate, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if initial.Valid {
		v := initial.Float64
		g.InitialWeight = &v
	}
	g.Status = domain.GoalStatus(status)
	return &g, nil
}
