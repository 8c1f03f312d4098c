package postgres

import (
	"context"

	"weightgoal/internal/domain"
)

// AddWeightEntry inserts a weight entry and returns its ID.
func (d *DB) AddWeightEntry(ctx context.Context, e domain.WeightEntry) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO weight_entries(goal_id, day, weight, notes, created_at) VALUES($1, $2, $3, $4, $5) RETURNING id;",
		e.GoalID, e.Date, e.Weight, e.Notes, e.CreatedAt.UTC(),
	).Scan(&id)
	return id, err
}

// DeleteLatestWeightEntry removes the most recently created entry of a goal.
func (d *DB) DeleteLatestWeightEntry(ctx context.Context, goalID int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"DELETE FROM weight_entries WHERE id = (SELECT id FROM weight_entries WHERE goal_id=$1 ORDER BY created_at DESC, id DESC LIMIT 1);",
		goalID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListWeightEntries returns all entries of a goal ordered by day, then
// creation time.
func (d *DB) ListWeightEntries(ctx context.Context, goalID int64) ([]domain.WeightEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, goal_id, day, weight, notes, created_at FROM weight_entries WHERE goal_id=$1 ORDER BY day, created_at, id;",
		goalID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.WeightEntry
	for rows.Next() {
		var e domain.WeightEntry
		if err := rows.Scan(&e.ID, &e.GoalID, &e.Date, &e.Weight, &e.Notes, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
