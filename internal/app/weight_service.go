package app

import (
	"context"
	"fmt"
	"time"

	"weightgoal/internal/domain"
)

// WeightService encapsulates weight logging use cases for a user's active goal.
type WeightService struct {
	repo  domain.WeightRepository
	goals domain.GoalRepository
	now   func() time.Time
}

// NewWeightService creates a WeightService backed by the given repositories.
func NewWeightService(repo domain.WeightRepository, goals domain.GoalRepository) *WeightService {
	return &WeightService{repo: repo, goals: goals, now: time.Now}
}

// RecordWeight validates and stores a weight for day (YYYY-MM-DD, empty
// meaning today) against the user's active goal. Values in lb are stored
// as kg.
func (s *WeightService) RecordWeight(ctx context.Context, userID int64, day string, value float64, unit, notes string, today domain.CalendarDate) (*domain.WeightEntry, error) {
	if value <= 0 {
		return nil, fmt.Errorf("%w: value must be > 0", ErrInvalidInput)
	}
	if !domain.ValidUnit(unit) {
		return nil, fmt.Errorf("%w: unit must be \"kg\" or \"lb\"", ErrInvalidInput)
	}

	date := today
	if day != "" {
		d, err := domain.ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		date = d
	}
	if date.After(today) {
		return nil, fmt.Errorf("%w: %s is in the future", ErrInvalidInput, date)
	}

	goal, err := s.activeGoal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goal.Locked(date) {
		return nil, fmt.Errorf("%w: %s is before the goal started", ErrInvalidInput, date)
	}

	e := domain.WeightEntry{
		GoalID:    goal.ID,
		Date:      date,
		Weight:    domain.ConvertWeight(value, unit, domain.UnitKg),
		Notes:     notes,
		CreatedAt: s.now().UTC(),
	}
	id, err := s.repo.AddWeightEntry(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("add weight entry: %w", err)
	}
	e.ID = id
	return &e, nil
}

// ListEntries returns every entry of the user's active goal.
func (s *WeightService) ListEntries(ctx context.Context, userID int64) ([]domain.WeightEntry, error) {
	goal, err := s.activeGoal(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListWeightEntries(ctx, goal.ID)
}

// UndoLast deletes the most recently created entry of the active goal.
func (s *WeightService) UndoLast(ctx context.Context, userID int64) (bool, error) {
	goal, err := s.activeGoal(ctx, userID)
	if err != nil {
		return false, err
	}
	return s.repo.DeleteLatestWeightEntry(ctx, goal.ID)
}

func (s *WeightService) activeGoal(ctx context.Context, userID int64) (*domain.Goal, error) {
	goal, err := s.goals.ActiveGoal(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load goal: %w", err)
	}
	if goal == nil {
		return nil, ErrNoActiveGoal
	}
	return goal, nil
}
