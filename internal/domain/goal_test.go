package domain_test

import (
	"testing"
	"time"

	"weightgoal/internal/domain"
)

func TestGoalStatusOn(t *testing.T) {
	g := domain.Goal{
		Status:     domain.GoalActive,
		StartDate:  domain.NewDate(2024, time.January, 1),
		TargetDate: domain.NewDate(2024, time.April, 1),
	}
	if got := g.StatusOn(domain.NewDate(2024, time.April, 1)); got != domain.GoalActive {
		t.Errorf("on target date = %s; want active", got)
	}
	if got := g.StatusOn(domain.NewDate(2024, time.April, 2)); got != domain.GoalExpired {
		t.Errorf("after target date = %s; want expired", got)
	}
	g.Status = domain.GoalAchieved
	if got := g.StatusOn(domain.NewDate(2025, time.January, 1)); got != domain.GoalAchieved {
		t.Errorf("achieved goal = %s; want achieved", got)
	}
}

func TestGoalLocked(t *testing.T) {
	g := domain.Goal{StartDate: domain.NewDate(2024, time.January, 10)}
	if !g.Locked(domain.NewDate(2024, time.January, 9)) {
		t.Error("day before start must be locked")
	}
	if g.Locked(domain.NewDate(2024, time.January, 10)) {
		t.Error("start day must be editable")
	}
}

func TestWeightEntrySupersedes(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	a := domain.WeightEntry{ID: 1, CreatedAt: t0}
	b := domain.WeightEntry{ID: 2, CreatedAt: t0.Add(time.Hour)}
	if !b.Supersedes(a) || a.Supersedes(b) {
		t.Error("later CreatedAt must win")
	}
	c := domain.WeightEntry{ID: 3, CreatedAt: t0}
	if !c.Supersedes(a) {
		t.Error("higher ID must win on equal CreatedAt")
	}
}
