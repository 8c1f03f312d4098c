package app_test

import (
	"context"
	"time"

	"weightgoal/internal/domain"
)

type mockWeightRepo struct {
	addFn    func(ctx context.Context, e domain.WeightEntry) (int64, error)
	deleteFn func(ctx context.Context, goalID int64) (bool, error)
	listFn   func(ctx context.Context, goalID int64) ([]domain.WeightEntry, error)
}

func (m *mockWeightRepo) AddWeightEntry(ctx context.Context, e domain.WeightEntry) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, e)
	}
	return 1, nil
}

func (m *mockWeightRepo) DeleteLatestWeightEntry(ctx context.Context, goalID int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, goalID)
	}
	return false, nil
}

func (m *mockWeightRepo) ListWeightEntries(ctx context.Context, goalID int64) ([]domain.WeightEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, goalID)
	}
	return nil, nil
}

type mockGoalRepo struct {
	activeFn func(ctx context.Context, userID int64) (*domain.Goal, error)
}

func (m *mockGoalRepo) ActiveGoal(ctx context.Context, userID int64) (*domain.Goal, error) {
	if m.activeFn != nil {
		return m.activeFn(ctx, userID)
	}
	return nil, nil
}

// goalRepo always returns g.
func goalRepo(g *domain.Goal) *mockGoalRepo {
	return &mockGoalRepo{activeFn: func(context.Context, int64) (*domain.Goal, error) { return g, nil }}
}

type mockUserRepo struct {
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	getByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	createFn        func(ctx context.Context, username, passwordHash string) (*domain.User, error)
	countFn         func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, passwordHash)
	}
	return &domain.User{ID: 1, Username: username, PasswordHash: passwordHash}, nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockSessionRepo struct {
	createFn     func(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error
	getByTokenFn func(ctx context.Context, token string) (*domain.Session, error)
	deleteFn     func(ctx context.Context, token string) error
}

func (m *mockSessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	if m.createFn != nil {
		return m.createFn(ctx, userID, token, userAgent, ip, expiresAt)
	}
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error {
	return nil
}
