// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"weightgoal/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	entries  []domain.WeightEntry
	goals    []domain.Goal
	users    []*domain.User
	sessions map[string]*domain.Session

	entryIDCounter int64
	goalIDCounter  int64
	userIDCounter  int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var (
	_ domain.WeightRepository  = (*DB)(nil)
	_ domain.GoalRepository    = (*DB)(nil)
	_ domain.UserRepository    = (*DB)(nil)
	_ domain.SessionRepository = (*SessionRepo)(nil)
)

// --- WeightRepository ---

// AddWeightEntry stores e and returns its new ID.
func (db *DB) AddWeightEntry(_ context.Context, e domain.WeightEntry) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.entryIDCounter++
	e.ID = db.entryIDCounter
	e.CreatedAt = e.CreatedAt.UTC()
	db.entries = append(db.entries, e)
	return e.ID, nil
}

// DeleteLatestWeightEntry deletes the most recently created entry of a goal.
func (db *DB) DeleteLatestWeightEntry(_ context.Context, goalID int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	lastIdx := -1
	for i, e := range db.entries {
		if e.GoalID != goalID {
			continue
		}
		if lastIdx == -1 || e.Supersedes(db.entries[lastIdx]) {
			lastIdx = i
		}
	}
	if lastIdx == -1 {
		return false, nil
	}
	db.entries = append(db.entries[:lastIdx], db.entries[lastIdx+1:]...)
	return true, nil
}

// ListWeightEntries returns a goal's entries ordered by date, then creation.
func (db *DB) ListWeightEntries(_ context.Context, goalID int64) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.WeightEntry, 0, len(db.entries))
	for _, e := range db.entries {
		if e.GoalID == goalID {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if c := result[i].Date.Compare(result[j].Date); c != 0 {
			return c < 0
		}
		return result[j].Supersedes(result[i])
	})
	return result, nil
}

// --- GoalRepository ---

// SaveGoal inserts g, or replaces the goal with the same ID. Saving an
// active goal discards any other active goal of the same user.
func (db *DB) SaveGoal(_ context.Context, g domain.Goal) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if g.ID == 0 {
		db.goalIDCounter++
		g.ID = db.goalIDCounter
	}
	replaced := false
	for i := range db.goals {
		cur := &db.goals[i]
		if cur.ID == g.ID {
			*cur = g
			replaced = true
			continue
		}
		if g.Status == domain.GoalActive && cur.UserID == g.UserID && cur.Status == domain.GoalActive {
			cur.Status = domain.GoalDiscarded
		}
	}
	if !replaced {
		db.goals = append(db.goals, g)
	}
	return g.ID, nil
}

// ActiveGoal returns the user's active goal, or nil if there is none.
func (db *DB) ActiveGoal(_ context.Context, userID int64) (*domain.Goal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, g := range db.goals {
		if g.UserID == userID && g.Status == domain.GoalActive {
			return &g, nil
		}
	}
	return nil, nil
}

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(_ context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(_ context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// Count returns the total number of users.
func (db *DB) Count(_ context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(_ context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(_ context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(_ context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(_ context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
