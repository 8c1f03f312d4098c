// Package analytics turns a goal and its sparse weight log into the values
// the dashboard renders: a fixed day grid with change tags, the three-phase
// milestone breakdown, and BMI placement. Everything here is a pure function
// of its arguments; "today" is always passed in.
package analytics

import "weightgoal/internal/domain"

// DefaultWindow is the grid length used when the caller asks for none.
const DefaultWindow = 30

// GoalStartNote labels the cell synthesized for an unlogged goal start day.
const GoalStartNote = "goal start weight"

// DayCell is one calendar day of the grid.
type DayCell struct {
	Date   domain.CalendarDate `json:"date"`
	Weight *float64            `json:"weight"`
	Notes  string              `json:"notes"`
	// Entry is the logged entry behind the cell. It is nil for empty days
	// and for the synthesized goal start cell.
	Entry     *domain.WeightEntry `json:"entry"`
	Synthetic bool                `json:"synthetic"`
	Locked    bool                `json:"locked"`
	Change    Change              `json:"change"`
	// Pct is the change against the nearest earlier weighted cell.
	Pct *float64 `json:"pct"`
}

// BuildGrid lays entries onto the days days ending at today, oldest first.
// The result always has exactly days cells (DefaultWindow if days <= 0).
// Cells come back unclassified; see Classify.
func BuildGrid(entries []domain.WeightEntry, days int, today domain.CalendarDate, goal domain.Goal) []DayCell {
	if days <= 0 {
		days = DefaultWindow
	}
	byDate := latestByDate(entries)
	first := today.AddDays(-(days - 1))

	cells := make([]DayCell, days)
	for i := range cells {
		d := first.AddDays(i)
		c := DayCell{Date: d, Locked: goal.Locked(d), Change: ChangeNeutral}
		if e, ok := byDate[d]; ok {
			w := e.Weight
			c.Weight = &w
			c.Notes = e.Notes
			c.Entry = &e
		} else if d == goal.StartDate {
			if w := startWeight(goal); w > 0 {
				c.Weight = &w
				c.Notes = GoalStartNote
				c.Synthetic = true
			}
		}
		cells[i] = c
	}
	return cells
}

// Reverse returns cells in the opposite order, leaving the input untouched.
func Reverse(cells []DayCell) []DayCell {
	out := make([]DayCell, len(cells))
	for i, c := range cells {
		out[len(cells)-1-i] = c
	}
	return out
}

// latestByDate indexes entries by date, resolving duplicates with
// WeightEntry.Supersedes.
func latestByDate(entries []domain.WeightEntry) map[domain.CalendarDate]domain.WeightEntry {
	m := make(map[domain.CalendarDate]domain.WeightEntry, len(entries))
	for _, e := range entries {
		if prev, ok := m[e.Date]; ok && !e.Supersedes(prev) {
			continue
		}
		m[e.Date] = e
	}
	return m
}

func startWeight(g domain.Goal) float64 {
	if g.InitialWeight != nil {
		return *g.InitialWeight
	}
	return g.CurrentWeight
}
