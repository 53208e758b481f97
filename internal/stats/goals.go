package stats

import "github.com/khanhlinh1810/pagetrail/internal/models"

// GoalProgress reports how far a goal has advanced toward its target.
type GoalProgress struct {
	CurrentValue    int     `json:"current_value"`
	ProgressPercent float64 `json:"progress_percent"`
}

// EvaluateGoal maps the goal's metric type onto the matching stats field
// and computes percent complete, clamped at 100. Progress is measured
// against all-time totals; the goal's period describes the cadence the
// target was set for, not a filter window. Callers guarantee target > 0.
func EvaluateGoal(goal models.ReadingGoal, s models.ReadingStats) GoalProgress {
	var current int
	switch goal.Type {
	case models.GoalPages:
		current = s.TotalPagesRead
	case models.GoalBooks:
		current = s.TotalBooksRead
	case models.GoalTime:
		current = s.TotalReadingTime
	}

	pct := float64(current) / float64(goal.Target) * 100
	if pct > 100 {
		pct = 100
	}

	return GoalProgress{CurrentValue: current, ProgressPercent: pct}
}
