package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/khanhlinh1810/pagetrail/internal/models"
)

// AddGoal inserts a new reading goal and assigns it an ID.
func (s *Store) AddGoal(ctx context.Context, g *models.ReadingGoal) error {
	g.ID = uuid.NewString()

	var endDate any
	if g.EndDate != nil {
		endDate = fmtTime(*g.EndDate)
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO reading_goals (id, type, target, period, start_date, end_date, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 RETURNING created_at`,
		g.ID, g.Type, g.Target, g.Period, fmtTime(g.StartDate), endDate, g.Completed,
	).Scan(&scanTime{&g.CreatedAt})
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}
	return nil
}

// ListGoals returns all goals, newest first.
func (s *Store) ListGoals(ctx context.Context) ([]models.ReadingGoal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, target, period, start_date, end_date, completed, created_at
		 FROM reading_goals ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("querying goals: %w", err)
	}
	defer rows.Close()

	var goals []models.ReadingGoal
	for rows.Next() {
		var (
			g       models.ReadingGoal
			endDate sql.NullString
		)
		err := rows.Scan(&g.ID, &g.Type, &g.Target, &g.Period,
			&scanTime{&g.StartDate}, &endDate, &g.Completed, &scanTime{&g.CreatedAt})
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		if endDate.Valid {
			ed := parseTime(endDate.String)
			g.EndDate = &ed
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}
	return goals, nil
}

// SetGoalCompleted toggles the user-controlled completed flag. The flag is
// independent of numeric progress, so a goal can be closed early or left
// open after its target is reached.
func (s *Store) SetGoalCompleted(ctx context.Context, id string, completed bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE reading_goals SET completed = ? WHERE id = ?`, completed, id)
	if err != nil {
		return fmt.Errorf("updating goal %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update of goal %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateGoalTarget changes a goal's target value.
func (s *Store) UpdateGoalTarget(ctx context.Context, id string, target int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE reading_goals SET target = ? WHERE id = ?`, target, id)
	if err != nil {
		return fmt.Errorf("updating goal %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update of goal %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteGoal removes a goal by ID.
func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reading_goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting goal %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete of goal %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
