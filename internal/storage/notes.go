package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/khanhlinh1810/pagetrail/internal/models"
)

// AddNote saves a note against an existing book.
func (s *Store) AddNote(ctx context.Context, n *models.Note) error {
	n.ID = uuid.NewString()
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO notes (id, book_id, text, page, date)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING created_at`,
		n.ID, n.BookID, n.Text, n.Page, fmtTime(n.Date),
	).Scan(&scanTime{&n.CreatedAt})
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return ErrNotFound
		}
		return fmt.Errorf("inserting note: %w", err)
	}
	return nil
}

// ListNotes returns notes newest first, optionally filtered by book.
func (s *Store) ListNotes(ctx context.Context, bookID string) ([]models.Note, error) {
	query := `SELECT id, book_id, text, page, date, created_at FROM notes`
	var args []any
	if bookID != "" {
		query += " WHERE book_id = ?"
		args = append(args, bookID)
	}
	query += " ORDER BY date DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		err := rows.Scan(&n.ID, &n.BookID, &n.Text, &n.Page, &scanTime{&n.Date}, &scanTime{&n.CreatedAt})
		if err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notes: %w", err)
	}
	return notes, nil
}

// DeleteNote removes a note by ID.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete of note %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
