package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/khanhlinh1810/pagetrail/internal/models"
)

// AddQuote saves a quote against an existing book.
func (s *Store) AddQuote(ctx context.Context, q *models.Quote) error {
	q.ID = uuid.NewString()
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO quotes (id, book_id, text, page, date, notes)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING created_at`,
		q.ID, q.BookID, q.Text, q.Page, fmtTime(q.Date), q.Notes,
	).Scan(&scanTime{&q.CreatedAt})
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return ErrNotFound
		}
		return fmt.Errorf("inserting quote: %w", err)
	}
	return nil
}

// ListQuotes returns quotes newest first, optionally filtered by book.
func (s *Store) ListQuotes(ctx context.Context, bookID string) ([]models.Quote, error) {
	query := `SELECT id, book_id, text, page, date, notes, created_at FROM quotes`
	var args []any
	if bookID != "" {
		query += " WHERE book_id = ?"
		args = append(args, bookID)
	}
	query += " ORDER BY date DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying quotes: %w", err)
	}
	defer rows.Close()

	var quotes []models.Quote
	for rows.Next() {
		var q models.Quote
		err := rows.Scan(&q.ID, &q.BookID, &q.Text, &q.Page, &scanTime{&q.Date}, &q.Notes, &scanTime{&q.CreatedAt})
		if err != nil {
			return nil, fmt.Errorf("scanning quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quotes: %w", err)
	}
	return quotes, nil
}

// DeleteQuote removes a quote by ID.
func (s *Store) DeleteQuote(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting quote %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete of quote %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
