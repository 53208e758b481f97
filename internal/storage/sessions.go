package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/khanhlinh1810/pagetrail/internal/models"
)

// AddSession logs a reading session and advances its book in one
// transaction. The book's page cursor moves to the session's end page
// (clamped to the book length and never moving backward), a to-read book
// is promoted to reading, and reaching the last page marks the book
// completed. Returns ErrNotFound if the book does not exist and a
// descriptive error if the session's pages fall outside the book.
func (s *Store) AddSession(ctx context.Context, sess *models.ReadingSession) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	var (
		totalPages  int
		currentPage int
		status      string
	)
	err = tx.QueryRowContext(ctx,
		`SELECT total_pages, current_page, status FROM books WHERE id = ?`,
		sess.BookID,
	).Scan(&totalPages, &currentPage, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("querying book %s: %w", sess.BookID, err)
	}

	if sess.EndPage > totalPages {
		return fmt.Errorf("end page %d exceeds book length %d", sess.EndPage, totalPages)
	}

	sess.ID = uuid.NewString()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO reading_sessions (id, book_id, date, start_page, end_page, duration, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 RETURNING created_at`,
		sess.ID, sess.BookID, fmtTime(sess.Date),
		sess.StartPage, sess.EndPage, sess.Duration, sess.Notes,
	).Scan(&scanTime{&sess.CreatedAt})
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}

	if sess.EndPage > currentPage {
		currentPage = sess.EndPage
	}
	switch {
	case sess.EndPage >= totalPages:
		status = models.StatusCompleted
		currentPage = totalPages
	case status == models.StatusToRead:
		status = models.StatusReading
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE books SET current_page = ?, status = ? WHERE id = ?`,
		currentPage, status, sess.BookID,
	); err != nil {
		return fmt.Errorf("advancing book %s: %w", sess.BookID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing session: %w", err)
	}
	return nil
}

// ListSessions returns sessions most recent first. If bookID is non-empty
// only that book's sessions are returned.
func (s *Store) ListSessions(ctx context.Context, bookID string) ([]models.ReadingSession, error) {
	query := `SELECT id, book_id, date, start_page, end_page, duration, notes, created_at
	          FROM reading_sessions`
	var args []any
	if bookID != "" {
		query += " WHERE book_id = ?"
		args = append(args, bookID)
	}
	query += " ORDER BY date DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.ReadingSession
	for rows.Next() {
		var sess models.ReadingSession
		err := rows.Scan(
			&sess.ID, &sess.BookID, &scanTime{&sess.Date},
			&sess.StartPage, &sess.EndPage, &sess.Duration, &sess.Notes,
			&scanTime{&sess.CreatedAt},
		)
		if err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// DeleteSession removes a session by ID. Sessions are immutable, so
// deletion is the only mutation after logging; the book's page cursor is
// deliberately left where it is.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reading_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete of session %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
